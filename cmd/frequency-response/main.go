// Command frequency-response measures filter frequency responses and
// writes them as three-column CSV files.
//
// Usage:
//
//	frequency-response [flags]
//
// It sweeps the standard configurations (low-pass, high-pass and
// band-pass, first and second order) at the given cutoff and writes one
// CSV per configuration, plus optional impulse-response WAV dumps.
//
// Examples:
//
//	frequency-response -cutoff 1000
//	frequency-response -samplerate 48000 -fftorder 15 -outdir responses
//	frequency-response -cutoff 500 -wav
//	frequency-response -only LowPass_order2
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/fergarciadlc/wdf-sallenkey/dsp/filter/rc"
	"github.com/fergarciadlc/wdf-sallenkey/measure/response"
)

func main() {
	sampleRate := flag.Float64("samplerate", 44100, "sample rate in Hz")
	cutoff := flag.Float64("cutoff", 1000, "cutoff/center frequency in Hz")
	bandwidth := flag.Float64("bandwidth", 1.0, "band-pass bandwidth in octaves")
	fftOrder := flag.Int("fftorder", 14, "FFT order; transform length is 2^order")
	outDir := flag.String("outdir", "frequency_responses", "output directory for CSV files")
	only := flag.String("only", "", "measure a single configuration, e.g. LowPass_order1")
	dumpWAV := flag.Bool("wav", false, "also write impulse responses as 16-bit WAV files")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: frequency-response [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Measures the standard filter configurations and writes one CSV per filter.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*sampleRate, *cutoff, *bandwidth, *fftOrder, *outDir, *only, *dumpWAV); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(sampleRate, cutoff, bandwidth float64, fftOrder int, outDir, only string, dumpWAV bool) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %v", err)
	}

	analyzer, err := response.NewAnalyzer(response.WithFFTOrder(fftOrder))
	if err != nil {
		return err
	}

	filters, err := rc.Configurations(sampleRate, cutoff)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Filter\tCutoff [Hz]\tRipple [dB]\tAttenuation [dB]\tFile\n")

	measured := 0

	for _, f := range filters {
		label := fmt.Sprintf("%s_%s", f.Topology(), f.Order())
		if only != "" && label != only {
			continue
		}

		measured++

		if bp, ok := f.(interface{ SetBandwidth(float64) error }); ok {
			if err := bp.SetBandwidth(bandwidth); err != nil {
				return err
			}
		}

		name := fmt.Sprintf("%s_%.0fHz", label, cutoff)

		curve, err := analyzer.Measure(f, sampleRate)
		if err != nil {
			return fmt.Errorf("%s: %v", name, err)
		}

		path := filepath.Join(outDir, "go_"+name+".csv")
		if err := response.WriteCSVFile(path, curve); err != nil {
			return fmt.Errorf("%s: %v", name, err)
		}

		if dumpWAV {
			wavPath := filepath.Join(outDir, "go_"+name+".wav")
			if err := writeImpulseWAV(wavPath, f, sampleRate, 1<<fftOrder); err != nil {
				return fmt.Errorf("%s: %v", name, err)
			}
		}

		params, err := response.Extract(curve)
		if err != nil {
			return fmt.Errorf("%s: %v", name, err)
		}

		fmt.Fprintf(tw, "%s\t%.1f\t%.3f\t%.1f\t%s\n",
			name, params.CutoffHz, params.PassbandRippleDB, params.StopbandAttenuationDB, path)
	}

	if only != "" && measured == 0 {
		return fmt.Errorf("unknown configuration %q", only)
	}

	return tw.Flush()
}

// writeImpulseWAV renders n samples of the filter's impulse response to a
// 16-bit mono WAV file.
func writeImpulseWAV(path string, f rc.Filter, sampleRate float64, n int) error {
	buf := make([]float64, n)
	buf[0] = 1

	f.Reset()
	f.ProcessInPlace(buf)

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(out, int(sampleRate), 16, 1, 1)

	data := make([]int, n)
	for i, v := range buf {
		switch {
		case v > 1:
			v = 1
		case v < -1:
			v = -1
		}

		data[i] = int(v * 32767)
	}

	ib := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: int(sampleRate)},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(ib); err != nil {
		enc.Close()
		out.Close()

		return err
	}

	if err := enc.Close(); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
