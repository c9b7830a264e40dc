// Command rtf-analysis probes the real-time factor of the standard
// filter configurations and writes the results as CSV.
//
// Usage:
//
//	rtf-analysis [flags]
//
// Examples:
//
//	rtf-analysis
//	rtf-analysis -duration 5 -samplerate 96000 -o rtf.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fergarciadlc/wdf-sallenkey/dsp/filter/rc"
	"github.com/fergarciadlc/wdf-sallenkey/measure/rtf"
)

func main() {
	sampleRate := flag.Float64("samplerate", 44100, "sample rate in Hz")
	cutoff := flag.Float64("cutoff", 1000, "cutoff/center frequency in Hz")
	duration := flag.Float64("duration", 1.0, "audio duration per probe in seconds")
	output := flag.String("o", "rtf_results.csv", "output CSV path, or - for stdout only")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rtf-analysis [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Measures wall-clock time over audio time for each standard filter.\n")
		fmt.Fprintf(os.Stderr, "A factor below 1 means faster than real time.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*sampleRate, *cutoff, *duration, *output); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(sampleRate, cutoff, duration float64, output string) error {
	filters, err := rc.Configurations(sampleRate, cutoff)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Filter\tRTF\tHeadroom\n")

	entries := make([]rtf.Entry, 0, len(filters))

	for _, f := range filters {
		factor, err := rtf.Measure(f, sampleRate, duration)
		if err != nil {
			return err
		}

		name := fmt.Sprintf("%s_%s", f.Topology(), f.Order())
		entries = append(entries, rtf.Entry{FilterType: name, Factor: factor})

		fmt.Fprintf(tw, "%s\t%.6f\t%.0fx\n", name, factor, 1/factor)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if output == "-" {
		return nil
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}

	if err := rtf.WriteCSV(out, entries); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
