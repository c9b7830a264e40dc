package rc

import (
	"math"
	"testing"

	"github.com/fergarciadlc/wdf-sallenkey/dsp/spectrum"
)

// magnitudeAt evaluates the transfer magnitude of an impulse response at a
// single frequency.
func magnitudeAt(t *testing.T, h []float64, freqHz, sampleRate float64) float64 {
	t.Helper()

	m, err := spectrum.MagnitudeAt(h, freqHz, sampleRate)
	if err != nil {
		t.Fatalf("MagnitudeAt() error = %v", err)
	}

	return m
}

func impulseResponse(f Filter, n int) []float64 {
	buf := make([]float64, n)
	buf[0] = 1

	f.ProcessInPlace(buf)

	return buf
}

func TestConstructorValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewFirstOrderLowPass(0, 1000); err == nil {
		t.Fatal("NewFirstOrderLowPass() with zero sample rate: expected error, got nil")
	}

	if _, err := NewSecondOrderHighPass(44100, -5); err == nil {
		t.Fatal("NewSecondOrderHighPass() with negative cutoff: expected error, got nil")
	}

	if _, err := NewSecondOrderLowPass(44100, math.NaN()); err == nil {
		t.Fatal("NewSecondOrderLowPass() with NaN cutoff: expected error, got nil")
	}
}

func TestSecondOrderStageCorners(t *testing.T) {
	t.Parallel()

	lp, err := NewSecondOrderLowPass(44100, 1000)
	if err != nil {
		t.Fatalf("NewSecondOrderLowPass() error = %v", err)
	}

	hp, err := NewSecondOrderHighPass(44100, 1000)
	if err != nil {
		t.Fatalf("NewSecondOrderHighPass() error = %v", err)
	}

	for _, f := range []interface{ StageCorner() float64 }{lp, hp} {
		if got := f.StageCorner(); math.Abs(got-1553) > 1e-9 {
			t.Errorf("StageCorner() = %f, want 1553", got)
		}
	}
}

func TestFirstOrderStageCornerUnadjusted(t *testing.T) {
	t.Parallel()

	lp, err := NewFirstOrderLowPass(44100, 1000)
	if err != nil {
		t.Fatalf("NewFirstOrderLowPass() error = %v", err)
	}

	if got := lp.StageCorner(); got != 1000 {
		t.Errorf("StageCorner() = %f, want 1000", got)
	}
}

func TestSecondOrderLowPassMeasuredCutoff(t *testing.T) {
	t.Parallel()

	f, err := NewSecondOrderLowPass(44100, 1000)
	if err != nil {
		t.Fatalf("NewSecondOrderLowPass() error = %v", err)
	}

	h := impulseResponse(f, 1<<14)
	dc := magnitudeAt(t, h, 0, 44100)

	// Scan for the -3.01 dB crossing; the alignment correction should
	// land it at the logical cutoff rather than at the stage corner.
	crossing := 0.0

	for freq := 900.0; freq <= 1100; freq++ {
		db := 20 * math.Log10(magnitudeAt(t, h, freq, 44100)/dc)
		if db <= -3.0103 {
			crossing = freq
			break
		}
	}

	if math.Abs(crossing-1000) > 10 {
		t.Errorf("-3 dB crossing = %f Hz, want 1000 +/- 10", crossing)
	}
}

func TestCutoffClamping(t *testing.T) {
	t.Parallel()

	f, err := NewFirstOrderLowPass(44100, 5)
	if err != nil {
		t.Fatalf("NewFirstOrderLowPass() error = %v", err)
	}

	if got := f.Cutoff(); got != 20 {
		t.Errorf("Cutoff() = %f, want clamp to 20", got)
	}

	if err := f.SetCutoff(40000); err != nil {
		t.Fatalf("SetCutoff() error = %v", err)
	}

	if want := 0.45 * 44100; f.Cutoff() != want {
		t.Errorf("Cutoff() = %f, want clamp to %f", f.Cutoff(), want)
	}
}

func TestPrepareKeepsCutoffAndState(t *testing.T) {
	t.Parallel()

	f, err := NewSecondOrderHighPass(44100, 1000)
	if err != nil {
		t.Fatalf("NewSecondOrderHighPass() error = %v", err)
	}

	f.ProcessSample(1)

	if err := f.Prepare(44100); err != nil {
		t.Fatalf("Prepare() same rate error = %v", err)
	}

	if err := f.Prepare(48000); err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if got := f.Cutoff(); got != 1000 {
		t.Errorf("Cutoff() after Prepare = %f, want 1000", got)
	}

	if got := f.SampleRate(); got != 48000 {
		t.Errorf("SampleRate() = %f, want 48000", got)
	}
}

func TestNewFactory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{"lp1", Spec{Topology: TopologyLowPass, Order: OrderFirst, SampleRate: 44100, CutoffHz: 1000}, "LowPass"},
		{"hp2", Spec{Topology: TopologyHighPass, Order: OrderSecond, SampleRate: 44100, CutoffHz: 1000}, "HighPass"},
		{"bp2", Spec{Topology: TopologyBandPass, Order: OrderSecond, SampleRate: 44100, CutoffHz: 1000}, "BandPass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := New(tt.spec)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			if got := f.Topology().String(); got != tt.want {
				t.Errorf("Topology() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := New(Spec{Topology: Topology(9), Order: OrderFirst, SampleRate: 44100, CutoffHz: 1000}); err == nil {
		t.Fatal("New() with invalid topology: expected error, got nil")
	}

	if _, err := New(Spec{Topology: TopologyLowPass, Order: 3, SampleRate: 44100, CutoffHz: 1000}); err == nil {
		t.Fatal("New() with invalid order: expected error, got nil")
	}
}

func TestConfigurations(t *testing.T) {
	t.Parallel()

	filters, err := Configurations(44100, 1000)
	if err != nil {
		t.Fatalf("Configurations() error = %v", err)
	}

	if len(filters) != 6 {
		t.Fatalf("Configurations() returned %d filters, want 6", len(filters))
	}

	seen := make(map[string]bool)
	for _, f := range filters {
		seen[f.Topology().String()+"/"+f.Order().String()] = true
	}

	if len(seen) != 6 {
		t.Errorf("Configurations() combinations = %d distinct, want 6", len(seen))
	}
}
