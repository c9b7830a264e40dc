package rtf

import (
	"math"
	"strings"
	"testing"
	"time"
)

// sleeper burns a fixed wall-clock time per block so the factor is
// predictable regardless of machine speed.
type sleeper struct {
	d time.Duration
}

func (s sleeper) ProcessInPlace(buf []float64) {
	time.Sleep(s.d)
}

func TestMeasureValidation(t *testing.T) {
	t.Parallel()

	if _, err := Measure(nil, 44100, 1); err == nil {
		t.Fatal("Measure(nil): expected error, got nil")
	}

	if _, err := Measure(sleeper{}, 0, 1); err == nil {
		t.Fatal("Measure() with zero sample rate: expected error, got nil")
	}

	if _, err := Measure(sleeper{}, 44100, -1); err == nil {
		t.Fatal("Measure() with negative duration: expected error, got nil")
	}

	if _, err := Measure(sleeper{}, 44100, math.NaN()); err == nil {
		t.Fatal("Measure() with NaN duration: expected error, got nil")
	}
}

func TestMeasureFactor(t *testing.T) {
	t.Parallel()

	// 50 ms of work over 1 s of audio puts the factor near 0.05; the
	// lower bound is exact, the upper bound allows scheduler slack.
	got, err := Measure(sleeper{d: 50 * time.Millisecond}, 1000, 1)
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}

	if got < 0.05 || got > 0.5 {
		t.Errorf("Measure() = %f, want in [0.05, 0.5]", got)
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var sb strings.Builder

	entries := []Entry{
		{FilterType: "LowPass_order1", Factor: 0.000123},
		{FilterType: "BandPass_order2", Factor: 0.000456},
	}

	if err := WriteCSV(&sb, entries); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("WriteCSV() produced %d lines, want 3", len(lines))
	}

	if lines[0] != "filter_type,rtf" {
		t.Errorf("header = %q, want \"filter_type,rtf\"", lines[0])
	}

	if lines[1] != "LowPass_order1,0.000123" {
		t.Errorf("row 1 = %q", lines[1])
	}
}
