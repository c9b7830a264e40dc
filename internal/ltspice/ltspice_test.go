package ltspice

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/fergarciadlc/wdf-sallenkey/measure/response"
)

func sampleExport(rows []string) string {
	lines := append([]string{"Freq.\tV(n003)"}, rows...)
	return strings.Join(lines, "\n") + "\n"
}

func TestParseBasic(t *testing.T) {
	t.Parallel()

	input := sampleExport([]string{
		"10\t(-0.1dB,-5.2°)",
		"100\t(-3.0dB,-45.0°)",
		"1000\t(-20.4dB,-84.3°)",
	})

	res, err := Parse(strings.NewReader(input), "V(n003)")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if res.Column != "V(n003)" {
		t.Errorf("Column = %q, want V(n003)", res.Column)
	}

	if res.Malformed != 0 {
		t.Errorf("Malformed = %d, want 0", res.Malformed)
	}

	if res.Curve.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", res.Curve.Len())
	}

	if got := res.Curve.MagnitudeDB[1]; got != -3.0 {
		t.Errorf("magnitude row 1 = %f, want -3.0", got)
	}

	if got := res.Curve.PhaseDegrees[2]; got != -84.3 {
		t.Errorf("phase row 2 = %f, want -84.3", got)
	}
}

func TestParseVoltageColumnFallback(t *testing.T) {
	t.Parallel()

	input := "Freq.\tV(out)\tV(in)\n10\t(-1.0dB,-2.0°)\t(0.0dB,0.0°)\n"

	res, err := Parse(strings.NewReader(input), "V(n003)")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if res.Column != "V(out)" {
		t.Errorf("Column = %q, want fallback V(out)", res.Column)
	}
}

func TestParseNoVoltageColumn(t *testing.T) {
	t.Parallel()

	input := "Freq.\tI(R1)\n10\t0.5\n"

	_, err := Parse(strings.NewReader(input), "V(n003)")
	if !errors.Is(err, ErrMissingDataColumn) {
		t.Fatalf("Parse() error = %v, want ErrMissingDataColumn", err)
	}
}

func TestParseMalformedRowYieldsNaN(t *testing.T) {
	t.Parallel()

	rows := make([]string, 10)
	for i := range rows {
		rows[i] = "1" + strings.Repeat("0", i+1) + "\t(-1.0dB,-2.0°)"
	}

	rows[4] = "100000\t(corrupted)"

	res, err := Parse(strings.NewReader(sampleExport(rows)), "")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if res.Malformed != 1 {
		t.Errorf("Malformed = %d, want 1", res.Malformed)
	}

	if res.Curve.Len() != 10 {
		t.Fatalf("Len() = %d, want 10 (malformed row kept as NaN)", res.Curve.Len())
	}

	if !math.IsNaN(res.Curve.MagnitudeDB[4]) || !math.IsNaN(res.Curve.PhaseDegrees[4]) {
		t.Errorf("row 4 = %f/%f, want NaN/NaN", res.Curve.MagnitudeDB[4], res.Curve.PhaseDegrees[4])
	}

	for i := 0; i < 10; i++ {
		if i == 4 {
			continue
		}

		if math.IsNaN(res.Curve.MagnitudeDB[i]) {
			t.Errorf("row %d unexpectedly NaN", i)
		}
	}

	// Downstream extraction must skip the NaN row rather than let it
	// poison ripple and attenuation.
	params, err := response.Extract(res.Curve)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if math.IsNaN(params.PassbandRippleDB) || math.IsNaN(params.StopbandAttenuationDB) {
		t.Errorf("Extract() = %+v, want NaN-free ripple and attenuation", params)
	}
}

func TestParseLatin1DegreeSign(t *testing.T) {
	t.Parallel()

	// A Latin-1 file carries the degree sign as the single byte 0xB0.
	input := []byte("Freq.\tV(n003)\n10\t(-1.5dB,-30.0\xb0)\n")

	res, err := Parse(strings.NewReader(string(input)), "V(n003)")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if res.Malformed != 0 {
		t.Fatalf("Malformed = %d, want 0", res.Malformed)
	}

	if got := res.Curve.PhaseDegrees[0]; got != -30.0 {
		t.Errorf("phase = %f, want -30.0", got)
	}
}

func TestParseMissingFrequencyColumn(t *testing.T) {
	t.Parallel()

	input := "frequency\tV(n003)\n10\t(-1.0dB,-2.0°)\n"

	_, err := Parse(strings.NewReader(input), "")
	if !errors.Is(err, ErrMissingFrequency) {
		t.Fatalf("Parse() error = %v, want ErrMissingFrequency", err)
	}
}

func TestParseEmptyFile(t *testing.T) {
	t.Parallel()

	if _, err := Parse(strings.NewReader(""), ""); !errors.Is(err, ErrEmptyFile) {
		t.Fatal("Parse() on empty input: expected ErrEmptyFile")
	}
}
