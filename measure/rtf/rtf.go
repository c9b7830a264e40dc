package rtf

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
)

// Processor is the filter surface the probe drives.
type Processor interface {
	ProcessInPlace(buf []float64)
}

// Measure times a single bulk process of durationSeconds of audio through
// p and returns wall-clock seconds divided by audio seconds. The buffer
// holds a unit impulse at sample 0. Allocation and setup happen outside
// the timed region; only the process call is measured.
func Measure(p Processor, sampleRate, durationSeconds float64) (float64, error) {
	if p == nil {
		return 0, fmt.Errorf("rtf: processor must not be nil")
	}

	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0 {
		return 0, fmt.Errorf("rtf: sample rate must be > 0 and finite: %f", sampleRate)
	}

	if math.IsNaN(durationSeconds) || math.IsInf(durationSeconds, 0) || durationSeconds <= 0 {
		return 0, fmt.Errorf("rtf: duration must be > 0 and finite: %f", durationSeconds)
	}

	n := int(math.Round(durationSeconds * sampleRate))
	if n < 1 {
		return 0, fmt.Errorf("rtf: duration %f s at %f Hz yields no samples", durationSeconds, sampleRate)
	}

	buf := make([]float64, n)
	buf[0] = 1

	start := time.Now()
	p.ProcessInPlace(buf)
	elapsed := time.Since(start)

	return elapsed.Seconds() / durationSeconds, nil
}

// Entry is one named configuration's measured factor.
type Entry struct {
	FilterType string
	Factor     float64
}

// WriteCSV writes entries under the filter_type,rtf header.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"filter_type", "rtf"}); err != nil {
		return fmt.Errorf("rtf: write header: %v", err)
	}

	for _, e := range entries {
		row := []string{e.FilterType, strconv.FormatFloat(e.Factor, 'f', 6, 64)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("rtf: write row %q: %v", e.FilterType, err)
		}
	}

	cw.Flush()

	return cw.Error()
}
