package response

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

var csvHeader = []string{"frequency_hz", "magnitude_db", "phase_degrees"}

// WriteCSV writes the curve in the three-column interchange format with a
// fixed six-decimal precision.
func WriteCSV(w io.Writer, c *Curve) error {
	if c == nil || c.Len() == 0 {
		return ErrEmptyCurve
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("response: write header: %v", err)
	}

	row := make([]string, 3)

	for i := range c.FrequencyHz {
		row[0] = strconv.FormatFloat(c.FrequencyHz[i], 'f', 6, 64)
		row[1] = strconv.FormatFloat(c.MagnitudeDB[i], 'f', 6, 64)
		row[2] = strconv.FormatFloat(c.PhaseDegrees[i], 'f', 6, 64)

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("response: write row %d: %v", i, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// ReadCSV parses a curve from the three-column interchange format. The
// header must match exactly and frequencies must be strictly ascending.
// NaN magnitude or phase values are accepted; they mark rows an upstream
// converter could not parse.
func ReadCSV(r io.Reader) (*Curve, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("response: read header: %v", err)
	}

	for i, want := range csvHeader {
		if header[i] != want {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrBadHeader, i, header[i], want)
		}
	}

	var freqHz, magDB, phaseDeg []float64

	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("response: read row %d: %v", row, err)
		}

		f, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("response: row %d frequency %q: %v", row, record[0], err)
		}

		m, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("response: row %d magnitude %q: %v", row, record[1], err)
		}

		p, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("response: row %d phase %q: %v", row, record[2], err)
		}

		freqHz = append(freqHz, f)
		magDB = append(magDB, m)
		phaseDeg = append(phaseDeg, p)
	}

	return NewCurve(freqHz, magDB, phaseDeg)
}

// WriteCSVFile writes the curve to a file, creating or truncating it.
func WriteCSVFile(path string, c *Curve) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteCSV(out, c); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// ReadCSVFile parses a curve from a file.
func ReadCSVFile(path string) (*Curve, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	return ReadCSV(in)
}
