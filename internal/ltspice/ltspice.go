// Package ltspice parses LTSpice AC-analysis text exports into
// frequency-response curves.
//
// The export format is tab-separated with a "Freq." column and one or
// more voltage columns holding "(MAGdB,PHASE°)" pairs. Files are written
// in Latin-1, so the degree sign is decoded byte-wise before matching.
package ltspice

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/fergarciadlc/wdf-sallenkey/measure/response"
)

// DefaultVoltageColumn is the node LTSpice assigns to the filter output
// in the reference schematics.
const DefaultVoltageColumn = "V(n003)"

const frequencyColumn = "Freq."

// Errors returned by Parse.
var (
	ErrMissingDataColumn = errors.New("ltspice: no usable voltage column")
	ErrMissingFrequency  = errors.New("ltspice: missing frequency column")
	ErrEmptyFile         = errors.New("ltspice: no data rows")
)

// magPhasePattern matches the complex voltage encoding "(MAGdB,PHASE°)".
var magPhasePattern = regexp.MustCompile(`\((.+?)dB,(.+?)°\)`)

// Result is one converted file.
type Result struct {
	Curve *response.Curve

	// Column is the voltage column the values came from. It differs
	// from the requested column when the fallback was taken.
	Column string

	// Malformed counts rows whose voltage field did not match the
	// complex encoding; those rows carry NaN magnitude and phase.
	Malformed int
}

// Parse converts one LTSpice export. voltageColumn selects the column to
// extract; when absent, the first column whose name starts with "V(" is
// used instead, and the conversion fails with ErrMissingDataColumn when
// none exists. A malformed voltage field spoils only its own row.
func Parse(r io.Reader, voltageColumn string) (*Result, error) {
	if voltageColumn == "" {
		voltageColumn = DefaultVoltageColumn
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("ltspice: read header: %v", err)
		}

		return nil, ErrEmptyFile
	}

	header := strings.Split(decodeLatin1(scanner.Bytes()), "\t")

	freqIdx, voltIdx := -1, -1

	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name

		if name == frequencyColumn {
			freqIdx = i
		}

		if name == voltageColumn {
			voltIdx = i
		}
	}

	if freqIdx < 0 {
		return nil, ErrMissingFrequency
	}

	if voltIdx < 0 {
		for i, name := range header {
			if strings.HasPrefix(name, "V(") {
				voltIdx = i
				break
			}
		}
	}

	if voltIdx < 0 {
		return nil, fmt.Errorf("%w: requested %q, columns %v", ErrMissingDataColumn, voltageColumn, header)
	}

	var (
		freqHz, magDB, phaseDeg []float64
		malformed               int
	)

	for row := 2; scanner.Scan(); row++ {
		line := decodeLatin1(scanner.Bytes())
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) <= freqIdx || len(fields) <= voltIdx {
			return nil, fmt.Errorf("ltspice: row %d has %d fields, need %d", row, len(fields), max(freqIdx, voltIdx)+1)
		}

		freq, err := strconv.ParseFloat(strings.TrimSpace(fields[freqIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("ltspice: row %d frequency %q: %v", row, fields[freqIdx], err)
		}

		mag, phase, ok := extractMagPhase(fields[voltIdx])
		if !ok {
			malformed++
		}

		freqHz = append(freqHz, freq)
		magDB = append(magDB, mag)
		phaseDeg = append(phaseDeg, phase)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ltspice: read rows: %v", err)
	}

	curve, err := response.NewCurve(freqHz, magDB, phaseDeg)
	if err != nil {
		return nil, err
	}

	return &Result{Curve: curve, Column: header[voltIdx], Malformed: malformed}, nil
}

// extractMagPhase pulls the dB magnitude and degree phase out of one
// complex voltage field. A field that does not match the encoding yields
// NaN for both.
func extractMagPhase(field string) (mag, phase float64, ok bool) {
	m := magPhasePattern.FindStringSubmatch(field)
	if m == nil {
		return math.NaN(), math.NaN(), false
	}

	mag, errMag := strconv.ParseFloat(strings.TrimSpace(m[1]), 64)

	// A UTF-8 encoded degree sign decodes from Latin-1 as "Â°"; drop
	// the stray prefix byte before parsing.
	phaseStr := strings.TrimSuffix(strings.TrimSpace(m[2]), "Â")

	phase, errPhase := strconv.ParseFloat(phaseStr, 64)
	if errMag != nil || errPhase != nil {
		return math.NaN(), math.NaN(), false
	}

	return mag, phase, true
}

// decodeLatin1 maps each byte to the equally numbered rune.
func decodeLatin1(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}

	return string(runes)
}
