package response

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by curve construction and CSV parsing.
var (
	ErrLengthMismatch = errors.New("response: column lengths differ")
	ErrEmptyCurve     = errors.New("response: curve has no points")
	ErrBadHeader      = errors.New("response: unexpected CSV header")
	ErrBadOrder       = errors.New("response: frequencies must be strictly ascending")
)

// Curve is a sampled frequency response. Magnitude is in dB and phase in
// degrees. A NaN magnitude or phase marks a point that failed upstream
// parsing; consumers skip such points rather than propagate them.
type Curve struct {
	FrequencyHz  []float64
	MagnitudeDB  []float64
	PhaseDegrees []float64
}

// NewCurve validates the three columns and wraps them in a Curve. The
// slices are retained, not copied.
func NewCurve(freqHz, magDB, phaseDeg []float64) (*Curve, error) {
	if len(freqHz) != len(magDB) || len(freqHz) != len(phaseDeg) {
		return nil, fmt.Errorf("%w: %d/%d/%d", ErrLengthMismatch, len(freqHz), len(magDB), len(phaseDeg))
	}

	if len(freqHz) == 0 {
		return nil, ErrEmptyCurve
	}

	for i, f := range freqHz {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return nil, fmt.Errorf("response: frequency at row %d must be finite and >= 0: %f", i, f)
		}

		if i > 0 && f <= freqHz[i-1] {
			return nil, fmt.Errorf("%w: row %d", ErrBadOrder, i)
		}
	}

	return &Curve{FrequencyHz: freqHz, MagnitudeDB: magDB, PhaseDegrees: phaseDeg}, nil
}

// Len returns the number of points.
func (c *Curve) Len() int { return len(c.FrequencyHz) }

// MinFrequency returns the lowest sampled frequency.
func (c *Curve) MinFrequency() float64 { return c.FrequencyHz[0] }

// MaxFrequency returns the highest sampled frequency.
func (c *Curve) MaxFrequency() float64 { return c.FrequencyHz[len(c.FrequencyHz)-1] }
