package response

import "math"

// cutoffTargetDB is the half-power level the cutoff search looks for.
const cutoffTargetDB = -3.0

// Parameters are the characteristics extracted from a measured curve.
// The heuristics assume a single-corner response that is monotonic beyond
// the corner; applying them to band-pass curves is an approximation.
type Parameters struct {
	// CutoffHz is the frequency whose magnitude lies closest to -3 dB.
	// Ties resolve to the lowest frequency. NaN when no point has a
	// usable magnitude.
	CutoffHz float64

	// PassbandRippleDB is max minus min magnitude over 0 < f <= cutoff.
	// The DC bin is excluded to avoid a degenerate outlier. Zero when
	// the band holds no points.
	PassbandRippleDB float64

	// StopbandAttenuationDB is -min(magnitude) over
	// 2*cutoff < f < nyquist, where nyquist is the curve's last
	// frequency. Zero when the band holds no points.
	StopbandAttenuationDB float64
}

// Extract computes filter parameters from a measured curve. Points with
// NaN magnitude are ignored throughout.
func Extract(c *Curve) (Parameters, error) {
	if c == nil || c.Len() == 0 {
		return Parameters{}, ErrEmptyCurve
	}

	p := Parameters{CutoffHz: math.NaN()}

	bestDist := math.Inf(1)

	for i, mag := range c.MagnitudeDB {
		if math.IsNaN(mag) {
			continue
		}

		if d := math.Abs(mag - cutoffTargetDB); d < bestDist {
			bestDist = d
			p.CutoffHz = c.FrequencyHz[i]
		}
	}

	if math.IsNaN(p.CutoffHz) {
		return p, nil
	}

	nyquist := c.MaxFrequency()
	passLo, passHi := math.Inf(1), math.Inf(-1)
	stopMin := math.Inf(1)

	for i, f := range c.FrequencyHz {
		mag := c.MagnitudeDB[i]
		if math.IsNaN(mag) {
			continue
		}

		switch {
		case f > 0 && f <= p.CutoffHz:
			passLo = math.Min(passLo, mag)
			passHi = math.Max(passHi, mag)
		case f > 2*p.CutoffHz && f < nyquist:
			stopMin = math.Min(stopMin, mag)
		}
	}

	if passHi >= passLo {
		p.PassbandRippleDB = passHi - passLo
	}

	if !math.IsInf(stopMin, 1) {
		p.StopbandAttenuationDB = -stopMin
	}

	return p, nil
}
