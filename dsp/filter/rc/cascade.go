package rc

import (
	"fmt"
	"math"
)

const (
	// minCutoffHz and maxCutoffRatio bound every tunable frequency:
	// cutoffs, centers, and per-stage corners are clamped to
	// [minCutoffHz, maxCutoffRatio*sampleRate].
	minCutoffHz    = 20.0
	maxCutoffRatio = 0.45

	// butterworthAlign is the per-stage corner multiplier for two-section
	// cascades.
	//
	// For two identical one-pole sections the per-stage squared magnitude
	// is w^2/(1+w^2) in normalized frequency w, and the cascade's squared
	// magnitude is its square. Requiring the cascade to reach 1/2 (-3 dB
	// overall) at the target corner gives w^2 = 1/(sqrt(2)-1), so the
	// per-stage normalized frequency is w = 1.5537...; scaled back to Hz
	// the per-stage corner is butterworthAlign times the logical cutoff.
	// The same constant serves the low-pass cascade by symmetry of the
	// one-pole magnitude form.
	butterworthAlign = 1.553
)

// Stage is the behavioral contract of a single analog-equivalent one-pole
// section. It is the only coupling between the cascade logic and the
// numerical method realizing a pole.
type Stage interface {
	SetCorner(hz float64) error
	Prepare(sampleRate float64) error
	ProcessSample(x float64) float64
	ProcessInPlace(buf []float64)
	Reset()
}

// Cascade owns a fixed ordered sequence of one-pole stages and maps one
// logical cutoff onto each stage's individual corner frequency.
//
// A Cascade starts unconfigured; the first Tune always propagates. After
// that, tuning to the value already applied is an exact no-op: no call
// reaches the owned stages.
type Cascade struct {
	stages     []Stage
	sampleRate float64
	align      float64

	cutoffHz   float64 // logical value, valid once configured
	cornerHz   float64 // per-stage corner actually applied
	configured bool
}

// NewCascade creates a cascade over the given stages. One stage passes the
// logical cutoff through unchanged; two stages apply the Butterworth
// alignment correction.
func NewCascade(sampleRate float64, stages ...Stage) (*Cascade, error) {
	if !isFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("rc: sample rate must be > 0 and finite: %f", sampleRate)
	}

	if len(stages) < 1 || len(stages) > 2 {
		return nil, fmt.Errorf("rc: cascade supports 1 or 2 stages: %d", len(stages))
	}

	for i, s := range stages {
		if s == nil {
			return nil, fmt.Errorf("rc: cascade stage %d is nil", i)
		}
	}

	align := 1.0
	if len(stages) == 2 {
		align = butterworthAlign
	}

	return &Cascade{
		stages:     stages,
		sampleRate: sampleRate,
		align:      align,
	}, nil
}

// Tune derives the per-stage corner from the logical cutoff and pushes it
// to every owned stage. Tuning to the current logical value is a no-op.
func (c *Cascade) Tune(logicalHz float64) error {
	if !isFinite(logicalHz) || logicalHz <= 0 {
		return fmt.Errorf("rc: cutoff must be > 0 and finite: %f", logicalHz)
	}

	if c.configured && logicalHz == c.cutoffHz {
		return nil
	}

	corner := clampCutoff(c.align*logicalHz, c.sampleRate)
	for _, s := range c.stages {
		if err := s.SetCorner(corner); err != nil {
			return err
		}
	}

	c.cutoffHz = logicalHz
	c.cornerHz = corner
	c.configured = true

	return nil
}

// Retune propagates a sample-rate change to every stage and re-derives the
// per-stage corners from the current logical cutoff. The logical value
// itself is preserved. Internal stage state is untouched.
func (c *Cascade) Retune(sampleRate float64) error {
	if !isFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("rc: sample rate must be > 0 and finite: %f", sampleRate)
	}

	c.sampleRate = sampleRate
	for _, s := range c.stages {
		if err := s.Prepare(sampleRate); err != nil {
			return err
		}
	}

	if !c.configured {
		return nil
	}

	corner := clampCutoff(c.align*c.cutoffHz, c.sampleRate)
	for _, s := range c.stages {
		if err := s.SetCorner(corner); err != nil {
			return err
		}
	}

	c.cornerHz = corner

	return nil
}

// ProcessSample feeds x through the owned stages in order and returns the
// final stage's output.
func (c *Cascade) ProcessSample(x float64) float64 {
	for _, s := range c.stages {
		x = s.ProcessSample(x)
	}

	return x
}

// ProcessInPlace filters a mono buffer in place through all stages.
func (c *Cascade) ProcessInPlace(buf []float64) {
	for _, s := range c.stages {
		s.ProcessInPlace(buf)
	}
}

// Reset clears all owned stages' internal state without altering their
// configured corners.
func (c *Cascade) Reset() {
	for _, s := range c.stages {
		s.Reset()
	}
}

// Cutoff returns the logical cutoff, or 0 while unconfigured.
func (c *Cascade) Cutoff() float64 { return c.cutoffHz }

// StageCorner returns the per-stage corner actually applied, or 0 while
// unconfigured.
func (c *Cascade) StageCorner() float64 { return c.cornerHz }

// SampleRate returns the sample rate in Hz.
func (c *Cascade) SampleRate() float64 { return c.sampleRate }

// NumStages returns the number of owned stages.
func (c *Cascade) NumStages() int { return len(c.stages) }

func clampCutoff(hz, sampleRate float64) float64 {
	return math.Min(math.Max(hz, minCutoffHz), sampleRate*maxCutoffRatio)
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
