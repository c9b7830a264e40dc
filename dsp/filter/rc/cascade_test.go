package rc

import (
	"math"
	"testing"
)

// stubStage records the calls the cascade makes so tests can assert the
// propagation rules without real filter math.
type stubStage struct {
	corners      []float64
	prepareCalls []float64
	resets       int
}

func (s *stubStage) SetCorner(hz float64) error {
	s.corners = append(s.corners, hz)
	return nil
}

func (s *stubStage) Prepare(sampleRate float64) error {
	s.prepareCalls = append(s.prepareCalls, sampleRate)
	return nil
}

func (s *stubStage) ProcessSample(x float64) float64 { return x }

func (s *stubStage) ProcessInPlace(buf []float64) {}

func (s *stubStage) Reset() { s.resets++ }

func TestNewCascadeValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewCascade(44100); err == nil {
		t.Fatal("NewCascade() with no stages: expected error, got nil")
	}

	if _, err := NewCascade(44100, &stubStage{}, &stubStage{}, &stubStage{}); err == nil {
		t.Fatal("NewCascade() with three stages: expected error, got nil")
	}

	if _, err := NewCascade(0, &stubStage{}); err == nil {
		t.Fatal("NewCascade() with zero sample rate: expected error, got nil")
	}
}

func TestCascadeTunePropagatesToAllStages(t *testing.T) {
	t.Parallel()

	a := &stubStage{}
	b := &stubStage{}

	c, err := NewCascade(44100, a, b)
	if err != nil {
		t.Fatalf("NewCascade() error = %v", err)
	}

	if err := c.Tune(1000); err != nil {
		t.Fatalf("Tune() error = %v", err)
	}

	want := 1553.0
	for _, s := range []*stubStage{a, b} {
		if len(s.corners) != 1 {
			t.Fatalf("stage SetCorner calls = %d, want 1", len(s.corners))
		}

		if math.Abs(s.corners[0]-want) > 1e-9 {
			t.Errorf("stage corner = %f, want %f", s.corners[0], want)
		}
	}

	if got := c.Cutoff(); got != 1000 {
		t.Errorf("Cutoff() = %f, want 1000", got)
	}
}

func TestCascadeSingleStageNoAlignment(t *testing.T) {
	t.Parallel()

	a := &stubStage{}

	c, err := NewCascade(44100, a)
	if err != nil {
		t.Fatalf("NewCascade() error = %v", err)
	}

	if err := c.Tune(1000); err != nil {
		t.Fatalf("Tune() error = %v", err)
	}

	if got := a.corners[0]; got != 1000 {
		t.Errorf("stage corner = %f, want 1000", got)
	}
}

func TestCascadeTuneUnchangedIsNoOp(t *testing.T) {
	t.Parallel()

	a := &stubStage{}

	c, err := NewCascade(44100, a)
	if err != nil {
		t.Fatalf("NewCascade() error = %v", err)
	}

	if err := c.Tune(500); err != nil {
		t.Fatalf("Tune() error = %v", err)
	}

	if err := c.Tune(500); err != nil {
		t.Fatalf("repeat Tune() error = %v", err)
	}

	if len(a.corners) != 1 {
		t.Errorf("SetCorner calls = %d, want 1 (repeat tune must not touch stages)", len(a.corners))
	}
}

func TestCascadeFirstTuneAlwaysPropagates(t *testing.T) {
	t.Parallel()

	// A fresh cascade has no stage corner yet, so the first tune must
	// reach the stages even if a later identical tune would be elided.
	a := &stubStage{}

	c, err := NewCascade(44100, a)
	if err != nil {
		t.Fatalf("NewCascade() error = %v", err)
	}

	if err := c.Tune(1000); err != nil {
		t.Fatalf("Tune() error = %v", err)
	}

	if len(a.corners) != 1 {
		t.Errorf("SetCorner calls = %d, want 1", len(a.corners))
	}
}

func TestCascadeClampsStageCorner(t *testing.T) {
	t.Parallel()

	a := &stubStage{}
	b := &stubStage{}

	c, err := NewCascade(44100, a, b)
	if err != nil {
		t.Fatalf("NewCascade() error = %v", err)
	}

	// 15 kHz * 1.553 exceeds 0.45*fs = 19845 Hz.
	if err := c.Tune(15000); err != nil {
		t.Fatalf("Tune() error = %v", err)
	}

	want := 0.45 * 44100
	if got := a.corners[0]; got != want {
		t.Errorf("stage corner = %f, want clamp to %f", got, want)
	}

	if got := c.StageCorner(); got != want {
		t.Errorf("StageCorner() = %f, want %f", got, want)
	}
}

func TestCascadeRetunePreservesLogicalCutoff(t *testing.T) {
	t.Parallel()

	a := &stubStage{}

	c, err := NewCascade(44100, a)
	if err != nil {
		t.Fatalf("NewCascade() error = %v", err)
	}

	if err := c.Tune(1000); err != nil {
		t.Fatalf("Tune() error = %v", err)
	}

	if err := c.Retune(96000); err != nil {
		t.Fatalf("Retune() error = %v", err)
	}

	if len(a.prepareCalls) != 1 || a.prepareCalls[0] != 96000 {
		t.Fatalf("Prepare calls = %v, want [96000]", a.prepareCalls)
	}

	if got := c.Cutoff(); got != 1000 {
		t.Errorf("Cutoff() after Retune = %f, want 1000", got)
	}

	if got := c.SampleRate(); got != 96000 {
		t.Errorf("SampleRate() = %f, want 96000", got)
	}

	if a.resets != 0 {
		t.Errorf("Reset calls = %d, want 0 (sample-rate change keeps state)", a.resets)
	}
}
