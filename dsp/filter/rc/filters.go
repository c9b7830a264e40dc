package rc

import (
	"fmt"

	"github.com/fergarciadlc/wdf-sallenkey/dsp/filter/onepole"
)

// Topology identifies the overall frequency-response shape of a filter.
type Topology int

const (
	TopologyLowPass Topology = iota
	TopologyHighPass
	TopologyBandPass
)

func (t Topology) String() string {
	switch t {
	case TopologyLowPass:
		return "LowPass"
	case TopologyHighPass:
		return "HighPass"
	case TopologyBandPass:
		return "BandPass"
	default:
		return "unknown"
	}
}

// Order is the filter order (number of poles per leg).
type Order int

const (
	OrderFirst  Order = 1
	OrderSecond Order = 2
)

func (o Order) String() string {
	switch o {
	case OrderFirst:
		return "order1"
	case OrderSecond:
		return "order2"
	default:
		return "unknown"
	}
}

// Filter is the common surface of all composite RC filters.
//
// For band-pass variants, SetCutoff and Cutoff address the center
// frequency. Instances hold mutable, exclusively owned state and must not
// be called concurrently.
type Filter interface {
	SetCutoff(hz float64) error
	Cutoff() float64
	Prepare(sampleRate float64) error
	SampleRate() float64
	ProcessSample(x float64) float64
	ProcessInPlace(buf []float64)
	Reset()
	Topology() Topology
	Order() Order
}

// passFilter is the shared core of the low-pass and high-pass variants:
// a single cascade plus the setter/no-op/clamp policy.
type passFilter struct {
	cascade    *Cascade
	sampleRate float64
	topology   Topology
	order      Order
}

func newPassFilter(topology Topology, order Order, sampleRate, cutoffHz float64) (passFilter, error) {
	kind := onepole.KindLowPass
	if topology == TopologyHighPass {
		kind = onepole.KindHighPass
	}

	stages := make([]Stage, order)
	for i := range stages {
		s, err := onepole.New(kind, sampleRate, 1000)
		if err != nil {
			return passFilter{}, err
		}

		stages[i] = s
	}

	cascade, err := NewCascade(sampleRate, stages...)
	if err != nil {
		return passFilter{}, err
	}

	f := passFilter{
		cascade:    cascade,
		sampleRate: sampleRate,
		topology:   topology,
		order:      order,
	}
	if err := f.SetCutoff(cutoffHz); err != nil {
		return passFilter{}, err
	}

	return f, nil
}

// SetCutoff validates, clamps to [20, 0.45*fs], and retunes the cascade.
// Setting the value already applied pushes nothing into the stages.
func (f *passFilter) SetCutoff(hz float64) error {
	if !isFinite(hz) || hz <= 0 {
		return fmt.Errorf("rc: cutoff must be > 0 and finite: %f", hz)
	}

	return f.cascade.Tune(clampCutoff(hz, f.sampleRate))
}

// Cutoff returns the logical cutoff after clamping.
func (f *passFilter) Cutoff() float64 { return f.cascade.Cutoff() }

// StageCorner returns the corner frequency applied to each owned stage.
func (f *passFilter) StageCorner() float64 { return f.cascade.StageCorner() }

// Prepare propagates a sample-rate change and recomputes stage corners
// from the current cutoff. A no-op when the rate is unchanged. Internal
// filter state is preserved; call Reset explicitly if needed.
func (f *passFilter) Prepare(sampleRate float64) error {
	if !isFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("rc: sample rate must be > 0 and finite: %f", sampleRate)
	}

	if sampleRate == f.sampleRate {
		return nil
	}

	if err := f.cascade.Retune(sampleRate); err != nil {
		return err
	}

	f.sampleRate = sampleRate

	return nil
}

// SampleRate returns the sample rate in Hz.
func (f *passFilter) SampleRate() float64 { return f.sampleRate }

// ProcessSample filters one sample.
func (f *passFilter) ProcessSample(x float64) float64 { return f.cascade.ProcessSample(x) }

// ProcessInPlace filters a mono buffer in place.
func (f *passFilter) ProcessInPlace(buf []float64) { f.cascade.ProcessInPlace(buf) }

// Reset clears all stage state without altering configured parameters.
func (f *passFilter) Reset() { f.cascade.Reset() }

// Topology returns the response shape.
func (f *passFilter) Topology() Topology { return f.topology }

// Order returns the filter order.
func (f *passFilter) Order() Order { return f.order }

// FirstOrderLowPass is a single RC low-pass section (-6 dB/oct).
type FirstOrderLowPass struct{ passFilter }

// NewFirstOrderLowPass creates a first-order low-pass at the given cutoff.
func NewFirstOrderLowPass(sampleRate, cutoffHz float64) (*FirstOrderLowPass, error) {
	core, err := newPassFilter(TopologyLowPass, OrderFirst, sampleRate, cutoffHz)
	if err != nil {
		return nil, err
	}

	return &FirstOrderLowPass{core}, nil
}

// FirstOrderHighPass is a single RC high-pass section (-6 dB/oct).
type FirstOrderHighPass struct{ passFilter }

// NewFirstOrderHighPass creates a first-order high-pass at the given cutoff.
func NewFirstOrderHighPass(sampleRate, cutoffHz float64) (*FirstOrderHighPass, error) {
	core, err := newPassFilter(TopologyHighPass, OrderFirst, sampleRate, cutoffHz)
	if err != nil {
		return nil, err
	}

	return &FirstOrderHighPass{core}, nil
}

// SecondOrderLowPass cascades two identical low-pass sections with
// Butterworth alignment (-12 dB/oct).
type SecondOrderLowPass struct{ passFilter }

// NewSecondOrderLowPass creates a second-order low-pass at the given cutoff.
func NewSecondOrderLowPass(sampleRate, cutoffHz float64) (*SecondOrderLowPass, error) {
	core, err := newPassFilter(TopologyLowPass, OrderSecond, sampleRate, cutoffHz)
	if err != nil {
		return nil, err
	}

	return &SecondOrderLowPass{core}, nil
}

// SecondOrderHighPass cascades two identical high-pass sections with
// Butterworth alignment (-12 dB/oct).
type SecondOrderHighPass struct{ passFilter }

// NewSecondOrderHighPass creates a second-order high-pass at the given cutoff.
func NewSecondOrderHighPass(sampleRate, cutoffHz float64) (*SecondOrderHighPass, error) {
	core, err := newPassFilter(TopologyHighPass, OrderSecond, sampleRate, cutoffHz)
	if err != nil {
		return nil, err
	}

	return &SecondOrderHighPass{core}, nil
}
