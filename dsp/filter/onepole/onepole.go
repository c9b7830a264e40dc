package onepole

import (
	"fmt"
	"math"
)

// defaultCapacitance is the fixed capacitor value of the reference RC
// circuit (100 nF). The corner frequency is tuned via the resistor.
const defaultCapacitance = 100e-9

// Kind selects where the output voltage is probed in the series R-C branch.
type Kind int

const (
	// KindLowPass probes the voltage across the capacitor (-6 dB/oct
	// above the corner).
	KindLowPass Kind = iota
	// KindHighPass probes the voltage across the resistor (-6 dB/oct
	// below the corner).
	KindHighPass
)

func (k Kind) String() string {
	switch k {
	case KindLowPass:
		return "lowpass"
	case KindHighPass:
		return "highpass"
	default:
		return "unknown"
	}
}

// Option mutates constructor configuration.
type Option func(*config) error

type config struct {
	capacitance float64
}

// WithCapacitance overrides the fixed capacitor value in farads.
func WithCapacitance(farads float64) Option {
	return func(cfg *config) error {
		if !isFinite(farads) || farads <= 0 {
			return fmt.Errorf("onepole: capacitance must be > 0 and finite: %v", farads)
		}

		cfg.capacitance = farads

		return nil
	}
}

// Filter is a single wave-digital RC section.
//
// The wave-digital tree is an ideal voltage source at the root, a
// polarity inverter, and a series adaptor joining the resistor and
// capacitor ports. The capacitor contributes the single unit of state.
type Filter struct {
	kind        Kind
	sampleRate  float64
	cornerHz    float64
	capacitance float64

	// Port impedances of the series adaptor and their shares of the
	// reflected wave. rCap depends on the sample rate, rRes on the corner.
	rRes float64
	rCap float64
	kRes float64
	kCap float64

	// Capacitor wave state (the incident wave stored one sample ago).
	z float64
}

// New constructs a wave-digital RC section of the given kind.
func New(kind Kind, sampleRate, cornerHz float64, opts ...Option) (*Filter, error) {
	if !validKind(kind) {
		return nil, fmt.Errorf("onepole: invalid kind: %d", kind)
	}

	if !isFinite(sampleRate) || sampleRate <= 0 {
		return nil, fmt.Errorf("onepole: sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := config{capacitance: defaultCapacitance}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	f := &Filter{
		kind:        kind,
		sampleRate:  sampleRate,
		capacitance: cfg.capacitance,
	}
	f.rCap = 1 / (2 * sampleRate * f.capacitance)

	if err := f.SetCorner(cornerHz); err != nil {
		return nil, err
	}

	return f, nil
}

// Kind returns the section kind.
func (f *Filter) Kind() Kind { return f.kind }

// SampleRate returns the sample rate in Hz.
func (f *Filter) SampleRate() float64 { return f.sampleRate }

// Corner returns the corner frequency in Hz.
func (f *Filter) Corner() float64 { return f.cornerHz }

// Capacitance returns the fixed capacitor value in farads.
func (f *Filter) Capacitance() float64 { return f.capacitance }

// SetCorner tunes the corner frequency by re-deriving the resistor value
// from fc = 1/(2*pi*R*C). The corner is accepted as given; range clamping
// is the caller's policy.
func (f *Filter) SetCorner(cornerHz float64) error {
	if !isFinite(cornerHz) || cornerHz <= 0 {
		return fmt.Errorf("onepole: corner must be > 0 and finite: %f", cornerHz)
	}

	f.cornerHz = cornerHz
	f.rRes = 1 / (2 * math.Pi * cornerHz * f.capacitance)
	f.updateShares()

	return nil
}

// Prepare updates the sample rate. The configured corner frequency is
// preserved and the capacitor port impedance is re-derived. Internal
// state is not cleared; call Reset separately if needed.
func (f *Filter) Prepare(sampleRate float64) error {
	if !isFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("onepole: sample rate must be > 0 and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate
	f.rCap = 1 / (2 * sampleRate * f.capacitance)
	f.updateShares()

	return nil
}

func (f *Filter) updateShares() {
	total := f.rRes + f.rCap
	f.kRes = f.rRes / total
	f.kCap = f.rCap / total
}

// Reset clears the capacitor wave state without altering the configured
// corner or sample rate.
func (f *Filter) Reset() {
	f.z = 0
}

// ProcessSample runs one wave-digital scattering pass and returns the
// probed output voltage.
func (f *Filter) ProcessSample(in float64) float64 {
	// Wave up: the capacitor reflects its stored wave, the resistor
	// reflects nothing, the inverter and ideal source fold into the wave
	// travelling back down into the series adaptor.
	bCap := f.z
	down := bCap - 2*in
	sum := down + bCap

	// Wave down: the series adaptor distributes the incident wave to its
	// two ports; the first port takes its impedance share.
	if f.kind == KindHighPass {
		aCap := bCap - f.kCap*sum
		aRes := -(down + aCap)
		f.z = aCap

		return 0.5 * aRes
	}

	aRes := -f.kRes * sum
	aCap := -(down + aRes)
	out := 0.5 * (aCap + bCap)
	f.z = aCap

	return out
}

// ProcessInPlace filters a mono buffer in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

func validKind(kind Kind) bool {
	return kind == KindLowPass || kind == KindHighPass
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
