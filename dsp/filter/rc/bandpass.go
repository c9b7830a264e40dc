package rc

import (
	"fmt"
	"math"

	"github.com/fergarciadlc/wdf-sallenkey/dsp/filter/onepole"
)

const (
	// defaultBandwidthOctaves is one octave around the center frequency.
	defaultBandwidthOctaves = 1.0

	// minBandwidthOctaves prevents degenerate, near-zero passbands.
	minBandwidthOctaves = 0.1

	// bandPassGain1st and bandPassGain2nd compensate the passband loss of
	// the series high-pass/low-pass topology at the default one-octave
	// bandwidth. They are fixed per-topology constants from the reference
	// implementation, applied to the input sample ahead of the cascades,
	// not derived at runtime.
	bandPassGain1st = 1.5
	bandPassGain2nd = 2.23
)

// BandPassOption mutates band-pass constructor configuration.
type BandPassOption func(*bandPassConfig) error

type bandPassConfig struct {
	bandwidthOctaves float64
	autoGain         bool
}

// WithBandwidthOctaves sets the initial bandwidth in octaves. Values below
// the 0.1-octave floor are raised to it.
func WithBandwidthOctaves(octaves float64) BandPassOption {
	return func(cfg *bandPassConfig) error {
		if !isFinite(octaves) || octaves <= 0 {
			return fmt.Errorf("rc: bandwidth must be > 0 and finite: %f", octaves)
		}

		cfg.bandwidthOctaves = math.Max(octaves, minBandwidthOctaves)

		return nil
	}
}

// WithAutoGain enables or disables the fixed input gain compensation.
func WithAutoGain(enabled bool) BandPassOption {
	return func(cfg *bandPassConfig) error {
		cfg.autoGain = enabled
		return nil
	}
}

// bandPass is the shared core of both band-pass orders: a high-pass
// cascade feeding a low-pass cascade, with the leg cutoffs derived from
// the center frequency and octave bandwidth.
type bandPass struct {
	hp *Cascade
	lp *Cascade

	sampleRate       float64
	centerHz         float64
	bandwidthOctaves float64
	autoGain         bool
	gain             float64
	order            Order
}

func newBandPass(order Order, sampleRate, centerHz float64, opts []BandPassOption) (bandPass, error) {
	cfg := bandPassConfig{
		bandwidthOctaves: defaultBandwidthOctaves,
		autoGain:         true,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return bandPass{}, err
		}
	}

	gain := bandPassGain1st
	if order == OrderSecond {
		gain = bandPassGain2nd
	}

	newLeg := func(kind onepole.Kind) (*Cascade, error) {
		stages := make([]Stage, order)
		for i := range stages {
			s, err := onepole.New(kind, sampleRate, 1000)
			if err != nil {
				return nil, err
			}

			stages[i] = s
		}

		return NewCascade(sampleRate, stages...)
	}

	hp, err := newLeg(onepole.KindHighPass)
	if err != nil {
		return bandPass{}, err
	}

	lp, err := newLeg(onepole.KindLowPass)
	if err != nil {
		return bandPass{}, err
	}

	f := bandPass{
		hp:               hp,
		lp:               lp,
		sampleRate:       sampleRate,
		bandwidthOctaves: cfg.bandwidthOctaves,
		autoGain:         cfg.autoGain,
		gain:             gain,
		order:            order,
	}
	if err := f.SetCutoff(centerHz); err != nil {
		return bandPass{}, err
	}

	return f, nil
}

// SetCutoff sets the center frequency. It validates before any mutation,
// clamps to [20, 0.45*fs], and is a no-op when the clamped value matches
// the current center.
func (f *bandPass) SetCutoff(hz float64) error {
	if !isFinite(hz) || hz <= 0 {
		return fmt.Errorf("rc: center frequency must be > 0 and finite: %f", hz)
	}

	clamped := clampCutoff(hz, f.sampleRate)
	if clamped == f.centerHz {
		return nil
	}

	f.centerHz = clamped

	return f.updateCutoffs()
}

// SetCenterFreq is SetCutoff under its band-pass name.
func (f *bandPass) SetCenterFreq(hz float64) error { return f.SetCutoff(hz) }

// Cutoff returns the center frequency after clamping.
func (f *bandPass) Cutoff() float64 { return f.centerHz }

// CenterFreq returns the center frequency after clamping.
func (f *bandPass) CenterFreq() float64 { return f.centerHz }

// SetBandwidth sets the bandwidth in octaves. Non-positive values are
// rejected before any mutation; values below 0.1 octaves are floored.
func (f *bandPass) SetBandwidth(octaves float64) error {
	if !isFinite(octaves) || octaves <= 0 {
		return fmt.Errorf("rc: bandwidth must be > 0 and finite: %f", octaves)
	}

	floored := math.Max(octaves, minBandwidthOctaves)
	if floored == f.bandwidthOctaves {
		return nil
	}

	f.bandwidthOctaves = floored

	return f.updateCutoffs()
}

// Bandwidth returns the bandwidth in octaves.
func (f *bandPass) Bandwidth() float64 { return f.bandwidthOctaves }

// AutoGain reports whether input gain compensation is applied.
func (f *bandPass) AutoGain() bool { return f.autoGain }

// SetAutoGain enables or disables input gain compensation.
func (f *bandPass) SetAutoGain(enabled bool) { f.autoGain = enabled }

// HighPassCutoff returns the logical cutoff handed to the high-pass leg.
func (f *bandPass) HighPassCutoff() float64 { return f.hp.Cutoff() }

// LowPassCutoff returns the logical cutoff handed to the low-pass leg.
func (f *bandPass) LowPassCutoff() float64 { return f.lp.Cutoff() }

// updateCutoffs derives the leg cutoffs from center and bandwidth: the
// high-pass leg sits below the center, the low-pass leg above it, each
// clamped independently. Any alignment correction composes on top inside
// the leg cascades.
func (f *bandPass) updateCutoffs() error {
	ratio := math.Exp2(f.bandwidthOctaves / 2)

	hpCutoff := clampCutoff(f.centerHz/ratio, f.sampleRate)
	lpCutoff := clampCutoff(f.centerHz*ratio, f.sampleRate)

	if err := f.hp.Tune(hpCutoff); err != nil {
		return err
	}

	return f.lp.Tune(lpCutoff)
}

// Prepare propagates a sample-rate change to both legs and re-derives the
// leg cutoffs from the current center and bandwidth. A no-op when the
// rate is unchanged; never resets internal state.
func (f *bandPass) Prepare(sampleRate float64) error {
	if !isFinite(sampleRate) || sampleRate <= 0 {
		return fmt.Errorf("rc: sample rate must be > 0 and finite: %f", sampleRate)
	}

	if sampleRate == f.sampleRate {
		return nil
	}

	f.sampleRate = sampleRate

	if err := f.hp.Retune(sampleRate); err != nil {
		return err
	}

	if err := f.lp.Retune(sampleRate); err != nil {
		return err
	}

	return f.updateCutoffs()
}

// SampleRate returns the sample rate in Hz.
func (f *bandPass) SampleRate() float64 { return f.sampleRate }

// ProcessSample filters one sample: optional gain compensation, then the
// high-pass leg, then the low-pass leg.
func (f *bandPass) ProcessSample(x float64) float64 {
	if f.autoGain {
		x *= f.gain
	}

	return f.lp.ProcessSample(f.hp.ProcessSample(x))
}

// ProcessInPlace filters a mono buffer in place.
func (f *bandPass) ProcessInPlace(buf []float64) {
	if f.autoGain {
		for i := range buf {
			buf[i] *= f.gain
		}
	}

	f.hp.ProcessInPlace(buf)
	f.lp.ProcessInPlace(buf)
}

// Reset clears both legs' stage state without altering configuration.
func (f *bandPass) Reset() {
	f.hp.Reset()
	f.lp.Reset()
}

// Topology returns TopologyBandPass.
func (f *bandPass) Topology() Topology { return TopologyBandPass }

// Order returns the order of each leg.
func (f *bandPass) Order() Order { return f.order }

// FirstOrderBandPass chains a first-order high-pass into a first-order
// low-pass (-6 dB/oct skirts).
type FirstOrderBandPass struct{ bandPass }

// NewFirstOrderBandPass creates a first-order band-pass at the given
// center frequency. The default bandwidth is one octave and gain
// compensation is enabled.
func NewFirstOrderBandPass(sampleRate, centerHz float64, opts ...BandPassOption) (*FirstOrderBandPass, error) {
	core, err := newBandPass(OrderFirst, sampleRate, centerHz, opts)
	if err != nil {
		return nil, err
	}

	return &FirstOrderBandPass{core}, nil
}

// SecondOrderBandPass chains a two-stage high-pass cascade into a
// two-stage low-pass cascade (-12 dB/oct skirts). The Butterworth
// alignment applies to each leg's stage corner, computed from the
// ratio-adjusted leg cutoff rather than from the center directly.
type SecondOrderBandPass struct{ bandPass }

// NewSecondOrderBandPass creates a second-order band-pass at the given
// center frequency. The default bandwidth is one octave and gain
// compensation is enabled.
func NewSecondOrderBandPass(sampleRate, centerHz float64, opts ...BandPassOption) (*SecondOrderBandPass, error) {
	core, err := newBandPass(OrderSecond, sampleRate, centerHz, opts)
	if err != nil {
		return nil, err
	}

	return &SecondOrderBandPass{core}, nil
}
