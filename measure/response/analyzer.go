package response

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/floats"

	"github.com/fergarciadlc/wdf-sallenkey/dsp/spectrum"
)

const (
	defaultFFTOrder = 14

	minFFTOrder = 4
	maxFFTOrder = 24

	// silenceFloorDB bounds the dB conversion so zero-magnitude bins do
	// not produce -Inf in the output.
	silenceFloorDB = -200.0
)

// Processor is the filter surface the analyzer drives. Any causal
// single-channel processor with resettable state qualifies; this package
// is not coupled to a particular filter implementation.
type Processor interface {
	ProcessInPlace(buf []float64)
	Reset()
}

// Analyzer measures frequency responses by impulse excitation.
type Analyzer struct {
	fftOrder int
}

// AnalyzerOption mutates analyzer configuration.
type AnalyzerOption func(*Analyzer) error

// WithFFTOrder sets the FFT order; the transform length is 1<<order.
func WithFFTOrder(order int) AnalyzerOption {
	return func(a *Analyzer) error {
		if order < minFFTOrder || order > maxFFTOrder {
			return fmt.Errorf("response: FFT order must be in [%d, %d]: %d", minFFTOrder, maxFFTOrder, order)
		}

		a.fftOrder = order

		return nil
	}
}

// NewAnalyzer creates an analyzer. The default FFT order is 14
// (16384-sample impulse response).
func NewAnalyzer(opts ...AnalyzerOption) (*Analyzer, error) {
	a := &Analyzer{fftOrder: defaultFFTOrder}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// FFTOrder returns the configured FFT order.
func (a *Analyzer) FFTOrder() int { return a.fftOrder }

// Measure excites p with a unit impulse, transforms the response and
// returns the curve over the 1<<order/2 + 1 non-negative frequency bins.
// Magnitude is normalized so the peak sits at 0 dB and floored at
// -200 dB; phase is unwrapped and reported in degrees. p is Reset before
// excitation so prior state cannot leak into the measurement.
func (a *Analyzer) Measure(p Processor, sampleRate float64) (*Curve, error) {
	if p == nil {
		return nil, fmt.Errorf("response: processor must not be nil")
	}

	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0 {
		return nil, fmt.Errorf("response: sample rate must be > 0 and finite: %f", sampleRate)
	}

	n := 1 << a.fftOrder

	impulse := make([]float64, n)
	impulse[0] = 1

	p.Reset()
	p.ProcessInPlace(impulse)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan: %v", err)
	}

	freq := make([]complex128, n)
	for i, v := range impulse {
		freq[i] = complex(v, 0)
	}

	if err := plan.Forward(freq, freq); err != nil {
		return nil, fmt.Errorf("response: forward fft: %v", err)
	}

	bins := n/2 + 1
	half := freq[:bins]

	mag := spectrum.Magnitude(half)
	unwrapped := spectrum.UnwrapPhase(spectrum.Phase(half))

	peak := floats.Max(mag)
	if peak <= 0 {
		return nil, fmt.Errorf("response: processor produced an all-zero response")
	}

	freqHz := make([]float64, bins)
	magDB := make([]float64, bins)
	phaseDeg := make([]float64, bins)

	for k := 0; k < bins; k++ {
		freqHz[k] = float64(k) * sampleRate / float64(n)

		if mag[k] > 0 {
			magDB[k] = math.Max(20*math.Log10(mag[k]/peak), silenceFloorDB)
		} else {
			magDB[k] = silenceFloorDB
		}

		phaseDeg[k] = unwrapped[k] * 180 / math.Pi
	}

	return NewCurve(freqHz, magDB, phaseDeg)
}
