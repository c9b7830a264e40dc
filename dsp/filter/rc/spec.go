package rc

import "fmt"

// Spec describes a filter configuration for the New factory. BandwidthOctaves
// and AutoGain apply to band-pass topologies only; zero values select the
// defaults (one octave, gain compensation on).
type Spec struct {
	Topology Topology
	Order    Order

	SampleRate float64
	CutoffHz   float64

	BandwidthOctaves float64
	AutoGain         *bool
}

// New builds a filter from a Spec. It is the configuration-driven entry
// point used by the measurement tools; direct construction through the
// typed constructors is equivalent.
func New(spec Spec) (Filter, error) {
	if spec.Order != OrderFirst && spec.Order != OrderSecond {
		return nil, fmt.Errorf("rc: unsupported order: %d", spec.Order)
	}

	switch spec.Topology {
	case TopologyLowPass:
		if spec.Order == OrderFirst {
			return NewFirstOrderLowPass(spec.SampleRate, spec.CutoffHz)
		}

		return NewSecondOrderLowPass(spec.SampleRate, spec.CutoffHz)
	case TopologyHighPass:
		if spec.Order == OrderFirst {
			return NewFirstOrderHighPass(spec.SampleRate, spec.CutoffHz)
		}

		return NewSecondOrderHighPass(spec.SampleRate, spec.CutoffHz)
	case TopologyBandPass:
		var opts []BandPassOption
		if spec.BandwidthOctaves != 0 {
			opts = append(opts, WithBandwidthOctaves(spec.BandwidthOctaves))
		}

		if spec.AutoGain != nil {
			opts = append(opts, WithAutoGain(*spec.AutoGain))
		}

		if spec.Order == OrderFirst {
			return NewFirstOrderBandPass(spec.SampleRate, spec.CutoffHz, opts...)
		}

		return NewSecondOrderBandPass(spec.SampleRate, spec.CutoffHz, opts...)
	default:
		return nil, fmt.Errorf("rc: unsupported topology: %d", spec.Topology)
	}
}

// Configurations returns the six standard filter configurations at the
// given sample rate and cutoff: both orders of low-pass, high-pass and
// band-pass. Band-pass filters use the default bandwidth and gain.
func Configurations(sampleRate, cutoffHz float64) ([]Filter, error) {
	specs := []Spec{
		{Topology: TopologyLowPass, Order: OrderFirst},
		{Topology: TopologyLowPass, Order: OrderSecond},
		{Topology: TopologyHighPass, Order: OrderFirst},
		{Topology: TopologyHighPass, Order: OrderSecond},
		{Topology: TopologyBandPass, Order: OrderFirst},
		{Topology: TopologyBandPass, Order: OrderSecond},
	}

	filters := make([]Filter, 0, len(specs))

	for _, s := range specs {
		s.SampleRate = sampleRate
		s.CutoffHz = cutoffHz

		f, err := New(s)
		if err != nil {
			return nil, err
		}

		filters = append(filters, f)
	}

	return filters, nil
}
