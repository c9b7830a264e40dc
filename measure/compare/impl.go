package compare

// Implementation identifies a filter implementation whose measured curve
// participates in a comparison. The set is closed; every identifier has a
// total mapping to its key and display names.
type Implementation int

const (
	// GoWDF is this module's wave-digital cascade implementation.
	GoWDF Implementation = iota

	// ChowdspWDF is the chowdsp_wdf C++ port.
	ChowdspWDF

	// PyWDF is the pywdf Python prototype.
	PyWDF

	// LTSpice is a circuit-simulator AC sweep.
	LTSpice

	numImplementations
)

// Name returns the stable key used in file names and CSV output.
func (i Implementation) Name() string {
	switch i {
	case GoWDF:
		return "go-wdf"
	case ChowdspWDF:
		return "chowdsp"
	case PyWDF:
		return "pywdf"
	case LTSpice:
		return "ltspice"
	default:
		return "unknown"
	}
}

// DisplayName returns the human-readable label.
func (i Implementation) DisplayName() string {
	switch i {
	case GoWDF:
		return "Go WDF"
	case ChowdspWDF:
		return "chowdsp_wdf"
	case PyWDF:
		return "pywdf"
	case LTSpice:
		return "LTSpice"
	default:
		return "unknown"
	}
}

// String returns the stable key name.
func (i Implementation) String() string { return i.Name() }

// Implementations returns all known identifiers in declaration order.
func Implementations() []Implementation {
	all := make([]Implementation, 0, numImplementations)
	for i := Implementation(0); i < numImplementations; i++ {
		all = append(all, i)
	}

	return all
}

// ParseImplementation resolves a key name to its identifier.
func ParseImplementation(name string) (Implementation, bool) {
	for i := Implementation(0); i < numImplementations; i++ {
		if i.Name() == name {
			return i, true
		}
	}

	return 0, false
}
