package compare

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"

	"github.com/fergarciadlc/wdf-sallenkey/measure/response"
)

// Errors returned by comparison functions.
var (
	ErrNilCurve     = errors.New("compare: curve must not be nil")
	ErrUnknownMode  = errors.New("compare: unknown alignment mode")
	ErrNoCurves     = errors.New("compare: no curves to compare")
	ErrTooFewCurves = errors.New("compare: need at least two curves")
)

// Mode selects how two curves are aligned before the error metrics.
type Mode int

const (
	// ModeExactGrid restricts to frequencies present in both curves.
	// Meaningful only when both curves came from identically sized FFT
	// analyses.
	ModeExactGrid Mode = iota

	// ModeInterpolated evaluates a piecewise-linear model of the second
	// curve at the first curve's frequencies over the overlapping span.
	ModeInterpolated
)

// ErrorStats aggregates agreement metrics over the compared points.
type ErrorStats struct {
	MAE  float64
	RMSE float64
}

// Result is the outcome of comparing one curve against another. Points is
// the number of frequency points that entered the metrics; zero marks an
// empty comparison (no usable overlap), in which case the error fields
// are zero, never NaN.
type Result struct {
	Counterpart Implementation
	Magnitude   ErrorStats
	Phase       ErrorStats
	Points      int
}

// Empty reports whether the comparison had no usable overlap.
func (r Result) Empty() bool { return r.Points == 0 }

// Curves compares curve a against curve b in the given mode.
func Curves(a, b *response.Curve, mode Mode) (Result, error) {
	if a == nil || b == nil {
		return Result{}, ErrNilCurve
	}

	switch mode {
	case ModeExactGrid:
		return exactGrid(a, b), nil
	case ModeInterpolated:
		return interpolated(a, b), nil
	default:
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}
}

// ExactGrid compares two curves sharing the same frequency grid.
func ExactGrid(a, b *response.Curve) (Result, error) {
	return Curves(a, b, ModeExactGrid)
}

// Interpolated compares two curves by resampling b onto a's grid.
func Interpolated(a, b *response.Curve) (Result, error) {
	return Curves(a, b, ModeInterpolated)
}

func usableRow(c *response.Curve, i int) bool {
	return !math.IsNaN(c.MagnitudeDB[i]) && !math.IsNaN(c.PhaseDegrees[i])
}

// exactGrid walks both ascending frequency columns in lock step and
// collects rows whose frequencies match exactly.
func exactGrid(a, b *response.Curve) Result {
	var magA, magB, phA, phB []float64

	i, j := 0, 0
	for i < a.Len() && j < b.Len() {
		switch {
		case a.FrequencyHz[i] < b.FrequencyHz[j]:
			i++
		case a.FrequencyHz[i] > b.FrequencyHz[j]:
			j++
		default:
			if usableRow(a, i) && usableRow(b, j) {
				magA = append(magA, a.MagnitudeDB[i])
				magB = append(magB, b.MagnitudeDB[j])
				phA = append(phA, a.PhaseDegrees[i])
				phB = append(phB, b.PhaseDegrees[j])
			}

			i++
			j++
		}
	}

	return buildResult(magA, magB, phA, phB)
}

// interpolated fits a piecewise-linear model of b and evaluates it at a's
// frequencies inside the overlapping span [max(minA,minB), min(maxA,maxB)].
func interpolated(a, b *response.Curve) Result {
	bFreq, bMag, bPhase := usableRows(b)
	if len(bFreq) < 2 {
		return Result{}
	}

	lo := math.Max(a.MinFrequency(), bFreq[0])
	hi := math.Min(a.MaxFrequency(), bFreq[len(bFreq)-1])

	if lo > hi {
		return Result{}
	}

	var magModel, phaseModel interp.PiecewiseLinear
	if err := magModel.Fit(bFreq, bMag); err != nil {
		return Result{}
	}

	if err := phaseModel.Fit(bFreq, bPhase); err != nil {
		return Result{}
	}

	var magA, magB, phA, phB []float64

	for i, f := range a.FrequencyHz {
		if f < lo || f > hi || !usableRow(a, i) {
			continue
		}

		magA = append(magA, a.MagnitudeDB[i])
		magB = append(magB, magModel.Predict(f))
		phA = append(phA, a.PhaseDegrees[i])
		phB = append(phB, phaseModel.Predict(f))
	}

	return buildResult(magA, magB, phA, phB)
}

// usableRows extracts the rows of c with parseable magnitude and phase.
func usableRows(c *response.Curve) (freq, mag, phase []float64) {
	for i := range c.FrequencyHz {
		if !usableRow(c, i) {
			continue
		}

		freq = append(freq, c.FrequencyHz[i])
		mag = append(mag, c.MagnitudeDB[i])
		phase = append(phase, c.PhaseDegrees[i])
	}

	return freq, mag, phase
}

func buildResult(magA, magB, phA, phB []float64) Result {
	if len(magA) == 0 {
		return Result{}
	}

	return Result{
		Magnitude: errorStats(magA, magB),
		Phase:     errorStats(phA, phB),
		Points:    len(magA),
	}
}

func errorStats(a, b []float64) ErrorStats {
	absDiff := make([]float64, len(a))
	sqDiff := make([]float64, len(a))

	for i := range a {
		d := a[i] - b[i]
		absDiff[i] = math.Abs(d)
		sqDiff[i] = d * d
	}

	return ErrorStats{
		MAE:  stat.Mean(absDiff, nil),
		RMSE: math.Sqrt(stat.Mean(sqDiff, nil)),
	}
}

// AgainstReference compares every non-reference curve against the
// reference implementation's curve. When the requested reference has no
// curve in the set, the present implementation with the lowest identifier
// takes its place, so the fallback is deterministic. Results are ordered
// by counterpart identifier.
func AgainstReference(curves map[Implementation]*response.Curve, reference Implementation, mode Mode) ([]Result, error) {
	if len(curves) == 0 {
		return nil, ErrNoCurves
	}

	ref, ok := resolveReference(curves, reference)
	if !ok {
		return nil, ErrNoCurves
	}

	impls := presentImplementations(curves)

	results := make([]Result, 0, len(impls)-1)

	for _, impl := range impls {
		if impl == ref {
			continue
		}

		r, err := Curves(curves[ref], curves[impl], mode)
		if err != nil {
			return nil, err
		}

		r.Counterpart = impl
		results = append(results, r)
	}

	return results, nil
}

// PairResult is one unordered pair's comparison outcome.
type PairResult struct {
	A, B   Implementation
	Result Result
}

// Pairwise compares every unordered pair of curves in the set. Pairs are
// ordered lexicographically by identifier.
func Pairwise(curves map[Implementation]*response.Curve, mode Mode) ([]PairResult, error) {
	if len(curves) < 2 {
		return nil, ErrTooFewCurves
	}

	impls := presentImplementations(curves)

	var results []PairResult

	for i := 0; i < len(impls); i++ {
		for j := i + 1; j < len(impls); j++ {
			r, err := Curves(curves[impls[i]], curves[impls[j]], mode)
			if err != nil {
				return nil, err
			}

			r.Counterpart = impls[j]
			results = append(results, PairResult{A: impls[i], B: impls[j], Result: r})
		}
	}

	return results, nil
}

func resolveReference(curves map[Implementation]*response.Curve, requested Implementation) (Implementation, bool) {
	if _, ok := curves[requested]; ok {
		return requested, true
	}

	impls := presentImplementations(curves)
	if len(impls) == 0 {
		return 0, false
	}

	return impls[0], true
}

func presentImplementations(curves map[Implementation]*response.Curve) []Implementation {
	impls := make([]Implementation, 0, len(curves))
	for impl := range curves {
		impls = append(impls, impl)
	}

	sort.Slice(impls, func(i, j int) bool { return impls[i] < impls[j] })

	return impls
}
