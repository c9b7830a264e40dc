// Package compare computes agreement metrics between frequency-response
// curves from independent filter implementations.
//
// Curves may share an FFT grid (exact-grid mode) or live on arbitrary,
// non-matching frequency grids (interpolation mode, restricted to the
// overlapping span). Both modes report mean-absolute and root-mean-square
// error for magnitude and phase. Implementations are a closed identifier
// set so curve bookkeeping never depends on string matching.
package compare
