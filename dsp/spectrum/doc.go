// Package spectrum provides spectrum-domain utilities shared by the
// measurement packages: magnitude and phase extraction from complex FFT
// bins, phase unwrapping, and single-frequency Goertzel analysis.
//
// The package does not implement an FFT itself; it operates on bins
// produced elsewhere so it stays decoupled from the FFT backend.
package spectrum
