// Package response measures and represents frequency responses of
// discrete-time filters.
//
// The analyzer excites a filter with a unit impulse, transforms the
// response with an FFT and reports magnitude in dB (normalized to the
// passband peak) and unwrapped phase in degrees over the non-negative
// frequency bins. Parameter extraction recovers cutoff frequency,
// passband ripple and stopband attenuation from a measured curve, and
// the CSV codec reads and writes the three-column interchange format
// shared with external simulation tools.
package response
