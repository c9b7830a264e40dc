// Package rtf probes the real-time factor of a filter: the wall-clock
// time of one bulk block process divided by the audio duration of that
// block. A factor below 1 means the filter runs faster than real time.
//
// The probe is a single-shot measurement, not a benchmark harness;
// callers wanting statistics repeat it externally.
package rtf
