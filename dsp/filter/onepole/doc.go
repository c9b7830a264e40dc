// Package onepole provides first-order RC filter sections realized with
// wave-digital scattering.
//
// Each section models an analog series R-C branch driven by an ideal
// voltage source, with the capacitor discretized by the trapezoidal rule.
// The output is probed across the capacitor (low-pass) or across the
// resistor (high-pass). The resulting recursion is the exact bilinear
// transform of the analog RC transfer function, so a section is a causal
// analog-equivalent one-pole response.
//
// The corner frequency is tuned by solving fc = 1/(2*pi*R*C) for R with a
// fixed capacitance, mirroring the reference circuit. Sections are
// stateful, deterministic, and support per-sample and in-place block
// processing.
package onepole
