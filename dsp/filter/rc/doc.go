// Package rc builds digital emulations of simple analog RC filter
// topologies by cascading wave-digital one-pole sections.
//
// A Cascade maps one logical cutoff onto the individual corner of each
// owned section, applying a Butterworth alignment correction for
// two-section cascades. Composite filters combine one or two cascades
// into first- and second-order low-pass, high-pass, and band-pass
// responses with center-frequency/bandwidth semantics and fixed gain
// compensation, mirroring the reference analog circuits.
//
// The one-pole section itself enters through the narrow Stage interface,
// so the cascade and composition logic is decoupled from the numerical
// method used to realize a pole.
package rc
