// Package larsoft provides builder kinds for the LArSoft compatible layout
// of the 35t detector: six TPC drift cells keyed by a height and drift
// code, arranged in a cryostat envelope with an optional wire frame in the
// drift gap and cathode planes on both outer faces.
package larsoft
