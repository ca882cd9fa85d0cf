// Package gdml exports an assembled geometry as a GDML document and checks
// that a document is self-consistent: every solid, material, volume and
// define it references is declared, and declared before it is used.
package gdml
