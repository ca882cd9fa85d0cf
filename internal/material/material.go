// Package material models elements, mixtures and molecules and keeps them in
// a caller-owned Registry that builders define into and look up from.
package material

import (
	"errors"
	"fmt"
	"math"

	"github.com/vk/cryogeo/internal/units"
)

var (
	// ErrNotFound is returned by Lookup for an undeclared name.
	ErrNotFound = errors.New("material: not found")
	// ErrInvalid is returned by Define for a malformed declaration.
	ErrInvalid = errors.New("material: invalid declaration")
	// ErrUnresolved is returned by Resolve when a constituent is missing or
	// declared after the material that uses it.
	ErrUnresolved = errors.New("material: unresolved constituent")
)

// Kind tags the material variant.
type Kind int

const (
	KindElement Kind = iota
	KindMixture
	KindMolecule
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindMixture:
		return "mixture"
	default:
		return "molecule"
	}
}

// Material is one of *Element, *Mixture or *Molecule.
type Material interface {
	MaterialName() string
	Kind() Kind
	validate() error
}

// Element is a chemical element.
type Element struct {
	Name      string
	Symbol    string
	Z         int
	MolarMass units.MolarMass
}

func (e *Element) MaterialName() string { return e.Name }
func (e *Element) Kind() Kind           { return KindElement }

func (e *Element) validate() error {
	if e.Symbol == "" {
		return fmt.Errorf("%w: element %q has no symbol", ErrInvalid, e.Name)
	}
	if e.Z <= 0 || e.MolarMass <= 0 {
		return fmt.Errorf("%w: element %q needs positive Z and molar mass", ErrInvalid, e.Name)
	}
	return nil
}

// Component is one constituent of a Mixture, by mass fraction.
type Component struct {
	Ref      string
	Fraction float64
}

// Mixture is a material made of constituents by mass fraction.
type Mixture struct {
	Name       string
	Density    units.Density
	Components []Component
}

func (m *Mixture) MaterialName() string { return m.Name }
func (m *Mixture) Kind() Kind           { return KindMixture }

// fractionTolerance absorbs rounding in published compositions.
const fractionTolerance = 1e-3

func (m *Mixture) validate() error {
	if m.Density <= 0 {
		return fmt.Errorf("%w: mixture %q needs a positive density", ErrInvalid, m.Name)
	}
	if len(m.Components) == 0 {
		return fmt.Errorf("%w: mixture %q has no components", ErrInvalid, m.Name)
	}
	sum := 0.0
	for _, c := range m.Components {
		if c.Ref == "" || c.Fraction <= 0 {
			return fmt.Errorf("%w: mixture %q has a malformed component %+v", ErrInvalid, m.Name, c)
		}
		sum += c.Fraction
	}
	if math.Abs(sum-1) > fractionTolerance {
		return fmt.Errorf("%w: mixture %q fractions sum to %g", ErrInvalid, m.Name, sum)
	}
	return nil
}

// Atom is one constituent of a Molecule, by atom count.
type Atom struct {
	Ref   string
	Count int
}

// Molecule is a material given by its chemical formula.
type Molecule struct {
	Name    string
	Density units.Density
	Atoms   []Atom
}

func (m *Molecule) MaterialName() string { return m.Name }
func (m *Molecule) Kind() Kind           { return KindMolecule }

func (m *Molecule) validate() error {
	if m.Density <= 0 {
		return fmt.Errorf("%w: molecule %q needs a positive density", ErrInvalid, m.Name)
	}
	if len(m.Atoms) == 0 {
		return fmt.Errorf("%w: molecule %q has no atoms", ErrInvalid, m.Name)
	}
	for _, a := range m.Atoms {
		if a.Ref == "" || a.Count <= 0 {
			return fmt.Errorf("%w: molecule %q has a malformed atom %+v", ErrInvalid, m.Name, a)
		}
	}
	return nil
}
