// Package units parses physical quantities written as "<number> <unit>" and
// converts them to the canonical units used throughout the geometry model:
// millimetres for length, g/cm3 for density, g/mole for molar mass and
// degrees for angles.
package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrBadQuantity is returned when a quantity string has no parsable number.
	ErrBadQuantity = errors.New("units: malformed quantity")
	// ErrUnknownUnit is returned for a unit symbol that is not in the table.
	ErrUnknownUnit = errors.New("units: unknown unit")
	// ErrWrongDimension is returned when a quantity parses but measures the
	// wrong thing, e.g. a density given where a length is expected.
	ErrWrongDimension = errors.New("units: wrong dimension")
)

// Dimension identifies what a quantity measures.
type Dimension int

const (
	Dimensionless Dimension = iota
	DimLength
	DimDensity
	DimMolarMass
	DimAngle
)

func (d Dimension) String() string {
	switch d {
	case DimLength:
		return "length"
	case DimDensity:
		return "density"
	case DimMolarMass:
		return "molar mass"
	case DimAngle:
		return "angle"
	default:
		return "dimensionless"
	}
}

// Length is a distance in millimetres.
type Length float64

// Density is a mass density in g/cm3.
type Density float64

// MolarMass is a molar mass in g/mole.
type MolarMass float64

// Angle is a plane angle in degrees.
type Angle float64

// Common lengths, in millimetres.
const (
	Millimetre Length = 1
	Centimetre Length = 10
	Metre      Length = 1000
	Inch       Length = 25.4
	Foot       Length = 304.8
)

// Quantity is a parsed value already converted to its canonical unit.
type Quantity struct {
	Value float64
	Dim   Dimension
}

type unitDef struct {
	dim    Dimension
	factor float64
}

var unitTable = map[string]unitDef{
	"um":      {DimLength, 1e-3},
	"mm":      {DimLength, 1},
	"cm":      {DimLength, 10},
	"m":       {DimLength, 1000},
	"km":      {DimLength, 1e6},
	"inch":    {DimLength, 25.4},
	"in":      {DimLength, 25.4},
	"ft":      {DimLength, 304.8},
	"g/cc":    {DimDensity, 1},
	"g/cm3":   {DimDensity, 1},
	"g/cm^3":  {DimDensity, 1},
	"mg/cm3":  {DimDensity, 1e-3},
	"kg/m3":   {DimDensity, 1e-3},
	"kg/m^3":  {DimDensity, 1e-3},
	"g/mole":  {DimMolarMass, 1},
	"g/mol":   {DimMolarMass, 1},
	"kg/mole": {DimMolarMass, 1000},
	"deg":     {DimAngle, 1},
	"degree":  {DimAngle, 1},
	"degrees": {DimAngle, 1},
	"rad":     {DimAngle, 57.29577951308232},
}

// Parse reads a string such as "2.94 inch" or "1.40 g/cc". A bare number is
// accepted and reported as Dimensionless.
func Parse(s string) (Quantity, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Quantity{}, fmt.Errorf("%w: empty string", ErrBadQuantity)
	}

	split := len(raw)
	for i, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			// Allow exponents such as 1e3 and 2.5E-2.
			if (r == 'e' || r == 'E') && i+1 < len(raw) && isExponentTail(raw[i+1:]) {
				continue
			}
			split = i
			break
		}
	}

	numPart := strings.TrimSpace(raw[:split])
	unitPart := strings.TrimSpace(raw[split:])

	v, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q", ErrBadQuantity, s)
	}
	if unitPart == "" {
		return Quantity{Value: v, Dim: Dimensionless}, nil
	}

	def, ok := unitTable[unitPart]
	if !ok {
		def, ok = unitTable[strings.ToLower(unitPart)]
	}
	if !ok {
		return Quantity{}, fmt.Errorf("%w: %q in %q", ErrUnknownUnit, unitPart, s)
	}
	return Quantity{Value: v * def.factor, Dim: def.dim}, nil
}

func isExponentTail(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// parseAs parses s and requires the given dimension. A bare number is taken
// to already be in the canonical unit.
func parseAs(s string, want Dimension) (float64, error) {
	q, err := Parse(s)
	if err != nil {
		return 0, err
	}
	if q.Dim != want && q.Dim != Dimensionless {
		return 0, fmt.Errorf("%w: %q is a %s, want %s", ErrWrongDimension, s, q.Dim, want)
	}
	return q.Value, nil
}

// ParseLength parses a length into millimetres.
func ParseLength(s string) (Length, error) {
	v, err := parseAs(s, DimLength)
	return Length(v), err
}

// ParseDensity parses a density into g/cm3.
func ParseDensity(s string) (Density, error) {
	v, err := parseAs(s, DimDensity)
	return Density(v), err
}

// ParseMolarMass parses a molar mass into g/mole.
func ParseMolarMass(s string) (MolarMass, error) {
	v, err := parseAs(s, DimMolarMass)
	return MolarMass(v), err
}

// ParseAngle parses an angle into degrees.
func ParseAngle(s string) (Angle, error) {
	v, err := parseAs(s, DimAngle)
	return Angle(v), err
}

// Symbols returns the unit symbols that can be exposed as plain variables in
// configuration expressions, mapped to their canonical factor.
func Symbols() map[string]float64 {
	return map[string]float64{
		"um":    1e-3,
		"mm":    1,
		"cm":    10,
		"m":     1000,
		"inch":  25.4,
		"ft":    304.8,
		"deg":   1,
		"rad":   57.29577951308232,
		"g_cc":  1,
		"kg_m3": 1e-3,
	}
}

// Float returns the length as a plain float64 in millimetres.
func (l Length) Float() float64 { return float64(l) }

// String formats a length with its unit.
func (l Length) String() string { return strconv.FormatFloat(float64(l), 'g', -1, 64) + " mm" }

// String formats a density with its unit.
func (d Density) String() string { return strconv.FormatFloat(float64(d), 'g', -1, 64) + " g/cm3" }
