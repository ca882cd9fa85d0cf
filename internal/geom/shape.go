package geom

import (
	"errors"
	"fmt"
)

var (
	// ErrNonPositiveExtent is returned when a box would have a half-extent
	// that is zero or negative.
	ErrNonPositiveExtent = errors.New("geom: half-extents must be strictly positive")
	// ErrNilOperand is returned when a boolean is given a missing operand.
	ErrNilOperand = errors.New("geom: boolean operand is nil")
	// ErrEmptyName is returned for unnamed shapes and volumes.
	ErrEmptyName = errors.New("geom: name must not be empty")
)

// ShapeKind tags the concrete shape variant.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeBoolean
)

func (k ShapeKind) String() string {
	if k == ShapeBox {
		return "box"
	}
	return "boolean"
}

// BooleanOp is the set operation of a Boolean shape.
type BooleanOp int

const (
	Subtraction BooleanOp = iota
	Union
	Intersection
)

func (o BooleanOp) String() string {
	switch o {
	case Subtraction:
		return "subtraction"
	case Union:
		return "union"
	case Intersection:
		return "intersection"
	}
	return fmt.Sprintf("BooleanOp(%d)", int(o))
}

// Shape is a named solid. The concrete variants are *Box and *Boolean.
type Shape interface {
	Kind() ShapeKind
	Name() string
	// Extents returns the half-extents of the shape's bounding box about
	// its own origin.
	Extents() Vec3
}

// Box is an axis-aligned box centered on its origin.
type Box struct {
	name string
	half Vec3
}

// NewBox creates a box. Every half-extent must be strictly positive.
func NewBox(name string, half Vec3) (*Box, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !half.AllPositive() {
		return nil, fmt.Errorf("%w: box %q has half-extents %s", ErrNonPositiveExtent, name, half)
	}
	return &Box{name: name, half: half}, nil
}

func (b *Box) Kind() ShapeKind { return ShapeBox }
func (b *Box) Name() string    { return b.name }
func (b *Box) Extents() Vec3   { return b.half }

// Boolean combines two shapes. Operands are referenced, not copied, and the
// second operand shares the first one's origin.
type Boolean struct {
	name   string
	op     BooleanOp
	first  Shape
	second Shape
}

// NewBoolean creates a boolean shape.
func NewBoolean(name string, op BooleanOp, first, second Shape) (*Boolean, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if first == nil || second == nil {
		return nil, fmt.Errorf("%w: %s %q", ErrNilOperand, op, name)
	}
	return &Boolean{name: name, op: op, first: first, second: second}, nil
}

func (b *Boolean) Kind() ShapeKind { return ShapeBoolean }
func (b *Boolean) Name() string    { return b.name }
func (b *Boolean) Op() BooleanOp   { return b.op }
func (b *Boolean) First() Shape    { return b.first }
func (b *Boolean) Second() Shape   { return b.second }

// Extents of a subtraction are those of the first operand.
func (b *Boolean) Extents() Vec3 {
	switch b.op {
	case Union:
		return b.first.Extents().Max(b.second.Extents())
	case Intersection:
		return b.first.Extents().Min(b.second.Extents())
	default:
		return b.first.Extents()
	}
}
