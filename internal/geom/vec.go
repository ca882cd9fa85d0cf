// Package geom holds the immutable solid-geometry model produced by builders:
// shapes, volumes and the placements that tie them into a tree. Lengths are
// millimetres and angles are degrees throughout.
package geom

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Vec3 is a position or a set of half-extents.
type Vec3 struct {
	X, Y, Z float64
}

// V is shorthand for Vec3{x, y, z}.
func V(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

// Max returns the component-wise maximum.
func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{math.Max(v.X, o.X), math.Max(v.Y, o.Y), math.Max(v.Z, o.Z)}
}

// Min returns the component-wise minimum.
func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{math.Min(v.X, o.X), math.Min(v.Y, o.Y), math.Min(v.Z, o.Z)}
}

// Abs returns the component-wise absolute value.
func (v Vec3) Abs() Vec3 { return Vec3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)} }

// Get returns the component along a.
func (v Vec3) Get(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// With returns a copy of v with the component along a replaced.
func (v Vec3) With(a Axis, val float64) Vec3 {
	switch a {
	case AxisX:
		v.X = val
	case AxisY:
		v.Y = val
	default:
		v.Z = val
	}
	return v
}

// AllPositive reports whether every component is strictly positive.
func (v Vec3) AllPositive() bool { return v.X > 0 && v.Y > 0 && v.Z > 0 }

// ApproxEqual compares component-wise within tol.
func (v Vec3) ApproxEqual(o Vec3, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol && math.Abs(v.Z-o.Z) <= tol
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Axis names one of the three frame axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Axes lists the axes in order.
var Axes = [3]Axis{AxisX, AxisY, AxisZ}

// ErrBadAxis is returned by ParseAxis.
var ErrBadAxis = errors.New("geom: axis must be one of x, y, z")

// ParseAxis accepts "x", "y" or "z" in any case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadAxis, s)
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Rotation is a sequence of rotations in degrees, applied about x, then y,
// then z.
type Rotation struct {
	X, Y, Z float64
}

// IsZero reports whether r is the identity.
func (r Rotation) IsZero() bool { return r.X == 0 && r.Y == 0 && r.Z == 0 }

// Matrix returns the rotation matrix Rz·Ry·Rx.
func (r Rotation) Matrix() [3][3]float64 {
	cx, sx := cosSin(r.X)
	cy, sy := cosSin(r.Y)
	cz, sz := cosSin(r.Z)
	return [3][3]float64{
		{cz * cy, cz*sy*sx - sz*cx, cz*sy*cx + sz*sx},
		{sz * cy, sz*sy*sx + cz*cx, sz*sy*cx - cz*sx},
		{-sy, cy * sx, cy * cx},
	}
}

// Apply rotates v.
func (r Rotation) Apply(v Vec3) Vec3 {
	if r.IsZero() {
		return v
	}
	m := r.Matrix()
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// ApplyHalf returns the half-extents of the axis-aligned box that bounds a
// box of half-extents h after rotation.
func (r Rotation) ApplyHalf(h Vec3) Vec3 {
	if r.IsZero() {
		return h
	}
	m := r.Matrix()
	return Vec3{
		math.Abs(m[0][0])*h.X + math.Abs(m[0][1])*h.Y + math.Abs(m[0][2])*h.Z,
		math.Abs(m[1][0])*h.X + math.Abs(m[1][1])*h.Y + math.Abs(m[1][2])*h.Z,
		math.Abs(m[2][0])*h.X + math.Abs(m[2][1])*h.Y + math.Abs(m[2][2])*h.Z,
	}
}

// cosSin snaps multiples of 90 degrees so quarter turns stay exact.
func cosSin(deg float64) (float64, float64) {
	if q := deg / 90; q == math.Trunc(q) {
		switch ((int(q) % 4) + 4) % 4 {
		case 0:
			return 1, 0
		case 1:
			return 0, 1
		case 2:
			return -1, 0
		case 3:
			return 0, -1
		}
	}
	rad := deg * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}
