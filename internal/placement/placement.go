// Package placement implements the placement algebra shared by builders:
// onion shrinkage, linear stacking, mirrored pairing, envelopes, frame
// ladders and bored tubes. Every function is pure; failures are reported with
// the sentinel errors below so callers can attribute them.
package placement

import (
	"errors"
	"fmt"
	"math"

	"github.com/vk/cryogeo/internal/geom"
)

var (
	// ErrNonPositiveExtent is returned when a derived half-extent is not
	// strictly positive.
	ErrNonPositiveExtent = geom.ErrNonPositiveExtent
	// ErrZeroThickness is returned for a missing or non-positive shell
	// thickness.
	ErrZeroThickness = errors.New("placement: thickness must be positive")
	// ErrBulkThickness is returned when the innermost onion layer is given a
	// thickness.
	ErrBulkThickness = errors.New("placement: bulk layer takes no thickness")
	// ErrOutOfBounds is returned when a computed position leaves its
	// container.
	ErrOutOfBounds = errors.New("placement: position out of bounds")
	// ErrEmpty is returned when there is nothing to arrange.
	ErrEmpty = errors.New("placement: nothing to arrange")
	// ErrNegativeGap is returned for a gap below zero.
	ErrNegativeGap = errors.New("placement: gap must not be negative")
)

// Shrink reduces every half-extent of half by t.
func Shrink(half geom.Vec3, t float64) (geom.Vec3, error) {
	if !(t > 0) {
		return geom.Vec3{}, fmt.Errorf("%w: got %g", ErrZeroThickness, t)
	}
	out := geom.V(half.X-t, half.Y-t, half.Z-t)
	if !out.AllPositive() {
		return geom.Vec3{}, fmt.Errorf("%w: shell of %g exceeds half-extents %s", ErrNonPositiveExtent, t, half)
	}
	return out, nil
}

// Onion returns the half-extents of nested shells. thicknesses[i] is the
// wall of layer i; the last entry belongs to the bulk and must be zero. The
// first result is outer itself.
func Onion(outer geom.Vec3, thicknesses []float64) ([]geom.Vec3, error) {
	if len(thicknesses) == 0 {
		return nil, ErrEmpty
	}
	if !outer.AllPositive() {
		return nil, fmt.Errorf("%w: container %s", ErrNonPositiveExtent, outer)
	}
	last := len(thicknesses) - 1
	if thicknesses[last] != 0 {
		return nil, fmt.Errorf("%w: got %g", ErrBulkThickness, thicknesses[last])
	}

	halves := make([]geom.Vec3, len(thicknesses))
	halves[0] = outer
	for i := 0; i < last; i++ {
		next, err := Shrink(halves[i], thicknesses[i])
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		halves[i+1] = next
	}
	return halves, nil
}

// Stack places boxes side by side along axis, separated by gap. It returns
// the center offset of each box along axis and the half-extents of the
// envelope: the sum along axis, the maximum across it. The stack is centered
// on the origin.
func Stack(axis geom.Axis, halves []geom.Vec3, gap float64) ([]float64, geom.Vec3, error) {
	if len(halves) == 0 {
		return nil, geom.Vec3{}, ErrEmpty
	}
	if gap < 0 {
		return nil, geom.Vec3{}, fmt.Errorf("%w: got %g", ErrNegativeGap, gap)
	}

	var env geom.Vec3
	total := 0.0
	for i, h := range halves {
		if !h.AllPositive() {
			return nil, geom.Vec3{}, fmt.Errorf("%w: element %d has %s", ErrNonPositiveExtent, i, h)
		}
		total += h.Get(axis)
		env = env.Max(h)
	}
	total += 0.5 * gap * float64(len(halves)-1)
	env = env.With(axis, total)

	offsets := make([]float64, len(halves))
	cursor := -total
	for i, h := range halves {
		if i > 0 {
			cursor += gap
		}
		cursor += h.Get(axis)
		offsets[i] = cursor
		cursor += h.Get(axis)
	}
	return offsets, env, nil
}

// Mirror returns the symmetric pair of positions -|offset|, +|offset|.
func Mirror(offset float64) (neg, pos float64) {
	a := math.Abs(offset)
	return -a, a
}

// Envelope returns the half-extents of the smallest origin-centered box
// holding every given box.
func Envelope(boxes []geom.AABB) geom.Vec3 {
	var env geom.Vec3
	for _, b := range boxes {
		env = env.Max(b.Min.Abs()).Max(b.Max.Abs())
	}
	return env
}

// FrameSideOffset is the center of a frame side of barWidth inside a frame
// of the given full width: width/2 - barWidth/2.
func FrameSideOffset(width, barWidth float64) (float64, error) {
	if !(barWidth > 0) || !(width > 0) {
		return 0, fmt.Errorf("%w: width %g, bar width %g", ErrNonPositiveExtent, width, barWidth)
	}
	if 2*barWidth >= width {
		return 0, fmt.Errorf("%w: bars of %g leave no opening in a frame of %g", ErrOutOfBounds, barWidth, width)
	}
	return 0.5 * (width - barWidth), nil
}

// CrossBarCenters walks inward from the top edge of a frame of half-height
// frameHalf whose top and bottom sides are sideWidth thick. Each step
// subtracts gap plus half the bar width, records the center, then subtracts
// the other half. A bar reaching into the bottom side is out of bounds.
func CrossBarCenters(frameHalf, sideWidth, gap float64, widths []float64) ([]float64, error) {
	if gap < 0 {
		return nil, fmt.Errorf("%w: got %g", ErrNegativeGap, gap)
	}
	floor := -frameHalf + sideWidth
	c := frameHalf - sideWidth
	centers := make([]float64, len(widths))
	for i, w := range widths {
		if !(w > 0) {
			return nil, fmt.Errorf("%w: cross-bar %d has width %g", ErrNonPositiveExtent, i, w)
		}
		c -= gap + 0.5*w
		centers[i] = c
		c -= 0.5 * w
		if c < floor-1e-9 {
			return nil, fmt.Errorf("%w: cross-bar %d reaches %g, below the bottom side at %g", ErrOutOfBounds, i, c, floor)
		}
	}
	return centers, nil
}

// BoreCut returns the inner half-extents of a hollow tube cut from outer:
// walled axes shrink by wall, while the bore axis grows by the same amount
// so the cut passes cleanly through both end faces.
func BoreCut(outer geom.Vec3, wall float64, bore geom.Axis) (geom.Vec3, error) {
	if !(wall > 0) {
		return geom.Vec3{}, fmt.Errorf("%w: wall %g", ErrZeroThickness, wall)
	}
	var inner geom.Vec3
	for _, ax := range geom.Axes {
		v := outer.Get(ax)
		if ax == bore {
			v += wall
		} else {
			v -= wall
		}
		inner = inner.With(ax, v)
	}
	if !inner.AllPositive() {
		return geom.Vec3{}, fmt.Errorf("%w: wall %g leaves %s of %s", ErrNonPositiveExtent, wall, inner, outer)
	}
	return inner, nil
}
