package geom

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// BoxAt returns the AABB with the given center and half-extents.
func BoxAt(center, half Vec3) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

func (a AABB) Center() Vec3 { return a.Min.Add(a.Max).Scale(0.5) }
func (a AABB) Half() Vec3   { return a.Max.Sub(a.Min).Scale(0.5) }

// Grow returns a widened by d on every side.
func (a AABB) Grow(d float64) AABB {
	g := V(d, d, d)
	return AABB{Min: a.Min.Sub(g), Max: a.Max.Add(g)}
}

func (a AABB) Translate(v Vec3) AABB {
	return AABB{Min: a.Min.Add(v), Max: a.Max.Add(v)}
}

// Union returns the smallest box containing both.
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: a.Min.Min(b.Min), Max: a.Max.Max(b.Max)}
}

// Contains reports whether b lies inside a, allowing b to stick out by tol.
func (a AABB) Contains(b AABB, tol float64) bool {
	return b.Min.X >= a.Min.X-tol && b.Min.Y >= a.Min.Y-tol && b.Min.Z >= a.Min.Z-tol &&
		b.Max.X <= a.Max.X+tol && b.Max.Y <= a.Max.Y+tol && b.Max.Z <= a.Max.Z+tol
}

// Intersects reports whether a and b share a region thicker than tol along
// every axis. Touching faces do not intersect.
func (a AABB) Intersects(b AABB, tol float64) bool {
	for _, ax := range Axes {
		if math.Min(a.Max.Get(ax), b.Max.Get(ax))-math.Max(a.Min.Get(ax), b.Min.Get(ax)) <= tol {
			return false
		}
	}
	return true
}

// Depth returns the smallest penetration depth of a and b across the three
// axes, or zero when they do not intersect.
func (a AABB) Depth(b AABB) float64 {
	d := math.Inf(1)
	for _, ax := range Axes {
		o := math.Min(a.Max.Get(ax), b.Max.Get(ax)) - math.Max(a.Min.Get(ax), b.Min.Get(ax))
		if o <= 0 {
			return 0
		}
		d = math.Min(d, o)
	}
	return d
}

func (a AABB) intersection(b AABB) (AABB, bool) {
	out := AABB{Min: a.Min.Max(b.Min), Max: a.Max.Min(b.Max)}
	return out, out.Min.X < out.Max.X && out.Min.Y < out.Max.Y && out.Min.Z < out.Max.Z
}

// LocalBoxes decomposes a shape into disjoint axis-aligned boxes in its own
// frame. Subtractions become slabs around the removed region, so a hollow
// tube is represented by its walls rather than its outer envelope.
func LocalBoxes(s Shape) []AABB {
	switch sh := s.(type) {
	case *Box:
		return []AABB{BoxAt(Vec3{}, sh.half)}
	case *Boolean:
		first := LocalBoxes(sh.first)
		second := LocalBoxes(sh.second)
		switch sh.op {
		case Union:
			return append(first, second...)
		case Intersection:
			var out []AABB
			for _, a := range first {
				for _, b := range second {
					if c, ok := a.intersection(b); ok {
						out = append(out, c)
					}
				}
			}
			return out
		default:
			pieces := first
			for _, cut := range second {
				var next []AABB
				for _, p := range pieces {
					next = append(next, p.Subtract(cut)...)
				}
				pieces = next
			}
			return pieces
		}
	}
	return []AABB{BoxAt(Vec3{}, s.Extents())}
}

// Subtract returns up to six disjoint slabs covering a minus b.
func (a AABB) Subtract(b AABB) []AABB {
	if _, ok := a.intersection(b); !ok {
		return []AABB{a}
	}
	var out []AABB
	rest := a
	for _, ax := range Axes {
		lo, hi := rest.Min.Get(ax), rest.Max.Get(ax)
		cutLo, cutHi := b.Min.Get(ax), b.Max.Get(ax)
		if cutLo > lo {
			out = append(out, AABB{Min: rest.Min, Max: rest.Max.With(ax, cutLo)})
			lo = cutLo
		}
		if cutHi < hi {
			out = append(out, AABB{Min: rest.Min.With(ax, cutHi), Max: rest.Max})
			hi = cutHi
		}
		rest.Min = rest.Min.With(ax, lo)
		rest.Max = rest.Max.With(ax, hi)
	}
	return out
}

// PlacedBoxes returns the boxes of s after rotating by rot and moving to pos.
func PlacedBoxes(s Shape, pos Vec3, rot Rotation) []AABB {
	local := LocalBoxes(s)
	out := make([]AABB, len(local))
	for i, b := range local {
		out[i] = BoxAt(rot.Apply(b.Center()).Add(pos), rot.ApplyHalf(b.Half()))
	}
	return out
}

// Bounds returns the bounding box of a placement in its parent frame.
func (p Placement) Bounds() AABB {
	return BoxAt(p.Position, p.Rotation.ApplyHalf(p.Volume.Extents()))
}
