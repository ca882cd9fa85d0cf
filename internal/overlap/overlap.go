// Package overlap verifies an assembled volume tree: every child must lie
// inside its parent and no two siblings may share space. Shapes are reduced
// to axis-aligned boxes, with subtractions split into slabs, so a solid
// placed inside the hollow of a cut shape is not an overlap.
package overlap

import (
	"fmt"
	"math"
	"strings"

	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
)

// DefaultTolerance is the penetration, in millimetres, below which touching
// solids are accepted.
const DefaultTolerance = 1e-6

// Overlap is a pair of sibling placements that share space.
type Overlap struct {
	Parent string
	First  string
	Second string
	Depth  float64
}

func (o Overlap) String() string {
	return fmt.Sprintf("%s and %s overlap in %s by %.6g mm", o.First, o.Second, o.Parent, o.Depth)
}

// Extrusion is a placement that sticks out of its parent.
type Extrusion struct {
	Parent    string
	Placement string
	Depth     float64
}

func (e Extrusion) String() string {
	return fmt.Sprintf("%s extrudes from %s by %.6g mm", e.Placement, e.Parent, e.Depth)
}

// Report collects the problems found by a check.
type Report struct {
	Overlaps   []Overlap
	Extrusions []Extrusion
}

// Empty reports whether the check found nothing.
func (r *Report) Empty() bool {
	return r == nil || (len(r.Overlaps) == 0 && len(r.Extrusions) == 0)
}

// Count returns the total number of problems.
func (r *Report) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Overlaps) + len(r.Extrusions)
}

// Err returns nil for an empty report and a verification error listing the
// problems otherwise.
func (r *Report) Err() error {
	if r.Empty() {
		return nil
	}
	lines := make([]string, 0, r.Count())
	for _, o := range r.Overlaps {
		lines = append(lines, o.String())
	}
	for _, e := range r.Extrusions {
		lines = append(lines, e.String())
	}
	return geoerr.Verification("%d overlaps and %d extrusions:\n- %s",
		len(r.Overlaps), len(r.Extrusions), strings.Join(lines, "\n- "))
}

func (r *Report) merge(o *Report) {
	r.Overlaps = append(r.Overlaps, o.Overlaps...)
	r.Extrusions = append(r.Extrusions, o.Extrusions...)
}

// Check verifies root and every volume below it.
func Check(root *geom.Volume, tol float64) *Report {
	rep := &Report{}
	if root == nil {
		return rep
	}
	_ = root.Walk(func(v *geom.Volume) error {
		rep.merge(CheckVolume(v, tol))
		return nil
	})
	return rep
}

// CheckVolume verifies the direct children of v only.
func CheckVolume(v *geom.Volume, tol float64) *Report {
	rep := &Report{}
	parent := geom.LocalBoxes(v.Shape())
	pls := v.Placements()
	placed := make([][]geom.AABB, len(pls))

	for i, p := range pls {
		placed[i] = geom.PlacedBoxes(p.Volume.Shape(), p.Position, p.Rotation)
		if d := extrusion(parent, placed[i], tol); d > 0 {
			rep.Extrusions = append(rep.Extrusions, Extrusion{Parent: v.Name(), Placement: p.Name, Depth: d})
		}
	}

	for i := range pls {
		for j := i + 1; j < len(pls); j++ {
			if d := penetration(placed[i], placed[j], tol); d > 0 {
				rep.Overlaps = append(rep.Overlaps, Overlap{
					Parent: v.Name(),
					First:  pls[i].Name,
					Second: pls[j].Name,
					Depth:  d,
				})
			}
		}
	}
	return rep
}

// extrusion returns how far the worst child box sticks out of the parent, or
// zero when every child box is covered by the parent's boxes. A child may
// straddle several adjacent slabs of a Boolean parent.
func extrusion(parent, child []geom.AABB, tol float64) float64 {
	worst := 0.0
	for _, c := range child {
		if covered(parent, c, tol) {
			continue
		}
		best := math.Inf(1)
		for _, p := range parent {
			best = math.Min(best, protrusion(p, c))
		}
		worst = math.Max(worst, best)
	}
	return worst
}

// covered reports whether the union of boxes holds c, allowing c to stick
// out of it by tol.
func covered(boxes []geom.AABB, c geom.AABB, tol float64) bool {
	rest := []geom.AABB{c}
	for _, b := range boxes {
		if b.Contains(c, tol) {
			return true
		}
		grown := b.Grow(tol)
		var next []geom.AABB
		for _, r := range rest {
			next = append(next, r.Subtract(grown)...)
		}
		if rest = next; len(rest) == 0 {
			return true
		}
	}
	return false
}

func protrusion(p, c geom.AABB) float64 {
	d := 0.0
	for _, ax := range geom.Axes {
		d = math.Max(d, p.Min.Get(ax)-c.Min.Get(ax))
		d = math.Max(d, c.Max.Get(ax)-p.Max.Get(ax))
	}
	return d
}

func penetration(a, b []geom.AABB, tol float64) float64 {
	worst := 0.0
	for _, x := range a {
		for _, y := range b {
			if x.Intersects(y, tol) {
				worst = math.Max(worst, x.Depth(y))
			}
		}
	}
	return worst
}
