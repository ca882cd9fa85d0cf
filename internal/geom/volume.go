package geom

import (
	"errors"
	"fmt"
)

// ErrNilChild is returned when a placement has no volume.
var ErrNilChild = errors.New("geom: placement has no child volume")

// Placement positions a child volume inside its parent's frame.
type Placement struct {
	Name     string
	Volume   *Volume
	Position Vec3
	Rotation Rotation
}

// Volume is a named shape filled with a material, holding ordered child
// placements. It cannot be changed after construction.
type Volume struct {
	name       string
	shape      Shape
	material   string
	placements []Placement
}

// NewVolume creates a volume. The placement slice is copied.
func NewVolume(name string, shape Shape, material string, placements ...Placement) (*Volume, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if shape == nil {
		return nil, fmt.Errorf("geom: volume %q has no shape", name)
	}
	if material == "" {
		return nil, fmt.Errorf("geom: volume %q has no material", name)
	}
	pls := make([]Placement, len(placements))
	for i, p := range placements {
		if p.Volume == nil {
			return nil, fmt.Errorf("%w: placement %d of %q", ErrNilChild, i, name)
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("%s_in_%s", p.Volume.name, name)
		}
		pls[i] = p
	}
	return &Volume{name: name, shape: shape, material: material, placements: pls}, nil
}

func (v *Volume) Name() string     { return v.name }
func (v *Volume) Shape() Shape     { return v.shape }
func (v *Volume) Material() string { return v.material }

// Extents is shorthand for v.Shape().Extents().
func (v *Volume) Extents() Vec3 { return v.shape.Extents() }

// Placements returns a copy of the child placements.
func (v *Volume) Placements() []Placement {
	out := make([]Placement, len(v.placements))
	copy(out, v.placements)
	return out
}

// NumPlacements returns the number of child placements.
func (v *Volume) NumPlacements() int { return len(v.placements) }

// Walk visits v and then every volume below it depth first. A volume placed
// more than once is visited once.
func (v *Volume) Walk(fn func(*Volume) error) error {
	seen := make(map[*Volume]bool)
	var visit func(*Volume) error
	visit = func(cur *Volume) error {
		if seen[cur] {
			return nil
		}
		seen[cur] = true
		if err := fn(cur); err != nil {
			return err
		}
		for _, p := range cur.placements {
			if err := visit(p.Volume); err != nil {
				return err
			}
		}
		return nil
	}
	return visit(v)
}
