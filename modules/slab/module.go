// Package slab provides the solid single-box builder kinds: APA planes,
// cathode planes and TPC drift volumes.
package slab

import (
	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/registry"
	"github.com/vk/cryogeo/internal/units"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// PlaneOptions defines the arguments of an APA plane. Width runs along x,
// length along y and height along z.
type PlaneOptions struct {
	Width    units.Length `geo:"width"`
	Length   units.Length `geo:"length"`
	Height   units.Length `geo:"height"`
	Material string       `geo:"material"`
}

// CPAOptions defines the arguments of a cathode plane. Thickness runs along
// the drift axis x.
type CPAOptions struct {
	Thickness units.Length `geo:"thickness"`
	Height    units.Length `geo:"height"`
	Width     units.Length `geo:"width"`
	Material  string       `geo:"material"`
}

// TPCOptions defines the arguments of a TPC drift volume. Length runs along
// the drift axis x.
type TPCOptions struct {
	Length   units.Length `geo:"length"`
	Height   units.Length `geo:"height"`
	Width    units.Length `geo:"width"`
	Material string       `geo:"material"`
}

// Slab is a single box volume.
type Slab struct {
	half     geom.Vec3
	material string
}

// Dim is a named full size along one axis.
type Dim struct {
	Param string
	Size  units.Length
}

// New builds a slab from its x, y and z sizes, each of which must be
// positive.
func New(material string, x, y, z Dim) (*Slab, error) {
	for _, d := range []Dim{x, y, z} {
		if !(d.Size > 0) {
			return nil, geoerr.InvalidGeometry("", d.Param, "must be positive, got %s", d.Size)
		}
	}
	half := geom.V(0.5*float64(x.Size), 0.5*float64(y.Size), 0.5*float64(z.Size))
	return &Slab{half: half, material: material}, nil
}

// Build implements builder.Builder.
func (s *Slab) Build(ctx *builder.Context) ([]*geom.Volume, error) {
	shape, err := ctx.AddBox("", s.half)
	if err != nil {
		return nil, err
	}
	vol, err := ctx.AddVolume("", shape, s.material)
	if err != nil {
		return nil, err
	}
	return []*geom.Volume{vol}, nil
}

// Default sizes from the 35t drawings.
const (
	cageWall     = 0.006 * 25.4
	cpaThickness = 2.94 * 25.4
)

// Register registers the slab kinds with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "apa_plane",
		Description: "anode plane assembly as a plain box",
		NewOptions: func() any {
			return &PlaneOptions{Width: 1800, Length: 150, Height: 2080, Material: "G10"}
		},
		New: func(o any) (builder.Builder, error) {
			opts := o.(*PlaneOptions)
			return New(opts.Material, Dim{"width", opts.Width}, Dim{"length", opts.Length}, Dim{"height", opts.Height})
		},
	})
	r.RegisterKind(&registry.Kind{
		Name:        "cpa",
		Description: "cathode plane assembly, thin along x",
		NewOptions: func() any {
			return &CPAOptions{Thickness: cpaThickness, Height: 83.93 * 25.4, Width: 67.64 * 25.4, Material: "Stainless"}
		},
		New: func(o any) (builder.Builder, error) {
			opts := o.(*CPAOptions)
			return New(opts.Material, Dim{"thickness", opts.Thickness}, Dim{"height", opts.Height}, Dim{"width", opts.Width})
		},
	})
	r.RegisterKind(&registry.Kind{
		Name:        "tpc",
		Description: "liquid argon drift volume sized to fit inside a drift cage",
		NewOptions: func() any {
			return &TPCOptions{
				// Short drift: 303 mm less half a cathode.
				Length:   303 - 0.5*cpaThickness,
				Height:   2002.1 - 2*cageWall,
				Width:    (1588.5 - 2*cageWall) / 3,
				Material: "LiquidArgon",
			}
		},
		New: func(o any) (builder.Builder, error) {
			opts := o.(*TPCOptions)
			return New(opts.Material, Dim{"length", opts.Length}, Dim{"height", opts.Height}, Dim{"width", opts.Width})
		},
	})
}
