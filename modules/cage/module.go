// Package cage provides the hollow field-cage builder kinds. A cage is a
// thin-walled box open at both ends of its bore axis, made as an outer box
// minus an inner box.
package cage

import (
	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/placement"
	"github.com/vk/cryogeo/internal/registry"
	"github.com/vk/cryogeo/internal/units"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Options defines the arguments of both cage kinds. Which dimension runs
// along which axis depends on the kind.
type Options struct {
	Width     units.Length `geo:"width"`
	Length    units.Length `geo:"length"`
	Height    units.Length `geo:"height"`
	Thickness units.Length `geo:"thickness"`
	Material  string       `geo:"material"`
}

// Cage builds a hollow box.
type Cage struct {
	opts  *Options
	outer geom.Vec3
	inner geom.Vec3
}

// layout orders (width, length, height) into full x, y, z sizes.
type layout func(o *Options) geom.Vec3

var (
	// fieldCage is the simple 35t cage: width along x, length along y.
	fieldCage layout = func(o *Options) geom.Vec3 {
		return geom.V(float64(o.Width), float64(o.Length), float64(o.Height))
	}
	// driftCage has its length along the drift direction x.
	driftCage layout = func(o *Options) geom.Vec3 {
		return geom.V(float64(o.Length), float64(o.Height), float64(o.Width))
	}
)

// New validates opts and computes the cut.
func New(opts *Options, size layout, bore geom.Axis) (*Cage, error) {
	outer := size(opts).Scale(0.5)
	if !outer.AllPositive() {
		return nil, geoerr.InvalidGeometry("", "width", "cage dimensions must be positive, got %s", outer.Scale(2))
	}
	inner, err := placement.BoreCut(outer, float64(opts.Thickness), bore)
	if err != nil {
		return nil, geoerr.WrapInvalidGeometry("", "thickness", err)
	}
	return &Cage{opts: opts, outer: outer, inner: inner}, nil
}

// Build implements builder.Builder.
func (c *Cage) Build(ctx *builder.Context) ([]*geom.Volume, error) {
	outer, err := ctx.AddBox("outer", c.outer)
	if err != nil {
		return nil, err
	}
	inner, err := ctx.AddBox("inner", c.inner)
	if err != nil {
		return nil, err
	}
	shape, err := ctx.AddBoolean("", geom.Subtraction, outer, inner)
	if err != nil {
		return nil, err
	}
	vol, err := ctx.AddVolume("", shape, c.opts.Material)
	if err != nil {
		return nil, err
	}
	return []*geom.Volume{vol}, nil
}

// Register registers both cage kinds with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "field_cage",
		Description: "hollow box open along y, sized width x length x height",
		NewOptions: func() any {
			return &Options{Width: 1800, Length: 2290, Height: 2080, Thickness: 0.1524, Material: "FieldCage"}
		},
		New: func(o any) (builder.Builder, error) {
			return New(o.(*Options), fieldCage, geom.AxisY)
		},
	})
	r.RegisterKind(&registry.Kind{
		Name:        "cage",
		Description: "hollow box open along the drift axis x, sized length x height x width",
		NewOptions: func() any {
			return &Options{Width: 1588.5, Length: 254, Height: 2002.1, Thickness: 0.1524, Material: "FieldCage"}
		},
		New: func(o any) (builder.Builder, error) {
			return New(o.(*Options), driftCage, geom.AxisX)
		},
	})
}
