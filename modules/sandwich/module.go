// Package sandwich provides the "sandwich" builder kind, which stacks the
// volumes of its sub-builders side by side along one axis inside an
// envelope that just fits them.
package sandwich

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

// Options defines the arguments of a sandwich.
type Options struct {
	Axis string       `geo:"axis"`
	Gap  units.Length `geo:"gap"`
	// CloseWithFirst places the first volume again at the far end, as a
	// cathode capping both sides of a detector.
	CloseWithFirst bool   `geo:"close_with_first"`
	Material       string `geo:"material"`
}

// Sandwich is the stacking builder.
type Sandwich struct {
	opts *Options
	axis geom.Axis
}

// New validates opts and returns the builder.
func New(opts *Options) (*Sandwich, error) {
	axis, err := geom.ParseAxis(opts.Axis)
	if err != nil {
		return nil, geoerr.InvalidGeometry("", "axis", "%v", err)
	}
	if opts.Gap < 0 {
		return nil, geoerr.InvalidGeometry("", "gap", "gap must not be negative, got %s", opts.Gap)
	}
	return &Sandwich{opts: opts, axis: axis}, nil
}

// Build implements builder.Builder.
func (s *Sandwich) Build(ctx *builder.Context) ([]*geom.Volume, error) {
	if ctx.NumSubs() == 0 {
		return nil, geoerr.InvalidGeometry(ctx.Name(), "subbuilders", "a sandwich needs at least one sub-builder")
	}

	layers := make([]*geom.Volume, 0, ctx.NumSubs()+1)
	for i := 0; i < ctx.NumSubs(); i++ {
		v, err := ctx.SubVolume(i)
		if err != nil {
			return nil, err
		}
		layers = append(layers, v)
	}
	if s.opts.CloseWithFirst {
		layers = append(layers, layers[0])
	}

	halves := make([]geom.Vec3, len(layers))
	for i, v := range layers {
		halves[i] = v.Extents()
	}
	offsets, envelope, err := placement.Stack(s.axis, halves, float64(s.opts.Gap))
	if err != nil {
		return nil, geoerr.WrapInvalidGeometry(ctx.Name(), "subbuilders", err)
	}

	shape, err := ctx.AddBox("", envelope)
	if err != nil {
		return nil, err
	}
	pls := make([]geom.Placement, len(layers))
	for i, v := range layers {
		pls[i] = ctx.Place("", v, geom.Vec3{}.With(s.axis, offsets[i]), geom.Rotation{})
	}
	vol, err := ctx.AddVolume("", shape, s.opts.Material, pls...)
	if err != nil {
		return nil, err
	}

	ctx.Logger().Debug("Sandwich built.", "axis", s.axis, "layers", len(layers), "envelope", envelope)
	return []*geom.Volume{vol}, nil
}

// Register registers the kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "sandwich",
		Description: "sub-builder volumes stacked along one axis",
		NewOptions: func() any {
			return &Options{Axis: "x", Material: "LiquidArgon"}
		},
		New: func(o any) (builder.Builder, error) {
			return New(o.(*Options))
		},
	})
}
