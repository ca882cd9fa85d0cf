// Package world provides the "world" builder kind: the root volume every
// other volume hangs from.
package world

import (
	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/registry"
	"github.com/vk/cryogeo/internal/units"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Options defines the arguments of a world builder.
type Options struct {
	Size     units.Length `geo:"size"`
	Material string       `geo:"material"`
}

// World is a cube of Size filled with Material. Every volume of every
// sub-builder is placed at its center.
type World struct {
	opts *Options
}

// New validates opts and returns the builder.
func New(opts *Options) (*World, error) {
	if !(opts.Size > 0) {
		return nil, geoerr.InvalidGeometry("", "size", "world size must be positive, got %s", opts.Size)
	}
	return &World{opts: opts}, nil
}

// Build implements builder.Builder.
func (w *World) Build(ctx *builder.Context) ([]*geom.Volume, error) {
	half := 0.5 * float64(w.opts.Size)
	shape, err := ctx.AddBox("", geom.V(half, half, half))
	if err != nil {
		return nil, err
	}

	var placements []geom.Placement
	for _, sub := range ctx.Subs() {
		vols, err := sub.Volumes()
		if err != nil {
			return nil, err
		}
		for _, v := range vols {
			placements = append(placements, ctx.Place("", v, geom.Vec3{}, geom.Rotation{}))
		}
	}

	vol, err := ctx.AddVolume("", shape, w.opts.Material, placements...)
	if err != nil {
		return nil, err
	}
	ctx.Logger().Debug("World built.", "size", w.opts.Size, "placements", len(placements))
	return []*geom.Volume{vol}, nil
}

// Register registers the kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "world",
		Description: "cube of air holding every sub-builder's volumes at its center",
		NewOptions: func() any {
			return &Options{Size: 1000, Material: "Air"}
		},
		New: func(o any) (builder.Builder, error) {
			return New(o.(*Options))
		},
	})
}
