// Package cryostat provides the "onion_cryostat" builder kind: a
// rectangular cryostat made of nested shells around a bulk of liquid argon
// that holds the detector.
package cryostat

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

// DetectorSlot is the optional role of the builder placed in the bulk.
const DetectorSlot = "detector"

// Options defines the arguments of an onion cryostat. Width runs along x,
// length along y and height along z.
type Options struct {
	Width  units.Length `geo:"container_width"`
	Length units.Length `geo:"container_length"`
	Height units.Length `geo:"container_height"`

	ConcreteThickness units.Length `geo:"concrete_thickness"`
	ConcreteMaterial  string       `geo:"concrete_material"`
	FoamThickness     units.Length `geo:"foam_thickness"`
	FoamMaterial      string       `geo:"foam_material"`
	MembraneThickness units.Length `geo:"membrane_thickness"`
	MembraneMaterial  string       `geo:"membrane_material"`
	BulkMaterial      string       `geo:"bulk_material"`
}

// layer is one shell of the onion, outermost first.
type layer struct {
	role      string
	param     string
	thickness float64
	material  string
}

func (o *Options) layers() []layer {
	return []layer{
		{"shell", "concrete_thickness", float64(o.ConcreteThickness), o.ConcreteMaterial},
		{"insulation", "foam_thickness", float64(o.FoamThickness), o.FoamMaterial},
		{"membrane", "membrane_thickness", float64(o.MembraneThickness), o.MembraneMaterial},
		{"bulk", "", 0, o.BulkMaterial},
	}
}

// Cryostat builds the onion. Only the outer shell volume is exposed.
type Cryostat struct {
	opts   *Options
	layers []layer
	halves []geom.Vec3
}

// New validates opts and precomputes the shell half-extents.
func New(opts *Options) (*Cryostat, error) {
	outer := geom.V(0.5*float64(opts.Width), 0.5*float64(opts.Length), 0.5*float64(opts.Height))
	layers := opts.layers()

	thicknesses := make([]float64, len(layers))
	for i, l := range layers {
		if l.param != "" && !(l.thickness > 0) {
			return nil, geoerr.InvalidGeometry("", l.param, "shell thickness must be positive, got %g mm", l.thickness)
		}
		thicknesses[i] = l.thickness
	}
	halves, err := placement.Onion(outer, thicknesses)
	if err != nil {
		return nil, geoerr.WrapInvalidGeometry("", "container_width", err)
	}
	return &Cryostat{opts: opts, layers: layers, halves: halves}, nil
}

// Halves returns the half-extents of every layer, outermost first.
func (c *Cryostat) Halves() []geom.Vec3 {
	return append([]geom.Vec3(nil), c.halves...)
}

// Build implements builder.Builder. Layers are built innermost first so
// each can be placed in the one around it.
func (c *Cryostat) Build(ctx *builder.Context) ([]*geom.Volume, error) {
	detector, err := c.detector(ctx)
	if err != nil {
		return nil, err
	}

	var inner *geom.Volume
	for i := len(c.layers) - 1; i >= 0; i-- {
		l := c.layers[i]
		shape, err := ctx.AddBox(l.role, c.halves[i])
		if err != nil {
			return nil, err
		}
		var pls []geom.Placement
		switch {
		case inner != nil:
			pls = append(pls, ctx.Place(l.role, inner, geom.Vec3{}, geom.Rotation{}))
		case detector != nil:
			pls = append(pls, ctx.Place(l.role, detector, geom.Vec3{}, geom.Rotation{}))
		}
		vol, err := ctx.AddVolume(l.role, shape, l.material, pls...)
		if err != nil {
			return nil, err
		}
		inner = vol
	}

	ctx.Logger().Debug("Onion cryostat built.",
		"outer", c.halves[0],
		"bulk", c.halves[len(c.halves)-1],
		"detector", detector != nil,
	)
	return []*geom.Volume{inner}, nil
}

// detector returns the volume for the bulk: the detector slot if bound,
// otherwise the first sub-builder's volume, otherwise nothing.
func (c *Cryostat) detector(ctx *builder.Context) (*geom.Volume, error) {
	if ctx.HasSlot(DetectorSlot) {
		return ctx.SlotVolume(DetectorSlot)
	}
	if ctx.NumSubs() > 0 {
		return ctx.SubVolume(0)
	}
	ctx.Logger().Warn("Cryostat has no detector, the bulk stays empty.")
	return nil, nil
}

// Register registers the kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:          "onion_cryostat",
		Description:   "concrete, foam and membrane shells around a liquid argon bulk",
		OptionalSlots: []string{DetectorSlot},
		NewOptions: func() any {
			return &Options{
				Width:             4104,
				Length:            5404,
				Height:            4104,
				ConcreteThickness: 300,
				ConcreteMaterial:  "Concrete",
				FoamThickness:     400,
				FoamMaterial:      "Foam",
				MembraneThickness: 2,
				MembraneMaterial:  "Stainless",
				BulkMaterial:      "LiquidArgon",
			}
		},
		New: func(o any) (builder.Builder, error) {
			return New(o.(*Options))
		},
	})
}
