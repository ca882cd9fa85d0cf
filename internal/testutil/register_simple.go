package testutil

import (
	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/registry"
	"github.com/vk/cryogeo/internal/units"
)

// BlockOptions sizes a test block.
type BlockOptions struct {
	Dx       units.Length `geo:"dx"`
	Dy       units.Length `geo:"dy"`
	Dz       units.Length `geo:"dz"`
	Material string       `geo:"material"`
}

// BlockModule registers the "block" kind: a single box volume given by its
// half-extents. Module tests use it as a stand-in sub-builder.
type BlockModule struct{}

type block struct{ opts *BlockOptions }

func (b *block) Build(ctx *builder.Context) ([]*geom.Volume, error) {
	shape, err := ctx.AddBox("", geom.V(float64(b.opts.Dx), float64(b.opts.Dy), float64(b.opts.Dz)))
	if err != nil {
		return nil, err
	}
	v, err := ctx.AddVolume("", shape, b.opts.Material)
	if err != nil {
		return nil, err
	}
	return []*geom.Volume{v}, nil
}

// Register implements registry.Module.
func (m *BlockModule) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "block",
		Description: "test box given by half-extents",
		NewOptions:  func() any { return &BlockOptions{Dx: 10, Dy: 10, Dz: 10, Material: "LiquidArgon"} },
		New: func(o any) (builder.Builder, error) {
			return &block{opts: o.(*BlockOptions)}, nil
		},
	})
}

// BlockDecl declares a test block with the given half-extents.
func BlockDecl(name string, dx, dy, dz float64) *config.BuilderDecl {
	d := Decl("block", name)
	With(d, "dx", dx)
	With(d, "dy", dy)
	With(d, "dz", dz)
	return d
}
