// Package matter provides the "matter" builder kind. It produces no
// volumes; constructing it declares a material set into the registry shared
// by the assembly.
package matter

import (
	"sort"

	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/material"
	"github.com/vk/cryogeo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Options defines the arguments of a matter builder.
type Options struct {
	// Set names the material set to declare.
	Set string `geo:"set"`
}

// sets maps a set name to the function declaring it.
var sets = map[string]func(*material.Registry) error{
	"standard": material.Standard,
}

// SetNames returns the known material sets in sorted order.
func SetNames() []string {
	names := make([]string, 0, len(sets))
	for n := range sets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Matter declares a material set.
type Matter struct {
	declare func(*material.Registry) error
	set     string
}

// New validates opts and returns the builder.
func New(opts *Options) (*Matter, error) {
	declare, ok := sets[opts.Set]
	if !ok {
		return nil, geoerr.InvalidGeometry("", "set", "unknown material set %q, known sets are %v", opts.Set, SetNames())
	}
	return &Matter{declare: declare, set: opts.Set}, nil
}

// Build implements builder.Builder.
func (m *Matter) Build(ctx *builder.Context) ([]*geom.Volume, error) {
	// Declare into a scratch registry first so redeclarations go through
	// the context and get logged.
	scratch := material.NewRegistry()
	if err := m.declare(scratch); err != nil {
		return nil, geoerr.Config(ctx.Name(), "set", err)
	}
	for _, name := range scratch.Names() {
		mat, err := scratch.Lookup(name)
		if err != nil {
			return nil, err
		}
		if err := ctx.DefineMaterial(mat); err != nil {
			return nil, err
		}
	}
	ctx.Logger().Info("Declared materials.", "set", m.set, "count", scratch.Len())
	return nil, nil
}

// Register registers the kind with the registry.
func (mod *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "matter",
		Description: "declares a material set; produces no volumes",
		Global:      true,
		NewOptions: func() any {
			return &Options{Set: "standard"}
		},
		New: func(o any) (builder.Builder, error) {
			return New(o.(*Options))
		},
	})
}
