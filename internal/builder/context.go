package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/geostore"
	"github.com/vk/cryogeo/internal/material"
)

// Context is handed to Build. It is only valid for the duration of the call.
type Context struct {
	ctx        context.Context
	inst       *Instance
	logger     *slog.Logger
	store      *geostore.Store
	materials  *material.Registry
	placements map[string]int
}

// NewContext creates a context for inst outside the engine, for builders
// that compose other builders directly and for tests.
func NewContext(ctx context.Context, inst *Instance, store *geostore.Store, materials *material.Registry, logger *slog.Logger) *Context {
	return &Context{ctx: ctx, inst: inst, logger: logger, store: store, materials: materials, placements: make(map[string]int)}
}

func (c *Context) Context() context.Context      { return c.ctx }
func (c *Context) Name() string                  { return c.inst.name }
func (c *Context) Logger() *slog.Logger          { return c.logger }
func (c *Context) Store() *geostore.Store        { return c.store }
func (c *Context) Materials() *material.Registry { return c.materials }

// NumSubs returns the number of positional sub-builders.
func (c *Context) NumSubs() int { return len(c.inst.subs) }

// Subs returns the positional sub-builders in declaration order.
func (c *Context) Subs() []*Instance { return c.inst.Subs() }

// Sub returns the i-th positional sub-builder.
func (c *Context) Sub(i int) (*Instance, error) {
	if i < 0 || i >= len(c.inst.subs) {
		return nil, geoerr.Unresolved(c.inst.name, "sub-builder", fmt.Sprintf("#%d", i))
	}
	return c.inst.subs[i], nil
}

// HasSlot reports whether role is bound.
func (c *Context) HasSlot(role string) bool {
	_, ok := c.inst.slots[role]
	return ok
}

// Slot returns the builder bound to role.
func (c *Context) Slot(role string) (*Instance, error) {
	inst, ok := c.inst.slots[role]
	if !ok {
		return nil, geoerr.Unresolved(c.inst.name, "slot", role)
	}
	return inst, nil
}

// SlotVolume returns the first volume of the builder bound to role.
func (c *Context) SlotVolume(role string) (*geom.Volume, error) {
	inst, err := c.Slot(role)
	if err != nil {
		return nil, err
	}
	return inst.Volume(0)
}

// SubVolume returns the first volume of the i-th sub-builder.
func (c *Context) SubVolume(i int) (*geom.Volume, error) {
	inst, err := c.Sub(i)
	if err != nil {
		return nil, err
	}
	return inst.Volume(0)
}

// VolumeName derives a volume name from the builder name and role.
func (c *Context) VolumeName(role string) string { return c.derive(role, "volume") }

// ShapeName derives a shape name from the builder name and role.
func (c *Context) ShapeName(role string) string { return c.derive(role, "shape") }

func (c *Context) derive(role, suffix string) string {
	if role == "" {
		return c.inst.name + "_" + suffix
	}
	return c.inst.name + "_" + role + "_" + suffix
}

// PlacementName returns "<child>_in_<parent>", numbered from the second use
// of the same pair onwards.
func (c *Context) PlacementName(child, parent string) string {
	base := child + "_in_" + parent
	n := c.placements[base]
	c.placements[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, n)
}

// Place builds a named placement of child inside the volume for parentRole.
func (c *Context) Place(parentRole string, child *geom.Volume, pos geom.Vec3, rot geom.Rotation) geom.Placement {
	return geom.Placement{
		Name:     c.PlacementName(child.Name(), c.VolumeName(parentRole)),
		Volume:   child,
		Position: pos,
		Rotation: rot,
	}
}

// AddBox creates and registers a box for role.
func (c *Context) AddBox(role string, half geom.Vec3) (*geom.Box, error) {
	b, err := geom.NewBox(c.ShapeName(role), half)
	if err != nil {
		return nil, geoerr.WrapInvalidGeometry(c.inst.name, role, err)
	}
	if err := c.store.AddShape(b); err != nil {
		return nil, c.storeErr(err)
	}
	return b, nil
}

// AddBoolean creates and registers a boolean of two registered shapes.
func (c *Context) AddBoolean(role string, op geom.BooleanOp, first, second geom.Shape) (*geom.Boolean, error) {
	b, err := geom.NewBoolean(c.ShapeName(role), op, first, second)
	if err != nil {
		return nil, geoerr.WrapInvalidGeometry(c.inst.name, role, err)
	}
	if err := c.store.AddShape(b); err != nil {
		return nil, c.storeErr(err)
	}
	return b, nil
}

// AddVolume creates and registers a volume for role. Children placed in it
// must already be registered.
func (c *Context) AddVolume(role string, shape geom.Shape, mat string, placements ...geom.Placement) (*geom.Volume, error) {
	v, err := geom.NewVolume(c.VolumeName(role), shape, mat, placements...)
	if err != nil {
		return nil, geoerr.WrapInvalidGeometry(c.inst.name, role, err)
	}
	if err := c.store.AddVolume(v); err != nil {
		return nil, c.storeErr(err)
	}
	return v, nil
}

func (c *Context) storeErr(err error) error {
	if errors.Is(err, geostore.ErrUnregistered) {
		return &geoerr.Error{Kind: geoerr.KindUnresolvedReference, Builder: c.inst.name, Message: "cannot register", Cause: err}
	}
	return &geoerr.Error{Kind: geoerr.KindConfig, Builder: c.inst.name, Message: "cannot register", Cause: err}
}

// DefineMaterial declares m in the caller's registry, logging overwrites.
func (c *Context) DefineMaterial(m material.Material) error {
	replaced, err := c.materials.Define(m)
	if err != nil {
		return &geoerr.Error{Kind: geoerr.KindConfig, Builder: c.inst.name, Param: m.MaterialName(), Message: "bad material", Cause: err}
	}
	if replaced {
		c.logger.Warn("Material redeclared, overwriting.", "material", m.MaterialName())
	}
	return nil
}

// Material looks up a declared material.
func (c *Context) Material(name string) (material.Material, error) {
	m, err := c.materials.Lookup(name)
	if err != nil {
		return nil, geoerr.Unresolved(c.inst.name, "material", name)
	}
	return m, nil
}
