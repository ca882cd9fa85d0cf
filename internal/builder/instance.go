package builder

import (
	"context"
	"fmt"

	"github.com/vk/cryogeo/internal/ctxlog"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/geostore"
	"github.com/vk/cryogeo/internal/material"
)

// Builder produces the volumes of one configured unit. Implementations hold
// their own validated option struct.
type Builder interface {
	Build(ctx *Context) ([]*geom.Volume, error)
}

// State is the lifecycle stage of an Instance.
type State int

const (
	StateCreated State = iota
	StateConfigured
	StateConstructed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateConfigured:
		return "configured"
	default:
		return "constructed"
	}
}

// Instance is a named builder and its bindings.
type Instance struct {
	name    string
	kind    string
	state   State
	builder Builder
	subs    []*Instance
	slots   map[string]*Instance
	volumes []*geom.Volume
}

// NewInstance creates an instance in the created state.
func NewInstance(name, kind string) *Instance {
	return &Instance{name: name, kind: kind, slots: map[string]*Instance{}}
}

func (i *Instance) Name() string     { return i.name }
func (i *Instance) KindName() string { return i.kind }
func (i *Instance) State() State     { return i.state }

// Builder returns the configured builder, or nil before Configure.
func (i *Instance) Builder() Builder { return i.builder }

// Configure attaches the validated builder.
func (i *Instance) Configure(b Builder) error {
	if i.state != StateCreated {
		return geoerr.Lifecycle(i.name, "cannot configure a %s builder", i.state)
	}
	if b == nil {
		return geoerr.Lifecycle(i.name, "configured with no builder")
	}
	i.builder = b
	i.state = StateConfigured
	return nil
}

// Bind sets the ordered sub-builders and the slot bindings.
func (i *Instance) Bind(subs []*Instance, slots map[string]*Instance) error {
	if i.state != StateConfigured {
		return geoerr.Lifecycle(i.name, "cannot bind sub-builders of a %s builder", i.state)
	}
	i.subs = append([]*Instance(nil), subs...)
	i.slots = make(map[string]*Instance, len(slots))
	for role, inst := range slots {
		i.slots[role] = inst
	}
	return nil
}

// Subs returns the ordered sub-builders.
func (i *Instance) Subs() []*Instance { return append([]*Instance(nil), i.subs...) }

// Slots returns a copy of the slot bindings.
func (i *Instance) Slots() map[string]*Instance {
	out := make(map[string]*Instance, len(i.slots))
	for k, v := range i.slots {
		out[k] = v
	}
	return out
}

// Construct runs Build once. Every sub-builder and slot must already be
// constructed.
func (i *Instance) Construct(ctx context.Context, store *geostore.Store, materials *material.Registry) error {
	switch i.state {
	case StateCreated:
		return geoerr.Lifecycle(i.name, "constructed before being configured")
	case StateConstructed:
		return geoerr.Lifecycle(i.name, "constructed twice")
	}
	for _, dep := range i.dependencies() {
		if dep.state != StateConstructed {
			return geoerr.Lifecycle(i.name, "sub-builder %q is not constructed yet", dep.name)
		}
	}

	ctx = ctxlog.With(ctx, "builder", i.name, "kind", i.kind)
	logger := ctxlog.FromContext(ctx)
	bctx := &Context{
		ctx:        ctx,
		inst:       i,
		logger:     logger,
		store:      store,
		materials:  materials,
		placements: make(map[string]int),
	}

	logger.Debug("Constructing builder.")
	vols, err := i.builder.Build(bctx)
	if err != nil {
		return geoerr.Attribute(err, geoerr.KindInvalidGeometry, i.name)
	}
	for _, v := range vols {
		if v == nil {
			return geoerr.Lifecycle(i.name, "returned a nil volume")
		}
		if err := store.AddVolume(v); err != nil {
			return &geoerr.Error{Kind: geoerr.KindConfig, Builder: i.name, Message: "cannot register volume", Cause: err}
		}
	}
	i.volumes = vols
	i.state = StateConstructed
	logger.Debug("Builder constructed.", "volumes", len(vols))
	return nil
}

func (i *Instance) dependencies() []*Instance {
	deps := append([]*Instance(nil), i.subs...)
	for _, s := range i.slots {
		deps = append(deps, s)
	}
	return deps
}

// Volumes returns the produced volumes. Reading before construction is an
// error.
func (i *Instance) Volumes() ([]*geom.Volume, error) {
	if i.state != StateConstructed {
		return nil, geoerr.Lifecycle(i.name, "volumes read before construction")
	}
	return append([]*geom.Volume(nil), i.volumes...), nil
}

// Volume returns the n-th produced volume.
func (i *Instance) Volume(n int) (*geom.Volume, error) {
	vols, err := i.Volumes()
	if err != nil {
		return nil, err
	}
	if n < 0 || n >= len(vols) {
		return nil, geoerr.Unresolved(i.name, "volume", fmt.Sprintf("#%d", n))
	}
	return vols[n], nil
}
