package engine

import (
	"context"
	"fmt"

	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/ctxlog"
	"github.com/vk/cryogeo/internal/dag"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/registry"
)

// createInstances creates and configures one instance per declaration.
func createInstances(ctx context.Context, model *config.Model, reg *registry.Registry, conv config.Converter) (map[string]*builder.Instance, error) {
	logger := ctxlog.FromContext(ctx)
	insts := make(map[string]*builder.Instance, len(model.Builders))

	for _, decl := range model.Builders {
		if _, dup := insts[decl.Name]; dup {
			return nil, &geoerr.Error{Kind: geoerr.KindConfig, Builder: decl.Name, Message: "declared twice"}
		}
		kind, ok := reg.Kind(decl.Kind)
		if !ok {
			return nil, geoerr.Unresolved(decl.Name, "builder kind", decl.Kind)
		}

		opts := kind.NewOptions()
		if err := conv.DecodeOptions(ctx, opts, decl.Options, decl.Name); err != nil {
			return nil, err
		}
		b, err := kind.New(opts)
		if err != nil {
			return nil, geoerr.Attribute(err, geoerr.KindConfig, decl.Name)
		}

		inst := builder.NewInstance(decl.Name, decl.Kind)
		if err := inst.Configure(b); err != nil {
			return nil, err
		}
		insts[decl.Name] = inst
		logger.Debug("Configured builder.", "builder", decl.Name, "kind", decl.Kind, "options", len(decl.Options))
	}
	return insts, nil
}

// bindInstances resolves sub-builder and slot references.
func bindInstances(ctx context.Context, model *config.Model, reg *registry.Registry, insts map[string]*builder.Instance) error {
	logger := ctxlog.FromContext(ctx)

	for _, decl := range model.Builders {
		kind, _ := reg.Kind(decl.Kind)

		subs := make([]*builder.Instance, 0, len(decl.SubBuilders))
		for _, name := range decl.SubBuilders {
			sub, ok := insts[name]
			if !ok {
				return geoerr.Unresolved(decl.Name, "sub-builder", name)
			}
			subs = append(subs, sub)
		}

		slots := make(map[string]*builder.Instance, len(decl.Slots))
		for _, role := range config.SortedKeys(decl.Slots) {
			if !kind.HasSlot(role) {
				return geoerr.UnknownParameter(decl.Name, "slots."+role, kind.AllSlots())
			}
			target, ok := insts[decl.Slots[role]]
			if !ok {
				return geoerr.Unresolved(decl.Name, "builder for slot "+role, decl.Slots[role])
			}
			slots[role] = target
		}

		if len(decl.Slots) == 0 && len(kind.Slots) > 0 && positionalFits(kind, len(subs)) {
			all := kind.AllSlots()
			for i, sub := range subs {
				slots[all[i]] = sub
			}
			logger.Warn("Binding sub-builders to slots by position; declare slots explicitly.",
				"builder", decl.Name, "kind", decl.Kind, "slots", all[:len(subs)])
		}

		for _, role := range kind.Slots {
			if _, ok := slots[role]; !ok {
				return &geoerr.Error{
					Kind:    geoerr.KindUnresolvedReference,
					Builder: decl.Name,
					Param:   "slots." + role,
					Message: fmt.Sprintf("required slot %q is not bound", role),
				}
			}
		}

		if err := insts[decl.Name].Bind(subs, slots); err != nil {
			return err
		}
	}
	return nil
}

// positionalFits reports whether n positional sub-builders can fill the
// required slots, and at most the optional ones after them.
func positionalFits(kind *registry.Kind, n int) bool {
	return n >= len(kind.Slots) && n <= len(kind.Slots)+len(kind.OptionalSlots)
}

// constructionOrder returns the builders the world needs, plus every
// builder of a global kind and what it needs, so that each one follows
// everything it depends on. Builders outside that set are skipped, which
// lets any builder serve as the world without orphaning volumes.
func constructionOrder(ctx context.Context, model *config.Model, reg *registry.Registry, world string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	g := dag.New()
	for _, decl := range model.Builders {
		g.AddNode(decl.Name)
	}
	for _, decl := range model.Builders {
		for _, dep := range decl.Dependencies() {
			if err := g.AddEdge(dep, decl.Name); err != nil {
				return nil, &geoerr.Error{Kind: geoerr.KindConfig, Builder: decl.Name, Message: "invalid dependency", Cause: err}
			}
		}
	}
	if err := g.DetectCycles(); err != nil {
		return nil, &geoerr.Error{Kind: geoerr.KindConfig, Message: "builders depend on each other", Cause: err}
	}
	all, err := g.TopologicalOrder()
	if err != nil {
		return nil, &geoerr.Error{Kind: geoerr.KindConfig, Message: "builders depend on each other", Cause: err}
	}

	roots := []string{world}
	for _, decl := range model.Builders {
		if kind, ok := reg.Kind(decl.Kind); ok && kind.Global && decl.Name != world {
			roots = append(roots, decl.Name)
		}
	}
	needed, err := g.Closure(roots...)
	if err != nil {
		return nil, geoerr.Unresolved("", "world builder", world)
	}

	order := make([]string, 0, len(needed))
	for _, name := range all {
		if needed[name] {
			order = append(order, name)
			continue
		}
		usedBy, _ := g.Dependents(name)
		logger.Debug("Skipping builder outside the world's tree.", "builder", name, "world", world, "used_by", usedBy)
	}
	if skipped := len(all) - len(order); skipped > 0 {
		logger.Info("Builders skipped, not below the world.", "world", world, "skipped", skipped)
	}
	return order, nil
}
