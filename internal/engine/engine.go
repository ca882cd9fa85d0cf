package engine

import (
	"context"
	"time"

	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/ctxlog"
	"github.com/vk/cryogeo/internal/ctydecode"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/geostore"
	"github.com/vk/cryogeo/internal/material"
	"github.com/vk/cryogeo/internal/metrics"
	"github.com/vk/cryogeo/internal/overlap"
	"github.com/vk/cryogeo/internal/registry"
)

// Options tune an assembly. The zero value is usable.
type Options struct {
	// World overrides the model's root builder.
	World string
	// Strict checks every constructed volume for extrusions and sibling
	// overlaps as soon as its builder returns.
	Strict bool
	// Tolerance is the overlap tolerance in millimetres.
	Tolerance float64
	// Converter binds option values; defaults to the cty converter.
	Converter config.Converter
	Recorder  metrics.Recorder
	// Store and Materials are caller-owned; fresh ones are created when nil.
	Store     *geostore.Store
	Materials *material.Registry
}

// Result is a finished assembly.
type Result struct {
	Root      *geom.Volume
	Store     *geostore.Store
	Materials *material.Registry
	// Order lists builder names in construction order.
	Order []string
	// Instances maps builder names to their constructed instances.
	Instances map[string]*builder.Instance
}

// Placements counts the placements in the tree below Root.
func (r *Result) Placements() int {
	n := 0
	_ = r.Root.Walk(func(v *geom.Volume) error {
		n += v.NumPlacements()
		return nil
	})
	return n
}

// Assemble builds the geometry described by model using the kinds in reg.
// It either returns a complete tree or the first error.
func Assemble(ctx context.Context, model *config.Model, reg *registry.Registry, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	opts = withDefaults(opts)

	world := opts.World
	if world == "" {
		world = model.World
	}
	if world == "" && len(model.Builders) > 0 {
		world = model.Builders[0].Name
		logger.Debug("No world named, using the first declared builder.", "world", world)
	}
	if world == "" {
		return nil, &geoerr.Error{Kind: geoerr.KindConfig, Message: "configuration declares no builders"}
	}

	logger.Info("Assembling geometry.", "builders", len(model.Builders), "world", world, "strict", opts.Strict)

	insts, err := createInstances(ctx, model, reg, opts.Converter)
	if err != nil {
		return nil, err
	}
	if err := bindInstances(ctx, model, reg, insts); err != nil {
		return nil, err
	}
	if _, ok := insts[world]; !ok {
		return nil, geoerr.Unresolved("", "world builder", world)
	}

	order, err := constructionOrder(ctx, model, reg, world)
	if err != nil {
		return nil, err
	}
	built := make(map[string]*builder.Instance, len(order))

	for _, name := range order {
		inst := insts[name]
		registered := len(opts.Store.Volumes())
		start := time.Now()
		err := inst.Construct(ctx, opts.Store, opts.Materials)
		opts.Recorder.ObserveBuild(inst.KindName(), time.Since(start))
		if err != nil {
			opts.Recorder.IncBuilder(inst.KindName(), metrics.ResultFailed)
			return nil, err
		}
		opts.Recorder.IncBuilder(inst.KindName(), metrics.ResultSuccess)
		built[name] = inst

		if opts.Strict {
			if err := verifyInstance(inst, opts.Store.Volumes()[registered:], opts.Tolerance); err != nil {
				return nil, err
			}
		}
	}

	res := &Result{
		Store:     opts.Store,
		Materials: opts.Materials,
		Order:     order,
		Instances: built,
	}
	root, err := insts[world].Volume(0)
	if err != nil {
		return nil, geoerr.Export("world builder %q produced no volume", world)
	}
	res.Root = root

	if err := checkResolved(res); err != nil {
		return nil, err
	}

	opts.Recorder.SetVolumes(len(res.Store.Volumes()))
	opts.Recorder.SetPlacements(res.Placements())
	logger.Info("Geometry assembled.", "root", root.Name(), "volumes", len(res.Store.Volumes()), "materials", res.Materials.Len())
	return res, nil
}

func withDefaults(opts Options) Options {
	if opts.Converter == nil {
		opts.Converter = ctydecode.NewConverter()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Store == nil {
		opts.Store = geostore.New()
	}
	if opts.Materials == nil {
		opts.Materials = material.NewRegistry()
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = overlap.DefaultTolerance
	}
	return opts
}

// verifyInstance checks the direct children of every volume the instance
// registered. Volumes of sub-builders were checked when they returned.
func verifyInstance(inst *builder.Instance, vols []*geom.Volume, tol float64) error {
	for _, v := range vols {
		if err := overlap.CheckVolume(v, tol).Err(); err != nil {
			return geoerr.Attribute(err, geoerr.KindVerification, inst.Name())
		}
	}
	return nil
}

// checkResolved makes sure the tree can be exported: materials resolve, every
// volume uses a declared material and every registered volume hangs below
// the root.
func checkResolved(res *Result) error {
	if err := res.Materials.Resolve(); err != nil {
		return &geoerr.Error{Kind: geoerr.KindExport, Message: "material registry does not resolve", Cause: err}
	}
	err := res.Root.Walk(func(v *geom.Volume) error {
		if _, err := res.Materials.Lookup(v.Material()); err != nil {
			return geoerr.Export("volume %q uses undeclared material %q", v.Name(), v.Material())
		}
		return nil
	})
	if err != nil {
		return err
	}
	if orphans := res.Store.Unreachable(res.Root); len(orphans) > 0 {
		return geoerr.Export("volumes not reachable from %q: %v", res.Root.Name(), orphans)
	}
	return nil
}
