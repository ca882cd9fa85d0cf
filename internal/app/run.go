package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/vk/cryogeo/internal/ctxlog"
	"github.com/vk/cryogeo/internal/engine"
	"github.com/vk/cryogeo/internal/gdml"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/overlap"
)

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	var err error
	switch a.config.Command {
	case CommandKinds:
		err = a.listKinds()
	case CommandBuild:
		err = a.build(ctx)
	case CommandCheck:
		err = a.check(ctx)
	default:
		err = fmt.Errorf("unknown command %q", a.config.Command)
	}

	if a.config.MetricsFile != "" && a.config.Command != CommandKinds {
		if mErr := a.recorder.WriteTextfile(a.config.MetricsFile); mErr != nil {
			if err == nil {
				return mErr
			}
			a.logger.Warn("Failed to write metrics.", "error", mErr)
		} else {
			a.logger.Debug("Metrics written.", "path", a.config.MetricsFile)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return err
}

// assemble loads the configuration and builds the geometry tree.
func (a *App) assemble(ctx context.Context) (*engine.Result, error) {
	model, conv, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Configuration loaded and translated into unified model.", "builders", len(model.Builders))

	return engine.Assemble(ctx, model, a.registry, engine.Options{
		World:     a.config.World,
		Strict:    a.config.Strict,
		Tolerance: a.config.Tolerance,
		Converter: conv,
		Recorder:  a.recorder,
	})
}

func (a *App) build(ctx context.Context) error {
	res, err := a.assemble(ctx)
	if err != nil {
		return err
	}

	doc, err := gdml.Build(res)
	if err != nil {
		return err
	}
	if err := gdml.VerifyDocument(doc); err != nil {
		return err
	}

	f, err := os.Create(a.config.Output)
	if err != nil {
		return geoerr.Export("failed to create %s: %v", a.config.Output, err)
	}
	if err := gdml.Write(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return geoerr.Export("failed to close %s: %v", a.config.Output, err)
	}

	a.logger.Info("GDML written.", "path", a.config.Output, "volumes", len(res.Store.Volumes()), "placements", res.Placements())
	return nil
}

func (a *App) check(ctx context.Context) error {
	res, err := a.assemble(ctx)
	if err != nil {
		return err
	}

	tol := a.config.Tolerance
	if tol <= 0 {
		tol = overlap.DefaultTolerance
	}
	report := overlap.Check(res.Root, tol)
	a.recorder.SetOverlaps(report.Count())
	if !report.Empty() {
		for _, o := range report.Overlaps {
			a.logger.Error("Overlap found.", "detail", o.String())
		}
		for _, e := range report.Extrusions {
			a.logger.Error("Extrusion found.", "detail", e.String())
		}
		return report.Err()
	}

	var buf bytes.Buffer
	if err := gdml.Export(&buf, res); err != nil {
		return err
	}
	if err := gdml.Verify(&buf); err != nil {
		return err
	}

	a.logger.Info("Geometry check passed.", "root", res.Root.Name(), "volumes", len(res.Store.Volumes()), "placements", res.Placements())
	return nil
}

func (a *App) listKinds() error {
	tw := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tSLOTS\tDESCRIPTION")
	for _, k := range a.registry.Kinds() {
		slots := make([]string, 0, len(k.Slots)+len(k.OptionalSlots))
		slots = append(slots, k.Slots...)
		for _, s := range k.OptionalSlots {
			slots = append(slots, s+"?")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", k.Name, strings.Join(slots, ","), k.Description)
	}
	return tw.Flush()
}
