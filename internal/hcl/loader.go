package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/ctxlog"
	"github.com/vk/cryogeo/internal/ctydecode"
	"github.com/vk/cryogeo/internal/fsutil"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, nil, geoerr.Config("", "", err)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()
	evalCtx := EvalContext()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, geoerr.Config("", "", fmt.Errorf("failed to parse HCL file %s: %w", file, diags))
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, nil, geoerr.Config("", "", fmt.Errorf("failed to decode HCL file %s: %w", file, diags))
		}

		part := &config.Model{World: root.World}
		for _, b := range root.Builders {
			decl, err := l.translateBuilder(b, file, evalCtx)
			if err != nil {
				return nil, nil, err
			}
			part.Builders = append(part.Builders, decl)
		}
		if err := model.Merge(part); err != nil {
			return nil, nil, err
		}
		logger.Debug("Loaded HCL file.", "file", file, "builders", len(part.Builders))
	}

	logger.Debug("HCL loading complete.", "builders", len(model.Builders), "world", model.World)
	return model, ctydecode.NewConverter(), nil
}

// translateBuilder converts a builder block into the agnostic model,
// evaluating its option expressions.
func (l *Loader) translateBuilder(b *builderBlock, file string, evalCtx *hcl.EvalContext) (*config.BuilderDecl, error) {
	decl := &config.BuilderDecl{
		Kind:        b.Kind,
		Name:        b.Name,
		SubBuilders: b.SubBuilders,
		Source:      file,
	}

	if b.Slots != nil {
		attrs, diags := b.Slots.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, geoerr.Config(b.Name, "slots", diags)
		}
		decl.Slots = make(map[string]string, len(attrs))
		for role, attr := range attrs {
			var target string
			if diags := gohcl.DecodeExpression(attr.Expr, nil, &target); diags.HasErrors() {
				return nil, geoerr.Config(b.Name, role, diags)
			}
			decl.Slots[role] = target
		}
	}

	if b.Options != nil {
		attrs, diags := b.Options.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, geoerr.Config(b.Name, "options", diags)
		}
		decl.Options = make(map[string]cty.Value, len(attrs))
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(evalCtx)
			if diags.HasErrors() {
				return nil, geoerr.Config(b.Name, name, diags)
			}
			decl.Options[name] = val
		}
	}
	return decl, nil
}
