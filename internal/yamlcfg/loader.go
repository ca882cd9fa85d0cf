package yamlcfg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/ctxlog"
	"github.com/vk/cryogeo/internal/ctydecode"
	"github.com/vk/cryogeo/internal/fsutil"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

type fileRoot struct {
	World    string         `yaml:"world"`
	Builders []builderEntry `yaml:"builders"`
}

type builderEntry struct {
	Kind        string               `yaml:"kind"`
	Name        string               `yaml:"name"`
	SubBuilders []string             `yaml:"subbuilders"`
	Slots       map[string]string    `yaml:"slots"`
	Options     map[string]yaml.Node `yaml:"options"`
}

// Loader implements config.Loader for .yaml and .yml files.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every YAML file under paths and merges them into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.CollectFiles(paths, ".yaml", ".yml")
	if err != nil {
		return nil, nil, geoerr.Config("", "", err)
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := &config.Model{}
	for _, file := range files {
		part, err := loadFile(file)
		if err != nil {
			return nil, nil, err
		}
		if err := model.Merge(part); err != nil {
			return nil, nil, err
		}
		logger.Debug("Loaded YAML file.", "file", file, "builders", len(part.Builders))
	}
	return model, ctydecode.NewConverter(), nil
}

func loadFile(file string) (*config.Model, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, geoerr.Config("", "", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var root fileRoot
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, geoerr.Config("", "", fmt.Errorf("failed to decode YAML file %s: %w", file, err))
	}

	part := &config.Model{World: root.World}
	for i, b := range root.Builders {
		if b.Kind == "" {
			return nil, geoerr.Config(b.Name, "kind", fmt.Errorf("builder #%d in %s has no kind", i+1, file))
		}
		decl := &config.BuilderDecl{
			Kind:        b.Kind,
			Name:        b.Name,
			SubBuilders: b.SubBuilders,
			Slots:       b.Slots,
			Source:      file,
		}
		if len(b.Options) > 0 {
			decl.Options = make(map[string]cty.Value, len(b.Options))
			for name, node := range b.Options {
				val, err := nodeValue(&node)
				if err != nil {
					return nil, geoerr.Config(b.Name, name, err)
				}
				decl.Options[name] = val
			}
		}
		part.Builders = append(part.Builders, decl)
	}
	return part, nil
}
