package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given files or directories,
	// translates it into the format-agnostic model, and returns a matching
	// Converter. Files of a format the loader does not handle are skipped.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)
}

// Converter binds option values onto the Go option struct of a builder kind.
type Converter interface {
	// DecodeOptions overwrites the fields of target, a pointer to an option
	// struct already holding the kind's defaults, with the values in opts.
	// Unknown option names are rejected. owner names the builder in errors.
	DecodeOptions(ctx context.Context, target any, opts map[string]cty.Value, owner string) error
}
