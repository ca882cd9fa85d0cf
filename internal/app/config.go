package app

import (
	"errors"
	"fmt"
)

// Command selects what Run does with the assembled geometry.
type Command string

const (
	// CommandBuild assembles the geometry and writes it as GDML.
	CommandBuild Command = "build"
	// CommandCheck assembles the geometry and verifies it without writing.
	CommandCheck Command = "check"
	// CommandKinds lists the registered builder kinds.
	CommandKinds Command = "kinds"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command Command
	Paths   []string // hcl and yaml files or directories
	World   string   // overrides the configured root builder
	Output  string   // GDML destination for build

	LogFormat   string
	LogLevel    string
	MetricsFile string
	Strict      bool
	Tolerance   float64
}

func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CommandBuild, CommandCheck:
		if len(cfg.Paths) == 0 {
			return nil, errors.New("at least one configuration path is required")
		}
	case CommandKinds:
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	if cfg.Command == CommandBuild && cfg.Output == "" {
		return nil, errors.New("Output is a required configuration field for build and cannot be empty")
	}
	if cfg.Tolerance < 0 {
		return nil, fmt.Errorf("tolerance must not be negative, got %g", cfg.Tolerance)
	}

	return &cfg, nil
}
