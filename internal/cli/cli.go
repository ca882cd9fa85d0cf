package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/vk/cryogeo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// arguments is the kong grammar of the command line.
type arguments struct {
	LogLevel    string  `name:"log-level" enum:"debug,info,warn,error" default:"info" help:"Logging level (${enum})."`
	LogFormat   string  `name:"log-format" enum:"text,json" default:"text" help:"Log output format (${enum})."`
	World       string  `help:"Root builder, overriding the world named in the configuration."`
	MetricsFile string  `name:"metrics-file" help:"Write assembly metrics to this file in the Prometheus text format."`
	Tolerance   float64 `default:"1e-6" help:"Overlap tolerance in millimetres."`
	NoStrict    bool    `name:"no-strict" help:"Skip verifying each builder's placements as it is constructed."`

	Build struct {
		Paths  []string `arg:"" name:"path" help:"Geometry files (.hcl, .yaml) or directories."`
		Output string   `short:"o" default:"cryogeo.gdml" help:"GDML output file."`
	} `cmd:"" help:"Assemble the geometry and write it as GDML."`

	Check struct {
		Paths []string `arg:"" name:"path" help:"Geometry files (.hcl, .yaml) or directories."`
	} `cmd:"" help:"Assemble the geometry and verify it has no overlaps."`

	Kinds struct{} `cmd:"" help:"List the builder kinds compiled into this binary."`
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var cli arguments
	exited := false
	parser, err := kong.New(&cli,
		kong.Name("cryogeo"),
		kong.Description("cryogeo - assembles parametric detector and cryostat geometries into GDML."),
		kong.Writers(output, output),
		kong.Exit(func(int) { exited = true }),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build the command line parser: %w", err)
	}

	if len(args) == 0 {
		slog.Debug("No arguments provided, printing usage and exiting.")
		args = []string{"--help"}
	}

	kctx, err := parser.Parse(args)
	if exited {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.", "command", kctx.Command())

	cfg := app.Config{
		World:       cli.World,
		LogFormat:   cli.LogFormat,
		LogLevel:    cli.LogLevel,
		MetricsFile: cli.MetricsFile,
		Strict:      !cli.NoStrict,
		Tolerance:   cli.Tolerance,
	}
	switch strings.Fields(kctx.Command())[0] {
	case "build":
		cfg.Command = app.CommandBuild
		cfg.Paths = cli.Build.Paths
		cfg.Output = cli.Build.Output
	case "check":
		cfg.Command = app.CommandCheck
		cfg.Paths = cli.Check.Paths
	case "kinds":
		cfg.Command = app.CommandKinds
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
