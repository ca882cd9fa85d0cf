package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/cryogeo/internal/app"
	"github.com/vk/cryogeo/internal/cli"
	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/hcl"
	"github.com/vk/cryogeo/internal/yamlcfg"
)

// main is the entrypoint for the cryogeo application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(geoerr.ExitCode(err))
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Registering a kind twice panics; report it instead of crashing.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader := config.Compose(hcl.NewLoader(), yamlcfg.NewLoader())
	geoApp, err := app.NewApp(outW, appConfig, loader)
	if err != nil {
		return err
	}
	return geoApp.Run(context.Background())
}
