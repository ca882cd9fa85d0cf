// Package testutil holds the shared harness used by builder-module tests:
// it assembles a hand-written model against a chosen set of modules with a
// captured debug logger and a material registry already holding the
// standard materials.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/ctxlog"
	"github.com/vk/cryogeo/internal/engine"
	"github.com/vk/cryogeo/internal/material"
	"github.com/vk/cryogeo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcome of an assembly run.
type HarnessResult struct {
	LogOutput string
	Err       error
	Result    *engine.Result
}

// Assemble runs the engine in strict mode over builders, with world as the
// root. The registry holds exactly the given modules.
func Assemble(t *testing.T, world string, builders []*config.BuilderDecl, modules ...registry.Module) *HarnessResult {
	t.Helper()

	logBuffer := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logBuffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)
	t.Cleanup(func() {
		if os.Getenv("GEO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	reg := registry.New()
	for _, m := range modules {
		m.Register(reg)
	}
	require.NoError(t, reg.ValidateRegistry(ctx), "modules under test must pass registry validation")

	mats := material.NewRegistry()
	require.NoError(t, material.Standard(mats))

	model := &config.Model{World: world, Builders: builders}
	res, err := engine.Assemble(ctx, model, reg, engine.Options{Strict: true, Materials: mats})
	return &HarnessResult{LogOutput: logBuffer.String(), Err: err, Result: res}
}

// Decl is shorthand for a builder declaration with positional sub-builders.
func Decl(kind, name string, subs ...string) *config.BuilderDecl {
	return &config.BuilderDecl{Kind: kind, Name: name, SubBuilders: subs, Source: "test"}
}

// With returns d with the given option set. Go values are converted with
// Value.
func With(d *config.BuilderDecl, name string, v any) *config.BuilderDecl {
	if d.Options == nil {
		d.Options = make(map[string]cty.Value)
	}
	d.Options[name] = Value(v)
	return d
}

// Slot returns d with role bound to target.
func Slot(d *config.BuilderDecl, role, target string) *config.BuilderDecl {
	if d.Slots == nil {
		d.Slots = make(map[string]string)
	}
	d.Slots[role] = target
	return d
}

// Value converts the Go scalars and slices used in tests to cty values.
func Value(v any) cty.Value {
	switch x := v.(type) {
	case cty.Value:
		return x
	case string:
		return cty.StringVal(x)
	case int:
		return cty.NumberIntVal(int64(x))
	case float64:
		return cty.NumberFloatVal(x)
	case bool:
		return cty.BoolVal(x)
	case []string:
		vals := make([]cty.Value, len(x))
		for i, s := range x {
			vals[i] = cty.StringVal(s)
		}
		return cty.TupleVal(vals)
	case []float64:
		vals := make([]cty.Value, len(x))
		for i, f := range x {
			vals[i] = cty.NumberFloatVal(f)
		}
		return cty.TupleVal(vals)
	}
	panic("testutil: unsupported option value type")
}
