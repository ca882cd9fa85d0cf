package hcl

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/ctxlog"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/zclconf/go-cty/cty"
)

var ctyComparer = cmp.Comparer(func(a, b cty.Value) bool { return a.RawEquals(b) })

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoader_Load(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	file := writeFile(t, dir, "detector.hcl", `
world = "World"

builder "world" "World" {
  subbuilders = ["Cryostat"]
  options {
    material = "Air"
  }
}

builder "onion_cryostat" "Cryostat" {
  slots {
    cage = "Cage"
  }
  options {
    dx     = 2*m
    layers = [1*cm, q("2 inch"), 0]
  }
}
`)

	// Act
	model, conv, err := NewLoader().Load(testCtx(), dir)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, conv)
	want := &config.Model{
		World: "World",
		Builders: []*config.BuilderDecl{
			{
				Kind:        "world",
				Name:        "World",
				SubBuilders: []string{"Cryostat"},
				Options:     map[string]cty.Value{"material": cty.StringVal("Air")},
				Source:      file,
			},
			{
				Kind:  "onion_cryostat",
				Name:  "Cryostat",
				Slots: map[string]string{"cage": "Cage"},
				Options: map[string]cty.Value{
					"dx":     cty.NumberIntVal(2000),
					"layers": cty.TupleVal([]cty.Value{cty.NumberIntVal(10), cty.NumberFloatVal(50.8), cty.NumberIntVal(0)}),
				},
				Source: file,
			},
		},
	}
	if diff := cmp.Diff(want, model, ctyComparer); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_MergesFiles(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", `world = "W"
builder "world" "W" {}`)
	writeFile(t, dir, "b.hcl", `builder "matter" "M" {}`)

	// Act
	model, _, err := NewLoader().Load(testCtx(), dir)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "W", model.World)
	require.Len(t, model.Builders, 2)
	assert.Equal(t, "M", model.Builders[1].Name)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "syntax error",
			content: `builder "world" {`,
			errMsg:  "failed to parse HCL file",
		},
		{
			name:    "unknown top-level attribute",
			content: `planet = "Earth"`,
			errMsg:  "failed to decode HCL file",
		},
		{
			name:    "missing name label",
			content: `builder "world" {}`,
			errMsg:  "failed to decode HCL file",
		},
		{
			name: "unknown unit variable",
			content: `builder "world" "W" {
  options {
    dx = 3*parsec
  }
}`,
			errMsg: `builder "W" (parameter "dx")`,
		},
		{
			name: "bad quantity string",
			content: `builder "world" "W" {
  options {
    dx = q("3 furlong")
  }
}`,
			errMsg: `parameter "dx"`,
		},
		{
			name: "duplicate builder",
			content: `builder "world" "W" {}
builder "matter" "W" {}`,
			errMsg: "declared twice",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			dir := t.TempDir()
			writeFile(t, dir, "bad.hcl", tc.content)

			// Act
			_, _, err := NewLoader().Load(testCtx(), dir)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, geoerr.ErrConfig)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLoader_MissingPath(t *testing.T) {
	_, _, err := NewLoader().Load(testCtx(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	assert.ErrorIs(t, err, geoerr.ErrConfig)
}
