package yamlcfg

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
	file := writeFile(t, dir, "larsoft.yaml", `
world: World
builders:
  - kind: world
    name: World
    subbuilders: [Cryostat]
  - kind: larsoft_cryostat
    name: Cryostat
    slots:
      SS: TPC_SS
    options:
      gap: "1 cm"
      layers: [10, 2.5, "0 mm"]
      flip: true
      material: ~
`)

	// Act
	model, conv, err := NewLoader().Load(testCtx(), dir)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, conv)
	want := &config.Model{
		World: "World",
		Builders: []*config.BuilderDecl{
			{Kind: "world", Name: "World", SubBuilders: []string{"Cryostat"}, Source: file},
			{
				Kind:  "larsoft_cryostat",
				Name:  "Cryostat",
				Slots: map[string]string{"SS": "TPC_SS"},
				Options: map[string]cty.Value{
					"gap":      cty.StringVal("1 cm"),
					"layers":   cty.TupleVal([]cty.Value{cty.NumberIntVal(10), cty.NumberFloatVal(2.5), cty.StringVal("0 mm")}),
					"flip":     cty.True,
					"material": cty.NullVal(cty.DynamicPseudoType),
				},
				Source: file,
			},
		},
	}
	if diff := cmp.Diff(want, model, ctyComparer); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.yml", "")

	model, _, err := NewLoader().Load(testCtx(), dir)

	require.NoError(t, err)
	assert.Empty(t, model.Builders)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "unknown field",
			content: "builders:\n  - kind: world\n    name: W\n    colour: red\n",
			errMsg:  "failed to decode YAML file",
		},
		{
			name:    "missing kind",
			content: "builders:\n  - name: W\n",
			errMsg:  "has no kind",
		},
		{
			name:    "duplicate builder",
			content: "builders:\n  - {kind: world, name: W}\n  - {kind: matter, name: W}\n",
			errMsg:  "declared twice",
		},
		{
			name:    "malformed document",
			content: "builders: [\n",
			errMsg:  "failed to decode YAML file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			dir := t.TempDir()
			writeFile(t, dir, "bad.yaml", tc.content)

			// Act
			_, _, err := NewLoader().Load(testCtx(), dir)

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, geoerr.ErrConfig)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}
