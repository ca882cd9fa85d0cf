package ctydecode

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cryogeo/internal/ctxlog"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/units"
	"github.com/zclconf/go-cty/cty"
)

type cryostatOptions struct {
	Dx       units.Length   `geo:"dx"`
	Density  units.Density  `geo:"density"`
	Material string         `geo:"material"`
	Layers   []units.Length `geo:"layers"`
	NCross   int            `geo:"ncrosses"`
	Flip     bool           `geo:"flip"`
	Tilt     units.Angle    `geo:"tilt"`
	Names    []string       `geo:"names"`
	Skipped  string         `geo:"-"`
	hidden   int
}

func defaults() *cryostatOptions {
	return &cryostatOptions{Dx: 4104, Material: "Air", NCross: 2}
}

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDecodeOptions(t *testing.T) {
	// Arrange
	opts := map[string]cty.Value{
		"density":  cty.StringVal("32 kg/m^3"),
		"material": cty.StringVal("Foam"),
		"layers":   cty.TupleVal([]cty.Value{cty.StringVal("300 mm"), cty.NumberFloatVal(400), cty.StringVal("0.5 cm")}),
		"ncrosses": cty.StringVal("5"),
		"flip":     cty.True,
		"tilt":     cty.StringVal("90 deg"),
		"names":    cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
	}
	target := defaults()

	// Act
	err := NewConverter().DecodeOptions(testCtx(), target, opts, "Cryostat")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, units.Length(4104), target.Dx, "defaults are kept for options not given")
	assert.InDelta(t, 0.032, float64(target.Density), 1e-12)
	assert.Equal(t, "Foam", target.Material)
	assert.Equal(t, []units.Length{300, 400, 5}, target.Layers)
	assert.Equal(t, 5, target.NCross, "numeric strings convert to numbers")
	assert.True(t, target.Flip)
	assert.Equal(t, units.Angle(90), target.Tilt)
	assert.Equal(t, []string{"a", "b"}, target.Names)
}

func TestDecodeOptions_NumberForUnitField(t *testing.T) {
	target := defaults()
	err := NewConverter().DecodeOptions(testCtx(), target, map[string]cty.Value{
		"dx": cty.NumberFloatVal(74.676),
	}, "CPA")
	require.NoError(t, err)
	assert.InDelta(t, 74.676, float64(target.Dx), 1e-12)
}

func TestDecodeOptions_NullKeepsDefault(t *testing.T) {
	target := defaults()
	err := NewConverter().DecodeOptions(testCtx(), target, map[string]cty.Value{
		"material": cty.NullVal(cty.String),
	}, "X")
	require.NoError(t, err)
	assert.Equal(t, "Air", target.Material)
}

func TestDecodeOptions_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		opts    map[string]cty.Value
		wantErr error
		param   string
	}{
		{
			name:    "unknown option",
			opts:    map[string]cty.Value{"foam_thicknes": cty.NumberIntVal(400)},
			wantErr: geoerr.ErrUnknownParameter,
			param:   "foam_thicknes",
		},
		{
			name:    "skipped field is not an option",
			opts:    map[string]cty.Value{"-": cty.StringVal("x")},
			wantErr: geoerr.ErrUnknownParameter,
		},
		{
			name:    "wrong dimension",
			opts:    map[string]cty.Value{"dx": cty.StringVal("1.4 g/cc")},
			wantErr: units.ErrWrongDimension,
			param:   "dx",
		},
		{
			name:    "unknown unit",
			opts:    map[string]cty.Value{"dx": cty.StringVal("3 furlong")},
			wantErr: units.ErrUnknownUnit,
			param:   "dx",
		},
		{
			name:    "wrong type",
			opts:    map[string]cty.Value{"flip": cty.StringVal("sometimes")},
			wantErr: geoerr.ErrConfig,
			param:   "flip",
		},
		{
			name:    "list expected",
			opts:    map[string]cty.Value{"layers": cty.NumberIntVal(3)},
			wantErr: geoerr.ErrConfig,
			param:   "layers",
		},
		{
			name:    "unknown value",
			opts:    map[string]cty.Value{"dx": cty.UnknownVal(cty.Number)},
			wantErr: geoerr.ErrConfig,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewConverter().DecodeOptions(testCtx(), defaults(), tc.opts, "Cryostat")
			require.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), `builder "Cryostat"`)
			if tc.param != "" {
				assert.Contains(t, err.Error(), `parameter "`+tc.param+`"`)
			}
		})
	}
}

func TestOptionFields(t *testing.T) {
	fields, err := OptionFields(defaults())
	require.NoError(t, err)
	require.Len(t, fields, 8)
	assert.Equal(t, "dx", fields[0].Name)
	assert.True(t, fields[0].Type.Equals(cty.Number))
	assert.True(t, fields[3].Type.Equals(cty.List(cty.Number)))

	assert.Equal(t, []string{"density", "dx", "flip", "layers", "material", "names", "ncrosses", "tilt"}, OptionNames(defaults()))

	_, err = OptionFields(cryostatOptions{})
	require.ErrorContains(t, err, "non-nil pointer")
}
