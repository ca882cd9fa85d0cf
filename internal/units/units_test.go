package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		value   float64
		dim     Dimension
		wantErr error
	}{
		{name: "millimetres", in: "4104 mm", value: 4104, dim: DimLength},
		{name: "inches", in: "2.94 inch", value: 74.676, dim: DimLength},
		{name: "no space", in: "1.8m", value: 1800, dim: DimLength},
		{name: "centimetres negative", in: "-100 cm", value: -1000, dim: DimLength},
		{name: "exponent", in: "1e3 mm", value: 1000, dim: DimLength},
		{name: "density g/cc", in: "1.40 g/cc", value: 1.40, dim: DimDensity},
		{name: "density kg/m^3", in: "32 kg/m^3", value: 0.032, dim: DimDensity},
		{name: "molar mass", in: "55.8450 g/mole", value: 55.845, dim: DimMolarMass},
		{name: "angle", in: "90 degree", value: 90, dim: DimAngle},
		{name: "bare number", in: "12.5", value: 12.5, dim: Dimensionless},
		{name: "empty", in: "  ", wantErr: ErrBadQuantity},
		{name: "no number", in: "mm", wantErr: ErrBadQuantity},
		{name: "unknown unit", in: "3 furlong", wantErr: ErrUnknownUnit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := Parse(tc.in)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.value, q.Value, 1e-9)
			assert.Equal(t, tc.dim, q.Dim)
		})
	}
}

func TestParseLength_WrongDimension(t *testing.T) {
	_, err := ParseLength("1.4 g/cc")
	require.ErrorIs(t, err, ErrWrongDimension)

	l, err := ParseLength("0.006 inch")
	require.NoError(t, err)
	assert.InDelta(t, 0.1524, l.Float(), 1e-12)

	bare, err := ParseLength("300")
	require.NoError(t, err)
	assert.Equal(t, Length(300), bare)
}

func TestParseDensityAndAngle(t *testing.T) {
	d, err := ParseDensity("7.93 g/cm3")
	require.NoError(t, err)
	assert.InDelta(t, 7.93, float64(d), 1e-12)

	a, err := ParseAngle("180 deg")
	require.NoError(t, err)
	assert.Equal(t, Angle(180), a)

	_, err = ParseAngle("3 mm")
	require.ErrorIs(t, err, ErrWrongDimension)
}
