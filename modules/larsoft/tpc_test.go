package larsoft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/testutil"
)

func TestTPC_Sizes(t *testing.T) {
	testCases := []struct {
		name string
		decl *config.BuilderDecl
		half geom.Vec3
	}{
		{
			name: "code from the name",
			decl: testutil.Decl("larsoft_tpc", "TPC_ML"),
			half: geom.V(1142.215, 572.5, 267.45),
		},
		{
			name: "lower case suffix",
			decl: testutil.Decl("larsoft_tpc", "TPC_ss"),
			half: geom.V(142.215, 432.5, 267.45),
		},
		{
			name: "explicit code wins over the name",
			decl: testutil.With(testutil.Decl("larsoft_tpc", "TPC_SS"), "code", "LL"),
			half: geom.V(1142.215, 980, 267.45),
		},
		{
			name: "explicit size overrides the code",
			decl: testutil.With(testutil.Decl("larsoft_tpc", "TPC_LS"), "x", "30 cm"),
			half: geom.V(150, 980, 267.45),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			r := testutil.Assemble(t, tc.decl.Name, []*config.BuilderDecl{tc.decl}, &Module{})

			// Assert
			vol := testutil.RequireVolume(t, r, tc.decl.Name+"_volume")
			assert.True(t, vol.Extents().ApproxEqual(tc.half, 1e-9), "got %s, want %s", vol.Extents(), tc.half)
		})
	}
}

func TestTPC_Errors(t *testing.T) {
	testCases := []struct {
		name string
		decl *config.BuilderDecl
	}{
		{name: "bad name suffix", decl: testutil.Decl("larsoft_tpc", "TPC_XL")},
		{name: "no suffix", decl: testutil.Decl("larsoft_tpc", "Cell")},
		{name: "bad explicit code", decl: testutil.With(testutil.Decl("larsoft_tpc", "TPC_SS"), "code", "SM")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			r := testutil.Assemble(t, tc.decl.Name, []*config.BuilderDecl{tc.decl}, &Module{})

			// Assert
			require.Error(t, r.Err)
			assert.ErrorIs(t, r.Err, geoerr.ErrInvalidGeometry)
			assert.Contains(t, r.Err.Error(), `parameter "code"`)
			assert.Contains(t, r.Err.Error(), "[SML][SL]")
		})
	}
}

func TestParseCode(t *testing.T) {
	h, d, err := ParseCode("mL")
	require.NoError(t, err)
	assert.Equal(t, byte('M'), h)
	assert.Equal(t, byte('L'), d)

	_, _, err = ParseCode("SML")
	assert.Error(t, err)
}
