package cryostat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/testutil"
)

func TestCryostat_OnionLayers(t *testing.T) {
	// Arrange
	builders := []*config.BuilderDecl{
		testutil.Slot(testutil.Decl("onion_cryostat", "Cryostat"), DetectorSlot, "Det"),
		testutil.BlockDecl("Det", 1000, 1500, 1000),
	}

	// Act
	r := testutil.Assemble(t, "Cryostat", builders, &Module{}, &testutil.BlockModule{})

	// Assert
	require.NoError(t, r.Err)
	layers := []struct {
		name     string
		half     geom.Vec3
		material string
		child    string
	}{
		{"Cryostat_shell_volume", geom.V(2052, 2702, 2052), "Concrete", "Cryostat_insulation_volume"},
		{"Cryostat_insulation_volume", geom.V(1752, 2402, 1752), "Foam", "Cryostat_membrane_volume"},
		{"Cryostat_membrane_volume", geom.V(1352, 2002, 1352), "Stainless", "Cryostat_bulk_volume"},
		{"Cryostat_bulk_volume", geom.V(1350, 2000, 1350), "LiquidArgon", "Det_volume"},
	}
	for _, l := range layers {
		v := testutil.RequireVolume(t, r, l.name)
		assert.True(t, v.Extents().ApproxEqual(l.half, 1e-9), "%s: got %s, want %s", l.name, v.Extents(), l.half)
		assert.Equal(t, l.material, v.Material())
		require.Equal(t, 1, v.NumPlacements(), l.name)
		p := testutil.PlacementOf(t, v, l.child)
		assert.Equal(t, l.child+"_in_"+l.name, p.Name)
		assert.Equal(t, geom.Vec3{}, p.Position)
	}

	vols, err := r.Result.Instances["Cryostat"].Volumes()
	require.NoError(t, err)
	require.Len(t, vols, 1, "only the outer shell is exposed")
	assert.Equal(t, "Cryostat_shell_volume", vols[0].Name())
	testutil.RequireClean(t, r)
}

func TestCryostat_DetectorFromFirstSubBuilder(t *testing.T) {
	// Arrange
	builders := []*config.BuilderDecl{
		testutil.Decl("onion_cryostat", "Cryostat", "Det"),
		testutil.BlockDecl("Det", 100, 100, 100),
	}

	// Act
	r := testutil.Assemble(t, "Cryostat", builders, &Module{}, &testutil.BlockModule{})

	// Assert
	bulk := testutil.RequireVolume(t, r, "Cryostat_bulk_volume")
	testutil.PlacementOf(t, bulk, "Det_volume")
}

func TestCryostat_EmptyBulk(t *testing.T) {
	// Act
	r := testutil.Assemble(t, "Cryostat", []*config.BuilderDecl{testutil.Decl("onion_cryostat", "Cryostat")}, &Module{})

	// Assert
	bulk := testutil.RequireVolume(t, r, "Cryostat_bulk_volume")
	assert.Zero(t, bulk.NumPlacements())
	testutil.RequireLogged(t, r, "Cryostat has no detector")
}

func TestCryostat_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		decl   *config.BuilderDecl
		kind   error
		errMsg string
	}{
		{
			name:   "missing foam",
			decl:   testutil.With(testutil.Decl("onion_cryostat", "Cryostat"), "foam_thickness", 0),
			kind:   geoerr.ErrInvalidGeometry,
			errMsg: `parameter "foam_thickness"`,
		},
		{
			name:   "shells thicker than the container",
			decl:   testutil.With(testutil.Decl("onion_cryostat", "Cryostat"), "concrete_thickness", "3 m"),
			kind:   geoerr.ErrInvalidGeometry,
			errMsg: "layer 0",
		},
		{
			name: "detector larger than the bulk",
			decl: testutil.Slot(
				testutil.Decl("onion_cryostat", "Cryostat"), DetectorSlot, "Det"),
			kind:   geoerr.ErrVerification,
			errMsg: "Det_volume_in_Cryostat_bulk_volume extrudes",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			builders := []*config.BuilderDecl{tc.decl, testutil.BlockDecl("Det", 1351, 10, 10)}

			// Act
			r := testutil.Assemble(t, "Cryostat", builders, &Module{}, &testutil.BlockModule{})

			// Assert
			require.Error(t, r.Err)
			assert.ErrorIs(t, r.Err, tc.kind)
			assert.Contains(t, r.Err.Error(), tc.errMsg)
		})
	}
}

func TestNew_Halves(t *testing.T) {
	// Arrange
	opts := &Options{Width: 200, Length: 300, Height: 400, ConcreteThickness: 10, FoamThickness: 20, MembraneThickness: 1}

	// Act
	c, err := New(opts)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []geom.Vec3{
		geom.V(100, 150, 200),
		geom.V(90, 140, 190),
		geom.V(70, 120, 170),
		geom.V(69, 119, 169),
	}, c.Halves())
}
