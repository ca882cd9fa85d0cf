package cage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/testutil"
	"github.com/vk/cryogeo/modules/world"
)

func TestCage_Kinds(t *testing.T) {
	const wall = 0.006 * 25.4

	testCases := []struct {
		kind  string
		outer geom.Vec3
		inner geom.Vec3
	}{
		{
			kind:  "field_cage",
			outer: geom.V(900, 1145, 1040),
			inner: geom.V(900-wall, 1145+wall, 1040-wall),
		},
		{
			kind:  "cage",
			outer: geom.V(127, 1001.05, 794.25),
			inner: geom.V(127+wall, 1001.05-wall, 794.25-wall),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.kind, func(t *testing.T) {
			// Act
			r := testutil.Assemble(t, "Cage", []*config.BuilderDecl{testutil.Decl(tc.kind, "Cage")}, &Module{})

			// Assert
			vol := testutil.RequireVolume(t, r, "Cage_volume")
			assert.Equal(t, "FieldCage", vol.Material())
			shape, ok := vol.Shape().(*geom.Boolean)
			require.True(t, ok, "cage shape must be a boolean")
			assert.Equal(t, "Cage_shape", shape.Name())
			assert.Equal(t, geom.Subtraction, shape.Op())
			assert.Equal(t, "Cage_outer_shape", shape.First().Name())
			assert.Equal(t, "Cage_inner_shape", shape.Second().Name())
			assert.True(t, shape.First().Extents().ApproxEqual(tc.outer, 1e-9), "outer %s", shape.First().Extents())
			assert.True(t, shape.Second().Extents().ApproxEqual(tc.inner, 1e-9), "inner %s", shape.Second().Extents())

			_, ok = r.Result.Store.Shape("Cage_inner_shape")
			assert.True(t, ok, "operands are registered")
		})
	}
}

func TestCage_HoldsContentInItsBore(t *testing.T) {
	// Arrange
	builders := []*config.BuilderDecl{
		testutil.With(testutil.Decl("world", "World", "Cage", "Core"), "size", 200),
		testutil.With(testutil.With(testutil.With(testutil.Decl("field_cage", "Cage"),
			"width", 100), "length", 100), "height", 100),
		// Pokes out of both open ends but stays clear of the walls.
		testutil.BlockDecl("Core", 49, 60, 49),
	}

	// Act
	r := testutil.Assemble(t, "World", builders, &Module{}, &world.Module{}, &testutil.BlockModule{})

	// Assert
	require.NoError(t, r.Err)
	cage := testutil.RequireVolume(t, r, "Cage_volume")
	assert.Equal(t, geom.V(50, 50, 50), cage.Extents())
	testutil.RequireClean(t, r)
}

func TestCage_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		decl   *config.BuilderDecl
		errMsg string
	}{
		{
			name:   "wall swallows the cage",
			decl:   testutil.With(testutil.Decl("cage", "Cage"), "thickness", "2 m"),
			errMsg: `parameter "thickness"`,
		},
		{
			name:   "no wall",
			decl:   testutil.With(testutil.Decl("field_cage", "Cage"), "thickness", 0),
			errMsg: `parameter "thickness"`,
		},
		{
			name:   "flat cage",
			decl:   testutil.With(testutil.Decl("field_cage", "Cage"), "height", 0),
			errMsg: "dimensions must be positive",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			r := testutil.Assemble(t, "Cage", []*config.BuilderDecl{tc.decl}, &Module{})

			// Assert
			require.Error(t, r.Err)
			assert.ErrorIs(t, r.Err, geoerr.ErrInvalidGeometry)
			assert.Contains(t, r.Err.Error(), tc.errMsg)
		})
	}
}
