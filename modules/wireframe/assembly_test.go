package wireframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/testutil"
)

// frames declares the three frames of the 35t anode plane.
func frames() []*config.BuilderDecl {
	return []*config.BuilderDecl{
		testutil.With(testutil.With(testutil.Decl("wire_frame_one", "Small"), "height", 865), "ncrosses", 1),
		testutil.With(testutil.With(testutil.Decl("wire_frame_one", "Medium"), "height", "1145.8 mm"), "ncrosses", 1),
		testutil.Decl("wire_frame_one", "Large"),
	}
}

func assembly() *config.BuilderDecl {
	d := testutil.Decl("wire_frame", "APA")
	testutil.Slot(d, SlotSmall, "Small")
	testutil.Slot(d, SlotMedium, "Medium")
	testutil.Slot(d, SlotLarge, "Large")
	return d
}

func TestAssembly_Layout(t *testing.T) {
	// Arrange
	builders := append([]*config.BuilderDecl{assembly()}, frames()...)

	// Act
	r := testutil.Assemble(t, "APA", builders, &Module{})

	// Assert
	apa := testutil.RequireVolume(t, r, "APA_volume")
	assert.True(t, apa.Extents().ApproxEqual(geom.V(25.4, 1018.1, 781.4), 1e-9), "envelope %s", apa.Extents())

	want := map[string][]geom.Vec3{
		"Small_volume":  {geom.V(0, -585.6, 0)},
		"Medium_volume": {geom.V(0, 445.2, 0)},
		"Large_volume":  {geom.V(0, 0, -529.4), geom.V(0, 0, 529.4)},
	}
	for child, positions := range want {
		got := testutil.PlacementsOf(apa, child)
		require.Len(t, got, len(positions), child)
		for i, p := range got {
			assert.True(t, p.Position.ApproxEqual(positions[i], 1e-9), "%s: got %s, want %s", p.Name, p.Position, positions[i])
		}
	}
	testutil.RequireClean(t, r)
}

func TestAssembly_OffsetsWidenTheEnvelope(t *testing.T) {
	// Arrange
	decl := testutil.With(assembly(), "y_offset_ll", "10 mm")
	builders := append([]*config.BuilderDecl{decl}, frames()...)

	// Act
	r := testutil.Assemble(t, "APA", builders, &Module{})

	// Assert
	apa := testutil.RequireVolume(t, r, "APA_volume")
	assert.InDelta(t, 1028.1, apa.Extents().Y, 1e-9)
	for _, p := range testutil.PlacementsOf(apa, "Large_volume") {
		assert.InDelta(t, 10, p.Position.Y, 1e-12)
	}
	testutil.RequireClean(t, r)
}

func TestAssembly_LargeFramesClearTheDeeperFrame(t *testing.T) {
	// Arrange
	builders := append([]*config.BuilderDecl{assembly()}, frames()...)
	testutil.With(builders[2], "width", "600 mm")

	// Act
	r := testutil.Assemble(t, "APA", builders, &Module{})

	// Assert
	apa := testutil.RequireVolume(t, r, "APA_volume")
	large := testutil.PlacementsOf(apa, "Large_volume")
	require.Len(t, large, 2)
	assert.InDelta(t, -577.4, large[0].Position.Z, 1e-9)
	assert.InDelta(t, 577.4, large[1].Position.Z, 1e-9)
	assert.InDelta(t, 829.4, apa.Extents().Z, 1e-9)
	testutil.RequireClean(t, r)
}

func TestAssembly_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		decl   *config.BuilderDecl
		kind   error
		errMsg string
	}{
		{
			name:   "negative gap",
			decl:   testutil.With(assembly(), "z_gap", -1),
			kind:   geoerr.ErrInvalidGeometry,
			errMsg: `parameter "z_gap"`,
		},
		{
			name:   "slot bound to a missing builder",
			decl:   testutil.Slot(assembly(), SlotLarge, "Huge"),
			kind:   geoerr.ErrUnresolvedReference,
			errMsg: `"Huge" not found`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			builders := append([]*config.BuilderDecl{tc.decl}, frames()...)

			// Act
			r := testutil.Assemble(t, "APA", builders, &Module{})

			// Assert
			require.Error(t, r.Err)
			assert.ErrorIs(t, r.Err, tc.kind)
			assert.Contains(t, r.Err.Error(), tc.errMsg)
		})
	}
}
