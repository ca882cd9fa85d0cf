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

func TestFrame_DefaultLadder(t *testing.T) {
	// Act
	r := testutil.Assemble(t, "Frame", []*config.BuilderDecl{testutil.Decl("wire_frame_one", "Frame")}, &Module{})

	// Assert
	frame := testutil.RequireVolume(t, r, "Frame_volume")
	assert.True(t, frame.Extents().ApproxEqual(geom.V(25.4, 1018.1, 252), 1e-9), "envelope %s", frame.Extents())
	assert.Equal(t, "LiquidArgon", frame.Material())

	type placed struct {
		pos geom.Vec3
		rot geom.Rotation
	}
	want := map[string][]placed{
		"Frame_long_side_volume":  {{geom.V(0, 0, 201.2), geom.Rotation{X: 90}}, {geom.V(0, 0, -201.2), geom.Rotation{X: 90}}},
		"Frame_short_side_volume": {{geom.V(0, 967.3, 0), geom.Rotation{}}, {geom.V(0, -967.3, 0), geom.Rotation{}}},
		"Frame_cross1_volume":     {{geom.V(0, 318.2, 0), geom.Rotation{}}},
		"Frame_cross2_volume":     {{geom.V(0, -318.2, 0), geom.Rotation{}}},
	}
	require.Equal(t, 6, frame.NumPlacements())
	for child, places := range want {
		got := testutil.PlacementsOf(frame, child)
		require.Len(t, got, len(places), child)
		for i, p := range got {
			assert.True(t, p.Position.ApproxEqual(places[i].pos, 1e-9), "%s: got %s", p.Name, p.Position)
			assert.Equal(t, places[i].rot, p.Rotation, p.Name)
		}
	}

	long := testutil.RequireVolume(t, r, "Frame_long_side_volume")
	assert.Equal(t, "Stainless", long.Material())
	tube, ok := long.Shape().(*geom.Boolean)
	require.True(t, ok)
	assert.True(t, tube.First().Extents().ApproxEqual(geom.V(25.4, 50.8, 1018.1), 1e-9))
	assert.True(t, tube.Second().Extents().ApproxEqual(geom.V(22.35, 47.75, 1021.15), 1e-9),
		"the cut runs past both ends: %s", tube.Second().Extents())

	testutil.RequireClean(t, r)
}

func TestFrame_ExplicitCrossCenters(t *testing.T) {
	// Arrange
	decl := testutil.With(testutil.Decl("wire_frame_one", "Frame"), "cross_centers", []float64{400, 0, -400})

	// Act
	r := testutil.Assemble(t, "Frame", []*config.BuilderDecl{decl}, &Module{})

	// Assert
	frame := testutil.RequireVolume(t, r, "Frame_volume")
	for i, y := range []float64{400, 0, -400} {
		name := []string{"Frame_cross1_volume", "Frame_cross2_volume", "Frame_cross3_volume"}[i]
		p := testutil.PlacementOf(t, frame, name)
		assert.Equal(t, geom.V(0, y, 0), p.Position)
	}
	testutil.RequireClean(t, r)
}

func TestNewFrame_CrossCenters(t *testing.T) {
	// Arrange
	opts := &FrameOptions{
		BarWidth: 10, BarThickness: 1, Crosses: 3, CrossGap: 20, CrossWidth: 4,
		Thickness: 5, Height: 200, Width: 50,
	}

	// Act
	f, err := NewFrame(opts)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []float64{68, 44, 20}, f.CrossCenters())
}

func TestFrame_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		opt    string
		value  any
		errMsg string
	}{
		{name: "too many crosses", opt: "ncrosses", value: 5, errMsg: `parameter "ncrosses"`},
		{name: "negative crosses", opt: "ncrosses", value: -1, errMsg: `parameter "ncrosses"`},
		{name: "bars fill the width", opt: "bar_width", value: "300 mm", errMsg: `parameter "width"`},
		{name: "cross outside the frame", opt: "cross_centers", value: []float64{950}, errMsg: `parameter "cross_centers"`},
		{name: "walls thicker than the bar", opt: "bar_thickness", value: "30 mm", errMsg: `parameter "bar_thickness"`},
		{name: "zero height", opt: "height", value: 0, errMsg: `parameter "height"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			decl := testutil.With(testutil.Decl("wire_frame_one", "Frame"), tc.opt, tc.value)

			// Act
			r := testutil.Assemble(t, "Frame", []*config.BuilderDecl{decl}, &Module{})

			// Assert
			require.Error(t, r.Err)
			assert.ErrorIs(t, r.Err, geoerr.ErrInvalidGeometry)
			assert.Contains(t, r.Err.Error(), `builder "Frame"`)
			assert.Contains(t, r.Err.Error(), tc.errMsg)
		})
	}
}
