package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/overlap"
)

// RequireVolume fetches a registered volume by name from a successful run.
func RequireVolume(t *testing.T, r *HarnessResult, name string) *geom.Volume {
	t.Helper()
	require.NoError(t, r.Err)
	v, ok := r.Result.Store.Volume(name)
	require.True(t, ok, "volume %q not registered", name)
	return v
}

// RequireClean checks the whole tree for overlaps and extrusions.
func RequireClean(t *testing.T, r *HarnessResult) {
	t.Helper()
	require.NoError(t, r.Err)
	require.NoError(t, overlap.Check(r.Result.Root, overlap.DefaultTolerance).Err())
}

// RequireLogged confirms that the log output mentions substr.
func RequireLogged(t *testing.T, r *HarnessResult, substr string) {
	t.Helper()
	require.True(t, strings.Contains(r.LogOutput, substr), "expected %q in log output", substr)
}

// PlacementOf finds the placement of child in parent by child volume name.
// It fails the test when there is not exactly one.
func PlacementOf(t *testing.T, parent *geom.Volume, child string) geom.Placement {
	t.Helper()
	var found []geom.Placement
	for _, p := range parent.Placements() {
		if p.Volume.Name() == child {
			found = append(found, p)
		}
	}
	require.Len(t, found, 1, "placements of %q in %q", child, parent.Name())
	return found[0]
}

// PlacementsOf returns every placement of child in parent.
func PlacementsOf(parent *geom.Volume, child string) []geom.Placement {
	var found []geom.Placement
	for _, p := range parent.Placements() {
		if p.Volume.Name() == child {
			found = append(found, p)
		}
	}
	return found
}
