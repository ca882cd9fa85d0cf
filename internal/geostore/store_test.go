package geostore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cryogeo/internal/geom"
)

func mustBox(t *testing.T, name string) *geom.Box {
	t.Helper()
	b, err := geom.NewBox(name, geom.V(1, 1, 1))
	require.NoError(t, err)
	return b
}

func TestAddAndGetShape(t *testing.T) {
	s := New()
	box := mustBox(t, "a_shape")

	require.NoError(t, s.AddShape(box))
	require.NoError(t, s.AddShape(box), "re-adding the same shape is idempotent")

	got, ok := s.Shape("a_shape")
	require.True(t, ok)
	assert.Same(t, box, got)

	err := s.AddShape(mustBox(t, "a_shape"))
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestAddShape_BooleanOperandsFirst(t *testing.T) {
	s := New()
	outer := mustBox(t, "outer")
	inner := mustBox(t, "inner")
	tube, err := geom.NewBoolean("tube", geom.Subtraction, outer, inner)
	require.NoError(t, err)

	require.ErrorIs(t, s.AddShape(tube), ErrUnregistered)

	require.NoError(t, s.AddShape(outer))
	require.NoError(t, s.AddShape(inner))
	require.NoError(t, s.AddShape(tube))

	names := make([]string, 0, 3)
	for _, sh := range s.Shapes() {
		names = append(names, sh.Name())
	}
	assert.Equal(t, []string{"outer", "inner", "tube"}, names)
}

func TestAddVolume(t *testing.T) {
	s := New()
	box := mustBox(t, "box")
	child, _ := geom.NewVolume("child", box, "Air")

	require.ErrorIs(t, s.AddVolume(child), ErrUnregistered, "shape must be registered first")
	require.NoError(t, s.AddShape(box))

	parent, _ := geom.NewVolume("parent", box, "Air", geom.Placement{Volume: child})
	require.ErrorIs(t, s.AddVolume(parent), ErrUnregistered, "child must be registered first")

	require.NoError(t, s.AddVolume(child))
	require.NoError(t, s.AddVolume(parent))

	other, _ := geom.NewVolume("child", box, "Air")
	require.ErrorIs(t, s.AddVolume(other), ErrDuplicate)

	v, ok := s.Volume("parent")
	require.True(t, ok)
	assert.Same(t, parent, v)
	assert.Len(t, s.Volumes(), 2)
}

func TestUnreachable(t *testing.T) {
	s := New()
	box := mustBox(t, "box")
	require.NoError(t, s.AddShape(box))

	leaf, _ := geom.NewVolume("leaf", box, "Air")
	stray, _ := geom.NewVolume("stray", box, "Air")
	root, _ := geom.NewVolume("root", box, "Air", geom.Placement{Volume: leaf})
	for _, v := range []*geom.Volume{leaf, stray, root} {
		require.NoError(t, s.AddVolume(v))
	}

	assert.Equal(t, []string{"stray"}, s.Unreachable(root))
}
