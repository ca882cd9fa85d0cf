package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_OverwriteByName(t *testing.T) {
	reg := NewRegistry()

	replaced, err := reg.Define(&Element{Name: "argon", Symbol: "Ar", Z: 18, MolarMass: 39.948})
	require.NoError(t, err)
	assert.False(t, replaced)
	_, err = reg.Define(&Element{Name: "neon", Symbol: "Ne", Z: 10, MolarMass: 20.18})
	require.NoError(t, err)

	replaced, err = reg.Define(&Mixture{Name: "argon", Density: 1.4, Components: []Component{{"neon", 1}}})
	require.NoError(t, err)
	assert.True(t, replaced)

	m, err := reg.Lookup("argon")
	require.NoError(t, err)
	assert.Equal(t, KindMixture, m.Kind())
	// The replaced name keeps its original position.
	assert.Equal(t, []string{"argon", "neon"}, reg.Names())
}

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Lookup("Unobtainium")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_DefineValidation(t *testing.T) {
	testCases := []struct {
		name string
		m    Material
	}{
		{name: "element without symbol", m: &Element{Name: "x", Z: 1, MolarMass: 1}},
		{name: "element zero Z", m: &Element{Name: "x", Symbol: "X", MolarMass: 1}},
		{name: "mixture zero density", m: &Mixture{Name: "m", Components: []Component{{"a", 1}}}},
		{name: "mixture bad sum", m: &Mixture{Name: "m", Density: 1, Components: []Component{{"a", 0.5}}}},
		{name: "mixture empty", m: &Mixture{Name: "m", Density: 1}},
		{name: "molecule zero count", m: &Molecule{Name: "w", Density: 1, Atoms: []Atom{{"h", 0}}}},
		{name: "unnamed", m: &Element{Symbol: "X", Z: 1, MolarMass: 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry().Define(tc.m)
			require.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	t.Run("missing constituent", func(t *testing.T) {
		reg := NewRegistry()
		_, err := reg.Define(&Mixture{Name: "Air", Density: 0.0012, Components: []Component{{"nitrogen", 1}}})
		require.NoError(t, err)
		require.ErrorIs(t, reg.Resolve(), ErrUnresolved)
	})

	t.Run("constituent declared later", func(t *testing.T) {
		reg := NewRegistry()
		_, _ = reg.Define(&Mixture{Name: "Air", Density: 0.0012, Components: []Component{{"nitrogen", 1}}})
		_, _ = reg.Define(&Element{Name: "nitrogen", Symbol: "N", Z: 7, MolarMass: 14})
		require.ErrorIs(t, reg.Resolve(), ErrUnresolved)
	})

	t.Run("molecule of a mixture", func(t *testing.T) {
		reg := NewRegistry()
		_, _ = reg.Define(&Element{Name: "h", Symbol: "H", Z: 1, MolarMass: 1})
		_, _ = reg.Define(&Mixture{Name: "Gas", Density: 0.1, Components: []Component{{"h", 1}}})
		_, _ = reg.Define(&Molecule{Name: "Odd", Density: 1, Atoms: []Atom{{"Gas", 2}}})
		require.ErrorIs(t, reg.Resolve(), ErrUnresolved)
	})
}

func TestStandard(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, Standard(reg))
	require.NoError(t, reg.Resolve())

	for _, name := range []string{"Air", "Concrete", "Foam", "Stainless", "LiquidArgon", "FieldCage", "G10", "iron"} {
		_, err := reg.Lookup(name)
		assert.NoError(t, err, name)
	}

	foam, _ := reg.Lookup("Foam")
	require.IsType(t, &Molecule{}, foam)
	assert.InDelta(t, 0.032, float64(foam.(*Molecule).Density), 1e-12)

	// Declaring the set twice only overwrites.
	n := reg.Len()
	require.NoError(t, Standard(reg))
	assert.Equal(t, n, reg.Len())
}
