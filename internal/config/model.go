package config

import (
	"fmt"

	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a geometry
// configuration.
type Model struct {
	// World names the root builder. It may be empty and set later.
	World    string
	Builders []*BuilderDecl
}

// BuilderDecl is one configured builder instance.
type BuilderDecl struct {
	Kind string
	Name string
	// SubBuilders is the ordered, positional list of dependencies.
	SubBuilders []string
	// Slots maps roles to builder names.
	Slots map[string]string
	// Options are the raw option values, bound later by a Converter.
	Options map[string]cty.Value
	// Source is the file the declaration came from.
	Source string
}

// Dependencies returns the names of every builder this one needs: the
// sub-builders in order, then slot targets not already listed.
func (b *BuilderDecl) Dependencies() []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range b.SubBuilders {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, role := range SortedKeys(b.Slots) {
		n := b.Slots[role]
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// Builder looks up a declaration by name.
func (m *Model) Builder(name string) (*BuilderDecl, bool) {
	for _, b := range m.Builders {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Add appends a declaration, rejecting a name already in use.
func (m *Model) Add(b *BuilderDecl) error {
	if b.Name == "" {
		return &geoerr.Error{Kind: geoerr.KindConfig, Message: fmt.Sprintf("builder of kind %q in %s has no name", b.Kind, b.Source)}
	}
	if prev, ok := m.Builder(b.Name); ok {
		return &geoerr.Error{
			Kind:    geoerr.KindConfig,
			Builder: b.Name,
			Message: fmt.Sprintf("declared twice, in %s and %s", prev.Source, b.Source),
		}
	}
	m.Builders = append(m.Builders, b)
	return nil
}

// Merge appends the declarations of other. Duplicate builder names and
// conflicting world settings are errors.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	if other.World != "" {
		if m.World != "" && m.World != other.World {
			return &geoerr.Error{Kind: geoerr.KindConfig, Message: fmt.Sprintf("world set to both %q and %q", m.World, other.World)}
		}
		m.World = other.World
	}
	for _, b := range other.Builders {
		if err := m.Add(b); err != nil {
			return err
		}
	}
	return nil
}
