package config

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/cryogeo/internal/geoerr"
)

type staticLoader struct {
	model *Model
}

func (s staticLoader) Load(context.Context, ...string) (*Model, Converter, error) {
	return s.model, nil, nil
}

func TestModel_Merge(t *testing.T) {
	a := &Model{World: "World", Builders: []*BuilderDecl{{Kind: "world", Name: "World", Source: "a.hcl"}}}
	b := &Model{Builders: []*BuilderDecl{{Kind: "cpa", Name: "CPA", Source: "b.yaml"}}}

	require.NoError(t, a.Merge(b))
	assert.Equal(t, "World", a.World)
	require.Len(t, a.Builders, 2)

	dup := &Model{Builders: []*BuilderDecl{{Kind: "cpa", Name: "CPA", Source: "c.hcl"}}}
	err := a.Merge(dup)
	require.ErrorIs(t, err, geoerr.ErrConfig)
	assert.Contains(t, err.Error(), "b.yaml")
	assert.Contains(t, err.Error(), "c.hcl")

	err = a.Merge(&Model{World: "Other"})
	require.ErrorIs(t, err, geoerr.ErrConfig)
}

func TestBuilderDecl_Dependencies(t *testing.T) {
	d := &BuilderDecl{
		SubBuilders: []string{"Cage", "TPC_S"},
		Slots:       map[string]string{"small_tpc": "TPC_S", "cage": "Cage", "large_tpc": "TPC_L"},
	}
	assert.Equal(t, []string{"Cage", "TPC_S", "TPC_L"}, d.Dependencies())
}

func TestCompose(t *testing.T) {
	l := Compose(
		staticLoader{&Model{World: "World", Builders: []*BuilderDecl{{Kind: "world", Name: "World"}}}},
		staticLoader{&Model{Builders: []*BuilderDecl{{Kind: "matter", Name: "Matter"}}}},
	)

	got, _, err := l.Load(context.Background())
	require.NoError(t, err)

	want := &Model{World: "World", Builders: []*BuilderDecl{
		{Kind: "world", Name: "World"},
		{Kind: "matter", Name: "Matter"},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("composed model mismatch (-want +got):\n%s", diff)
	}
}
