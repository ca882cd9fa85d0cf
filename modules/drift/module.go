// Package drift provides the "drift" builder kind: a liquid argon envelope
// holding a field cage and the four TPC drift volumes it surrounds. The
// result has +x pointing at the wires.
package drift

import (
	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/placement"
	"github.com/vk/cryogeo/internal/registry"
	"github.com/vk/cryogeo/internal/units"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Slot roles, in legacy positional order.
const (
	SlotCage      = "cage"
	SlotSmallTPC  = "small_tpc"
	SlotMediumTPC = "medium_tpc"
	SlotLargeTPC  = "large_tpc"
)

// Options defines the arguments of a drift.
type Options struct {
	// CageOffset moves the cage along x from the envelope center.
	CageOffset units.Length `geo:"x_cage_offset"`
	// SmallMediumOffset moves the small and medium TPCs along y.
	SmallMediumOffset units.Length `geo:"y_sm_tpc_offset"`
	Length            units.Length `geo:"length"`
	Material          string       `geo:"material"`
}

// Drift places its cage and TPCs. The large TPC is placed twice, mirrored
// in z about the small and medium pair which is stacked in y.
type Drift struct {
	opts *Options
}

// New validates opts and returns the builder.
func New(opts *Options) (*Drift, error) {
	if !(opts.Length > 0) {
		return nil, geoerr.InvalidGeometry("", "length", "must be positive, got %s", opts.Length)
	}
	return &Drift{opts: opts}, nil
}

// Build implements builder.Builder.
func (d *Drift) Build(ctx *builder.Context) ([]*geom.Volume, error) {
	vols := make(map[string]*geom.Volume, 4)
	for _, role := range []string{SlotCage, SlotSmallTPC, SlotMediumTPC, SlotLargeTPC} {
		v, err := ctx.SlotVolume(role)
		if err != nil {
			return nil, err
		}
		vols[role] = v
	}
	cage := vols[SlotCage].Extents()
	small := vols[SlotSmallTPC].Extents()
	medium := vols[SlotMediumTPC].Extents()
	large := vols[SlotLargeTPC].Extents()

	var pls []geom.Placement
	pls = append(pls, ctx.Place("", vols[SlotCage], geom.V(float64(d.opts.CageOffset), 0, 0), geom.Rotation{}))

	zNeg, zPos := placement.Mirror(small.Z + large.Z)
	for _, z := range []float64{zNeg, zPos} {
		pls = append(pls, ctx.Place("", vols[SlotLargeTPC], geom.V(0, 0, z), geom.Rotation{}))
	}

	// Medium sits up by the small's half-height, small down by the
	// medium's, so the pair meets at small.Y - medium.Y.
	yOff := float64(d.opts.SmallMediumOffset)
	pls = append(pls,
		ctx.Place("", vols[SlotMediumTPC], geom.V(0, small.Y+yOff, 0), geom.Rotation{}),
		ctx.Place("", vols[SlotSmallTPC], geom.V(0, -medium.Y+yOff, 0), geom.Rotation{}),
	)

	envelope := geom.V(0.5*float64(d.opts.Length), cage.Y, cage.Z)
	shape, err := ctx.AddBox("", envelope)
	if err != nil {
		return nil, err
	}
	vol, err := ctx.AddVolume("", shape, d.opts.Material, pls...)
	if err != nil {
		return nil, err
	}
	ctx.Logger().Debug("Drift built.", "envelope", envelope, "placements", len(pls))
	return []*geom.Volume{vol}, nil
}

// Register registers the kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(&registry.Kind{
		Name:        "drift",
		Description: "drift envelope with a field cage and four TPCs",
		Slots:       []string{SlotCage, SlotSmallTPC, SlotMediumTPC, SlotLargeTPC},
		NewOptions: func() any {
			return &Options{
				CageOffset: -0.5 * (12.7 - 10.0),
				Length:     2259 - 25.4,
				Material:   "LiquidArgon",
			}
		},
		New: func(o any) (builder.Builder, error) {
			return New(o.(*Options))
		},
	})
}
