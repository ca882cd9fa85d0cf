package wireframe

import (
	"math"

	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/placement"
	"github.com/vk/cryogeo/internal/units"
)

// Slot roles of a wire_frame, in legacy positional order.
const (
	SlotSmall  = "small"
	SlotMedium = "medium"
	SlotLarge  = "large"
)

// AssemblyOptions defines the arguments of a combined wire frame.
type AssemblyOptions struct {
	YGap units.Length `geo:"y_gap"`
	ZGap units.Length `geo:"z_gap"`
	// LargeOffset moves both large frames in y.
	LargeOffset units.Length `geo:"y_offset_ll"`
	// SmallMediumOffset moves the small and medium frames in y.
	SmallMediumOffset units.Length `geo:"y_offset_sm"`
	Material          string       `geo:"material"`
}

// Assembly places the three frames. Nominally the large pair and the
// small and medium stack with its gap are centered on y=0.
type Assembly struct {
	opts *AssemblyOptions
}

// NewAssembly validates opts and returns the builder.
func NewAssembly(opts *AssemblyOptions) (*Assembly, error) {
	if opts.YGap < 0 {
		return nil, geoerr.InvalidGeometry("", "y_gap", "must not be negative, got %s", opts.YGap)
	}
	if opts.ZGap < 0 {
		return nil, geoerr.InvalidGeometry("", "z_gap", "must not be negative, got %s", opts.ZGap)
	}
	return &Assembly{opts: opts}, nil
}

// Build implements builder.Builder.
func (a *Assembly) Build(ctx *builder.Context) ([]*geom.Volume, error) {
	small, err := ctx.SlotVolume(SlotSmall)
	if err != nil {
		return nil, err
	}
	medium, err := ctx.SlotVolume(SlotMedium)
	if err != nil {
		return nil, err
	}
	large, err := ctx.SlotVolume(SlotLarge)
	if err != nil {
		return nil, err
	}
	s, m, l := small.Extents(), medium.Extents(), large.Extents()

	yGap := float64(a.opts.YGap)
	smOff := float64(a.opts.SmallMediumOffset)
	llOff := float64(a.opts.LargeOffset)

	smallY := -0.5*yGap - m.Y + smOff
	mediumY := 0.5*yGap + s.Y + smOff
	// The large frames clear whichever of the stacked frames is deeper.
	largeZ := math.Max(s.Z, m.Z) + l.Z + float64(a.opts.ZGap)
	zNeg, zPos := placement.Mirror(largeZ)

	pls := []geom.Placement{
		ctx.Place("", small, geom.V(0, smallY, 0), geom.Rotation{}),
		ctx.Place("", medium, geom.V(0, mediumY, 0), geom.Rotation{}),
		ctx.Place("", large, geom.V(0, llOff, zNeg), geom.Rotation{}),
		ctx.Place("", large, geom.V(0, llOff, zPos), geom.Rotation{}),
	}

	// The envelope is symmetric in y, so it must reach the furthest edge
	// on either side.
	maxY := math.Max(math.Abs(smallY-s.Y), math.Abs(mediumY+m.Y))
	maxY = math.Max(maxY, math.Abs(llOff)+l.Y)
	maxX := math.Max(l.X, math.Max(s.X, m.X))
	envelope := geom.V(maxX, maxY, largeZ+l.Z)

	shape, err := ctx.AddBox("", envelope)
	if err != nil {
		return nil, err
	}
	vol, err := ctx.AddVolume("", shape, a.opts.Material, pls...)
	if err != nil {
		return nil, err
	}
	ctx.Logger().Debug("Wire frame assembly built.", "envelope", envelope)
	return []*geom.Volume{vol}, nil
}
