package larsoft

import (
	"math"

	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/placement"
	"github.com/vk/cryogeo/internal/units"
)

// Optional slot roles of a larsoft cryostat.
const (
	SlotWireFrame = "wire_frame"
	SlotCPA       = "cpa"
)

// CellSlots are the required roles, one per cell code, in legacy
// positional order.
var CellSlots = []string{"SS", "SL", "MS", "ML", "LS", "LL"}

// CryostatOptions defines the arguments of a larsoft cryostat.
type CryostatOptions struct {
	// XGap separates the short and long drift faces.
	XGap units.Length `geo:"x_gap"`
	// XOffset is the x center of the drift gap.
	XOffset units.Length `geo:"x_offset"`
	// YGap separates the small and medium cells.
	YGap units.Length `geo:"y_gap"`
	// YOffset is the y of the border between small and medium cells.
	YOffset units.Length `geo:"y_offset"`
	// ZGap separates neighbouring cells in z.
	ZGap units.Length `geo:"z_gap"`
	// ZOffset pushes the large cells further out in z.
	ZOffset  units.Length `geo:"z_offset"`
	Material string       `geo:"material"`
}

// Cryostat arranges the cells. Short drift cells sit on the -x side of
// the gap turned half a turn about y; long drift cells sit on the +x side.
// Small cells are below the y border and medium cells above it, both at
// z=0; large cells are centered in y and placed twice, mirrored in z.
type Cryostat struct {
	opts *CryostatOptions
}

// NewCryostat validates opts and returns the builder.
func NewCryostat(opts *CryostatOptions) (*Cryostat, error) {
	for _, g := range []struct {
		param string
		v     units.Length
	}{{"x_gap", opts.XGap}, {"y_gap", opts.YGap}, {"z_gap", opts.ZGap}} {
		if g.v < 0 {
			return nil, geoerr.InvalidGeometry("", g.param, "must not be negative, got %s", g.v)
		}
	}
	return &Cryostat{opts: opts}, nil
}

// heights pairs each height letter with its y direction.
var heights = []struct {
	letter  byte
	yFactor float64
}{{'S', -1}, {'M', +1}, {'L', 0}}

// drifts pairs each drift letter with its x side and turn about y.
var drifts = []struct {
	letter byte
	xSign  float64
	turn   float64
}{{'S', -1, 180}, {'L', +1, 0}}

// Build implements builder.Builder.
func (c *Cryostat) Build(ctx *builder.Context) ([]*geom.Volume, error) {
	o := c.opts
	xGap := float64(o.XGap)
	xOff := float64(o.XOffset)

	var pls []geom.Placement
	for _, h := range heights {
		for _, d := range drifts {
			role := string([]byte{h.letter, d.letter})
			vol, err := ctx.SlotVolume(role)
			if err != nil {
				return nil, err
			}
			half := vol.Extents()
			rot := geom.Rotation{Y: d.turn}
			x := xOff + d.xSign*(0.5*xGap+half.X)

			if h.letter != 'L' {
				y := float64(o.YOffset) + h.yFactor*(0.5*float64(o.YGap)+half.Y)
				pls = append(pls, ctx.Place("", vol, geom.V(x, y, 0), rot))
				continue
			}
			zNeg, zPos := placement.Mirror(float64(o.ZOffset) + 2*half.Z + float64(o.ZGap))
			pls = append(pls,
				ctx.Place("", vol, geom.V(x, 0, zNeg), rot),
				ctx.Place("", vol, geom.V(x, 0, zPos), rot),
			)
		}
	}

	cells := len(pls)
	bounds := make([]geom.AABB, 0, cells+3)
	for _, p := range pls {
		bounds = append(bounds, p.Bounds())
	}

	if ctx.HasSlot(SlotWireFrame) {
		frame, err := ctx.SlotVolume(SlotWireFrame)
		if err != nil {
			return nil, err
		}
		if fx := frame.Extents().X; 2*fx > xGap {
			return nil, geoerr.InvalidGeometry(ctx.Name(), "x_gap", "wire frame of thickness %g mm does not fit in a drift gap of %g mm", 2*fx, xGap)
		}
		p := ctx.Place("", frame, geom.V(xOff, 0, 0), geom.Rotation{})
		pls = append(pls, p)
		bounds = append(bounds, p.Bounds())
	}

	if ctx.HasSlot(SlotCPA) {
		cpa, err := ctx.SlotVolume(SlotCPA)
		if err != nil {
			return nil, err
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, b := range bounds[:cells] {
			lo = math.Min(lo, b.Min.X)
			hi = math.Max(hi, b.Max.X)
		}
		cx := cpa.Extents().X
		for _, x := range []float64{lo - cx, hi + cx} {
			p := ctx.Place("", cpa, geom.V(x, 0, 0), geom.Rotation{})
			pls = append(pls, p)
			bounds = append(bounds, p.Bounds())
		}
	}

	envelope := placement.Envelope(bounds)
	shape, err := ctx.AddBox("", envelope)
	if err != nil {
		return nil, err
	}
	vol, err := ctx.AddVolume("", shape, o.Material, pls...)
	if err != nil {
		return nil, err
	}
	ctx.Logger().Debug("LArSoft cryostat built.", "envelope", envelope, "placements", len(pls))
	return []*geom.Volume{vol}, nil
}
