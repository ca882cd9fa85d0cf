package wireframe

import (
	"fmt"

	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/placement"
	"github.com/vk/cryogeo/internal/units"
)

// FrameOptions defines the arguments of a single frame. Thickness runs
// along x, height along y and width along z.
type FrameOptions struct {
	BarWidth     units.Length `geo:"bar_width"`
	BarThickness units.Length `geo:"bar_thickness"`
	// Crosses is the number of cross-bars when no CrossCenters are given.
	Crosses    int          `geo:"ncrosses"`
	CrossGap   units.Length `geo:"cross_gap"`
	CrossWidth units.Length `geo:"cross_width"`
	// CrossCenters places the cross-bars explicitly, measured in y from
	// the frame center.
	CrossCenters []units.Length `geo:"cross_centers"`

	Thickness   units.Length `geo:"thickness"`
	Height      units.Length `geo:"height"`
	Width       units.Length `geo:"width"`
	BarMaterial string       `geo:"bar_material"`
	Material    string       `geo:"material"`
}

// Frame builds one ladder frame.
type Frame struct {
	opts *FrameOptions
	// longOffset is the z center of each long side, shortOffset the y
	// center of each short side.
	longOffset, shortOffset float64
	crossLength             float64
	crossCenters            []float64
}

// NewFrame validates opts and lays out the frame.
func NewFrame(opts *FrameOptions) (*Frame, error) {
	for _, d := range []struct {
		param string
		v     units.Length
	}{
		{"bar_width", opts.BarWidth},
		{"bar_thickness", opts.BarThickness},
		{"thickness", opts.Thickness},
		{"height", opts.Height},
		{"width", opts.Width},
	} {
		if !(d.v > 0) {
			return nil, geoerr.InvalidGeometry("", d.param, "must be positive, got %s", d.v)
		}
	}
	bw := float64(opts.BarWidth)

	longOffset, err := placement.FrameSideOffset(float64(opts.Width), bw)
	if err != nil {
		return nil, geoerr.WrapInvalidGeometry("", "width", err)
	}
	shortOffset, err := placement.FrameSideOffset(float64(opts.Height), bw)
	if err != nil {
		return nil, geoerr.WrapInvalidGeometry("", "height", err)
	}

	f := &Frame{
		opts:        opts,
		longOffset:  longOffset,
		shortOffset: shortOffset,
		crossLength: float64(opts.Width) - 2*bw,
	}
	if f.crossCenters, err = f.layoutCrosses(); err != nil {
		return nil, err
	}
	return f, nil
}

// layoutCrosses returns the cross-bar centers, explicit or walked down
// from the top side.
func (f *Frame) layoutCrosses() ([]float64, error) {
	o := f.opts
	frameHalf := 0.5 * float64(o.Height)
	bw := float64(o.BarWidth)
	cw := float64(o.CrossWidth)

	if len(o.CrossCenters) > 0 {
		centers := make([]float64, len(o.CrossCenters))
		limit := frameHalf - bw - 0.5*cw
		for i, c := range o.CrossCenters {
			if v := float64(c); v > limit || v < -limit {
				return nil, geoerr.InvalidGeometry("", "cross_centers", "cross-bar %d at %s leaves the frame opening of +/-%g mm", i, c, limit)
			}
			centers[i] = float64(c)
		}
		return centers, nil
	}

	if o.Crosses < 0 {
		return nil, geoerr.InvalidGeometry("", "ncrosses", "must not be negative, got %d", o.Crosses)
	}
	widths := make([]float64, o.Crosses)
	for i := range widths {
		widths[i] = cw
	}
	centers, err := placement.CrossBarCenters(frameHalf, bw, float64(o.CrossGap), widths)
	if err != nil {
		return nil, geoerr.WrapInvalidGeometry("", "ncrosses", err)
	}
	return centers, nil
}

// CrossCenters returns the y centers of the cross-bars.
func (f *Frame) CrossCenters() []float64 {
	return append([]float64(nil), f.crossCenters...)
}

// barTube registers a hollow tube of the given x and y size running length
// along z, open at both ends.
func (f *Frame) barTube(ctx *builder.Context, role string, x, y, length float64) (*geom.Volume, error) {
	outerHalf := geom.V(0.5*x, 0.5*y, 0.5*length)
	innerHalf, err := placement.BoreCut(outerHalf, float64(f.opts.BarThickness), geom.AxisZ)
	if err != nil {
		return nil, geoerr.WrapInvalidGeometry(ctx.Name(), "bar_thickness", err)
	}
	outer, err := ctx.AddBox(role+"_outer", outerHalf)
	if err != nil {
		return nil, err
	}
	inner, err := ctx.AddBox(role+"_inner", innerHalf)
	if err != nil {
		return nil, err
	}
	shape, err := ctx.AddBoolean(role, geom.Subtraction, outer, inner)
	if err != nil {
		return nil, err
	}
	return ctx.AddVolume(role, shape, f.opts.BarMaterial)
}

// Build implements builder.Builder.
func (f *Frame) Build(ctx *builder.Context) ([]*geom.Volume, error) {
	o := f.opts
	thickness := float64(o.Thickness)
	bw := float64(o.BarWidth)
	var pls []geom.Placement

	// Long sides run the full height: a tube along z turned onto y.
	long, err := f.barTube(ctx, "long_side", thickness, bw, float64(o.Height))
	if err != nil {
		return nil, err
	}
	upright := geom.Rotation{X: 90}
	zNeg, zPos := placement.Mirror(f.longOffset)
	pls = append(pls,
		ctx.Place("", long, geom.V(0, 0, zPos), upright),
		ctx.Place("", long, geom.V(0, 0, zNeg), upright),
	)

	short, err := f.barTube(ctx, "short_side", thickness, bw, f.crossLength)
	if err != nil {
		return nil, err
	}
	yNeg, yPos := placement.Mirror(f.shortOffset)
	pls = append(pls,
		ctx.Place("", short, geom.V(0, yPos, 0), geom.Rotation{}),
		ctx.Place("", short, geom.V(0, yNeg, 0), geom.Rotation{}),
	)

	for i, y := range f.crossCenters {
		cross, err := f.barTube(ctx, fmt.Sprintf("cross%d", i+1), thickness, float64(o.CrossWidth), f.crossLength)
		if err != nil {
			return nil, err
		}
		pls = append(pls, ctx.Place("", cross, geom.V(0, y, 0), geom.Rotation{}))
	}

	envelope := geom.V(0.5*thickness, 0.5*float64(o.Height), 0.5*float64(o.Width))
	shape, err := ctx.AddBox("", envelope)
	if err != nil {
		return nil, err
	}
	vol, err := ctx.AddVolume("", shape, o.Material, pls...)
	if err != nil {
		return nil, err
	}
	ctx.Logger().Debug("Wire frame built.", "crosses", len(f.crossCenters), "envelope", envelope)
	return []*geom.Volume{vol}, nil
}
