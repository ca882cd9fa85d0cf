package larsoft

import (
	"fmt"
	"strings"

	"github.com/vk/cryogeo/internal/builder"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/geom"
	"github.com/vk/cryogeo/internal/units"
)

// TPCOptions defines the arguments of a LArSoft TPC. It carries default
// sizes for every cell; Code selects which apply.
type TPCOptions struct {
	XLong   units.Length `geo:"x_L"`
	XShort  units.Length `geo:"x_S"`
	YSmall  units.Length `geo:"y_s"`
	YMedium units.Length `geo:"y_m"`
	YLarge  units.Length `geo:"y_l"`
	ZSize   units.Length `geo:"z_size"`
	// Code is "[SML][SL]": height then drift. When empty it is taken from
	// the builder name suffix after the last underscore, as in "TPC_ML".
	Code string `geo:"code"`
	// X, Y and Z override the sizes picked by Code when positive.
	X        units.Length `geo:"x"`
	Y        units.Length `geo:"y"`
	Z        units.Length `geo:"z"`
	Material string       `geo:"material"`
}

// TPC is one drift cell box.
type TPC struct {
	opts *TPCOptions
}

// NewTPC returns the builder. The code is resolved at build time since it
// may come from the builder name.
func NewTPC(opts *TPCOptions) (*TPC, error) {
	if opts.Code != "" {
		if _, _, err := ParseCode(opts.Code); err != nil {
			return nil, geoerr.InvalidGeometry("", "code", "%v", err)
		}
	}
	return &TPC{opts: opts}, nil
}

// ParseCode splits a cell code into its height letter (S, M or L) and
// drift letter (S or L).
func ParseCode(code string) (height, drift byte, err error) {
	c := strings.ToUpper(code)
	if len(c) != 2 || !strings.ContainsRune("SML", rune(c[0])) || !strings.ContainsRune("SL", rune(c[1])) {
		return 0, 0, fmt.Errorf("cell code %q is not [SML][SL]", code)
	}
	return c[0], c[1], nil
}

// codeFor returns the configured code or the builder name suffix.
func (t *TPC) codeFor(name string) string {
	if t.opts.Code != "" {
		return t.opts.Code
	}
	if i := strings.LastIndex(name, "_"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Half returns the cell half-extents for code.
func (t *TPC) Half(code string) (geom.Vec3, error) {
	height, drift, err := ParseCode(code)
	if err != nil {
		return geom.Vec3{}, err
	}
	o := t.opts
	x := map[byte]units.Length{'S': o.XShort, 'L': o.XLong}[drift]
	y := map[byte]units.Length{'S': o.YSmall, 'M': o.YMedium, 'L': o.YLarge}[height]
	z := o.ZSize
	if o.X > 0 {
		x = o.X
	}
	if o.Y > 0 {
		y = o.Y
	}
	if o.Z > 0 {
		z = o.Z
	}
	half := geom.V(0.5*float64(x), 0.5*float64(y), 0.5*float64(z))
	if !half.AllPositive() {
		return geom.Vec3{}, fmt.Errorf("cell %s has non-positive size %s", code, half.Scale(2))
	}
	return half, nil
}

// Build implements builder.Builder.
func (t *TPC) Build(ctx *builder.Context) ([]*geom.Volume, error) {
	code := t.codeFor(ctx.Name())
	half, err := t.Half(code)
	if err != nil {
		return nil, geoerr.InvalidGeometry(ctx.Name(), "code", "%v", err)
	}
	shape, err := ctx.AddBox("", half)
	if err != nil {
		return nil, err
	}
	vol, err := ctx.AddVolume("", shape, t.opts.Material)
	if err != nil {
		return nil, err
	}
	ctx.Logger().Debug("TPC cell built.", "code", code, "half", half)
	return []*geom.Volume{vol}, nil
}
