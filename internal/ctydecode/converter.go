package ctydecode

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/vk/cryogeo/internal/ctxlog"
	"github.com/vk/cryogeo/internal/geoerr"
	"github.com/vk/cryogeo/internal/units"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// unitParsers turn quantity strings into canonical values for the unit
// types that may appear in option structs.
var unitParsers = map[reflect.Type]func(string) (float64, error){
	reflect.TypeOf(units.Length(0)): func(s string) (float64, error) {
		v, err := units.ParseLength(s)
		return float64(v), err
	},
	reflect.TypeOf(units.Density(0)): func(s string) (float64, error) {
		v, err := units.ParseDensity(s)
		return float64(v), err
	},
	reflect.TypeOf(units.MolarMass(0)): func(s string) (float64, error) {
		v, err := units.ParseMolarMass(s)
		return float64(v), err
	},
	reflect.TypeOf(units.Angle(0)): func(s string) (float64, error) {
		v, err := units.ParseAngle(s)
		return float64(v), err
	},
}

// Converter implements config.Converter for cty values.
type Converter struct{}

// NewConverter creates a new converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DecodeOptions overwrites the defaults held in target with opts.
func (c *Converter) DecodeOptions(ctx context.Context, target any, opts map[string]cty.Value, owner string) error {
	logger := ctxlog.FromContext(ctx)

	fields, err := OptionFields(target)
	if err != nil {
		return geoerr.Config(owner, "", err)
	}
	byName := make(map[string]OptionField, len(fields))
	known := make([]string, 0, len(fields))
	for _, f := range fields {
		byName[f.Name] = f
		known = append(known, f.Name)
	}
	sort.Strings(known)

	names := make([]string, 0, len(opts))
	for name := range opts {
		names = append(names, name)
	}
	sort.Strings(names)

	structVal := reflect.ValueOf(target).Elem()
	for _, name := range names {
		f, ok := byName[name]
		if !ok {
			return geoerr.UnknownParameter(owner, name, known)
		}
		val := opts[name]
		if val.IsNull() {
			logger.Debug("Option is null, keeping default.", "builder", owner, "option", name)
			continue
		}
		if !val.IsWhollyKnown() {
			return geoerr.Config(owner, name, fmt.Errorf("value is not known"))
		}
		if err := c.decode(ctx, val, structVal.Field(f.Index)); err != nil {
			return geoerr.Config(owner, name, err)
		}
	}
	return nil
}

// decode converts val and stores it in the settable field fv.
func (c *Converter) decode(ctx context.Context, val cty.Value, fv reflect.Value) error {
	logger := ctxlog.FromContext(ctx)

	if parse, ok := unitParsers[fv.Type()]; ok {
		f, err := unitScalar(val, parse)
		if err != nil {
			return err
		}
		fv.SetFloat(f)
		return nil
	}
	if fv.Kind() == reflect.Slice {
		if parse, ok := unitParsers[fv.Type().Elem()]; ok {
			return unitSlice(val, parse, fv)
		}
	}

	impliedType, err := gocty.ImpliedType(fv.Interface())
	if err != nil {
		return gocty.FromCtyValue(val, fv.Addr().Interface())
	}
	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}
	if !val.Type().Equals(converted.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", converted.Type().FriendlyName(),
		)
	}
	return gocty.FromCtyValue(converted, fv.Addr().Interface())
}

// unitScalar accepts a number in canonical units or a quantity string.
func unitScalar(val cty.Value, parse func(string) (float64, error)) (float64, error) {
	if val.Type() == cty.String {
		return parse(val.AsString())
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("want a number or a quantity string, got %s", val.Type().FriendlyName())
	}
	f, _ := num.AsBigFloat().Float64()
	return f, nil
}

func unitSlice(val cty.Value, parse func(string) (float64, error), fv reflect.Value) error {
	ty := val.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return fmt.Errorf("want a list, got %s", ty.FriendlyName())
	}
	out := reflect.MakeSlice(fv.Type(), 0, val.LengthInt())
	for it := val.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() {
			return fmt.Errorf("list element is null")
		}
		f, err := unitScalar(elem, parse)
		if err != nil {
			return err
		}
		ev := reflect.New(fv.Type().Elem()).Elem()
		ev.SetFloat(f)
		out = reflect.Append(out, ev)
	}
	fv.Set(out)
	return nil
}
