// Package ctydecode binds cty option values from any configuration format
// onto the Go option structs of builder kinds. It implements
// config.Converter.
package ctydecode

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// TagName is the struct tag that names an option field.
const TagName = "geo"

// OptionField describes one bindable field of an option struct.
type OptionField struct {
	Name  string
	Index int
	Field reflect.StructField
	Type  cty.Type
}

// OptionFields lists the tagged fields of the struct opts points to, in
// declaration order. Exported fields must carry a tag; "-" skips a field.
func OptionFields(opts any) ([]OptionField, error) {
	rv := reflect.ValueOf(opts)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("options must be a non-nil pointer to a struct, got %T", opts)
	}
	rt := rv.Elem().Type()

	var fields []OptionField
	seen := make(map[string]string)
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		tagName := strings.Split(field.Tag.Get(TagName), ",")[0]
		if tagName == "-" {
			continue
		}
		if tagName == "" {
			return nil, fmt.Errorf("field %s has no %q tag", field.Name, TagName)
		}
		if prev, dup := seen[tagName]; dup {
			return nil, fmt.Errorf("option %q is declared by both %s and %s", tagName, prev, field.Name)
		}
		seen[tagName] = field.Name

		ty, err := gocty.ImpliedType(reflect.Zero(field.Type).Interface())
		if err != nil {
			return nil, fmt.Errorf("option %q: could not imply cty type from Go field type %s: %w", tagName, field.Type, err)
		}
		fields = append(fields, OptionField{Name: tagName, Index: i, Field: field, Type: ty})
	}
	return fields, nil
}

// OptionNames returns the sorted option names of opts, or nil if it is not a
// valid option struct.
func OptionNames(opts any) []string {
	fields, err := OptionFields(opts)
	if err != nil {
		return nil
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	sort.Strings(names)
	return names
}
