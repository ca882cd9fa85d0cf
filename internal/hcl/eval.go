package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/vk/cryogeo/internal/units"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// QuantityFunc implements q("2.94 inch"): it parses a quantity string and
// returns its value in canonical units.
var QuantityFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "quantity", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		q, err := units.Parse(args[0].AsString())
		if err != nil {
			return cty.UnknownVal(cty.Number), function.NewArgError(0, err)
		}
		return cty.NumberFloatVal(q.Value), nil
	},
})

// EvalContext returns the context option expressions are evaluated in. Unit
// symbols are plain variables, so `1588.5*mm` and `2.94*inch` both yield
// millimetres.
func EvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for sym, factor := range units.Symbols() {
		vars[sym] = cty.NumberFloatVal(factor)
	}
	return &hcl.EvalContext{
		Variables: vars,
		Functions: map[string]function.Function{
			"q": QuantityFunc,
		},
	}
}
