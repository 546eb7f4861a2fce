package program

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

var functions = map[string]function.Function{
	"min":    stdlib.MinFunc,
	"max":    stdlib.MaxFunc,
	"abs":    stdlib.AbsoluteFunc,
	"floor":  stdlib.FloorFunc,
	"ceil":   stdlib.CeilFunc,
	"upper":  stdlib.UpperFunc,
	"lower":  stdlib.LowerFunc,
	"format": stdlib.FormatFunc,
}

// evalContext exposes the strip geometry to module attributes.
func evalContext(e *env.Environment) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"led_pin":    cty.NumberIntVal(int64(e.LedPin)),
			"led_amount": cty.NumberIntVal(int64(e.LedAmount)),
		},
		Functions: functions,
	}
}
