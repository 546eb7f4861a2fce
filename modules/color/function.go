package color

import (
	"fmt"
	"strconv"

	"github.com/specialistvlad/ledgrid/internal/codegen"
	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/module"
	"github.com/specialistvlad/ledgrid/internal/varsys"
)

// params is the signature of the generated color function.
var params = []module.Param{
	{Type: "int", Name: "start"},
	{Type: "int", Name: "steps"},
	{Type: "int", Name: "ledsPerStep"},
	{Type: "int", Name: "space"},
	{Type: "int", Name: "delayPerLed"},
	{Type: "int", Name: "delayAfterStep"},
	{Type: "CRGB", Name: "clr"},
}

// Params implements module.FuncModule.
func (c *Color) Params() []module.Param {
	return params
}

// Args implements module.FuncModule.
func (c *Color) Args(e *env.Environment, cfg *config.Config) ([]string, error) {
	s, err := ParseSettings(e, cfg)
	if err != nil {
		return nil, err
	}
	return []string{
		strconv.Itoa(s.Start),
		strconv.Itoa(s.Steps),
		strconv.Itoa(s.LedsPerStep),
		strconv.Itoa(s.Space),
		strconv.Itoa(s.DelayPerLed),
		strconv.Itoa(s.DelayAfterStep),
		s.CRGB(),
	}, nil
}

// IsDirtyAfter implements module.FuncModule.
func (c *Color) IsDirtyAfter(e *env.Environment, cfg *config.Config, _ bool) (bool, error) {
	s, err := ParseSettings(e, cfg)
	if err != nil {
		return false, err
	}
	return !s.HasDelay(), nil
}

// GenerateFunctionCode implements module.FuncModule. The body is the general
// stepped shape with the delays decided at run time.
func (c *Color) GenerateFunctionCode(gen *module.Generation, p []*varsys.Variable, _ bool) (string, error) {
	start, steps, ledsPerStep, space, delayPerLed, delayAfterStep, clr := p[0], p[1], p[2], p[3], p[4], p[5], p[6]

	vStep := gen.Vars.RequestLocal("int", "s", "0")
	vLed := gen.Vars.RequestLocal("int", "l", "0")

	inner := codegen.Lines(
		forHeader(vLed, ledsPerStep),
		codegen.Indent(codegen.Lines(
			fmt.Sprintf("leds[%s + %s * (%s + %s) + %s] = %s;", start, vStep, space, ledsPerStep, vLed, clr),
			runtimeWait(delayPerLed),
		), codegen.IndentUnit),
		"}",
		runtimeWait(delayAfterStep),
	)
	return codegen.Lines(
		forHeader(vStep, steps),
		codegen.Indent(inner, codegen.IndentUnit),
		"}",
	), nil
}

func runtimeWait(ms *varsys.Variable) string {
	return codegen.Lines(
		fmt.Sprintf("if(%s > 0){", ms),
		codegen.Indent(codegen.WaitExpr(ms.Name, true), codegen.IndentUnit),
		"}",
	)
}
