// Package color implements the "color" module: it paints a single LED, a
// contiguous stripe, or a repeating stepped pattern in one color, optionally
// waiting after every LED and/or every step.
package color

import (
	"context"
	"fmt"

	"github.com/specialistvlad/ledgrid/internal/codegen"
	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/ctxlog"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/module"
	"github.com/specialistvlad/ledgrid/internal/registry"
	"github.com/specialistvlad/ledgrid/internal/varsys"
)

// Key is the program key of this module.
const Key = "color"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the color effect, inlined or as a function-call module
// depending on the registry options.
func (m *Module) Register(r *registry.Registry) {
	if r.Options().FunctionModules {
		r.Register(Key, module.AsFunction(&Color{}))
		return
	}
	r.Register(Key, &Color{})
}

// Color is the effect itself.
type Color struct{}

func (c *Color) Name() string { return Key }

// GenerateCode emits the cheapest loop shape for the settings: a direct
// assignment for a single LED, one loop for a stripe, nested loops otherwise.
func (c *Color) GenerateCode(ctx context.Context, gen *module.Generation, cfg *config.Config, isDirty bool) (module.Code, error) {
	s, err := ParseSettings(gen.Env, cfg)
	if err != nil {
		return module.Code{}, err
	}
	clr := s.CRGB()

	var code string
	switch {
	case s.IsSingleLed():
		code = codegen.Lines(
			fmt.Sprintf("leds[%d] = %s;", s.Start, clr),
			waitIf(s.DelayPerLed, true),
			waitIf(s.DelayAfterStep, s.DelayPerLed == 0),
		)

	case s.Steps == 1:
		vLed := gen.Vars.RequestLocal("int", "l", "0")
		code = codegen.Lines(
			forHeader(vLed, s.LedsPerStep),
			codegen.Indent(codegen.Lines(
				fmt.Sprintf("leds[%s%s] = %s;", startPrefix(s.Start), vLed, clr),
				waitIf(s.DelayPerLed, true),
			), codegen.IndentUnit),
			"}",
			waitIf(s.DelayAfterStep, s.DelayPerLed == 0),
		)

	default:
		vStep := gen.Vars.RequestLocal("int", "s", "0")
		vLed := gen.Vars.RequestLocal("int", "l", "0")
		inner := codegen.Lines(
			forHeader(vLed, s.LedsPerStep),
			codegen.Indent(codegen.Lines(
				fmt.Sprintf("leds[%s%s * %d + %s] = %s;", startPrefix(s.Start), vStep, s.Stride(), vLed, clr),
				waitIf(s.DelayPerLed, true),
			), codegen.IndentUnit),
			"}",
			waitIf(s.DelayAfterStep, s.DelayPerLed == 0),
		)
		code = codegen.Lines(
			forHeader(vStep, s.Steps),
			codegen.Indent(inner, codegen.IndentUnit),
			"}",
		)
	}

	ctxlog.FromContext(ctx).Debug("Color code generated.", "start", s.Start, "steps", s.Steps, "leds_per_step", s.LedsPerStep, "space", s.Space)
	return module.Code{Loop: code, IsDirty: !s.HasDelay()}, nil
}

// Runtime implements module.RuntimeEstimator.
func (c *Color) Runtime(e *env.Environment, cfg *config.Config) (int, error) {
	s, err := ParseSettings(e, cfg)
	if err != nil {
		return 0, err
	}
	return s.Runtime(), nil
}

// SimulateSetup validates the config once; the settings are the instance state.
func (c *Color) SimulateSetup(_ context.Context, e *env.Environment, cfg *config.Config, _ module.Device) (module.State, error) {
	return ParseSettings(e, cfg)
}

// SimulateLoop writes the same LEDs, in the same order, with the same waits
// as the generated code.
func (c *Color) SimulateLoop(ctx context.Context, _ *env.Environment, _ *config.Config, state module.State, dev module.Device) error {
	s, ok := state.(Settings)
	if !ok {
		return fmt.Errorf("unexpected simulation state %T", state)
	}
	for step := 0; step < s.Steps; step++ {
		for led := 0; led < s.LedsPerStep; led++ {
			if err := dev.SetLedHex(s.Index(step, led), s.RGBHex); err != nil {
				return err
			}
			if err := wait(ctx, dev, s.DelayPerLed); err != nil {
				return err
			}
		}
		if err := wait(ctx, dev, s.DelayAfterStep); err != nil {
			return err
		}
	}
	return nil
}

// wait flushes a dirty buffer and suspends, mirroring codegen.Wait.
func wait(ctx context.Context, dev module.Device, ms int) error {
	if ms <= 0 {
		return nil
	}
	if dev.IsDirty() {
		dev.PushLeds()
	}
	return dev.Delay(ctx, ms)
}

func waitIf(ms int, isDirty bool) string {
	if ms <= 0 {
		return ""
	}
	return codegen.Wait(ms, isDirty)
}

func forHeader(v *varsys.Variable, bound any) string {
	return fmt.Sprintf("for(%s %s < %v; %s++){", v.Declare(), v, bound, v)
}

func startPrefix(start int) string {
	if start == 0 {
		return ""
	}
	return fmt.Sprintf("%d + ", start)
}
