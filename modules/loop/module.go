// Package loop implements the "loop" module: it repeats a nested module list
// a fixed number of times, optionally waiting after every iteration.
package loop

import (
	"context"
	"fmt"

	"github.com/specialistvlad/ledgrid/internal/codegen"
	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/ctxlog"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/module"
	"github.com/specialistvlad/ledgrid/internal/registry"
	"github.com/specialistvlad/ledgrid/internal/sim"
)

const (
	// Key is the program key of this module.
	Key = "loop"
	// MaxRepeats bounds the repeats setting.
	MaxRepeats = 1_000_000
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the loop. Nested lists are resolved against r, so
// modules registered after the loop are visible too.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Key, &Loop{registry: r})
}

// Loop is the repeat effect.
type Loop struct {
	registry *registry.Registry
}

type settings struct {
	repeats int
	// delay is 0 when absent.
	delay   int
	modules []module.Pair
}

func (l *Loop) parse(cfg *config.Config) (settings, error) {
	var s settings
	var err error

	if s.repeats, err = cfg.RequiredIntRange("repeats", 2, MaxRepeats); err != nil {
		return settings{}, err
	}
	if cfg.Has("delay") {
		if s.delay, err = cfg.RequiredInt("delay", 1); err != nil {
			return settings{}, err
		}
	}

	raw, _ := cfg.GetRaw(config.ModulesKey)
	if s.modules, err = l.registry.ParseModules(raw); err != nil {
		return settings{}, fmt.Errorf("failed to parse nested modules: %w", err)
	}
	return s, nil
}

func (l *Loop) Name() string { return Key }

// GenerateCode emits a counted for loop around the nested list. The iterator
// is taken before the nested list is generated, so nested loops count with
// i1, i2 and so on.
func (l *Loop) GenerateCode(ctx context.Context, gen *module.Generation, cfg *config.Config, isDirty bool) (module.Code, error) {
	s, err := l.parse(cfg)
	if err != nil {
		return module.Code{}, err
	}

	vItr := gen.Vars.RequestLocal("int", "i", "0")

	// Without a delay an iteration may start with the writes of the previous one.
	nested, err := codegen.GenerateModuleCode(ctx, gen.Child(), s.modules, isDirty || s.delay == 0)
	if err != nil {
		return module.Code{}, err
	}

	var wait string
	if s.delay > 0 {
		wait = codegen.Wait(s.delay, nested.IsDirty)
	}

	loop := codegen.Lines(
		fmt.Sprintf("for(%s %s < %d; %s++){", vItr.Declare(), vItr, s.repeats, vItr),
		codegen.Indent(codegen.Lines(nested.Loop, wait), codegen.IndentUnit),
		"}",
	)

	ctxlog.FromContext(ctx).Debug("Loop code generated.", "repeats", s.repeats, "delay", s.delay, "nested", len(s.modules), "iterator", vItr.Name)
	return module.Code{
		Setup:   nested.Setup,
		Loop:    loop,
		IsDirty: s.delay == 0 && nested.IsDirty,
	}, nil
}

// Runtime implements module.RuntimeEstimator.
func (l *Loop) Runtime(e *env.Environment, cfg *config.Config) (int, error) {
	s, err := l.parse(cfg)
	if err != nil {
		return 0, err
	}
	inner, err := codegen.EstimateRuntime(e, s.modules)
	if err != nil {
		return 0, err
	}
	return codegen.RuntimeTimes(codegen.RuntimeSum(inner, s.delay), s.repeats), nil
}

type state struct {
	settings
	instances []sim.Instance
}

// SimulateSetup resolves the nested list and sets every nested module up once.
func (l *Loop) SimulateSetup(ctx context.Context, e *env.Environment, cfg *config.Config, dev module.Device) (module.State, error) {
	s, err := l.parse(cfg)
	if err != nil {
		return nil, err
	}
	instances, err := sim.Setup(ctx, e, s.modules, dev)
	if err != nil {
		return nil, err
	}
	return &state{settings: s, instances: instances}, nil
}

// SimulateLoop runs the nested modules repeats times.
func (l *Loop) SimulateLoop(ctx context.Context, e *env.Environment, _ *config.Config, st module.State, dev module.Device) error {
	s, ok := st.(*state)
	if !ok {
		return fmt.Errorf("unexpected simulation state %T", st)
	}
	for x := 0; x < s.repeats; x++ {
		if err := sim.Loop(ctx, e, s.instances, dev); err != nil {
			return err
		}
		if s.delay > 0 {
			if dev.IsDirty() {
				dev.PushLeds()
			}
			if err := dev.Delay(ctx, s.delay); err != nil {
				return err
			}
		}
	}
	return nil
}
