// Package testmod implements the diagnostic "test" module. It counts loop()
// passes in a global so a generated sketch can be checked for liveness.
package testmod

import (
	"context"
	"fmt"

	"github.com/specialistvlad/ledgrid/internal/codegen"
	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/ctxlog"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/module"
	"github.com/specialistvlad/ledgrid/internal/registry"
)

const Key = "test"

type Module struct{}

func (m *Module) Register(r *registry.Registry) {
	r.Register(Key, &Test{})
}

type Test struct{}

func (t *Test) Name() string { return Key }

func (t *Test) GenerateCode(_ context.Context, gen *module.Generation, _ *config.Config, isDirty bool) (module.Code, error) {
	counter := gen.Vars.RequestGlobal("unsigned long", "testTicks", "0")
	return module.Code{
		Setup:   codegen.Comment(gen.Env, fmt.Sprintf("%s counts loop() passes", counter)),
		Loop:    fmt.Sprintf("%s++;", counter),
		IsDirty: isDirty,
	}, nil
}

// Counter is the simulation state: the number of passes seen.
type Counter struct {
	Ticks int
}

func (t *Test) SimulateSetup(context.Context, *env.Environment, *config.Config, module.Device) (module.State, error) {
	return &Counter{}, nil
}

func (t *Test) SimulateLoop(ctx context.Context, _ *env.Environment, _ *config.Config, st module.State, _ module.Device) error {
	c, ok := st.(*Counter)
	if !ok {
		return fmt.Errorf("unexpected simulation state %T", st)
	}
	c.Ticks++
	ctxlog.FromContext(ctx).Debug("Test module ticked.", "ticks", c.Ticks)
	return nil
}
