package testutil

import (
	"context"

	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/module"
)

// StubModule is a module.Module whose behaviour is supplied by functions.
// Nil functions generate nothing and simulate nothing; the dirty state
// passes through.
type StubModule struct {
	Key        string
	GenerateFn func(cfg *config.Config, isDirty bool) (module.Code, error)
	SimulateFn func(ctx context.Context, dev module.Device) error
	SetupCalls int
	LoopCalls  int
}

func (m *StubModule) Name() string { return m.Key }

func (m *StubModule) GenerateCode(_ context.Context, _ *module.Generation, cfg *config.Config, isDirty bool) (module.Code, error) {
	if m.GenerateFn == nil {
		return module.Code{IsDirty: isDirty}, nil
	}
	return m.GenerateFn(cfg, isDirty)
}

func (m *StubModule) SimulateSetup(context.Context, *env.Environment, *config.Config, module.Device) (module.State, error) {
	m.SetupCalls++
	return nil, nil
}

func (m *StubModule) SimulateLoop(ctx context.Context, _ *env.Environment, _ *config.Config, _ module.State, dev module.Device) error {
	m.LoopCalls++
	if m.SimulateFn == nil {
		return nil
	}
	return m.SimulateFn(ctx, dev)
}
