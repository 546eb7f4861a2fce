// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package module

import (
	"context"

	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/varsys"
)

// Param is one parameter of a generated C++ function.
type Param struct {
	Type string
	Name string
}

// FuncModule is a module whose logic is emitted once as a C++ function.
type FuncModule interface {
	Simulator
	Name() string
	// Params lists the function parameters in declaration order.
	Params() []Param
	// Args validates cfg and returns the call arguments, ordered like Params.
	Args(e *env.Environment, cfg *config.Config) ([]string, error)
	// GenerateFunctionCode returns the function body. params holds the
	// allocated parameter variables, ordered like Params.
	GenerateFunctionCode(gen *Generation, params []*varsys.Variable, isDirty bool) (string, error)
	// IsDirtyAfter reports the dirty state after a call with cfg.
	IsDirtyAfter(e *env.Environment, cfg *config.Config, isDirty bool) (bool, error)
}

// FunctionSupplier registers generated functions and returns call expressions.
type FunctionSupplier interface {
	Call(ctx context.Context, gen *Generation, fm FuncModule, cfg *config.Config, isDirty bool) (string, error)
}

// AsFunction adapts fm to Module. Every generated call site becomes a call
// expression; the definition is registered with gen.Funcs.
func AsFunction(fm FuncModule) Module {
	return &funcModule{FuncModule: fm}
}

// IsFunction reports whether m was registered through AsFunction.
func IsFunction(m Module) bool {
	_, ok := m.(*funcModule)
	return ok
}

type funcModule struct {
	FuncModule
}

func (f *funcModule) GenerateCode(ctx context.Context, gen *Generation, cfg *config.Config, isDirty bool) (Code, error) {
	call, err := gen.Funcs.Call(ctx, gen, f.FuncModule, cfg, isDirty)
	if err != nil {
		return Code{}, err
	}
	dirty, err := f.IsDirtyAfter(gen.Env, cfg, isDirty)
	if err != nil {
		return Code{}, err
	}
	return Code{Loop: call, IsDirty: dirty}, nil
}

// Runtime forwards to the wrapped module when it can estimate its runtime.
func (f *funcModule) Runtime(e *env.Environment, cfg *config.Config) (int, error) {
	if est, ok := f.FuncModule.(RuntimeEstimator); ok {
		return est.Runtime(e, cfg)
	}
	return 0, nil
}
