// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package module

import (
	"context"

	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/varsys"
)

// MaxNestingDepth bounds how deep module lists may nest (loops inside loops).
const MaxNestingDepth = 16

// Code is the result of generating one module (or a list of them).
// Empty strings mean the fragment is absent.
type Code struct {
	Setup   string
	Loop    string
	IsDirty bool
}

// State is the per-instance simulation state returned by SimulateSetup and
// handed back to every SimulateLoop call of the same instance.
type State any

// Device is the simulated microcontroller a module runs against.
type Device interface {
	SetLedHex(index int, hex string) error
	PushLeds()
	// Delay suspends for ms simulated milliseconds.
	Delay(ctx context.Context, ms int) error
	IsDirty() bool
	LedCount() int
}

// Simulator is the simulation half of the module contract.
type Simulator interface {
	SimulateSetup(ctx context.Context, e *env.Environment, cfg *config.Config, dev Device) (State, error)
	SimulateLoop(ctx context.Context, e *env.Environment, cfg *config.Config, state State, dev Device) error
}

// Module is the capability every registered effect provides.
type Module interface {
	Simulator
	Name() string
	GenerateCode(ctx context.Context, gen *Generation, cfg *config.Config, isDirty bool) (Code, error)
}

// RuntimeEstimator is implemented by modules that can tell how many
// milliseconds one pass of their loop code waits.
type RuntimeEstimator interface {
	Runtime(e *env.Environment, cfg *config.Config) (int, error)
}

// Pair is one configured module occurrence. A program is an ordered []Pair.
type Pair struct {
	Module Module
	Config *config.Config
}

// Generation is the per-call generation context handed to modules.
type Generation struct {
	Env   *env.Environment
	Vars  *varsys.System
	Funcs FunctionSupplier
	// Depth is the nesting level of the list currently being generated.
	Depth int
}

// Child returns the context for a nested module list.
func (g *Generation) Child() *Generation {
	c := *g
	c.Depth++
	return &c
}

// NoSimulation can be embedded by modules that have no visible effect on the strip.
type NoSimulation struct{}

func (NoSimulation) SimulateSetup(context.Context, *env.Environment, *config.Config, Device) (State, error) {
	return nil, nil
}

func (NoSimulation) SimulateLoop(context.Context, *env.Environment, *config.Config, State, Device) error {
	return nil
}
