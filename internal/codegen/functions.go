// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package codegen

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/ctxlog"
	"github.com/specialistvlad/ledgrid/internal/module"
	"github.com/specialistvlad/ledgrid/internal/varsys"
)

// FunctionTable collects the C++ functions of function-call modules. One
// function is emitted per module and incoming dirty state; every call site
// only passes its arguments.
type FunctionTable struct {
	names map[string]string
	defs  []string
}

// NewFunctionTable creates an empty table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{names: make(map[string]string)}
}

// Call implements module.FunctionSupplier.
func (t *FunctionTable) Call(ctx context.Context, gen *module.Generation, fm module.FuncModule, cfg *config.Config, isDirty bool) (string, error) {
	args, err := fm.Args(gen.Env, cfg)
	if err != nil {
		return "", err
	}
	if want := len(fm.Params()); len(args) != want {
		return "", fmt.Errorf("module %q produced %d call arguments for %d parameters", fm.Name(), len(args), want)
	}

	key := fmt.Sprintf("%s/dirty=%t", fm.Name(), isDirty)
	name, ok := t.names[key]
	if !ok {
		base := fm.Name() + "Module"
		if isDirty {
			base += "Dirty"
		}
		name = gen.Vars.ReserveGlobalName(base)
		def, err := t.define(gen, fm, name, isDirty)
		if err != nil {
			return "", err
		}
		t.names[key] = name
		t.defs = append(t.defs, def)
		ctxlog.FromContext(ctx).Debug("Function registered.", "module", fm.Name(), "function", name, "dirty_in", isDirty)
	}

	return fmt.Sprintf("%s(%s);", name, strings.Join(args, ", ")), nil
}

func (t *FunctionTable) define(gen *module.Generation, fm module.FuncModule, name string, isDirty bool) (string, error) {
	fnGen := *gen
	fnGen.Vars = gen.Vars.Detached()

	params := make([]*varsys.Variable, 0, len(fm.Params()))
	signature := make([]string, 0, len(fm.Params()))
	for _, p := range fm.Params() {
		v := fnGen.Vars.RequestLocal(p.Type, p.Name, "")
		params = append(params, v)
		signature = append(signature, v.Type+" "+v.Name)
	}

	fnGen.Vars.PushScope()
	body, err := fm.GenerateFunctionCode(&fnGen, params, isDirty)
	fnGen.Vars.PopScope()
	if err != nil {
		return "", fmt.Errorf("failed to generate function %s: %w", name, err)
	}

	return Lines(
		fmt.Sprintf("void %s(%s){", name, strings.Join(signature, ", ")),
		Indent(body, IndentUnit),
		"}",
	), nil
}

// Definitions returns all registered functions in registration order.
func (t *FunctionTable) Definitions() string {
	return Blocks(t.defs...)
}

// Len returns the number of registered functions.
func (t *FunctionTable) Len() int {
	return len(t.defs)
}
