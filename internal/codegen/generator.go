// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package codegen

import (
	"context"
	"fmt"
	"strconv"

	"github.com/specialistvlad/ledgrid/internal/ctxlog"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/module"
	"github.com/specialistvlad/ledgrid/internal/varsys"
)

// GenerateModuleCode generates every module of pairs in order and combines
// the fragments. isDirty is the buffer state before the first module; the
// returned Code carries the state after the last one.
func GenerateModuleCode(ctx context.Context, gen *module.Generation, pairs []module.Pair, isDirty bool) (module.Code, error) {
	if gen.Depth > module.MaxNestingDepth {
		return module.Code{}, fmt.Errorf("modules are nested deeper than the maximum of %d levels", module.MaxNestingDepth)
	}
	var setups, loops []string
	dirty := isDirty
	for i, p := range pairs {
		mctx := ctxlog.With(ctx, "module", p.Module.Name(), "index", i, "depth", gen.Depth)
		gen.Vars.PushScope()
		code, err := p.Module.GenerateCode(mctx, gen, p.Config, dirty)
		gen.Vars.PopScope()
		if err != nil {
			return module.Code{}, &GenerationError{Module: p.Module.Name(), Index: i, Range: p.Config.Range(), Err: err}
		}
		ctxlog.FromContext(mctx).Debug("Module code generated.", "dirty_in", dirty, "dirty_out", code.IsDirty)

		setups = append(setups, code.Setup)
		loops = append(loops, code.Loop)
		dirty = code.IsDirty
	}

	return module.Code{
		Setup:   Blocks(setups...),
		Loop:    Blocks(loops...),
		IsDirty: dirty,
	}, nil
}

// GenerateCode generates pairs and substitutes the result into the
// environment's source template.
func GenerateCode(ctx context.Context, e *env.Environment, pairs []module.Pair) (string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Code generation started.", "modules", len(pairs), "led_amount", e.LedAmount)

	vars := varsys.New()
	funcs := NewFunctionTable()
	gen := &module.Generation{Env: e, Vars: vars, Funcs: funcs}

	code, err := GenerateModuleCode(ctx, gen, pairs, false)
	if err != nil {
		return "", err
	}

	// A frame that ends with unshown writes is flushed once at the end of loop().
	var finalShow string
	if code.IsDirty {
		finalShow = Show
	}

	values := map[string]string{
		"LED_PIN":    strconv.Itoa(e.LedPin),
		"LED_AMOUNT": strconv.Itoa(e.LedAmount),
		"VARIABLES":  vars.GenerateGlobalCode(),
		"FUNC_DEFS":  funcs.Definitions(),
		"SETUP_CODE": Indent(Blocks(Comment(e, "Start of setup-code"), code.Setup), IndentUnit),
		"RUN_CODE":   Indent(Blocks(Comment(e, "Start of loop-code"), code.Loop, finalShow), IndentUnit),
	}

	out := Substitute(e.PreprocessingCode, values)
	logger.Debug("Code generation finished.", "bytes", len(out), "globals", len(vars.Globals()), "functions", funcs.Len())
	return out, nil
}

// EstimateRuntime sums the waiting time of one pass over pairs, for modules
// that can estimate it.
func EstimateRuntime(e *env.Environment, pairs []module.Pair) (int, error) {
	total := 0
	for i, p := range pairs {
		est, ok := p.Module.(module.RuntimeEstimator)
		if !ok {
			continue
		}
		ms, err := est.Runtime(e, p.Config)
		if err != nil {
			return 0, &GenerationError{Module: p.Module.Name(), Index: i, Range: p.Config.Range(), Err: err}
		}
		total = RuntimeSum(total, ms)
	}
	return total, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
