package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/ledgrid/internal/codegen"
	"github.com/specialistvlad/ledgrid/internal/ctxlog"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/module"
	"github.com/specialistvlad/ledgrid/internal/program"
	"github.com/specialistvlad/ledgrid/internal/sim"
)

// Result is what one run produced.
type Result struct {
	Source     string
	Env        *env.Environment
	RuntimeMs  int
	Simulation *sim.Result
}

// Run loads the program, generates the source, writes it out and, when
// configured, simulates it.
func (a *App) Run(ctx context.Context) (*Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	prog, err := a.loader.Load(ctx, a.config.ProgramPath, program.Overrides{
		LedPin:    a.config.LedPin,
		LedAmount: a.config.LedAmount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load program: %w", err)
	}

	e, err := a.environment(prog.Env)
	if err != nil {
		return nil, err
	}

	pairs, err := a.registry.ParseModules(prog.Modules)
	if err != nil {
		return nil, fmt.Errorf("failed to parse modules: %w", err)
	}
	a.logger.Debug("Modules resolved.", "count", len(pairs))

	source, err := codegen.GenerateCode(ctx, e, pairs)
	if err != nil {
		return nil, fmt.Errorf("code generation failed: %w", err)
	}
	runtime, err := codegen.EstimateRuntime(e, pairs)
	if err != nil {
		return nil, fmt.Errorf("code generation failed: %w", err)
	}
	a.logger.Info("Code generated.", "modules", len(pairs), "bytes", len(source), "loop_runtime_ms", runtime)

	if err := a.writeSource(source); err != nil {
		return nil, err
	}

	res := &Result{Source: source, Env: e, RuntimeMs: runtime}
	if a.config.Simulate {
		if res.Simulation, err = a.simulate(ctx, e, pairs); err != nil {
			return nil, err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return res, nil
}

// environment applies the configured overrides to the program's environment.
func (a *App) environment(base *env.Environment) (*env.Environment, error) {
	e := base.Clone()
	if a.config.LedPin != nil {
		e.LedPin = *a.config.LedPin
	}
	if a.config.LedAmount != nil {
		e.LedAmount = *a.config.LedAmount
	}
	if a.config.NoComments {
		e.WithComments = false
	}
	if a.config.TemplatePath != "" {
		b, err := os.ReadFile(a.config.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read template file: %w", err)
		}
		e.PreprocessingCode = string(b)
	}
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	return e, nil
}

func (a *App) writeSource(source string) error {
	if a.config.OutputPath == "" {
		_, err := fmt.Fprintln(a.outW, source)
		return err
	}
	if err := os.WriteFile(a.config.OutputPath, []byte(source+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write generated source: %w", err)
	}
	a.logger.Info("Generated source written.", "path", a.config.OutputPath)
	return nil
}

func (a *App) simulate(ctx context.Context, e *env.Environment, pairs []module.Pair) (*sim.Result, error) {
	sink, closeSink, err := a.previewSink(ctx, e)
	if err != nil {
		return nil, err
	}
	defer closeSink()

	status := newFrameStatus()
	if a.config.HealthcheckPort > 0 {
		stop := a.startHealthcheckServer(ctx, a.config.HealthcheckPort, status)
		defer stop()
	}

	a.logger.Info("Simulation started.", "passes", a.config.Passes, "speed", a.config.Speed, "preview", a.config.Preview)
	res, err := sim.Run(ctx, e, pairs, sim.Options{
		Passes: a.config.Passes,
		Clock:  sim.RealClock{Speed: a.config.Speed},
		Sink:   sim.MultiSink{status, sink},
	})
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}
	a.logger.Info("Simulation finished.", "passes", res.Passes, "frames", res.Frames)
	return res, nil
}
