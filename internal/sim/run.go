package sim

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/specialistvlad/ledgrid/internal/ctxlog"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/module"
)

// Options controls a simulation run.
type Options struct {
	// Passes is the number of loop() passes; 0 runs until ctx is done.
	Passes int
	Clock  Clock
	Sink   FrameSink
}

// Result summarises a finished run.
type Result struct {
	Passes int
	Frames int
	LEDs   []color.RGBA
}

// Instance is a set-up module occurrence ready to loop.
type Instance struct {
	module.Pair
	Index int
	State module.State
}

// Setup runs SimulateSetup of every pair in order.
// Container modules call it for their nested lists with the ctx they were
// given, which tracks the nesting depth.
func Setup(ctx context.Context, e *env.Environment, pairs []module.Pair, dev module.Device) ([]Instance, error) {
	depth, _ := ctx.Value(depthKey{}).(int)
	if depth > module.MaxNestingDepth {
		return nil, fmt.Errorf("modules are nested deeper than the maximum of %d levels", module.MaxNestingDepth)
	}
	ctx = context.WithValue(ctx, depthKey{}, depth+1)

	out := make([]Instance, 0, len(pairs))
	for i, p := range pairs {
		state, err := p.Module.SimulateSetup(ctx, e, p.Config, dev)
		if err != nil {
			return nil, &SimulationError{Module: p.Module.Name(), Index: i, Range: p.Config.Range(), Setup: true, Err: err}
		}
		out = append(out, Instance{Pair: p, Index: i, State: state})
	}
	return out, nil
}

// Loop runs SimulateLoop of every instance in order.
func Loop(ctx context.Context, e *env.Environment, instances []Instance, dev module.Device) error {
	for _, in := range instances {
		if err := in.Module.SimulateLoop(ctx, e, in.Config, in.State, dev); err != nil {
			if isCancel(err) {
				return err
			}
			return &SimulationError{Module: in.Module.Name(), Index: in.Index, Range: in.Config.Range(), Err: err}
		}
	}
	return nil
}

// Run simulates the program: setup once, then loop passes. Every pass that
// ends with unshown writes is flushed, like the show() at the end of the
// generated loop(). Cancellation of ctx ends the run without an error.
func Run(ctx context.Context, e *env.Environment, pairs []module.Pair, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	dev := NewArduino(e.LedAmount, opts.Clock, opts.Sink)
	dev.ctx = ctx

	instances, err := Setup(ctx, e, pairs, dev)
	if err != nil {
		return nil, err
	}
	logger.Debug("Simulation set up.", "modules", len(instances), "led_amount", e.LedAmount)

	res := &Result{}
	for opts.Passes == 0 || res.Passes < opts.Passes {
		if ctx.Err() != nil {
			break
		}
		if err := Loop(ctx, e, instances, dev); err != nil {
			if isCancel(err) && ctx.Err() != nil {
				break
			}
			return nil, err
		}
		if dev.IsDirty() {
			dev.PushLeds()
		}
		if err := dev.Err(); err != nil {
			return nil, err
		}
		res.Passes++
		logger.Debug("Simulation pass finished.", "pass", res.Passes, "frames", dev.Frames())
	}

	res.Frames = dev.Frames()
	res.LEDs = dev.LEDs()
	return res, nil
}

// depthKey carries the nesting level of the list Setup is working on.
type depthKey struct{}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
