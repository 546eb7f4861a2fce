package sim

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/module"
	"github.com/stretchr/testify/require"
)

// blink writes one LED per pass and optionally waits.
type blink struct {
	module.NoSimulation
	index   int
	delayMs int
	setups  int
	loops   int
	failAt  int
}

func (b *blink) Name() string { return "blink" }

func (b *blink) GenerateCode(context.Context, *module.Generation, *config.Config, bool) (module.Code, error) {
	return module.Code{}, nil
}

func (b *blink) SimulateSetup(context.Context, *env.Environment, *config.Config, module.Device) (module.State, error) {
	b.setups++
	return nil, nil
}

func (b *blink) SimulateLoop(ctx context.Context, _ *env.Environment, _ *config.Config, _ module.State, dev module.Device) error {
	b.loops++
	if b.failAt > 0 && b.loops == b.failAt {
		return errors.New("boom")
	}
	if err := dev.SetLedHex(b.index, "00FF00"); err != nil {
		return err
	}
	if b.delayMs > 0 {
		dev.PushLeds()
		return dev.Delay(ctx, b.delayMs)
	}
	return nil
}

func pairOf(m module.Module) module.Pair {
	return module.Pair{Module: m, Config: config.MustFromGo(map[string]any{})}
}

func TestArduino_SetLedHexAndPush(t *testing.T) {
	t.Parallel()
	rec := &Recorder{}
	dev := NewArduino(4, &ManualClock{}, rec)

	require.NoError(t, dev.SetLedHex(2, "#ff8000"))
	require.True(t, dev.IsDirty())
	dev.PushLeds()

	require.False(t, dev.IsDirty())
	require.Equal(t, 1, rec.Len())
	frame := rec.Frames()[0]
	require.Equal(t, 0, frame.Index)
	require.Equal(t, color.RGBA{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}, frame.LEDs[2])
	require.Equal(t, color.RGBA{}, frame.LEDs[0])
}

func TestArduino_RejectsOutOfRangeAndBadHex(t *testing.T) {
	t.Parallel()
	dev := NewArduino(3, &ManualClock{}, nil)

	require.EqualError(t, dev.SetLedHex(3, "FFFFFF"), "LED index 3 is out of range: the strip has 3 LEDs")
	require.Error(t, dev.SetLedHex(-1, "FFFFFF"))
	require.Error(t, dev.SetLedHex(0, "XYZ"))
	require.False(t, dev.IsDirty())
}

func TestRecorder_CopiesFrames(t *testing.T) {
	t.Parallel()
	rec := &Recorder{}
	dev := NewArduino(1, &ManualClock{}, rec)

	require.NoError(t, dev.SetLedHex(0, "FF0000"))
	dev.PushLeds()
	require.NoError(t, dev.SetLedHex(0, "0000FF"))
	dev.PushLeds()

	frames := rec.Frames()
	require.Len(t, frames, 2)
	require.Equal(t, "FF0000", Hex(frames[0].LEDs[0]))
	require.Equal(t, "0000FF", Hex(frames[1].LEDs[0]))
}

func TestRun_SetupOnceThenPasses(t *testing.T) {
	t.Parallel()
	// Arrange
	b := &blink{index: 1, delayMs: 25}
	clock := &ManualClock{}
	rec := &Recorder{}

	// Act
	res, err := Run(context.Background(), env.Default(), []module.Pair{pairOf(b)}, Options{Passes: 3, Clock: clock, Sink: rec})

	// Assert
	require.NoError(t, err)
	require.Equal(t, 1, b.setups)
	require.Equal(t, 3, b.loops)
	require.Equal(t, 3, res.Passes)
	require.Equal(t, 3, res.Frames)
	require.Equal(t, 75*time.Millisecond, clock.Elapsed())
	require.Equal(t, "00FF00", Hex(res.LEDs[1]))
}

func TestRun_FlushesDirtyBufferAtEndOfPass(t *testing.T) {
	t.Parallel()
	b := &blink{index: 0}
	rec := &Recorder{}

	res, err := Run(context.Background(), env.Default(), []module.Pair{pairOf(b)}, Options{Passes: 2, Clock: &ManualClock{}, Sink: rec})

	require.NoError(t, err)
	require.Equal(t, 2, res.Frames)
	require.Equal(t, 2, rec.Len())
}

func TestRun_WrapsModuleFailure(t *testing.T) {
	t.Parallel()
	b := &blink{failAt: 2}

	_, err := Run(context.Background(), env.Default(), []module.Pair{pairOf(b)}, Options{Passes: 5, Clock: &ManualClock{}})

	var simErr *SimulationError
	require.True(t, errors.As(err, &simErr))
	require.Equal(t, "blink", simErr.Module)
	require.Equal(t, 0, simErr.Index)
	require.False(t, simErr.Setup)
	require.Contains(t, err.Error(), "boom")
}

func TestRun_StopsOnCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	rec := &cancelAfter{n: 4, cancel: cancel}
	b := &blink{index: 0, delayMs: 10}

	res, err := Run(ctx, env.Default(), []module.Pair{pairOf(b)}, Options{Clock: &ManualClock{}, Sink: rec})

	require.NoError(t, err)
	require.LessOrEqual(t, res.Passes, 4)
	require.GreaterOrEqual(t, res.Passes, 3)
}

func TestRun_SinkErrorAbortsRun(t *testing.T) {
	t.Parallel()
	b := &blink{index: 0}
	sink := failingSink{err: errors.New("preview gone")}

	_, err := Run(context.Background(), env.Default(), []module.Pair{pairOf(b)}, Options{Passes: 3, Clock: &ManualClock{}, Sink: sink})

	require.EqualError(t, err, "preview gone")
}

func TestRealClock_HonoursCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RealClock{Speed: 1}.Sleep(ctx, time.Hour)

	require.ErrorIs(t, err, context.Canceled)
}

func TestRealClock_ScalesBySpeed(t *testing.T) {
	t.Parallel()
	start := time.Now()

	require.NoError(t, RealClock{Speed: 1000}.Sleep(context.Background(), time.Second))

	require.Less(t, time.Since(start), 500*time.Millisecond)
}

type cancelAfter struct {
	n      int
	seen   int
	cancel context.CancelFunc
}

func (c *cancelAfter) Frame(context.Context, Frame) error {
	c.seen++
	if c.seen == c.n {
		c.cancel()
	}
	return nil
}

type failingSink struct{ err error }

func (f failingSink) Frame(context.Context, Frame) error { return f.err }
