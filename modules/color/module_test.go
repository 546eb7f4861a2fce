package color

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/specialistvlad/ledgrid/internal/codegen"
	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/module"
	"github.com/specialistvlad/ledgrid/internal/registry"
	"github.com/specialistvlad/ledgrid/internal/sim"
	"github.com/specialistvlad/ledgrid/internal/varsys"
	"github.com/stretchr/testify/require"
)

func newGeneration() *module.Generation {
	return &module.Generation{Env: env.Default(), Vars: varsys.New(), Funcs: codegen.NewFunctionTable()}
}

func generate(t *testing.T, values map[string]any, isDirty bool) module.Code {
	t.Helper()
	code, err := (&Color{}).GenerateCode(context.Background(), newGeneration(), config.MustFromGo(values), isDirty)
	require.NoError(t, err)
	return code
}

func TestGenerateCode_SingleLed(t *testing.T) {
	t.Parallel()
	gen := newGeneration()

	code, err := (&Color{}).GenerateCode(context.Background(), gen, config.MustFromGo(map[string]any{"start": 5, "rgbHex": "#0000ff"}), false)

	require.NoError(t, err)
	require.Equal(t, "leds[5] = CRGB(0, 0, 255);", code.Loop)
	require.Empty(t, code.Setup)
	require.True(t, code.IsDirty)
	// No iterator was taken, so the first local is still "l".
	require.Equal(t, "l", gen.Vars.RequestLocal("int", "l", "0").Name)
}

func TestGenerateCode_SingleLedWithDelay(t *testing.T) {
	t.Parallel()

	code := generate(t, map[string]any{"start": 1, "delayPerLed": 20}, false)

	require.Equal(t, "leds[1] = CRGB(255, 0, 0);\nFastLED.show();\ndelay(20);", code.Loop)
	require.False(t, code.IsDirty)
}

func TestGenerateCode_StripeFromStartEnd(t *testing.T) {
	t.Parallel()
	want := "for(int l = 0; l < 4; l++){\n    leds[2 + l] = CRGB(255, 0, 0);\n}"

	forward := generate(t, map[string]any{"start": 2, "end": 6}, false)
	backward := generate(t, map[string]any{"start": 6, "end": 2}, false)

	require.Equal(t, want, forward.Loop)
	require.Equal(t, want, backward.Loop)
	require.True(t, forward.IsDirty)
}

func TestGenerateCode_SteppedWithDelays(t *testing.T) {
	t.Parallel()

	code := generate(t, map[string]any{
		"steps": 3, "ledsPerStep": 2, "space": 1,
		"delayPerLed": 10, "delayAfterStep": 50, "rgbHex": "00FF00",
	}, false)

	want := "for(int s = 0; s < 3; s++){\n" +
		"    for(int l = 0; l < 2; l++){\n" +
		"        leds[s * 3 + l] = CRGB(0, 255, 0);\n" +
		"        FastLED.show();\n" +
		"        delay(10);\n" +
		"    }\n" +
		"    delay(50);\n" +
		"}"
	require.Equal(t, want, code.Loop)
	require.False(t, code.IsDirty)
}

func TestGenerateCode_AfterStepDelayShowsWhenDirty(t *testing.T) {
	t.Parallel()

	code := generate(t, map[string]any{"start": 4, "ledsPerStep": 2, "delayAfterStep": 30}, false)

	require.Equal(t, "for(int l = 0; l < 2; l++){\n    leds[4 + l] = CRGB(255, 0, 0);\n}\nFastLED.show();\ndelay(30);", code.Loop)
	require.False(t, code.IsDirty)
}

func TestParseSettings_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		values  map[string]any
		wantErr string
	}{
		{name: "equal start and end", values: map[string]any{"start": 3, "end": 3}, wantErr: `field "end": the start- and end-values are equal`},
		{name: "end with steps", values: map[string]any{"end": 3, "steps": 2}, wantErr: `field "steps": cannot be combined with "end"`},
		{name: "negative start", values: map[string]any{"start": -1}, wantErr: `field "start": must be an integer >= 0`},
		{name: "zero steps", values: map[string]any{"steps": 0}, wantErr: `field "steps": must be an integer >= 1`},
		{name: "bad color", values: map[string]any{"rgbHex": "red"}, wantErr: `field "rgbHex"`},
		{name: "past the strip", values: map[string]any{"start": 30, "ledsPerStep": 3}, wantErr: "LED index 32 is out of range: the strip has 32 LEDs"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseSettings(env.Default(), config.MustFromGo(tc.values))

			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestSettings_SteppedIndices(t *testing.T) {
	t.Parallel()

	s, err := ParseSettings(env.Default(), config.MustFromGo(map[string]any{"steps": 3, "ledsPerStep": 2, "space": 1}))

	require.NoError(t, err)
	require.Equal(t, 3, s.Index(1, 0))
	require.Equal(t, 7, s.Index(2, 1))
	require.Equal(t, 7, s.LastIndex())
	require.Equal(t, 0, s.Runtime())
}

func TestRuntime(t *testing.T) {
	t.Parallel()

	ms, err := (&Color{}).Runtime(env.Default(), config.MustFromGo(map[string]any{
		"steps": 2, "ledsPerStep": 3, "delayPerLed": 10, "delayAfterStep": 100,
	}))

	require.NoError(t, err)
	require.Equal(t, 260, ms)
}

func TestSimulation_MirrorsGeneratedCode(t *testing.T) {
	t.Parallel()
	// Arrange
	cfg := config.MustFromGo(map[string]any{"steps": 3, "ledsPerStep": 2, "space": 1, "delayAfterStep": 5, "rgbHex": "0000FF"})
	clock := &sim.ManualClock{}
	rec := &sim.Recorder{}
	dev := sim.NewArduino(10, clock, rec)
	c := &Color{}

	// Act
	state, err := c.SimulateSetup(context.Background(), env.Default(), cfg, dev)
	require.NoError(t, err)
	err = c.SimulateLoop(context.Background(), env.Default(), cfg, state, dev)

	// Assert
	require.NoError(t, err)
	require.Equal(t, []time.Duration{5 * time.Millisecond, 5 * time.Millisecond, 5 * time.Millisecond}, clock.Sleeps())
	require.Equal(t, 3, rec.Len())
	leds := dev.LEDs()
	for _, i := range []int{0, 1, 3, 4, 6, 7} {
		require.Equal(t, "0000FF", sim.Hex(leds[i]), "led %d", i)
	}
	for _, i := range []int{2, 5, 8, 9} {
		require.Equal(t, "000000", sim.Hex(leds[i]), "led %d", i)
	}
	require.False(t, dev.IsDirty())
}

func TestSimulation_NoDelayLeavesBufferDirty(t *testing.T) {
	t.Parallel()
	cfg := config.MustFromGo(map[string]any{"start": 0, "end": 3})
	dev := sim.NewArduino(5, &sim.ManualClock{}, nil)
	c := &Color{}

	state, err := c.SimulateSetup(context.Background(), env.Default(), cfg, dev)
	require.NoError(t, err)
	require.NoError(t, c.SimulateLoop(context.Background(), env.Default(), cfg, state, dev))

	require.True(t, dev.IsDirty())
	require.Zero(t, dev.Frames())
}

func TestRegister_FunctionModules(t *testing.T) {
	t.Parallel()
	// Arrange
	r := registry.New(registry.WithFunctionModules(true))
	(&Module{}).Register(r)
	m, ok := r.Lookup(Key)
	require.True(t, ok)
	require.True(t, module.IsFunction(m))
	pairs := []module.Pair{
		{Module: m, Config: config.MustFromGo(map[string]any{"start": 1})},
		{Module: m, Config: config.MustFromGo(map[string]any{"start": 2, "delayPerLed": 10})},
	}
	e := env.Default()
	e.WithComments = false
	e.PreprocessingCode = "$FUNC_DEFS$\n--\n$RUN_CODE$"

	// Act
	out, err := codegen.GenerateCode(context.Background(), e, pairs)

	// Assert
	require.NoError(t, err)
	require.Contains(t, out, "void colorModule(int start, int steps, int ledsPerStep, int space, int delayPerLed, int delayAfterStep, CRGB clr){")
	require.Contains(t, out, "void colorModuleDirty(int start,")
	require.Contains(t, out, "    colorModule(1, 1, 1, 0, 0, 0, CRGB(255, 0, 0));\n\n    colorModuleDirty(2, 1, 1, 0, 10, 0, CRGB(255, 0, 0));")
	require.Contains(t, out, "leds[start + s * (space + ledsPerStep) + l] = clr;")
	// The second call waits, so no frame-end show is appended.
	require.NotContains(t, out, "CRGB(255, 0, 0));\n    FastLED.show();")
}

func TestRegister_InlineByDefault(t *testing.T) {
	t.Parallel()
	r := registry.New()

	(&Module{}).Register(r)

	m, ok := r.Lookup(Key)
	require.True(t, ok)
	require.False(t, module.IsFunction(m))
	var cfgErr *config.ConfigError
	_, err := m.GenerateCode(context.Background(), newGeneration(), config.MustFromGo(map[string]any{"steps": "x"}), false)
	require.True(t, errors.As(err, &cfgErr))
}
