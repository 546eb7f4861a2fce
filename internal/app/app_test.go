package app

import (
	"bytes"
	"context"
	"encoding/json"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/sim"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "missing program", cfg: Config{}, wantErr: "ProgramPath is a required"},
		{name: "negative pin", cfg: Config{ProgramPath: "p", LedPin: intPtr(-1)}, wantErr: "led pin must be >= 0"},
		{name: "zero leds", cfg: Config{ProgramPath: "p", LedAmount: intPtr(0)}, wantErr: "led amount must be >= 1"},
		{name: "negative passes", cfg: Config{ProgramPath: "p", Passes: -1}, wantErr: "passes must be >= 0"},
		{name: "negative speed", cfg: Config{ProgramPath: "p", Speed: -2}, wantErr: "speed must be > 0"},
		{name: "unknown preview", cfg: Config{ProgramPath: "p", Preview: "svg"}, wantErr: `unknown preview "svg"`},
		{name: "socketio without url", cfg: Config{ProgramPath: "p", Preview: PreviewSocketIO}, wantErr: "requires a preview URL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConfig(tc.cfg)

			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{ProgramPath: "p"})

	require.NoError(t, err)
	require.Equal(t, 1.0, cfg.Speed)
	require.Equal(t, PreviewNone, cfg.Preview)
}

func TestEnvironment_AppliesOverrides(t *testing.T) {
	t.Parallel()
	// Arrange
	tpl := filepath.Join(t.TempDir(), "sketch.tpl")
	require.NoError(t, os.WriteFile(tpl, []byte("$RUN_CODE$"), 0o644))
	cfg, err := NewConfig(Config{ProgramPath: "p", LedPin: intPtr(3), LedAmount: intPtr(60), NoComments: true, TemplatePath: tpl})
	require.NoError(t, err)
	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, nil)
	base := env.Default()

	// Act
	e, err := a.environment(base)

	// Assert
	require.NoError(t, err)
	require.Equal(t, 3, e.LedPin)
	require.Equal(t, 60, e.LedAmount)
	require.False(t, e.WithComments)
	require.Equal(t, "$RUN_CODE$", e.PreprocessingCode)
	require.Equal(t, env.DefaultLedAmount, base.LedAmount)
}

func TestNewApp_RegistersCoreModules(t *testing.T) {
	t.Parallel()
	cfg, err := NewConfig(Config{ProgramPath: "p"})
	require.NoError(t, err)

	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, nil)

	require.Equal(t, []string{"color", "comment", "loop", "test"}, a.Registry().Keys())
}

func TestStatusServer(t *testing.T) {
	t.Parallel()
	// Arrange
	cfg, err := NewConfig(Config{ProgramPath: "p"})
	require.NoError(t, err)
	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, cfg, nil)
	status := newFrameStatus()
	srv := httptest.NewServer(a.statusMux(status))
	defer srv.Close()

	// Act & Assert: nothing simulated yet.
	resp, err := http.Get(srv.URL + "/frame")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.NoError(t, status.Frame(context.Background(), sim.Frame{Index: 4, LEDs: []color.RGBA{{R: 0xFF, A: 0xFF}}}))
	resp, err = http.Get(srv.URL + "/frame")
	require.NoError(t, err)
	defer resp.Body.Close()
	var got frameResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, frameResponse{Index: 4, LEDs: []string{"FF0000"}}, got)

	health, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	health.Body.Close()
	require.Equal(t, http.StatusOK, health.StatusCode)
}

func TestNewLogger_Format(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	newLogger("debug", "json", &buf).Debug("hello", "k", 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["msg"])
	require.Equal(t, "DEBUG", line["level"])
}
