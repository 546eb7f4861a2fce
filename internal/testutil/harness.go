package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/ledgrid/internal/app"
	"github.com/specialistvlad/ledgrid/internal/program"
	"github.com/specialistvlad/ledgrid/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Output is everything written to the output writer (the generated
	// source unless an output file was configured).
	Output    string
	LogOutput string
	Err       error
	Result    *app.Result
	App       *app.App
	// Dir is the temporary directory the program files were written to.
	Dir string
}

// RunProgram provides a standardized harness for running integration tests
// using a default background context.
func RunProgram(t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunProgramWithContext(context.Background(), t, files, cfg, modules...)
}

// RunProgramWithContext writes files into a temporary directory and runs the
// app against them. cfg.ProgramPath and cfg.OutputPath are relative to that
// directory; an empty ProgramPath loads the whole directory.
func RunProgramWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg.ProgramPath = filepath.Join(dir, cfg.ProgramPath)
	if cfg.OutputPath != "" {
		cfg.OutputPath = filepath.Join(dir, cfg.OutputPath)
	}
	if cfg.TemplatePath != "" {
		cfg.TemplatePath = filepath.Join(dir, cfg.TemplatePath)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return &HarnessResult{Err: err, Dir: dir}
	}

	out, logBuffer := &SafeBuffer{}, &SafeBuffer{}
	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, logBuffer, appConfig, program.NewLoader(), modules...)
	}()
	if panicErr != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
			Dir:       dir,
		}
	}

	res, runErr := testApp.Run(ctx)

	if os.Getenv("LEDGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		Result:    res,
		App:       testApp,
		Dir:       dir,
	}
}
