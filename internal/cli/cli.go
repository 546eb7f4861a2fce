package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/specialistvlad/ledgrid/internal/app"
	"golang.org/x/term"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const previewAuto = "auto"

// IsTerminal reports whether the preview output is an interactive terminal.
// It decides what -preview=auto resolves to.
var IsTerminal = func() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("ledgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
ledgrid - generates FastLED sketches from LED programs and simulates them.

Usage:
  ledgrid [options] [PROGRAM_PATH]

Arguments:
  PROGRAM_PATH
    Path to a .hcl or .json program, or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	programFlag := flagSet.String("program", "", "Path to the program file or directory.")
	pFlag := flagSet.String("p", "", "Path to the program file or directory (shorthand).")
	outFlag := flagSet.String("o", "", "Write the generated source to this file instead of stdout.")
	templateFlag := flagSet.String("template", "", "Source template file overriding the program's.")
	ledPinFlag := flagSet.Int("led-pin", 0, "Override the data pin of the strip.")
	ledAmountFlag := flagSet.Int("led-amount", 0, "Override the number of LEDs on the strip.")
	noCommentsFlag := flagSet.Bool("no-comments", false, "Do not emit comments into the generated source.")
	functionsFlag := flagSet.Bool("functions", false, "Emit supported modules as C++ functions instead of inlining them.")
	simulateFlag := flagSet.Bool("simulate", false, "Run the simulator after generating.")
	passesFlag := flagSet.Int("passes", 1, "Number of simulated loop() passes. 0 runs until interrupted.")
	speedFlag := flagSet.Float64("speed", 1, "Simulated time speed factor.")
	previewFlag := flagSet.String("preview", previewAuto, "Simulation preview. Options: 'auto', 'terminal', 'socketio', 'none'.")
	previewURLFlag := flagSet.String("preview-url", "", "socket.io preview server URL, e.g. http://localhost:3000/socket.io/.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server during simulation. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })

	path := ""
	if *programFlag != "" {
		path = *programFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Program path determined.", "path", path)

	if path == "" {
		slog.Debug("No program path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	previewMode := strings.ToLower(*previewFlag)
	if previewMode == previewAuto {
		previewMode = resolveAutoPreview(*previewURLFlag)
	}

	cfg := app.Config{
		ProgramPath:     path,
		OutputPath:      *outFlag,
		TemplatePath:    *templateFlag,
		NoComments:      *noCommentsFlag,
		FunctionModules: *functionsFlag,
		Simulate:        *simulateFlag,
		Passes:          *passesFlag,
		Speed:           *speedFlag,
		Preview:         previewMode,
		PreviewURL:      *previewURLFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	}
	if set["led-pin"] {
		cfg.LedPin = ledPinFlag
	}
	if set["led-amount"] {
		cfg.LedAmount = ledAmountFlag
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// resolveAutoPreview prefers a configured socket.io server, then the
// terminal when one is attached.
func resolveAutoPreview(previewURL string) string {
	switch {
	case previewURL != "":
		return app.PreviewSocketIO
	case IsTerminal():
		return app.PreviewTerminal
	default:
		return app.PreviewNone
	}
}
