package app

import (
	"errors"
	"fmt"
)

// Preview modes for the simulator.
const (
	PreviewNone     = "none"
	PreviewTerminal = "terminal"
	PreviewSocketIO = "socketio"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProgramPath string // .hcl file, .json file or directory of .hcl files
	OutputPath  string // empty writes the generated source to the output writer

	// Overrides of the program's environment. Nil keeps the program's value.
	TemplatePath string
	LedPin       *int
	LedAmount    *int
	NoComments   bool

	FunctionModules bool

	Simulate   bool
	Passes     int
	Speed      float64
	Preview    string
	PreviewURL string

	HealthcheckPort int
	LogFormat       string
	LogLevel        string
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProgramPath == "" {
		return nil, errors.New("ProgramPath is a required configuration field and cannot be empty")
	}
	if cfg.LedPin != nil && *cfg.LedPin < 0 {
		return nil, fmt.Errorf("led pin must be >= 0, got %d", *cfg.LedPin)
	}
	if cfg.LedAmount != nil && *cfg.LedAmount < 1 {
		return nil, fmt.Errorf("led amount must be >= 1, got %d", *cfg.LedAmount)
	}
	if cfg.Passes < 0 {
		return nil, fmt.Errorf("passes must be >= 0, got %d", cfg.Passes)
	}
	if cfg.Speed == 0 {
		cfg.Speed = 1
	}
	if cfg.Speed < 0 {
		return nil, fmt.Errorf("speed must be > 0, got %g", cfg.Speed)
	}
	if cfg.Preview == "" {
		cfg.Preview = PreviewNone
	}
	switch cfg.Preview {
	case PreviewNone, PreviewTerminal:
	case PreviewSocketIO:
		if cfg.PreviewURL == "" {
			return nil, errors.New("the socketio preview requires a preview URL")
		}
	default:
		return nil, fmt.Errorf("unknown preview %q: must be 'none', 'terminal' or 'socketio'", cfg.Preview)
	}
	if cfg.HealthcheckPort < 0 {
		return nil, fmt.Errorf("healthcheck port must be >= 0, got %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
