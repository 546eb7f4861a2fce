package program

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/ctxlog"
	"github.com/specialistvlad/ledgrid/internal/env"
)

// Program is a loaded, not yet resolved program.
type Program struct {
	Env     *env.Environment
	Modules []*config.RawModule
	// Files lists the files the program was read from, in load order.
	Files []string
}

// Loader reads a program from one path.
type Loader interface {
	Load(ctx context.Context, path string, ov Overrides) (*Program, error)
}

// Overrides replace environment fields of the program before any module
// expression is evaluated, so expressions such as led_amount see them too.
type Overrides struct {
	LedPin    *int
	LedAmount *int
}

// AutoLoader picks the format by path: directories and .hcl files are HCL,
// .json files are JSON.
type AutoLoader struct {
	HCL  *HCLLoader
	JSON *JSONLoader
}

// NewLoader returns a loader for every supported format.
func NewLoader() *AutoLoader {
	return &AutoLoader{HCL: &HCLLoader{}, JSON: &JSONLoader{}}
}

// Load implements Loader.
func (l *AutoLoader) Load(ctx context.Context, path string, ov Overrides) (*Program, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing program path %s: %w", path, err)
	}

	var prog *Program
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case info.IsDir(), ext == ".hcl":
		prog, err = l.HCL.Load(ctx, path, ov)
	case ext == ".json":
		prog, err = l.JSON.Load(ctx, path, ov)
	default:
		return nil, fmt.Errorf("unsupported program file %s: expected a .hcl or .json file or a directory", path)
	}
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("Program loaded.", "path", path, "files", len(prog.Files), "modules", len(prog.Modules))
	return prog, nil
}

// environmentSettings are the optional environment fields shared by both
// formats. Absent fields keep the defaults.
type environmentSettings struct {
	LedPin       *int    `hcl:"led_pin,optional" json:"led_pin"`
	LedAmount    *int    `hcl:"led_amount,optional" json:"led_amount"`
	WithComments *bool   `hcl:"with_comments,optional" json:"with_comments"`
	Preview      *string `hcl:"preview,optional" json:"preview"`
	TemplateFile *string `hcl:"template_file,optional" json:"template_file"`
}

// apply builds the environment and then applies ov. A relative template path
// is resolved against baseDir.
func (s *environmentSettings) apply(baseDir string, ov Overrides) (*env.Environment, error) {
	e := env.Default()
	if s == nil {
		ov.applyTo(e)
		return e, nil
	}
	if s.LedPin != nil {
		e.LedPin = *s.LedPin
	}
	if s.LedAmount != nil {
		e.LedAmount = *s.LedAmount
	}
	if s.WithComments != nil {
		e.WithComments = *s.WithComments
	}
	if s.Preview != nil {
		e.SelectedPreview = *s.Preview
	}
	if s.TemplateFile != nil {
		path := *s.TemplateFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template file: %w", err)
		}
		e.PreprocessingCode = string(b)
	}
	ov.applyTo(e)
	return e, nil
}

func (ov Overrides) applyTo(e *env.Environment) {
	if ov.LedPin != nil {
		e.LedPin = *ov.LedPin
	}
	if ov.LedAmount != nil {
		e.LedAmount = *ov.LedAmount
	}
}
