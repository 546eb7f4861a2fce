// Package comment implements the "comment" module, which only annotates the
// generated source.
package comment

import (
	"context"
	"strings"

	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/module"
	"github.com/specialistvlad/ledgrid/internal/registry"
)

const Key = "comment"

type Module struct{}

func (m *Module) Register(r *registry.Registry) {
	r.Register(Key, &Comment{})
}

// Comment emits its text as line comments. It writes no LEDs, so the dirty
// state passes through.
type Comment struct {
	module.NoSimulation
}

func (c *Comment) Name() string { return Key }

func (c *Comment) GenerateCode(_ context.Context, _ *module.Generation, cfg *config.Config, isDirty bool) (module.Code, error) {
	text, err := cfg.RequiredString("text")
	if err != nil {
		return module.Code{}, err
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = commentLine(l)
	}
	return module.Code{Loop: strings.Join(lines, "\n"), IsDirty: isDirty}, nil
}

// commentLine turns l into a C++ line comment. A trailing backslash would
// splice the following source line into the comment, so it is closed with a
// period.
func commentLine(l string) string {
	line := strings.TrimRight("// "+l, " \t\r")
	if strings.HasSuffix(line, `\`) {
		line += "."
	}
	return line
}
