package program

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/ledgrid/internal/config"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// JSONLoader reads programs of the form
//
//	{"environment": {...}, "modules": [{"module": "color", "config": {...}}]}
//
// A "modules" key inside a config holds a nested list of the same shape.
type JSONLoader struct{}

type jsonProgram struct {
	Environment *environmentSettings `json:"environment"`
	Modules     []jsonModule         `json:"modules"`
}

type jsonModule struct {
	Module string                     `json:"module"`
	Config map[string]json.RawMessage `json:"config"`
}

// Load implements Loader.
func (l *JSONLoader) Load(_ context.Context, path string, ov Overrides) (*Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program %s: %w", path, err)
	}

	var doc jsonProgram
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode program %s: %w", path, err)
	}

	e, err := doc.Environment.apply(filepath.Dir(path), ov)
	if err != nil {
		return nil, err
	}

	// JSON carries no positions; every config points at the file.
	rng := hcl.Range{
		Filename: path,
		Start:    hcl.InitialPos,
		End:      hcl.InitialPos,
	}
	modules, err := decodeJSONModules(doc.Modules, rng, "modules")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Program{Env: e, Modules: modules, Files: []string{path}}, nil
}

func decodeJSONModules(list []jsonModule, rng hcl.Range, where string) ([]*config.RawModule, error) {
	out := make([]*config.RawModule, 0, len(list))
	for i, m := range list {
		at := fmt.Sprintf("%s[%d]", where, i)
		if m.Module == "" {
			return nil, fmt.Errorf("%s: missing module key", at)
		}

		values := make(map[string]any, len(m.Config))
		for key, raw := range m.Config {
			if key == config.ModulesKey {
				var nested []jsonModule
				if err := json.Unmarshal(raw, &nested); err != nil {
					return nil, fmt.Errorf("%s.config.%s: %w", at, key, err)
				}
				rms, err := decodeJSONModules(nested, rng, at+".config."+key)
				if err != nil {
					return nil, err
				}
				values[key] = rms
				continue
			}

			ty, err := ctyjson.ImpliedType(raw)
			if err != nil {
				return nil, fmt.Errorf("%s.config.%s: %w", at, key, err)
			}
			v, err := ctyjson.Unmarshal(raw, ty)
			if err != nil {
				return nil, fmt.Errorf("%s.config.%s: %w", at, key, err)
			}
			values[key] = v
		}
		out = append(out, &config.RawModule{Key: m.Module, Config: config.New(values, rng)})
	}
	return out, nil
}
