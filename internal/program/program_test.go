package program

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const hclProgram = `
environment {
  led_amount    = 16
  with_comments = false
  preview       = "WS2812B-8x2.svg"
}

module "comment" {
  text = "stripes"
}

module "loop" {
  repeats = 2
  delay   = 100

  module "color" {
    end    = min(led_amount, 10)
    rgbHex = lower("00FF00")
  }
}
`

const jsonProgram = `{
  "environment": {"led_amount": 16, "with_comments": false, "preview": "WS2812B-8x2.svg"},
  "modules": [
    {"module": "comment", "config": {"text": "stripes"}},
    {"module": "loop", "config": {
      "repeats": 2,
      "delay": 100,
      "modules": [{"module": "color", "config": {"end": 10, "rgbHex": "00ff00"}}]
    }}
  ]
}`

func TestHCLLoader_EnvironmentAndNestedModules(t *testing.T) {
	t.Parallel()
	// Arrange
	path := writeFile(t, t.TempDir(), "main.hcl", hclProgram)

	// Act
	prog, err := NewLoader().Load(context.Background(), path, Overrides{})

	// Assert
	require.NoError(t, err)
	require.Equal(t, 16, prog.Env.LedAmount)
	require.Equal(t, env.DefaultLedPin, prog.Env.LedPin)
	require.False(t, prog.Env.WithComments)
	require.Equal(t, "WS2812B-8x2.svg", prog.Env.SelectedPreview)
	require.Equal(t, env.PresetSourceCode, prog.Env.PreprocessingCode)

	require.Len(t, prog.Modules, 2)
	require.Equal(t, "comment", prog.Modules[0].Key)
	loop := prog.Modules[1]
	require.Equal(t, "loop", loop.Key)
	require.Equal(t, path, loop.Config.Range().Filename)
	require.Equal(t, 12, loop.Config.Range().Start.Line)

	raw, ok := loop.Config.GetRaw(config.ModulesKey)
	require.True(t, ok)
	nested := raw.([]*config.RawModule)
	require.Len(t, nested, 1)
	end, _ := nested[0].Config.GetRaw("end")
	require.True(t, end.(cty.Value).RawEquals(cty.NumberIntVal(10)))
	hex, _ := nested[0].Config.GetRaw("rgbHex")
	require.Equal(t, "00ff00", hex.(cty.Value).AsString())
}

func TestLoaders_HCLAndJSONAgree(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	hclPath := writeFile(t, dir, "p.hcl", hclProgram)
	jsonPath := writeFile(t, dir, "p.json", jsonProgram)
	loader := NewLoader()

	fromHCL, err := loader.Load(context.Background(), hclPath, Overrides{})
	require.NoError(t, err)
	fromJSON, err := loader.Load(context.Background(), jsonPath, Overrides{})
	require.NoError(t, err)

	require.Equal(t, fromHCL.Env, fromJSON.Env)
	requireSameModules(t, fromHCL.Modules, fromJSON.Modules)
}

func requireSameModules(t *testing.T, want, got []*config.RawModule) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].Key, got[i].Key)
		require.Equal(t, want[i].Config.Keys(), got[i].Config.Keys())
		for _, k := range want[i].Config.Keys() {
			wv, _ := want[i].Config.GetRaw(k)
			gv, _ := got[i].Config.GetRaw(k)
			if k == config.ModulesKey {
				requireSameModules(t, wv.([]*config.RawModule), gv.([]*config.RawModule))
				continue
			}
			w, g := wv.(cty.Value), gv.(cty.Value)
			if w.Type() == cty.String {
				require.Equal(t, config.NormalizeHex(w.AsString()), config.NormalizeHex(g.AsString()), "key %s", k)
				continue
			}
			require.True(t, w.RawEquals(g), "key %s: %#v != %#v", k, w, g)
		}
	}
}

func TestHCLLoader_DirectoryMergesInLexicalOrder(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "b.hcl", `module "comment" { text = "second" }`)
	writeFile(t, dir, "a.hcl", "environment {\n  led_amount = 8\n}\nmodule \"comment\" { text = \"first\" }\n")

	prog, err := NewLoader().Load(context.Background(), dir, Overrides{})

	require.NoError(t, err)
	require.Equal(t, 8, prog.Env.LedAmount)
	require.Len(t, prog.Modules, 2)
	first, _ := prog.Modules[0].Config.GetRaw("text")
	require.Equal(t, "first", first.(cty.Value).AsString())
	require.Len(t, prog.Files, 2)
}

func TestHCLLoader_OverridesReachExpressions(t *testing.T) {
	t.Parallel()
	// Arrange
	path := writeFile(t, t.TempDir(), "main.hcl", "environment {\n  led_amount = 32\n  led_pin = 5\n}\nmodule \"color\" {\n  end = led_amount\n  start = led_pin\n}\n")
	amount, pin := 16, 2

	// Act
	prog, err := NewLoader().Load(context.Background(), path, Overrides{LedAmount: &amount, LedPin: &pin})

	// Assert
	require.NoError(t, err)
	require.Equal(t, 16, prog.Env.LedAmount)
	require.Equal(t, 2, prog.Env.LedPin)
	end, err := prog.Modules[0].Config.RequiredInt("end", 0)
	require.NoError(t, err)
	require.Equal(t, 16, end)
	start, err := prog.Modules[0].Config.RequiredInt("start", 0)
	require.NoError(t, err)
	require.Equal(t, 2, start)
}

func TestJSONLoader_AppliesOverrides(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), "main.json", `{"environment": {"led_amount": 32}, "modules": []}`)
	amount := 4

	prog, err := NewLoader().Load(context.Background(), path, Overrides{LedAmount: &amount})

	require.NoError(t, err)
	require.Equal(t, 4, prog.Env.LedAmount)
}

func TestHCLLoader_TemplateFileIsRelativeToProgram(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "sketch.tpl", "// $LED_AMOUNT$ leds\n$RUN_CODE$")
	path := writeFile(t, dir, "main.hcl", "environment {\n  template_file = \"sketch.tpl\"\n}\n")

	prog, err := NewLoader().Load(context.Background(), path, Overrides{})

	require.NoError(t, err)
	require.Equal(t, "// $LED_AMOUNT$ leds\n$RUN_CODE$", prog.Env.PreprocessingCode)
	require.Empty(t, prog.Modules)
}

func TestHCLLoader_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "duplicate environment",
			files:   map[string]string{"a.hcl": "environment {}\n", "b.hcl": "environment {}\n"},
			wantErr: `Duplicate "environment" block`,
		},
		{
			name:    "unknown block",
			files:   map[string]string{"a.hcl": "step \"x\" {}\n"},
			wantErr: "Unsupported block type",
		},
		{
			name:    "top-level attribute",
			files:   map[string]string{"a.hcl": "led_amount = 3\n"},
			wantErr: "Unexpected attribute",
		},
		{
			name:    "missing label",
			files:   map[string]string{"a.hcl": "module {\n}\n"},
			wantErr: "Missing module key",
		},
		{
			name:    "reserved modules attribute",
			files:   map[string]string{"a.hcl": "module \"loop\" {\n  modules = []\n}\n"},
			wantErr: "Reserved attribute name",
		},
		{
			name:    "unknown variable",
			files:   map[string]string{"a.hcl": "module \"color\" {\n  end = strip_size\n}\n"},
			wantErr: "Unknown variable",
		},
		{
			name:    "syntax error",
			files:   map[string]string{"a.hcl": "module \"color\" {\n"},
			wantErr: "a.hcl:",
		},
		{
			name:    "bad environment type",
			files:   map[string]string{"a.hcl": "environment {\n  led_amount = \"many\"\n}\n"},
			wantErr: "Unsuitable value type",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			for name, content := range tc.files {
				writeFile(t, dir, name, content)
			}

			_, err := NewLoader().Load(context.Background(), dir, Overrides{})

			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestHCLLoader_DiagnosticsCarryRanges(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), "main.hcl", "\n\nmodule {\n}\n")

	_, err := NewLoader().Load(context.Background(), path, Overrides{})

	var diags hcl.Diagnostics
	require.ErrorAs(t, err, &diags)
	require.Equal(t, 3, diags[0].Subject.Start.Line)
}

func TestJSONLoader_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "invalid json", content: "{", wantErr: "failed to decode program"},
		{name: "unknown top-level key", content: `{"mods": []}`, wantErr: "unknown field"},
		{name: "missing module key", content: `{"modules": [{"config": {}}]}`, wantErr: "modules[0]: missing module key"},
		{
			name:    "nested list not a list",
			content: `{"modules": [{"module": "loop", "config": {"modules": 3}}]}`,
			wantErr: "modules[0].config.modules",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), "p.json", tc.content)

			_, err := NewLoader().Load(context.Background(), path, Overrides{})

			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestAutoLoader_RejectsUnknownExtension(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), "p.yaml", "")

	_, err := NewLoader().Load(context.Background(), path, Overrides{})

	require.ErrorContains(t, err, "unsupported program file")
}
