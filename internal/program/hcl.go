package program

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/ctxlog"
	"github.com/specialistvlad/ledgrid/internal/fsutil"
)

const (
	environmentBlockType = "environment"
	moduleBlockType      = "module"
)

// HCLLoader reads programs written in HCL native syntax.
type HCLLoader struct{}

// Load reads path, which is either one .hcl file or a directory searched
// recursively for .hcl files.
func (l *HCLLoader) Load(ctx context.Context, path string, ov Overrides) (*Program, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.findFiles(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var diags hcl.Diagnostics
	bodies := make([]*hclsyntax.Body, 0, len(files))
	for _, file := range files {
		f, fileDiags := parser.ParseHCLFile(file)
		diags = append(diags, fileDiags...)
		if fileDiags.HasErrors() {
			continue
		}
		body, ok := f.Body.(*hclsyntax.Body)
		if !ok {
			return nil, fmt.Errorf("file %s is not in HCL native syntax", file)
		}
		bodies = append(bodies, body)
	}
	if diags.HasErrors() {
		return nil, diags
	}

	var envBlocks hcl.Blocks
	for _, body := range bodies {
		diags = append(diags, checkTopLevel(body)...)
		for _, b := range body.Blocks {
			if b.Type == environmentBlockType {
				envBlocks = append(envBlocks, b.AsHCLBlock())
			}
		}
	}
	envBlock, uniqueDiags := findUniqueBlock(envBlocks, environmentBlockType)
	diags = append(diags, uniqueDiags...)
	if diags.HasErrors() {
		return nil, diags
	}

	var settings *environmentSettings
	baseDir := filepath.Dir(files[0])
	if envBlock != nil {
		settings = &environmentSettings{}
		if decodeDiags := gohcl.DecodeBody(envBlock.Body, nil, settings); decodeDiags.HasErrors() {
			return nil, decodeDiags
		}
		baseDir = filepath.Dir(envBlock.DefRange.Filename)
	}
	e, err := settings.apply(baseDir, ov)
	if err != nil {
		return nil, err
	}

	ectx := evalContext(e)
	var modules []*config.RawModule
	for _, body := range bodies {
		for _, b := range body.Blocks {
			if b.Type != moduleBlockType {
				continue
			}
			rm, moduleDiags := decodeModule(b, ectx)
			diags = append(diags, moduleDiags...)
			if rm != nil {
				modules = append(modules, rm)
			}
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}

	return &Program{Env: e, Modules: modules, Files: files}, nil
}

func (l *HCLLoader) findFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing program path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to search %s for HCL files: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %s", path)
	}
	return files, nil
}

// checkTopLevel rejects anything but environment and module blocks.
func checkTopLevel(body *hclsyntax.Body) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, name := range sortedAttributeNames(body) {
		attr := body.Attributes[name]
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unexpected attribute",
			Detail:   fmt.Sprintf("Attribute %q is not allowed at the top level; settings belong in an %q block.", name, environmentBlockType),
			Subject:  attr.SrcRange.Ptr(),
		})
	}
	for _, b := range body.Blocks {
		if b.Type != environmentBlockType && b.Type != moduleBlockType {
			rng := b.DefRange()
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported block type",
				Detail:   fmt.Sprintf("Blocks of type %q are not expected here; use %q or %q.", b.Type, environmentBlockType, moduleBlockType),
				Subject:  &rng,
			})
		}
	}
	return diags
}

// decodeModule turns a module block into a raw module. Attributes become
// config values; nested module blocks become the nested module list.
func decodeModule(b *hclsyntax.Block, ectx *hcl.EvalContext) (*config.RawModule, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	rng := b.DefRange()

	if len(b.Labels) != 1 || b.Labels[0] == "" {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing module key",
			Detail:   `A module block needs exactly one label, the module key, e.g. module "color" { ... }.`,
			Subject:  &rng,
		})
	}

	values := make(map[string]any, len(b.Body.Attributes)+1)
	for _, name := range sortedAttributeNames(b.Body) {
		attr := b.Body.Attributes[name]
		if name == config.ModulesKey {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Reserved attribute name",
				Detail:   fmt.Sprintf("%q is reserved for nested module blocks.", config.ModulesKey),
				Subject:  attr.SrcRange.Ptr(),
			})
			continue
		}
		v, valueDiags := attr.Expr.Value(ectx)
		diags = append(diags, valueDiags...)
		if valueDiags.HasErrors() {
			continue
		}
		values[name] = v
	}

	var nested []*config.RawModule
	for _, nb := range b.Body.Blocks {
		if nb.Type != moduleBlockType {
			nrng := nb.DefRange()
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported block type",
				Detail:   fmt.Sprintf("Only %q blocks may be nested inside a module.", moduleBlockType),
				Subject:  &nrng,
			})
			continue
		}
		rm, nestedDiags := decodeModule(nb, ectx)
		diags = append(diags, nestedDiags...)
		if rm != nil {
			nested = append(nested, rm)
		}
	}
	if len(nested) > 0 {
		values[config.ModulesKey] = nested
	}

	return &config.RawModule{Key: b.Labels[0], Config: config.New(values, rng)}, diags
}

// findUniqueBlock returns the only block of type name, or nil when there is
// none. Every extra block is reported against the first one.
func findUniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != name {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf("Duplicate %q block", name),
				Detail:   fmt.Sprintf("Only one %q block is allowed per program; the first one is at %s.", name, found.DefRange),
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}
		found = block
	}
	return found, diags
}

func sortedAttributeNames(body *hclsyntax.Body) []string {
	names := make([]string, 0, len(body.Attributes))
	for name := range body.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
