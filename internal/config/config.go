// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ModulesKey is the key under which nested module lists are stored.
const ModulesKey = "modules"

// RawModule is one module occurrence before it is resolved against the registry.
type RawModule struct {
	Key    string
	Config *Config
}

// Config is an immutable mapping from keys to raw values. Scalars are
// cty.Value; the ModulesKey entry is a []*RawModule.
type Config struct {
	values map[string]any
	rng    hcl.Range
}

// New copies values into a new Config. rng is the source range of the block
// the values came from and may be the zero value.
func New(values map[string]any, rng hcl.Range) *Config {
	c := &Config{values: make(map[string]any, len(values)), rng: rng}
	for k, v := range values {
		c.values[k] = v
	}
	return c
}

// FromGo builds a Config from native Go values. Scalars are converted to
// cty.Value by their implied type; cty.Value and []*RawModule are kept as is.
func FromGo(values map[string]any) (*Config, error) {
	converted := make(map[string]any, len(values))
	for k, v := range values {
		switch tv := v.(type) {
		case cty.Value, []*RawModule:
			converted[k] = tv
		default:
			ty, err := gocty.ImpliedType(v)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			cv, err := gocty.ToCtyValue(v, ty)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
			converted[k] = cv
		}
	}
	return New(converted, hcl.Range{}), nil
}

// MustFromGo is FromGo that panics on error. Intended for tests and static tables.
func MustFromGo(values map[string]any) *Config {
	c, err := FromGo(values)
	if err != nil {
		panic(err)
	}
	return c
}

// Range returns the source range of the block this config was read from.
func (c *Config) Range() hcl.Range {
	return c.rng
}

// Has reports whether key is present.
func (c *Config) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Keys returns all keys in sorted order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetRaw returns the value stored under key without validation.
func (c *Config) GetRaw(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// GetRequired returns the value for key, failing if it is missing or does not
// satisfy pred.
func (c *Config) GetRequired(key string, pred Predicate, hint string) (cty.Value, error) {
	raw, ok := c.values[key]
	if !ok {
		return cty.NilVal, &ConfigError{Field: key, Hint: hint, Missing: true}
	}
	return check(key, raw, pred, hint)
}

// GetOptional returns def when key is absent and validates it like
// GetRequired otherwise.
func (c *Config) GetOptional(key string, pred Predicate, hint string, def cty.Value) (cty.Value, error) {
	raw, ok := c.values[key]
	if !ok {
		return def, nil
	}
	return check(key, raw, pred, hint)
}

func check(key string, raw any, pred Predicate, hint string) (cty.Value, error) {
	v, ok := raw.(cty.Value)
	if !ok || !pred(v) {
		return cty.NilVal, &ConfigError{Field: key, Hint: hint, Value: raw}
	}
	return v, nil
}

// RequiredInt reads an integer >= min.
func (c *Config) RequiredInt(key string, min int) (int, error) {
	v, err := c.GetRequired(key, IsInteger(min), IntegerHint(min))
	if err != nil {
		return 0, err
	}
	n, _ := AsInt(v)
	return n, nil
}

// OptionalInt reads an integer >= min, returning def when absent.
func (c *Config) OptionalInt(key string, min, def int) (int, error) {
	v, err := c.GetOptional(key, IsInteger(min), IntegerHint(min), cty.NumberIntVal(int64(def)))
	if err != nil {
		return 0, err
	}
	n, _ := AsInt(v)
	return n, nil
}

// OptionalIntRange reads an integer in [min, max], returning def when absent.
func (c *Config) OptionalIntRange(key string, min, max, def int) (int, error) {
	v, err := c.GetOptional(key, IsIntegerRange(min, max), fmt.Sprintf("must be an integer between %d and %d", min, max), cty.NumberIntVal(int64(def)))
	if err != nil {
		return 0, err
	}
	n, _ := AsInt(v)
	return n, nil
}

// RequiredIntRange reads an integer in [min, max].
func (c *Config) RequiredIntRange(key string, min, max int) (int, error) {
	v, err := c.GetRequired(key, IsIntegerRange(min, max), fmt.Sprintf("must be an integer between %d and %d", min, max))
	if err != nil {
		return 0, err
	}
	n, _ := AsInt(v)
	return n, nil
}

// RequiredString reads a non-empty string.
func (c *Config) RequiredString(key string) (string, error) {
	v, err := c.GetRequired(key, IsNonEmptyString, "must be a non-empty string")
	if err != nil {
		return "", err
	}
	return v.AsString(), nil
}

// OptionalHexColor reads an RRGGBB color, normalised to upper case without '#'.
func (c *Config) OptionalHexColor(key, def string) (string, error) {
	v, err := c.GetOptional(key, IsHexColor, "must be a hex color like FF0000", cty.StringVal(def))
	if err != nil {
		return "", err
	}
	return NormalizeHex(v.AsString()), nil
}
