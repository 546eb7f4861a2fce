// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import "fmt"

// ConfigError reports a missing or invalid configuration field.
type ConfigError struct {
	Field   string
	Hint    string
	Missing bool
	Value   any
}

func (e *ConfigError) Error() string {
	if e.Missing {
		return fmt.Sprintf("field %q is required: %s", e.Field, e.Hint)
	}
	return fmt.Sprintf("field %q: %s", e.Field, e.Hint)
}
