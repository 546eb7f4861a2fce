// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package env

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultLedPin    = 6
	DefaultLedAmount = 32
)

// Environment is the per-session configuration read by every module.
type Environment struct {
	LedPin            int
	LedAmount         int
	WithComments      bool
	SelectedPreview   string
	PreprocessingCode string
}

// Default returns the environment a new project starts with.
func Default() *Environment {
	return &Environment{
		LedPin:            DefaultLedPin,
		LedAmount:         DefaultLedAmount,
		WithComments:      true,
		SelectedPreview:   DefaultPreview,
		PreprocessingCode: PresetSourceCode,
	}
}

// Clone returns an independent copy, so overrides never leak into a shared value.
func (e *Environment) Clone() *Environment {
	c := *e
	return &c
}

// Validate checks the values a generated sketch depends on.
func (e *Environment) Validate() error {
	var errs []error
	if e.LedPin < 0 {
		errs = append(errs, fmt.Errorf("led pin must be >= 0, got %d", e.LedPin))
	}
	if e.LedAmount < 1 {
		errs = append(errs, fmt.Errorf("led amount must be >= 1, got %d", e.LedAmount))
	}
	if _, ok := LookupPreview(e.SelectedPreview); !ok {
		errs = append(errs, fmt.Errorf("unknown preview %q (available: %s)", e.SelectedPreview, strings.Join(PreviewFiles(), ", ")))
	}
	if strings.TrimSpace(e.PreprocessingCode) == "" {
		errs = append(errs, errors.New("source template must not be empty"))
	}
	return errors.Join(errs...)
}
