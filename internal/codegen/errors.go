// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package codegen

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// GenerationError annotates a module failure with the module's identity,
// its position in the list and, when known, the source block it came from.
type GenerationError struct {
	Module string
	Index  int
	Range  hcl.Range
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Range.Filename != "" {
		return fmt.Sprintf("%s: error while processing module %q (#%d): %v", e.Range.String(), e.Module, e.Index, e.Err)
	}
	return fmt.Sprintf("error while processing module %q (#%d): %v", e.Module, e.Index, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
