// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package varsys

import "fmt"

// Variable is one identifier issued by a System. The same value is used for
// the declaration and every later reference, which keeps them consistent.
type Variable struct {
	Type     string
	BaseName string
	Name     string
	Init     string
	Global   bool
}

// String returns the final identifier.
func (v *Variable) String() string {
	return v.Name
}

// Declare returns "type name = init;", suitable for a for-loop header or a
// global declaration line.
func (v *Variable) Declare() string {
	if v.Init == "" {
		return fmt.Sprintf("%s %s;", v.Type, v.Name)
	}
	return fmt.Sprintf("%s %s = %s;", v.Type, v.Name, v.Init)
}
