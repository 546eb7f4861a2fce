// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package varsys allocates identifiers for generated C++ code.
//
// Every module that needs a loop counter or a global asks the System for one
// by base name. The System hands out base, base1, base2, ... so that no two
// live identifiers collide, no matter how modules are nested. Locals live in
// a stack of scopes: the code generator pushes a scope for every module it
// invokes and pops it afterwards, so siblings can reuse short names like "i"
// while a module nested inside a loop never shadows the loop's counter.
package varsys

import (
	"strconv"
	"strings"
)

// reserved identifiers used by the preset template and the generator itself.
var reserved = []string{
	"leds", "FastLED", "CRGB", "NEOPIXEL", "LED_PIN", "LED_AMT",
	"setup", "loop", "delay", "millis",
	"int", "long", "unsigned", "void", "for", "if", "else", "while", "return",
}

// System is one program's identifier allocator. It is not safe for
// concurrent use; generation is single-threaded and creates a fresh System
// per call.
type System struct {
	reserved map[string]struct{}
	globals  *globalSet
	scopes   []map[string]struct{}
}

// globalSet is shared between a System and its detached views.
type globalSet struct {
	vars []*Variable
	used map[string]struct{} // every global identifier, declared or not
}

// New creates an empty System with one open local scope.
func New() *System {
	s := &System{
		reserved: make(map[string]struct{}, len(reserved)),
		globals:  &globalSet{used: make(map[string]struct{})},
		scopes:   []map[string]struct{}{make(map[string]struct{})},
	}
	for _, r := range reserved {
		s.reserved[r] = struct{}{}
	}
	return s
}

// Detached returns a view with its own, empty local scopes that shares the
// global namespace with s. Generated function bodies use it: they are a
// separate C++ scope and must not see the locals of their first call site.
func (s *System) Detached() *System {
	return &System{
		reserved: s.reserved,
		globals:  s.globals,
		scopes:   []map[string]struct{}{make(map[string]struct{})},
	}
}

// PushScope opens a nested local scope.
func (s *System) PushScope() {
	s.scopes = append(s.scopes, make(map[string]struct{}))
}

// PopScope closes the innermost local scope. The outermost scope is never
// removed.
func (s *System) PopScope() {
	if len(s.scopes) > 1 {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

// Depth returns the number of open local scopes.
func (s *System) Depth() int {
	return len(s.scopes)
}

// RequestLocal allocates a local variable in the innermost scope.
func (s *System) RequestLocal(typ, base, init string) *Variable {
	name := s.free(base)
	s.scopes[len(s.scopes)-1][name] = struct{}{}
	return &Variable{Type: typ, BaseName: base, Name: name, Init: init}
}

// RequestGlobal allocates a global variable that is declared once by
// GenerateGlobalCode.
func (s *System) RequestGlobal(typ, base, init string) *Variable {
	name := s.free(base)
	s.globals.used[name] = struct{}{}
	v := &Variable{Type: typ, BaseName: base, Name: name, Init: init, Global: true}
	s.globals.vars = append(s.globals.vars, v)
	return v
}

// ReserveGlobalName allocates a global identifier without declaring it, for
// example a generated function name.
func (s *System) ReserveGlobalName(base string) string {
	name := s.free(base)
	s.globals.used[name] = struct{}{}
	return name
}

// Globals returns the global variables in request order.
func (s *System) Globals() []*Variable {
	out := make([]*Variable, len(s.globals.vars))
	copy(out, s.globals.vars)
	return out
}

// GenerateGlobalCode returns one declaration line per global, in request order.
func (s *System) GenerateGlobalCode() string {
	lines := make([]string, 0, len(s.globals.vars))
	for _, v := range s.globals.vars {
		lines = append(lines, v.Declare())
	}
	return strings.Join(lines, "\n")
}

func (s *System) free(base string) string {
	base = sanitize(base)
	if !s.taken(base) {
		return base
	}
	for n := 1; ; n++ {
		candidate := base + strconv.Itoa(n)
		if !s.taken(candidate) {
			return candidate
		}
	}
}

func (s *System) taken(name string) bool {
	if _, ok := s.reserved[name]; ok {
		return true
	}
	if _, ok := s.globals.used[name]; ok {
		return true
	}
	for _, scope := range s.scopes {
		if _, ok := scope[name]; ok {
			return true
		}
	}
	return false
}

// sanitize turns an arbitrary base name into a valid C++ identifier.
func sanitize(base string) string {
	var b strings.Builder
	for i, r := range base {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "v"
	}
	return b.String()
}
