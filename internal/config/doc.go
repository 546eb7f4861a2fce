// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package config defines Config, the validated key/value bag every module
// instance is configured with, and RawModule, the unparsed form of a module
// occurrence.
//
// Values are stored as cty.Value so that the HCL and JSON loaders can hand
// over exactly what the user wrote, without an intermediate Go type. Modules
// read them through GetRequired / GetOptional with a predicate from the fixed
// vocabulary in predicates.go; a value that fails its predicate produces a
// *ConfigError naming the field and the expected constraint.
//
// The key "modules" is special: it carries a nested []*RawModule (a Loop body)
// and is read with GetRaw, which bypasses validation so the list can be handed
// to the module parser.
package config
