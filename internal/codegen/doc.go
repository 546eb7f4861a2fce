// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package codegen turns an ordered list of configured modules into the final
// C++ sketch.
//
// GenerateModuleCode folds over a module list: it invokes every module in
// order, concatenates the setup and loop fragments and threads the dirty
// flag from one module to the next. Composite modules (Loop) call it again
// for their nested list. GenerateCode is the top-level entry point: it
// creates a fresh variable system and function table, generates the list and
// substitutes the results into the environment's source template.
//
// Generation is synchronous and deterministic: the same environment and
// module list always produce byte-identical output.
package codegen
