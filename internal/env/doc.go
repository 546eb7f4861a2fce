// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package env defines the Environment shared by every module during code
// generation and simulation: the data pin the strip is wired to, how many
// LEDs it has, whether generated code carries comments, which preview layout
// is selected and the source template the generated code is substituted into.
//
// An Environment is built once per run (from the program file and CLI
// overrides) and is treated as read-only afterwards. Modules receive it by
// pointer but must never mutate it.
package env
