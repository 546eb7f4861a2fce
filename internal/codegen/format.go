// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package codegen

import (
	"strings"

	"github.com/specialistvlad/ledgrid/internal/env"
)

// IndentUnit is the indentation used for nested C++ blocks.
const IndentUnit = "    "

// Indent prefixes every non-empty line of code with prefix.
func Indent(code, prefix string) string {
	if code == "" {
		return ""
	}
	lines := strings.Split(code, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

// Lines joins the non-empty fragments with single newlines.
func Lines(fragments ...string) string {
	return join("\n", fragments)
}

// Blocks joins the non-empty fragments with a blank line between them.
func Blocks(fragments ...string) string {
	return join("\n\n", fragments)
}

func join(sep string, fragments []string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.Trim(f, "\n")
		if strings.TrimSpace(f) != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, sep)
}

// Comment returns "// text" when the environment enables comments.
func Comment(e *env.Environment, text string) string {
	if !e.WithComments {
		return ""
	}
	return "// " + text
}

// Show is the statement that flushes the LED buffer to the strip.
const Show = "FastLED.show();"

// Wait returns the statements for a delay of ms, flushing first when the
// buffer is dirty.
func Wait(ms int, isDirty bool) string {
	return WaitExpr(itoa(ms), isDirty)
}

// WaitExpr is Wait for a delay computed at run time.
func WaitExpr(ms string, isDirty bool) string {
	d := "delay(" + ms + ");"
	if isDirty {
		return Show + "\n" + d
	}
	return d
}
