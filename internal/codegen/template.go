// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package codegen

import "regexp"

// tokenRe matches $NAME$ insertion points in a source template.
var tokenRe = regexp.MustCompile(`\$\w+\$`)

// Tokens lists the insertion points GenerateCode fills, in template order.
var Tokens = []string{"LED_PIN", "LED_AMOUNT", "VARIABLES", "FUNC_DEFS", "SETUP_CODE", "RUN_CODE"}

// Substitute replaces every $NAME$ token that has an entry in values in a
// single pass. Unknown tokens are user text and are left untouched.
func Substitute(template string, values map[string]string) string {
	return tokenRe.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		if v, ok := values[name]; ok {
			return v
		}
		return match
	})
}
