// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Predicate decides whether a raw value satisfies a field's constraint.
type Predicate func(v cty.Value) bool

var hexColorRe = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// AsInt converts a known, whole cty number that fits a C++ int.
func AsInt(v cty.Value) (int, bool) {
	if v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.Number) {
		return 0, false
	}
	bf := v.AsBigFloat()
	if !bf.IsInt() {
		return 0, false
	}
	i, acc := bf.Int64()
	if acc != big.Exact || i > math.MaxInt32 || i < math.MinInt32 {
		return 0, false
	}
	return int(i), true
}

// IsInteger accepts whole numbers >= min.
func IsInteger(min int) Predicate {
	return func(v cty.Value) bool {
		n, ok := AsInt(v)
		return ok && n >= min
	}
}

// IsIntegerRange accepts whole numbers in [min, max].
func IsIntegerRange(min, max int) Predicate {
	return func(v cty.Value) bool {
		n, ok := AsInt(v)
		return ok && n >= min && n <= max
	}
}

// IntegerHint is the error hint matching IsInteger(min).
func IntegerHint(min int) string {
	return fmt.Sprintf("must be an integer >= %d", min)
}

// IsHexColor accepts RRGGBB strings with an optional leading '#'.
func IsHexColor(v cty.Value) bool {
	return isString(v) && hexColorRe.MatchString(v.AsString())
}

// IsNonEmptyString accepts strings with at least one non-space character.
func IsNonEmptyString(v cty.Value) bool {
	return isString(v) && strings.TrimSpace(v.AsString()) != ""
}

func isString(v cty.Value) bool {
	return !v.IsNull() && v.IsKnown() && v.Type().Equals(cty.String)
}

// NormalizeHex strips a leading '#' and upper-cases the digits.
func NormalizeHex(s string) string {
	return strings.ToUpper(strings.TrimPrefix(s, "#"))
}
