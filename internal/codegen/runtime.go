// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package codegen

import "math"

// RuntimeSum adds non-negative millisecond counts, saturating at math.MaxInt.
func RuntimeSum(ms ...int) int {
	total := 0
	for _, m := range ms {
		if total > math.MaxInt-m {
			return math.MaxInt
		}
		total += m
	}
	return total
}

// RuntimeTimes multiplies a non-negative millisecond count by n, saturating
// at math.MaxInt.
func RuntimeTimes(ms, n int) int {
	if ms == 0 || n == 0 {
		return 0
	}
	if ms > math.MaxInt/n {
		return math.MaxInt
	}
	return ms * n
}
