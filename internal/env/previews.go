// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package env

import "sort"

// Preview describes one selectable preview layout.
type Preview struct {
	File  string
	Title string
	// Rows is how many physical rows the strip is folded into.
	Rows int
}

// DefaultPreview is selected when a program does not pick one.
const DefaultPreview = "Googles.svg"

var previews = map[string]Preview{
	"Googles.svg":     {File: "Googles.svg", Title: "Googles", Rows: 2},
	"WS2812B-8x1.svg": {File: "WS2812B-8x1.svg", Title: "WS2812B (8x1)", Rows: 1},
	"WS2812B-8x2.svg": {File: "WS2812B-8x2.svg", Title: "WS2812B (8x2)", Rows: 2},
	"WS2812B-8x3.svg": {File: "WS2812B-8x3.svg", Title: "WS2812B (8x3)", Rows: 3},
	"WS2812B-8x4.svg": {File: "WS2812B-8x4.svg", Title: "WS2812B (8x4)", Rows: 4},
}

// LookupPreview resolves a preview by its file name.
func LookupPreview(file string) (Preview, bool) {
	p, ok := previews[file]
	return p, ok
}

// PreviewFiles lists the known preview file names in a stable order.
func PreviewFiles() []string {
	files := make([]string, 0, len(previews))
	for f := range previews {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
