// Package program loads LED programs from disk.
//
// A program is an optional environment plus an ordered list of module
// occurrences. Two formats are understood: HCL files (a single file or a
// directory of .hcl files merged in lexical order) and JSON files.
//
// HCL example:
//
//	environment {
//	  led_amount = 16
//	  preview    = "WS2812B-8x2.svg"
//	}
//
//	module "loop" {
//	  repeats = 4
//	  delay   = 100
//
//	  module "color" {
//	    end    = led_amount
//	    rgbHex = "00FF00"
//	  }
//	}
package program
