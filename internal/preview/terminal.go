package preview

import (
	"context"
	"fmt"
	stdcolor "image/color"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/sim"
)

// Pixel is the glyph drawn for one LED.
const Pixel = "██"

// Terminal renders frames as rows of colored blocks.
type Terminal struct {
	w    io.Writer
	rows int
	// Redraw moves the cursor back up so every frame overwrites the previous one.
	Redraw bool

	drawn int
}

// NewTerminal creates a renderer laid out like the environment's preview.
func NewTerminal(w io.Writer, e *env.Environment) *Terminal {
	rows := 1
	if p, ok := env.LookupPreview(e.SelectedPreview); ok && p.Rows > 0 {
		rows = p.Rows
	}
	return &Terminal{w: w, rows: rows}
}

// Rows returns the number of lines a frame occupies.
func (t *Terminal) Rows() int { return t.rows }

// Frame implements sim.FrameSink.
func (t *Terminal) Frame(_ context.Context, f sim.Frame) error {
	var b strings.Builder
	if t.Redraw && t.drawn > 0 {
		fmt.Fprintf(&b, "\x1b[%dA", t.drawn)
	}
	for _, row := range t.split(f.LEDs) {
		for _, c := range row {
			b.WriteString(color.RGB(c.R, c.G, c.B).Sprint(Pixel))
		}
		b.WriteByte('\n')
	}
	t.drawn = t.rows

	_, err := io.WriteString(t.w, b.String())
	return err
}

// split cuts leds into t.rows rows of equal width; the last row takes the rest.
func (t *Terminal) split(leds []stdcolor.RGBA) [][]stdcolor.RGBA {
	rows := make([][]stdcolor.RGBA, t.rows)
	width := (len(leds) + t.rows - 1) / t.rows
	for r := 0; r < t.rows; r++ {
		lo := min(r*width, len(leds))
		hi := min(lo+width, len(leds))
		rows[r] = leds[lo:hi]
	}
	return rows
}
