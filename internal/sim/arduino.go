package sim

import (
	"context"
	"fmt"
	"image/color"
	"strconv"
	"time"

	"github.com/specialistvlad/ledgrid/internal/config"
)

// Arduino models the FastLED-driven controller: writes land in a buffer and
// become visible only when pushed.
type Arduino struct {
	leds   []color.RGBA
	dirty  bool
	frames int

	clock Clock
	sink  FrameSink
	// ctx is the context of the running simulation, used for sink writes.
	ctx     context.Context
	sinkErr error
}

// NewArduino creates a controller with ledAmount dark LEDs.
func NewArduino(ledAmount int, clock Clock, sink FrameSink) *Arduino {
	if clock == nil {
		clock = RealClock{Speed: 1}
	}
	if sink == nil {
		sink = Discard{}
	}
	return &Arduino{
		leds:  make([]color.RGBA, ledAmount),
		clock: clock,
		sink:  sink,
		ctx:   context.Background(),
	}
}

// SetLedHex writes an RRGGBB color into the buffer and marks it dirty.
func (a *Arduino) SetLedHex(index int, hex string) error {
	if index < 0 || index >= len(a.leds) {
		return fmt.Errorf("LED index %d is out of range: the strip has %d LEDs", index, len(a.leds))
	}
	c, err := ParseHex(hex)
	if err != nil {
		return err
	}
	a.leds[index] = c
	a.dirty = true
	return nil
}

// PushLeds shows the buffer: the current state goes to the sink and the
// buffer is clean again.
func (a *Arduino) PushLeds() {
	f := Frame{Index: a.frames, LEDs: a.leds}
	a.frames++
	a.dirty = false
	if err := a.sink.Frame(a.ctx, f); err != nil && a.sinkErr == nil {
		a.sinkErr = err
	}
}

// Delay suspends on the clock. A failed frame write surfaces here.
func (a *Arduino) Delay(ctx context.Context, ms int) error {
	if a.sinkErr != nil {
		return a.sinkErr
	}
	if ms <= 0 {
		return ctx.Err()
	}
	return a.clock.Sleep(ctx, time.Duration(ms)*time.Millisecond)
}

// IsDirty reports unshown writes.
func (a *Arduino) IsDirty() bool { return a.dirty }

// LedCount returns the strip length.
func (a *Arduino) LedCount() int { return len(a.leds) }

// Frames returns how many times the buffer was pushed.
func (a *Arduino) Frames() int { return a.frames }

// LEDs returns a copy of the buffer.
func (a *Arduino) LEDs() []color.RGBA {
	return append([]color.RGBA(nil), a.leds...)
}

// Err returns the first sink error, if any.
func (a *Arduino) Err() error { return a.sinkErr }

// ParseHex converts RRGGBB, with or without '#', to an opaque color.
func ParseHex(hex string) (color.RGBA, error) {
	n := config.NormalizeHex(hex)
	if len(n) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(n, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// Hex formats c as RRGGBB.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}
