package color

import (
	"fmt"
	"strconv"

	"github.com/specialistvlad/ledgrid/internal/codegen"
	"github.com/specialistvlad/ledgrid/internal/config"
	"github.com/specialistvlad/ledgrid/internal/env"
)

// DefaultHex is the color used when a config does not name one.
const DefaultHex = "FF0000"

// Settings is a validated color config. The single-LED, stripe and stepped
// shapes all collapse into it.
type Settings struct {
	Start          int
	Steps          int
	LedsPerStep    int
	Space          int
	DelayPerLed    int
	DelayAfterStep int
	RGBHex         string
}

// ParseSettings validates cfg against e.
func ParseSettings(e *env.Environment, cfg *config.Config) (Settings, error) {
	s := Settings{}
	var err error

	if s.Start, err = cfg.OptionalInt("start", 0, 0); err != nil {
		return Settings{}, err
	}

	if cfg.Has("end") {
		for _, conflicting := range []string{"steps", "ledsPerStep", "space"} {
			if cfg.Has(conflicting) {
				return Settings{}, &config.ConfigError{Field: conflicting, Hint: `cannot be combined with "end"`}
			}
		}
		end, err := cfg.RequiredInt("end", 0)
		if err != nil {
			return Settings{}, err
		}
		if end == s.Start {
			return Settings{}, &config.ConfigError{Field: "end", Hint: "the start- and end-values are equal"}
		}
		lo, hi := min(s.Start, end), max(s.Start, end)
		s.Start, s.LedsPerStep, s.Steps = lo, hi-lo, 1
	} else {
		if s.Steps, err = cfg.OptionalInt("steps", 1, 1); err != nil {
			return Settings{}, err
		}
		if s.LedsPerStep, err = cfg.OptionalInt("ledsPerStep", 1, 1); err != nil {
			return Settings{}, err
		}
		if s.Space, err = cfg.OptionalInt("space", 0, 0); err != nil {
			return Settings{}, err
		}
	}

	if s.DelayPerLed, err = cfg.OptionalInt("delayPerLed", 0, 0); err != nil {
		return Settings{}, err
	}
	if s.DelayAfterStep, err = cfg.OptionalInt("delayAfterStep", 0, 0); err != nil {
		return Settings{}, err
	}
	if s.RGBHex, err = cfg.OptionalHexColor("rgbHex", DefaultHex); err != nil {
		return Settings{}, err
	}

	if last := s.LastIndex(); last >= e.LedAmount {
		return Settings{}, fmt.Errorf("LED index %d is out of range: the strip has %d LEDs", last, e.LedAmount)
	}
	return s, nil
}

// Stride is the distance between the first LEDs of two consecutive steps.
func (s Settings) Stride() int {
	return s.Space + s.LedsPerStep
}

// Index returns the LED written by led within step.
func (s Settings) Index(step, led int) int {
	return s.Start + step*s.Stride() + led
}

// LastIndex is the highest LED written.
func (s Settings) LastIndex() int {
	return s.Index(s.Steps-1, s.LedsPerStep-1)
}

// HasDelay reports whether the effect waits at all.
func (s Settings) HasDelay() bool {
	return s.DelayPerLed > 0 || s.DelayAfterStep > 0
}

// IsSingleLed reports the trivial single-assignment shape.
func (s Settings) IsSingleLed() bool {
	return s.Steps == 1 && s.LedsPerStep == 1
}

// Runtime returns the milliseconds one pass waits, saturating at math.MaxInt.
func (s Settings) Runtime() int {
	perStep := codegen.RuntimeSum(codegen.RuntimeTimes(s.DelayPerLed, s.LedsPerStep), s.DelayAfterStep)
	return codegen.RuntimeTimes(perStep, s.Steps)
}

// CRGB returns the FastLED constructor expression for the color.
func (s Settings) CRGB() string {
	return CRGB(s.RGBHex)
}

// CRGB converts an RRGGBB string to a FastLED CRGB expression.
func CRGB(hex string) string {
	v, err := strconv.ParseUint(config.NormalizeHex(hex), 16, 32)
	if err != nil {
		return "CRGB::Black"
	}
	return fmt.Sprintf("CRGB(%d, %d, %d)", v>>16&0xFF, v>>8&0xFF, v&0xFF)
}
