package sim

import (
	"context"
	"image/color"
	"sync"
)

// Frame is one pushed state of the strip.
type Frame struct {
	Index int
	LEDs  []color.RGBA
}

// FrameSink receives every frame pushed by the device. LEDs must not be
// retained without copying.
type FrameSink interface {
	Frame(ctx context.Context, f Frame) error
}

// Recorder keeps a copy of every frame it receives.
type Recorder struct {
	mu     sync.Mutex
	frames []Frame
}

// Frame implements FrameSink.
func (r *Recorder) Frame(_ context.Context, f Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.LEDs = append([]color.RGBA(nil), f.LEDs...)
	r.frames = append(r.frames, f)
	return nil
}

// Frames returns the recorded frames.
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Discard drops every frame.
type Discard struct{}

func (Discard) Frame(context.Context, Frame) error { return nil }

// MultiSink fans a frame out to every sink, stopping at the first error.
type MultiSink []FrameSink

func (m MultiSink) Frame(ctx context.Context, f Frame) error {
	for _, s := range m {
		if err := s.Frame(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
