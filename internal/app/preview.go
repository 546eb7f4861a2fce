package app

import (
	"context"

	"github.com/specialistvlad/ledgrid/internal/env"
	"github.com/specialistvlad/ledgrid/internal/preview"
	"github.com/specialistvlad/ledgrid/internal/sim"
)

// previewSink builds the frame sink selected by the configuration.
func (a *App) previewSink(ctx context.Context, e *env.Environment) (sim.FrameSink, func(), error) {
	switch a.config.Preview {
	case PreviewTerminal:
		t := preview.NewTerminal(a.errW, e)
		t.Redraw = true
		return t, func() {}, nil
	case PreviewSocketIO:
		s, err := preview.DialSocketIO(ctx, preview.SocketIOOptions{URL: a.config.PreviewURL})
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return sim.Discard{}, func() {}, nil
	}
}
