package preview

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/ledgrid/internal/ctxlog"
	"github.com/specialistvlad/ledgrid/internal/sim"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// FrameEvent is the socket.io event every pushed frame is emitted as.
const FrameEvent = "frame"

// SocketIOOptions configures the socket.io publisher.
type SocketIOOptions struct {
	URL       string
	Namespace string
	// Timeout bounds the initial connection; 0 means 10s.
	Timeout time.Duration
}

// SocketIO publishes frames to a socket.io preview server.
type SocketIO struct {
	io *socket.Socket
}

type connectResult struct {
	err error
}

// DialSocketIO connects to the preview server and waits for the handshake.
func DialSocketIO(ctx context.Context, o SocketIOOptions) (*SocketIO, error) {
	logger := ctxlog.FromContext(ctx).With("sink", "socketio", "url", o.URL)

	parsed, err := url.Parse(o.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse preview URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("preview URL %q must include a scheme and host", o.URL)
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	namespace := o.Namespace
	if namespace == "" {
		namespace = "/"
	}

	opts := socket.DefaultOptions()
	if parsed.Path != "" && parsed.Path != "/" {
		opts.SetPath(parsed.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host), opts)
	io := manager.Socket(namespace, opts)

	done := make(chan connectResult, 1)
	io.On(types.EventName("connect"), func(...any) {
		select {
		case done <- connectResult{}:
		default:
		}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case done <- connectResult{err: err}:
		default:
		}
	})
	io.Connect()

	connCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	select {
	case <-connCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out connecting to preview server %s", o.URL)
	case res := <-done:
		if res.err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("failed to connect to preview server %s: %w", o.URL, res.err)
		}
	}

	logger.Info("Connected to preview server.", "namespace", namespace, "sid", io.Id())
	return &SocketIO{io: io}, nil
}

// Frame implements sim.FrameSink.
func (s *SocketIO) Frame(_ context.Context, f sim.Frame) error {
	s.io.Emit(FrameEvent, framePayload(f))
	return nil
}

// Close disconnects from the server.
func (s *SocketIO) Close() error {
	s.io.Disconnect()
	return nil
}

func framePayload(f sim.Frame) map[string]any {
	leds := make([]string, len(f.LEDs))
	for i, c := range f.LEDs {
		leds[i] = sim.Hex(c)
	}
	return map[string]any{"index": f.Index, "leds": leds}
}
