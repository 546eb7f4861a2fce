package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/specialistvlad/ledgrid/internal/sim"
)

// frameStatus remembers the latest simulated frame for the status server.
type frameStatus struct {
	mu    sync.RWMutex
	index int
	hex   []string
	seen  bool
}

func newFrameStatus() *frameStatus {
	return &frameStatus{}
}

// Frame implements sim.FrameSink.
func (s *frameStatus) Frame(_ context.Context, f sim.Frame) error {
	leds := make([]string, len(f.LEDs))
	for i, c := range f.LEDs {
		leds[i] = sim.Hex(c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = f.Index
	s.hex = leds
	s.seen = true
	return nil
}

type frameResponse struct {
	Index int      `json:"index"`
	LEDs  []string `json:"leds"`
}

func (s *frameStatus) snapshot() (frameResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return frameResponse{Index: s.index, LEDs: s.hex}, s.seen
}

// healthHandler reports that the simulation is alive.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// frameHandler serves the latest frame as JSON.
func (a *App) frameHandler(status *frameStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, ok := status.snapshot()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(f); err != nil {
			a.logger.Warn("Failed to encode frame.", "error", err)
		}
	}
}

func (a *App) statusMux(status *frameStatus) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/frame", a.frameHandler(status))
	return mux
}

// startHealthcheckServer serves the status endpoints while a simulation
// runs. The returned function shuts the server down.
func (a *App) startHealthcheckServer(ctx context.Context, port int, status *frameStatus) func() {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.statusMux(status),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		a.logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Health check server shutdown failed", "error", err)
			return
		}
		a.logger.Debug("Health check server shut down gracefully.")
	}
}
