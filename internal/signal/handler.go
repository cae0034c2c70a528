// Package signal cancels a command's context on SIGINT or SIGTERM so a
// cadence process waiting on the data file lock can be interrupted cleanly.
//
// Only the first signal is caught. After it, signal handling reverts to the
// Go default, so a second Ctrl+C kills a process that does not exit.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Handler owns a context that is canceled on the first interrupt.
type Handler struct {
	ctx    context.Context //nolint:containedctx // the handler owns this context
	cancel context.CancelFunc

	signals     chan os.Signal
	interrupted chan struct{}
	stopped     chan struct{}
	stopOnce    sync.Once
}

// NewHandler starts listening for SIGINT and SIGTERM. Call Stop when done.
func NewHandler(parent context.Context) *Handler {
	ctx, cancel := context.WithCancel(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		signals:     make(chan os.Signal, 1),
		interrupted: make(chan struct{}),
		stopped:     make(chan struct{}),
	}

	signal.Notify(h.signals, os.Interrupt, syscall.SIGTERM)
	go h.watch()

	return h
}

// Context is canceled by the first signal, by Stop, or by the parent.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted is closed once a signal has been received.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// Stop releases the signal registration and cancels the context.
// Calling it more than once is fine.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopped)
		signal.Stop(h.signals)
		h.cancel()
	})
}

// watch waits for exactly one of: a signal, Stop, or parent cancellation.
func (h *Handler) watch() {
	select {
	case <-h.signals:
		signal.Stop(h.signals)
		close(h.interrupted)
		h.cancel()
	case <-h.stopped:
	case <-h.ctx.Done():
	}
}
