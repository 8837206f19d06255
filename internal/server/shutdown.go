package server

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/yaklabco/eslintls/internal/logging"
)

// exitHook announces the exit to the client and terminates the process after a
// delay that lets the client read the announcement. It fires at most once.
type exitHook struct {
	exit     func(code int)
	delay    time.Duration
	announce func(code int, stack string)
	once     sync.Once
}

func newExitHook(exit func(int), delay time.Duration, announce func(int, string)) *exitHook {
	if exit == nil {
		exit = os.Exit
	}
	if delay < 0 {
		delay = 0
	}
	return &exitHook{exit: exit, delay: delay, announce: announce}
}

func (e *exitHook) fire(code int, stack string) {
	e.once.Do(func() {
		e.announce(code, stack)
		time.AfterFunc(e.delay, func() { e.exit(code) })
	})
}

// Terminate sends eslint/exitCalled, stops background work and exits the
// process with code after the shutdown delay. stack is empty for an orderly exit.
func (h *Handler) Terminate(code int, stack string) {
	h.exit.fire(code, stack)
}

func (h *Handler) announceExit(code int, stack string) {
	logger := h.logger.With(logging.FieldCode, code)
	if code != 0 {
		logger.Error("server exiting", logging.FieldStack, stack)
	} else {
		logger.Info("server exiting")
	}

	// The base context is canceled below; the announcement must still go out.
	h.client.ExitCalled(context.WithoutCancel(h.ctx), code, stack)
	if err := h.Close(); err != nil {
		logger.Warn("failed to stop file watcher", logging.FieldError, err)
	}
}

// ShutdownRequested reports whether the client has sent the shutdown request.
func (h *Handler) ShutdownRequested() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shutdown
}
