package status

import (
	"context"
	"slices"
	"sync"

	"github.com/sourcegraph/go-lsp"
)

// MessageTracker accumulates the unhandled errors of a batch validation and shows
// each distinct message once.
type MessageTracker struct {
	mu       sync.Mutex
	messages []string
}

// Add records msg unless an identical message is already recorded.
func (t *MessageTracker) Add(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if slices.Contains(t.messages, msg) {
		return
	}
	t.messages = append(t.messages, msg)
}

// Messages returns the recorded messages in the order they were first added.
func (t *MessageTracker) Messages() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.messages)
}

// Flush shows every recorded message as an error and empties the tracker. It returns
// the number of messages shown.
func (t *MessageTracker) Flush(ctx context.Context, notifier Notifier) int {
	t.mu.Lock()
	messages := t.messages
	t.messages = nil
	t.mu.Unlock()

	for _, msg := range messages {
		notifier.ShowMessage(ctx, lsp.MTError, msg)
	}
	return len(messages)
}
