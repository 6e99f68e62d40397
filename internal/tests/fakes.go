package tests

import (
	"context"
	"sync"

	"github.com/leighmacdonald/capwatch/internal/capture"
)

// FakeNotifier records every capture announcement instead of sending it.
type FakeNotifier struct {
	mu   sync.Mutex
	Err  error
	Sent []capture.State
	URLs []string
}

func (n *FakeNotifier) CaptureStarted(_ context.Context, state capture.State, siteURL string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.Sent = append(n.Sent, state)
	n.URLs = append(n.URLs, siteURL)

	return n.Err
}

func (n *FakeNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.Sent)
}
