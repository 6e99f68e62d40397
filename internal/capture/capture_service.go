package capture

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/leighmacdonald/capwatch/internal/gang"
	"github.com/leighmacdonald/capwatch/internal/log"
	"github.com/leighmacdonald/capwatch/internal/page"
)

type Option func(c *Captures)

// WithClock overrides the time source used to name capture pages.
func WithClock(now func() time.Time) Option {
	return func(c *Captures) {
		c.now = now
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(c *Captures) {
		c.recorder = recorder
	}
}

// Captures owns the capture state. All mutations are serialised.
type Captures struct {
	mu       sync.Mutex
	state    State
	pages    PageWriter
	notifier Notifier
	recorder Recorder
	now      func() time.Time
}

func NewCaptures(pages PageWriter, notifier Notifier, opts ...Option) *Captures {
	captures := &Captures{
		pages:    pages,
		notifier: notifier,
		recorder: noopRecorder{},
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(captures)
	}

	return captures
}

// Current returns a copy of the current state.
func (c *Captures) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Start replaces any existing capture with a new one, writes its page and sends the announcement.
// Page and notification failures are logged but do not fail the call.
func (c *Captures) Start(ctx context.Context, gang1 string, gang2 string, start string, weapon string) (Result, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"gang1", gang1}, {"gang2", gang2}, {"start", start}, {"weapon", weapon},
	}

	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return Result{}, fmt.Errorf("%w: %s", ErrValidation, field.name)
		}
	}

	c.mu.Lock()

	startedOn := c.now()
	state := State{
		CaptureID: uuid.Must(uuid.NewV4()),
		Gang1:     gang.New(gang1),
		Gang2:     gang.New(gang2),
		Start:     start,
		Weapon:    weapon,
		StartedOn: startedOn,
	}
	state.FileName = page.FileName(startedOn, state.Gang1, state.Gang2)
	c.state = state

	siteURL := c.writePage(ctx, state)

	slog.Info("Capture started",
		slog.String("capture_id", state.CaptureID.String()),
		slog.String("gang1", state.Gang1.String()),
		slog.String("gang2", state.Gang2.String()),
		slog.String("start", state.Start),
		slog.String("weapon", state.Weapon),
		slog.String("url", siteURL))

	c.recorder.CaptureStarted(state.Gang1)
	c.mu.Unlock()

	errNotify := c.notifier.CaptureStarted(ctx, state, siteURL)
	if errNotify != nil {
		slog.Error("Failed to send capture notification", log.ErrAttr(errNotify),
			slog.String("capture_id", state.CaptureID.String()))
	}

	c.recorder.Notification(errNotify)

	return Result{State: state, SiteURL: siteURL}, nil
}

// DeclareWinner records the winner of the active capture and re-renders its page in place.
func (c *Captures) DeclareWinner(ctx context.Context, winner string) (Result, error) {
	winnerGang := gang.New(winner)
	if winnerGang == "" {
		return Result{}, fmt.Errorf("%w: winner", ErrValidation)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Active() {
		return Result{}, ErrNoActiveCapture
	}

	c.state.Winner = winnerGang
	siteURL := c.writePage(ctx, c.state)

	slog.Info("Capture winner declared",
		slog.String("capture_id", c.state.CaptureID.String()),
		slog.String("winner", winnerGang.String()),
		slog.String("url", siteURL))

	c.recorder.WinnerDeclared(winnerGang)

	return Result{State: c.state, SiteURL: siteURL}, nil
}

func (c *Captures) writePage(ctx context.Context, state State) string {
	siteURL, errWrite := c.pages.Write(ctx, state.FileName, state.Page())
	if errWrite != nil {
		slog.Error("Failed to write capture page", log.ErrAttr(errWrite), slog.String("file", state.FileName))

		return c.pages.URL(state.FileName)
	}

	return siteURL
}
