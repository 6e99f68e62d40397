// Package capture tracks the single active capture, renders its page and announces new captures.
package capture

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/leighmacdonald/capwatch/internal/gang"
	"github.com/leighmacdonald/capwatch/internal/page"
)

var (
	ErrValidation      = errors.New("missing required field")
	ErrNoActiveCapture = errors.New("no active capture")
)

// State is the current or most recent capture. The zero value means no capture has started yet.
type State struct {
	CaptureID uuid.UUID `json:"captureId,omitzero"`
	Gang1     gang.Gang `json:"gang1"`
	Gang2     gang.Gang `json:"gang2"`
	Start     string    `json:"start"`
	Weapon    string    `json:"weapon"`
	Winner    gang.Gang `json:"winner,omitempty"`
	FileName  string    `json:"fileName,omitempty"`
	StartedOn time.Time `json:"startedOn,omitzero"`
}

// Active reports whether a capture has been started.
func (s State) Active() bool {
	return s.Gang1 != ""
}

func (s State) Page() page.Page {
	return page.Page{
		Gang1:  s.Gang1,
		Gang2:  s.Gang2,
		Start:  s.Start,
		Weapon: s.Weapon,
		Winner: s.Winner,
	}
}

// Result is returned from successful state changes.
type Result struct {
	State   State  `json:"state"`
	SiteURL string `json:"siteUrl"`
}

// PageWriter stores a rendered capture page and returns its public URL.
type PageWriter interface {
	Write(ctx context.Context, name string, p page.Page) (string, error)
	URL(name string) string
}

// Notifier announces a newly started capture.
type Notifier interface {
	CaptureStarted(ctx context.Context, state State, siteURL string) error
}

// Recorder receives capture lifecycle counts. It is satisfied by metrics.Metrics.
type Recorder interface {
	CaptureStarted(attacker gang.Gang)
	WinnerDeclared(winner gang.Gang)
	Notification(err error)
}

type noopRecorder struct{}

func (noopRecorder) CaptureStarted(gang.Gang) {}
func (noopRecorder) WinnerDeclared(gang.Gang) {}
func (noopRecorder) Notification(error)       {}
