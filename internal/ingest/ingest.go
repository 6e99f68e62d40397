// Package ingest routes parsed log lines to the stats store and capture service.
package ingest

import (
	"context"
	"errors"
	"log/slog"

	"github.com/leighmacdonald/capwatch/internal/capture"
	"github.com/leighmacdonald/capwatch/internal/gang"
	"github.com/leighmacdonald/capwatch/internal/log"
	"github.com/leighmacdonald/capwatch/internal/stats"
	"github.com/leighmacdonald/capwatch/internal/watcher"
	"github.com/leighmacdonald/capwatch/pkg/logparse"
)

type HitApplier interface {
	ApplyHit(evt logparse.HitRecordedEvt) (stats.HitCounters, error)
}

type CaptureStarter interface {
	Start(ctx context.Context, gang1 string, gang2 string, start string, weapon string) (capture.Result, error)
}

// Recorder is satisfied by metrics.Metrics.
type Recorder interface {
	LogLine(evt logparse.Event)
	HitApplied(g gang.Gang)
	HitRejected()
}

type noopRecorder struct{}

func (noopRecorder) LogLine(logparse.Event) {}
func (noopRecorder) HitApplied(gang.Gang)   {}
func (noopRecorder) HitRejected()           {}

type Dispatcher struct {
	hits     HitApplier
	captures CaptureStarter
	recorder Recorder
}

func NewDispatcher(hits HitApplier, captures CaptureStarter, recorder Recorder) Dispatcher {
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return Dispatcher{hits: hits, captures: captures, recorder: recorder}
}

// Dispatch parses line and applies the resulting event. Lines that do not produce an event
// are logged and otherwise ignored. The returned event is the parse result.
func (d Dispatcher) Dispatch(ctx context.Context, line string) logparse.Event {
	event := logparse.Parse(line)
	d.recorder.LogLine(event)

	switch evt := event.(type) {
	case logparse.HitRecordedEvt:
		d.onHit(evt)
	case logparse.CaptureStartedEvt:
		d.onCapture(ctx, evt)
	case logparse.UnrecognizedEvt:
		switch evt.Reason {
		case logparse.MismatchHit:
			slog.Info("HIT line didn't match expected format", slog.String("line", evt.Raw))
		case logparse.MismatchCapture:
			slog.Info("CAPTURE line didn't match expected format", slog.String("line", evt.Raw))
		case logparse.NoMarker:
			slog.Debug("Ignoring log line", slog.String("line", evt.Raw))
		}
	}

	return event
}

func (d Dispatcher) onHit(evt logparse.HitRecordedEvt) {
	counters, errApply := d.hits.ApplyHit(evt)
	if errApply != nil {
		if errors.Is(errApply, stats.ErrUnknownGang) {
			d.recorder.HitRejected()
			slog.Warn("Unknown gang in HIT line", slog.String("gang", evt.Gang.String()),
				slog.String("nick", evt.Nick))

			return
		}

		slog.Error("Failed to apply hit", log.ErrAttr(errApply))

		return
	}

	d.recorder.HitApplied(evt.Gang)

	slog.Info("HIT updated",
		slog.String("gang", evt.Gang.String()),
		slog.String("nick", evt.Nick),
		slog.Int64("hits", counters.Hits),
		slog.Int64("headshots", counters.Headshots),
		slog.Int64("damage", counters.Damage))
}

func (d Dispatcher) onCapture(ctx context.Context, evt logparse.CaptureStartedEvt) {
	if _, errStart := d.captures.Start(ctx, evt.Gang1.String(), evt.Gang2.String(), evt.Start, evt.Weapon); errStart != nil {
		slog.Error("Failed to start capture from log", log.ErrAttr(errStart))
	}
}

// HandleChange reads the newest line from path and dispatches it. It is used as the
// watcher.ChangeFunc for the watched log.
func (d Dispatcher) HandleChange(ctx context.Context, path string) error {
	line, errRead := watcher.ReadLastLine(path)
	if errRead != nil {
		return errRead
	}

	if line == "" {
		return nil
	}

	slog.Debug("New log line", slog.String("line", line))

	d.Dispatch(ctx, line)

	return nil
}
