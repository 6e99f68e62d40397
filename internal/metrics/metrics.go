// Package metrics exposes prometheus counters for ingested lines, hits, captures and notifications.
package metrics

import (
	"github.com/leighmacdonald/capwatch/internal/gang"
	"github.com/leighmacdonald/capwatch/pkg/logparse"
	"github.com/prometheus/client_golang/prometheus"
)

type collector struct {
	LogLineCounter      *prometheus.CounterVec
	HitAppliedCounter   *prometheus.CounterVec
	HitRejectedCounter  prometheus.Counter
	CaptureCounter      *prometheus.CounterVec
	WinnerCounter       *prometheus.CounterVec
	NotificationCounter *prometheus.CounterVec
}

// Metrics records capture and ingest outcomes. A nil *Metrics is valid and records nothing.
type Metrics struct {
	collector *collector
}

func New(registerer prometheus.Registerer) (*Metrics, error) {
	collector := newMetricCollector()

	for _, metric := range []prometheus.Collector{
		collector.LogLineCounter,
		collector.HitAppliedCounter,
		collector.HitRejectedCounter,
		collector.CaptureCounter,
		collector.WinnerCounter,
		collector.NotificationCounter,
	} {
		if err := registerer.Register(metric); err != nil {
			return nil, err
		}
	}

	return &Metrics{collector: collector}, nil
}

func (m *Metrics) LogLine(evt logparse.Event) {
	if m == nil {
		return
	}

	m.collector.LogLineCounter.With(prometheus.Labels{"result": evt.Type().String()}).Inc()
}

func (m *Metrics) HitApplied(g gang.Gang) {
	if m == nil {
		return
	}

	m.collector.HitAppliedCounter.With(prometheus.Labels{"gang": g.String()}).Inc()
}

func (m *Metrics) HitRejected() {
	if m == nil {
		return
	}

	m.collector.HitRejectedCounter.Inc()
}

func (m *Metrics) CaptureStarted(attacker gang.Gang) {
	if m == nil {
		return
	}

	m.collector.CaptureCounter.With(prometheus.Labels{"attacker": attacker.String()}).Inc()
}

func (m *Metrics) WinnerDeclared(winner gang.Gang) {
	if m == nil {
		return
	}

	m.collector.WinnerCounter.With(prometheus.Labels{"winner": winner.String()}).Inc()
}

// Notification counts a send attempt, labelled by whether err is nil.
func (m *Metrics) Notification(err error) {
	if m == nil {
		return
	}

	status := "sent"
	if err != nil {
		status = "failed"
	}

	m.collector.NotificationCounter.With(prometheus.Labels{"status": status}).Inc()
}

func newMetricCollector() *collector {
	return &collector{
		LogLineCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "capwatch_log_lines_total", Help: "Total log lines ingested"},
			[]string{"result"}),

		HitAppliedCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "capwatch_hits_applied_total", Help: "Hit records added to the stats store"},
			[]string{"gang"}),

		HitRejectedCounter: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "capwatch_hits_rejected_total", Help: "Hit records dropped for an unknown gang"}),

		CaptureCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "capwatch_captures_started_total", Help: "Captures started"},
			[]string{"attacker"}),

		WinnerCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "capwatch_winners_total", Help: "Capture winners declared"},
			[]string{"winner"}),

		NotificationCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "capwatch_notifications_total", Help: "Capture notifications sent"},
			[]string{"status"}),
	}
}
