package logparse

import "github.com/leighmacdonald/capwatch/internal/gang"

// EventType identifies which kind of line was parsed.
type EventType int

const (
	Unrecognized EventType = iota
	HitRecorded
	CaptureStarted
)

func (e EventType) String() string {
	switch e {
	case HitRecorded:
		return "hit"
	case CaptureStarted:
		return "capture"
	default:
		return "unrecognized"
	}
}

// Event is implemented by every value returned from Parse.
type Event interface {
	Type() EventType
}

// Reason describes why a line did not produce a useful event.
type Reason string

const (
	NoMarker        Reason = "no_marker"
	MismatchHit     Reason = "hit_mismatch"
	MismatchCapture Reason = "capture_mismatch"
)

// UnrecognizedEvt is returned for any line that is not a well formed hit or capture record.
type UnrecognizedEvt struct {
	Raw    string `json:"raw"`
	Reason Reason `json:"reason"`
}

func (UnrecognizedEvt) Type() EventType { return Unrecognized }

// HitRecordedEvt is a per player combat summary.
// eg: [HIT] gang=Ballas nick=AV_ASSA hits=3 headshots=1 dmg=90
type HitRecordedEvt struct {
	Gang      gang.Gang `json:"gang" mapstructure:"gang"`
	Nick      string    `json:"nick" mapstructure:"nick"`
	Hits      int64     `json:"hits" mapstructure:"hits"`
	Headshots int64     `json:"headshots" mapstructure:"headshots"`
	Damage    int64     `json:"damage" mapstructure:"dmg"`
}

func (HitRecordedEvt) Type() EventType { return HitRecorded }

// CaptureStartedEvt announces a new capture between an attacking and defending gang.
// eg: [CAPTURE] gang1=Ballas gang2=Families start=20:00 weapon=AK
type CaptureStartedEvt struct {
	Gang1  gang.Gang `json:"gang1" mapstructure:"gang1"`
	Gang2  gang.Gang `json:"gang2" mapstructure:"gang2"`
	Start  string    `json:"start" mapstructure:"start"`
	Weapon string    `json:"weapon" mapstructure:"weapon"`
}

func (CaptureStartedEvt) Type() EventType { return CaptureStarted }
