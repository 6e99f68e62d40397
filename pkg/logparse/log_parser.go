// Package logparse turns capture server log lines into typed events.
//
// Only two record kinds are understood, both identified by a literal marker followed by labeled fields
// in a fixed order:
//
//	[HIT] gang=<text> nick=<text> hits=<int> headshots=<int> dmg=<int>
//	[CAPTURE] gang1=<text> gang2=<text> start=<text> weapon=<text>
//
// Any other input, including malformed marker lines, results in an UnrecognizedEvt.
package logparse

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/leighmacdonald/capwatch/internal/gang"
	"github.com/mitchellh/mapstructure"
)

const (
	MarkerHit     = "[HIT]"
	MarkerCapture = "[CAPTURE]"
)

type parserType struct {
	Marker   string
	Rx       *regexp.Regexp
	Mismatch Reason
	Decode   func(values map[string]any) (Event, error)
}

var (
	rxHit     = regexp.MustCompile(`\[HIT\]\s+gang=(?P<gang>.*?)\s+nick=(?P<nick>.*?)\s+hits=(?P<hits>\d+)\s+headshots=(?P<headshots>\d+)\s+dmg=(?P<dmg>\d+)`)
	rxCapture = regexp.MustCompile(`\[CAPTURE\]\s+gang1=(?P<gang1>.*?)\s+gang2=(?P<gang2>.*?)\s+start=(?P<start>.*?)\s+weapon=(?P<weapon>.*)$`)

	// Checked in order, the first parser whose marker is present decides the outcome.
	rxParsers = []parserType{ //nolint:gochecknoglobals
		{MarkerHit, rxHit, MismatchHit, decodeAs[HitRecordedEvt]},
		{MarkerCapture, rxCapture, MismatchCapture, decodeAs[CaptureStartedEvt]},
	}
)

// Parse classifies a single log line. It never fails; unknown or malformed input is reported
// through UnrecognizedEvt.
func Parse(line string) Event {
	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

	for _, parser := range rxParsers {
		if !strings.Contains(line, parser.Marker) {
			continue
		}

		values, found := reSubMatchMap(parser.Rx, line)
		if !found {
			return UnrecognizedEvt{Raw: line, Reason: parser.Mismatch}
		}

		event, errDecode := parser.Decode(values)
		if errDecode != nil {
			return UnrecognizedEvt{Raw: line, Reason: parser.Mismatch}
		}

		return event
	}

	return UnrecognizedEvt{Raw: line, Reason: NoMarker}
}

func decodeAs[T Event](values map[string]any) (Event, error) {
	var event T
	if err := Unmarshal(values, &event); err != nil {
		return nil, err
	}

	return event, nil
}

func reSubMatchMap(r *regexp.Regexp, str string) (map[string]any, bool) {
	match := r.FindStringSubmatch(str)
	if match == nil {
		return nil, false
	}

	subMatchMap := make(map[string]any)

	for i, name := range r.SubexpNames() {
		if i != 0 && name != "" {
			subMatchMap[name] = match[i]
		}
	}

	return subMatchMap, true
}

func decodeGang() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, d any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(gang.Gang("")) {
			return d, nil
		}

		value, ok := d.(string)
		if !ok {
			return d, nil
		}

		return gang.Gang(strings.ToLower(value)), nil
	}
}

// decodeInt parses numeric fields as base 10. The mapstructure default would treat a leading zero as octal.
func decodeInt() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, d any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Int64 {
			return d, nil
		}

		value, ok := d.(string)
		if !ok {
			return d, nil
		}

		return strconv.ParseInt(value, 10, 64)
	}
}

// Unmarshal will transform a map of values into the struct passed in
// eg: {"gang": "Ballas", "hits": "3"} -> HitRecordedEvt.
func Unmarshal(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(decodeGang(), decodeInt()),
		Result:           output,
		WeaklyTypedInput: true, // Lets us do str -> int easily
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}
