package logparse_test

import (
	"fmt"
	"testing"

	"github.com/leighmacdonald/capwatch/internal/gang"
	"github.com/leighmacdonald/capwatch/pkg/logparse"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line     string
		expected logparse.Event
	}{
		{
			"[HIT] gang=Ballas nick=AV_ASSA hits=3 headshots=1 dmg=90",
			logparse.HitRecordedEvt{Gang: gang.Ballas, Nick: "AV_ASSA", Hits: 3, Headshots: 1, Damage: 90},
		},
		{
			"12:01:44 [HIT] gang=CARTEL nick=Some_Guy hits=10 headshots=0 dmg=250\r\n",
			logparse.HitRecordedEvt{Gang: "cartel", Nick: "Some_Guy", Hits: 10, Headshots: 0, Damage: 250},
		},
		{
			"[CAPTURE] gang1=Ballas gang2=Families start=20:00 weapon=AK",
			logparse.CaptureStartedEvt{Gang1: gang.Ballas, Gang2: gang.Families, Start: "20:00", Weapon: "AK"},
		},
		{
			"[CAPTURE] gang1=VAGOS gang2=bloods start=21:30 today weapon=Pistol  .50",
			logparse.CaptureStartedEvt{Gang1: gang.Vagos, Gang2: gang.Bloods, Start: "21:30 today", Weapon: "Pistol  .50"},
		},
		{
			"[HIT] gang=Ballas nick=AV_ASSA hits=three headshots=1 dmg=90",
			logparse.UnrecognizedEvt{Raw: "[HIT] gang=Ballas nick=AV_ASSA hits=three headshots=1 dmg=90", Reason: logparse.MismatchHit},
		},
		{
			"[CAPTURE] gang1=Ballas start=20:00",
			logparse.UnrecognizedEvt{Raw: "[CAPTURE] gang1=Ballas start=20:00", Reason: logparse.MismatchCapture},
		},
		{
			"player connected",
			logparse.UnrecognizedEvt{Raw: "player connected", Reason: logparse.NoMarker},
		},
		{
			"",
			logparse.UnrecognizedEvt{Raw: "", Reason: logparse.NoMarker},
		},
	}

	for i, test := range tests {
		event := logparse.Parse(test.line)
		require.Equal(t, test.expected, event, fmt.Sprintf("[%d] Invalid event parsed: %s", i, test.line))
		require.Equal(t, test.expected.Type(), event.Type())
	}
}

func TestParseHitTakesPrecedence(t *testing.T) {
	event := logparse.Parse("[HIT] gang=ballas nick=x hits=1 headshots=1 dmg=1 [CAPTURE]")
	require.Equal(t, logparse.HitRecorded, event.Type())

	// A malformed hit line never falls through to the capture pattern.
	mismatch := logparse.Parse("[HIT] [CAPTURE] gang1=ballas gang2=vagos start=20:00 weapon=AK")
	evt, ok := mismatch.(logparse.UnrecognizedEvt)
	require.True(t, ok)
	require.Equal(t, logparse.MismatchHit, evt.Reason)
}

func TestParseGangIsNotTrimmed(t *testing.T) {
	event := logparse.Parse("[HIT] gang= Ballas nick=x hits=1 headshots=0 dmg=5")
	hit, ok := event.(logparse.HitRecordedEvt)
	require.True(t, ok)
	require.Equal(t, gang.Gang(" ballas"), hit.Gang)
	require.False(t, hit.Gang.Valid())
}

func TestParseOverflowIsMismatch(t *testing.T) {
	event := logparse.Parse("[HIT] gang=ballas nick=x hits=99999999999999999999999 headshots=1 dmg=1")
	require.Equal(t, logparse.Unrecognized, event.Type())
	evt, ok := event.(logparse.UnrecognizedEvt)
	require.True(t, ok)
	require.Equal(t, logparse.MismatchHit, evt.Reason)
}

func TestParseLeadingZeroIsDecimal(t *testing.T) {
	event := logparse.Parse("[HIT] gang=bloods nick=x hits=010 headshots=09 dmg=0100")
	require.Equal(t, logparse.HitRecordedEvt{Gang: gang.Bloods, Nick: "x", Hits: 10, Headshots: 9, Damage: 100}, event)
}

func TestEventTypeString(t *testing.T) {
	require.Equal(t, "hit", logparse.HitRecorded.String())
	require.Equal(t, "capture", logparse.CaptureStarted.String())
	require.Equal(t, "unrecognized", logparse.Unrecognized.String())
}
