package capture_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leighmacdonald/capwatch/internal/capture"
	"github.com/leighmacdonald/capwatch/internal/gang"
	"github.com/leighmacdonald/capwatch/internal/httphelper"
	"github.com/leighmacdonald/capwatch/internal/tests"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, controlEnabled bool) (*gin.Engine, *tests.FakeNotifier) {
	t.Helper()

	captures, notifier, _ := newCaptures(t)
	engine := httphelper.CreateRouter(httphelper.RouterOpts{Mode: gin.TestMode})
	capture.NewCaptureHandler(engine, captures, controlEnabled)

	return engine, notifier
}

func TestCaptureHTTP(t *testing.T) {
	router, notifier := newRouter(t, true)

	var empty capture.State
	tests.GetOK(t, router, "/capture", &empty)
	require.False(t, empty.Active())

	var started capture.StartResponse
	tests.PostOK(t, router, "/capture", capture.StartRequest{
		Gang1: "Ballas", Gang2: "Vagos", Start: "21:00", Weapon: "Deagle",
	}, &started)
	require.True(t, started.OK)
	require.Equal(t, gang.Ballas, started.Gang1)
	require.Equal(t, gang.Vagos, started.Gang2)
	require.Equal(t, "21:00", started.Start)
	require.Equal(t, "Deagle", started.Weapon)
	require.True(t, strings.HasSuffix(started.SiteURL, "-ballas-vs-vagos.html"))
	require.Equal(t, 1, notifier.Count())

	var current capture.State
	tests.GetOK(t, router, "/capture", &current)
	require.Equal(t, gang.Ballas, current.Gang1)
	require.Empty(t, current.Winner)

	var winner capture.WinnerResponse
	tests.PostOK(t, router, "/winner", capture.WinnerRequest{Winner: "VAGOS"}, &winner)
	require.True(t, winner.OK)
	require.Equal(t, gang.Vagos, winner.Winner)
	require.Equal(t, started.SiteURL, winner.SiteURL)
}

func TestCaptureHTTPQuery(t *testing.T) {
	router, _ := newRouter(t, true)

	var started capture.StartResponse
	tests.EndpointReceiver(t, router, http.MethodGet, "/capture-start", capture.StartRequest{
		Gang1: "families", Gang2: "bloods", Start: "now", Weapon: "bat",
	}, http.StatusOK, &started)
	require.True(t, started.OK)
	require.Equal(t, gang.Families, started.Gang1)

	var winner capture.WinnerResponse
	tests.EndpointReceiver(t, router, http.MethodGet, "/winner", capture.WinnerRequest{Winner: "bloods"},
		http.StatusOK, &winner)
	require.Equal(t, gang.Bloods, winner.Winner)
}

func TestCaptureHTTPQueryFallback(t *testing.T) {
	router, _ := newRouter(t, true)

	var started capture.StartResponse
	tests.PostOK(t, router, "/capture?weapon=rpg&start=noon", gin.H{
		"gang1": "marabunta", "gang2": "ballas",
	}, &started)
	require.Equal(t, "rpg", started.Weapon)
	require.Equal(t, "noon", started.Start)
}

func TestCaptureHTTPForm(t *testing.T) {
	router, _ := newRouter(t, true)

	form := url.Values{"gang1": {"vagos"}, "gang2": {"ballas"}, "start": {"now"}, "weapon": {"knife"}}
	request := httptest.NewRequest(http.MethodPost, "/capture", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), `"gang1":"vagos"`)
}

func TestCaptureHTTPErrors(t *testing.T) {
	router, notifier := newRouter(t, true)

	var missing httphelper.APIError
	tests.PostBadRequest(t, router, "/capture", capture.StartRequest{Gang1: "ballas"}, &missing)
	require.False(t, missing.OK)
	require.Contains(t, missing.Message, capture.ErrValidation.Error())
	require.Zero(t, notifier.Count())

	var noCapture httphelper.APIError
	tests.PostBadRequest(t, router, "/winner", capture.WinnerRequest{Winner: "ballas"}, &noCapture)
	require.Equal(t, capture.ErrNoActiveCapture.Error(), noCapture.Message)

	var noWinner httphelper.APIError
	tests.PostBadRequest(t, router, "/winner", capture.WinnerRequest{}, &noWinner)
	require.Contains(t, noWinner.Message, "winner")
}

func TestCaptureHTTPReadOnly(t *testing.T) {
	router, _ := newRouter(t, false)

	tests.GetOK(t, router, "/capture")
	tests.GetNotFound(t, router, "/capture-start")
	tests.Endpoint(t, router, http.MethodPost, "/winner", capture.WinnerRequest{Winner: "ballas"}, http.StatusNotFound)
}
