package stats_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leighmacdonald/capwatch/internal/gang"
	"github.com/leighmacdonald/capwatch/internal/httphelper"
	"github.com/leighmacdonald/capwatch/internal/stats"
	"github.com/leighmacdonald/capwatch/internal/tests"
	"github.com/leighmacdonald/capwatch/pkg/logparse"
	"github.com/stretchr/testify/require"
)

func newStatsRouter(t *testing.T) (*gin.Engine, *stats.Store) {
	t.Helper()

	store := stats.NewStore()
	engine := httphelper.CreateRouter(httphelper.RouterOpts{Mode: gin.TestMode})
	stats.NewStatsHandler(engine, store)

	return engine, store
}

func TestStatsHTTP(t *testing.T) {
	router, store := newStatsRouter(t)

	var empty map[string]map[string]stats.HitCounters
	tests.GetOK(t, router, "/stats", &empty)
	require.Len(t, empty, 5)
	require.Empty(t, empty["ballas"])

	_, err := store.ApplyHit(logparse.HitRecordedEvt{Gang: gang.Ballas, Nick: "X", Hits: 3, Headshots: 1, Damage: 90})
	require.NoError(t, err)

	var snapshot map[string]map[string]stats.HitCounters
	tests.GetOK(t, router, "/stats", &snapshot)
	require.Equal(t, stats.HitCounters{Hits: 3, Headshots: 1, Damage: 90}, snapshot["ballas"]["X"])
	require.Contains(t, string(tests.GetOKBytes(t, router, "/stats")), `"ballas":{"X":{"hits":3,"headshots":1,"damage":90}}`)
}

func TestFetch(t *testing.T) {
	router, store := newStatsRouter(t)
	_, err := store.ApplyHit(logparse.HitRecordedEvt{Gang: gang.Vagos, Nick: "Z", Hits: 2, Headshots: 1, Damage: 40})
	require.NoError(t, err)

	server := httptest.NewServer(router)
	defer server.Close()

	snapshot, errFetch := stats.Fetch(t.Context(), httphelper.NewHTTPClient(), server.URL)
	require.NoError(t, errFetch)
	require.Equal(t, int64(40), snapshot[gang.Vagos]["Z"].Damage)

	_, errFetch = stats.Fetch(t.Context(), httphelper.NewHTTPClient(), server.URL+"/nope")
	require.ErrorIs(t, errFetch, httphelper.ErrRequestInvalidCode)
}
