package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leighmacdonald/capwatch/internal/gang"
	"github.com/leighmacdonald/capwatch/internal/stats"
	"github.com/leighmacdonald/capwatch/pkg/logparse"
	"github.com/stretchr/testify/require"
)

func TestPrintStats(t *testing.T) {
	snapshot := stats.Snapshot{
		gang.Ballas: {
			"player10": {Hits: 1500, Headshots: 300, Damage: 45000},
			"player2":  {Hits: 4, Headshots: 1, Damage: 120},
		},
		gang.Vagos: {},
	}

	var out bytes.Buffer
	require.NoError(t, printStats(&out, snapshot))

	text := out.String()
	require.Contains(t, text, "BALLAS (2 players)")
	require.Contains(t, text, "VAGOS (0 players)")
	require.Contains(t, text, "1,500")
	require.Contains(t, text, "45,000")
	require.Contains(t, text, "20.0")
	require.Less(t, strings.Index(text, "player2"), strings.Index(text, "player10"))
	require.Less(t, strings.Index(text, "BALLAS"), strings.Index(text, "VAGOS"))
}

func TestStatsCommand(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := stats.NewStore()
	_, errApply := store.ApplyHit(logparse.HitRecordedEvt{Gang: gang.Families, Nick: "CJ", Hits: 3, Headshots: 3, Damage: 99})
	require.NoError(t, errApply)

	engine := gin.New()
	stats.NewStatsHandler(engine, store)

	server := httptest.NewServer(engine)
	defer server.Close()

	var out bytes.Buffer

	command := statsCmd()
	command.SetOut(&out)
	command.SetArgs([]string{"--url", server.URL})
	require.NoError(t, command.ExecuteContext(context.Background()))

	require.Contains(t, out.String(), "FAMILIES (1 players)")
	require.Contains(t, out.String(), "CJ")
	require.Contains(t, out.String(), "100.0")
}
