package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type statsHandler struct {
	store *Store
}

func NewStatsHandler(engine *gin.Engine, store *Store) {
	handler := statsHandler{store: store}

	engine.GET("/stats", handler.onStats())
}

func (h statsHandler) onStats() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, h.store.Snapshot())
	}
}
