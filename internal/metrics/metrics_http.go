package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metricsHandler struct {
	gatherer prometheus.Gatherer
}

func NewHandler(engine *gin.Engine, gatherer prometheus.Gatherer) {
	handler := metricsHandler{gatherer: gatherer}
	engine.GET("/metrics", handler.prometheusHandler())
}

func (h metricsHandler) prometheusHandler() gin.HandlerFunc {
	handler := promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})

	return func(ctx *gin.Context) {
		handler.ServeHTTP(ctx.Writer, ctx.Request)
	}
}
