package httphelper

import (
	"log/slog"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	sloggin "github.com/samber/slog-gin"
)

type RouterOpts struct {
	HTTPLogEnabled    bool
	LogLevel          slog.Level
	Mode              string
	SentryDSN         string
	Version           string
	PProfEnabled      bool
	PrometheusEnabled bool
	// Registry receives the gin request metrics when PrometheusEnabled is set.
	Registry    *prometheus.Registry
	CORSOrigins []string
}

// CreateRouter constructs a new router using gin.Engine with the provided RouterOpts.
func CreateRouter(opts RouterOpts) *gin.Engine {
	if opts.Mode != "" {
		gin.SetMode(opts.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(recoveryHandler())
	engine.Use(errorHandler())

	if opts.HTTPLogEnabled {
		useSloggin(engine, opts.LogLevel)
	}

	if opts.SentryDSN != "" {
		useSentry(engine, opts.Version)
	}

	if opts.PProfEnabled {
		pprof.Register(engine)
	}

	engine.Use(useSecure(opts.Mode == gin.DebugMode))

	if len(opts.CORSOrigins) > 0 {
		useCors(engine, opts.CORSOrigins)
	}

	if opts.PrometheusEnabled && opts.Registry != nil {
		usePrometheus(engine, opts.Registry)
	}

	return engine
}

func useCors(engine *gin.Engine, origins []string) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.ExposeHeaders = append(corsConfig.ExposeHeaders, "Capwatch-AppVersion")
	corsConfig.AllowWildcard = true

	engine.Use(cors.New(corsConfig))
}

func usePrometheus(engine *gin.Engine, registry *prometheus.Registry) {
	prom := ginprom.New(
		ginprom.Engine(engine),
		ginprom.Namespace("capwatch"),
		ginprom.Subsystem("http"),
		ginprom.Registry(registry),
		ginprom.Ignore("/metrics"),
	)
	engine.Use(prom.Instrument())
}

func useSloggin(engine *gin.Engine, level slog.Level) {
	engine.Use(sloggin.NewWithConfig(slog.Default(), sloggin.Config{
		DefaultLevel:     level,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}))
}
