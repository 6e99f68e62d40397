package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/leighmacdonald/capwatch/frontend"
	"github.com/leighmacdonald/capwatch/internal/capture"
	"github.com/leighmacdonald/capwatch/internal/config"
	"github.com/leighmacdonald/capwatch/internal/discord"
	"github.com/leighmacdonald/capwatch/internal/httphelper"
	"github.com/leighmacdonald/capwatch/internal/ingest"
	"github.com/leighmacdonald/capwatch/internal/log"
	"github.com/leighmacdonald/capwatch/internal/metrics"
	"github.com/leighmacdonald/capwatch/internal/page"
	"github.com/leighmacdonald/capwatch/internal/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	BuildVersion = "master" //nolint:gochecknoglobals
	BuildCommit  = ""       //nolint:gochecknoglobals
	BuildDate    = ""       //nolint:gochecknoglobals
)

type BuildInfo struct {
	BuildVersion string
	Commit       string
	Date         string
}

func Version() BuildInfo {
	return BuildInfo{
		BuildVersion: BuildVersion,
		Commit:       BuildCommit,
		Date:         BuildDate,
	}
}

// Capwatch holds the long lived services shared by the serve and watch commands.
type Capwatch struct {
	config    config.Config
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	pages     *page.Writer
	bot       *discord.Bot
	stats     *stats.Store
	captures  *capture.Captures
	sentry    *sentry.Client
	logCloser func()
}

func NewCapwatch() (*Capwatch, error) {
	conf, errConfig := config.Read(config.ReadOpts{ConfigFile: cfgFile})
	if errConfig != nil {
		slog.Error("Failed to read config", log.ErrAttr(errConfig))

		return nil, errConfig
	}

	if errValidate := conf.Validate(); errValidate != nil {
		slog.Error("Invalid config", log.ErrAttr(errValidate))

		return nil, errValidate
	}

	return &Capwatch{config: conf}, nil
}

// Init sets up logging and constructs every service. The discord gateway is not connected until Start.
func (c *Capwatch) Init(ctx context.Context) error {
	c.setupSentry()
	c.logCloser = log.MustCreateLogger(ctx, c.config.Log, c.sentry != nil, BuildVersion)

	c.registry = prometheus.NewRegistry()
	c.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	recorder, errMetrics := metrics.New(c.registry)
	if errMetrics != nil {
		return errMetrics
	}

	c.metrics = recorder

	pages, errPages := page.NewWriter(c.config.HTTP.StaticPath, c.config.HTTP.BaseURL())
	if errPages != nil {
		return errPages
	}

	if errInit := pages.Init(ctx); errInit != nil {
		return errInit
	}

	c.pages = pages

	bot, errBot := discord.New(c.config.Discord.Token)
	if errBot != nil {
		return errBot
	}

	c.bot = bot
	c.stats = stats.NewStore()
	c.captures = capture.NewCaptures(pages, discord.NewCaptureNotifier(bot, c.config.Discord.ChannelID),
		capture.WithRecorder(c.metrics))

	return nil
}

func (c *Capwatch) setupSentry() {
	if c.config.Sentry.DSN == "" {
		slog.Info("Sentry.io support is disabled. To enable at runtime, set SENTRY_DSN.")

		return
	}

	sentryClient, err := log.NewSentryClient(c.config.Sentry.DSN, BuildVersion, c.config.HTTP.Mode)
	if err != nil {
		slog.Error("Failed to setup sentry client", log.ErrAttr(err))

		return
	}

	slog.Info("Sentry.io support is enabled.")
	c.sentry = sentryClient
}

// Start connects the discord session in the background. Notifications sent before the
// gateway reports ready fail and are logged by the capture service.
func (c *Capwatch) Start(ctx context.Context) {
	go func() {
		if errStart := c.bot.Start(ctx); errStart != nil {
			slog.Error("Failed to start bot", log.ErrAttr(errStart))
		}
	}()
}

func (c *Capwatch) Dispatcher() ingest.Dispatcher {
	return ingest.NewDispatcher(c.stats, c.captures, c.metrics)
}

// Router builds the http handler. controlEnabled exposes the capture start and winner endpoints.
func (c *Capwatch) Router(controlEnabled bool) (*gin.Engine, error) {
	conf := c.config.HTTP

	router := httphelper.CreateRouter(httphelper.RouterOpts{
		HTTPLogEnabled:    c.config.Log.HTTPEnabled,
		LogLevel:          log.ToSlogLevel(c.config.Log.Level),
		Mode:              conf.Mode,
		SentryDSN:         c.config.Sentry.DSN,
		Version:           BuildVersion,
		PProfEnabled:      conf.PProfEnabled,
		PrometheusEnabled: conf.PrometheusEnabled,
		Registry:          c.registry,
		CORSOrigins:       conf.CORSOrigins,
	})

	stats.NewStatsHandler(router, c.stats)
	capture.NewCaptureHandler(router, c.captures, controlEnabled)

	if conf.PrometheusEnabled {
		metrics.NewHandler(router, c.registry)
	}

	if errRoutes := frontend.AddRoutes(router, c.pages.Root()); errRoutes != nil {
		return nil, errRoutes
	}

	return router, nil
}

// Serve runs the http server until ctx is cancelled.
func (c *Capwatch) Serve(ctx context.Context, handler http.Handler) error {
	addr := c.config.HTTP.Addr()
	httpServer := httphelper.NewServer(addr, handler)

	go func() {
		<-ctx.Done()

		slog.Info("Shutting down HTTP service")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		if errShutdown := httpServer.Shutdown(shutdownCtx); errShutdown != nil { //nolint:contextcheck
			slog.Error("Error shutting down http service", log.ErrAttr(errShutdown))
		}
	}()

	slog.Info("Starting HTTP server", slog.String("address", addr), slog.String("url", c.config.HTTP.BaseURL()))

	if errServe := httpServer.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
		slog.Error("HTTP server returned error", log.ErrAttr(errServe))

		return errServe
	}

	return nil
}

func (c *Capwatch) Close() {
	if c.bot != nil {
		c.bot.Shutdown()
	}

	if c.sentry != nil {
		c.sentry.Flush(2 * time.Second)
	}

	if c.logCloser != nil {
		c.logCloser()
	}
}
