// Package config loads capwatch settings from defaults, an optional config file, a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/leighmacdonald/capwatch/internal/log"
)

var (
	ErrMissingToken   = errors.New("no TOKEN environment variable found, set TOKEN in .env or the environment")
	ErrReadConfig     = errors.New("failed to read config file")
	ErrReadEnvFile    = errors.New("failed to read .env file")
	ErrFormatConfig   = errors.New("failed to decode config")
	ErrDecodeDuration = errors.New("failed to decode duration")
)

const DefaultChannelID = "1441330193883987999"

type Config struct {
	Discord DiscordConfig `mapstructure:"discord"`
	Watch   WatchConfig   `mapstructure:"watch"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Log     log.Config    `mapstructure:"log"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
}

// Validate checks settings that have no usable default.
func (c Config) Validate() error {
	if c.Discord.Token == "" {
		return ErrMissingToken
	}

	return nil
}

type DiscordConfig struct {
	Token     string `mapstructure:"token"`
	ChannelID string `mapstructure:"channel_id"`
}

type WatchConfig struct {
	LogPath    string        `mapstructure:"log_path"`
	Quiescence time.Duration `mapstructure:"quiescence"`
}

type HTTPConfig struct {
	Host              string   `mapstructure:"host"`
	Port              int      `mapstructure:"port"`
	Mode              string   `mapstructure:"mode"`
	StaticPath        string   `mapstructure:"static_path"`
	ExternalURL       string   `mapstructure:"external_url"`
	PrometheusEnabled bool     `mapstructure:"prometheus_enabled"`
	PProfEnabled      bool     `mapstructure:"pprof_enabled"`
	CORSOrigins       []string `mapstructure:"cors_origins"`
}

func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// BaseURL is the public address generated pages are linked from.
func (h HTTPConfig) BaseURL() string {
	if h.ExternalURL != "" {
		return h.ExternalURL
	}

	return fmt.Sprintf("http://localhost:%d", h.Port)
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}
