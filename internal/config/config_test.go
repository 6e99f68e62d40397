package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leighmacdonald/capwatch/internal/config"
	"github.com/leighmacdonald/capwatch/internal/log"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the variables read by the config loader for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		"TOKEN", "CHANNEL_ID", "LOG_PATH", "WATCH_QUIESCENCE", "PORT", "HTTP_HOST",
		"STATIC_PATH", "EXTERNAL_URL", "LOG_LEVEL", "LOG_FILE", "SENTRY_DSN",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeFile(t *testing.T, name string, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func emptyConfigFile(t *testing.T) config.ReadOpts {
	t.Helper()

	return config.ReadOpts{
		ConfigFile: writeFile(t, "capwatch.yml", "log:\n  level: info\n"),
		EnvFile:    filepath.Join(t.TempDir(), "missing.env"),
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	conf, err := config.Read(emptyConfigFile(t))
	require.NoError(t, err)

	require.Equal(t, config.DefaultChannelID, conf.Discord.ChannelID)
	require.Equal(t, "server.log", conf.Watch.LogPath)
	require.Equal(t, 500*time.Millisecond, conf.Watch.Quiescence)
	require.Equal(t, 3000, conf.HTTP.Port)
	require.Equal(t, "public", conf.HTTP.StaticPath)
	require.Equal(t, "http://localhost:3000", conf.HTTP.BaseURL())
	require.Equal(t, ":3000", conf.HTTP.Addr())
	require.Equal(t, log.Info, conf.Log.Level)
	require.False(t, conf.HTTP.PrometheusEnabled)

	require.ErrorIs(t, conf.Validate(), config.ErrMissingToken)
}

func TestEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN", "secret")
	t.Setenv("CHANNEL_ID", "42")
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_PATH", "/var/log/game/server.log")
	t.Setenv("WATCH_QUIESCENCE", "250ms")
	t.Setenv("EXTERNAL_URL", "https://captures.example.com")
	t.Setenv("CAPWATCH_HTTP_PPROF_ENABLED", "true")

	conf, err := config.Read(emptyConfigFile(t))
	require.NoError(t, err)
	require.NoError(t, conf.Validate())

	require.Equal(t, "secret", conf.Discord.Token)
	require.Equal(t, "42", conf.Discord.ChannelID)
	require.Equal(t, 8080, conf.HTTP.Port)
	require.Equal(t, "/var/log/game/server.log", conf.Watch.LogPath)
	require.Equal(t, 250*time.Millisecond, conf.Watch.Quiescence)
	require.Equal(t, "https://captures.example.com", conf.HTTP.BaseURL())
	require.True(t, conf.HTTP.PProfEnabled)
}

func TestEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	opts := emptyConfigFile(t)
	opts.EnvFile = writeFile(t, ".env", "TOKEN=from-dotenv\nPORT=7000\nCHANNEL_ID=99\n")

	conf, err := config.Read(opts)
	require.NoError(t, err)

	require.Equal(t, "from-dotenv", conf.Discord.Token)
	require.Equal(t, "99", conf.Discord.ChannelID)
	require.Equal(t, 9000, conf.HTTP.Port, "environment must win over .env")
}

func TestConfigFile(t *testing.T) {
	clearEnv(t)

	conf, err := config.Read(config.ReadOpts{
		ConfigFile: writeFile(t, "capwatch.yml", "http:\n  static_path: www\n  cors_origins:\n    - https://a.example.com\nwatch:\n  quiescence: 2s\n"),
		EnvFile:    filepath.Join(t.TempDir(), "missing.env"),
	})
	require.NoError(t, err)

	require.Equal(t, "www", conf.HTTP.StaticPath)
	require.Equal(t, []string{"https://a.example.com"}, conf.HTTP.CORSOrigins)
	require.Equal(t, 2*time.Second, conf.Watch.Quiescence)
}

func TestBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("WATCH_QUIESCENCE", "soon")

	_, err := config.Read(emptyConfigFile(t))
	require.ErrorIs(t, err, config.ErrFormatConfig)
}
