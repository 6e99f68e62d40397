package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// envKeys maps the plain environment variable names to their config keys. Every key can also be
// set with the CAPWATCH_ prefix, eg: CAPWATCH_HTTP_PPROF_ENABLED.
var envKeys = map[string]string{ //nolint:gochecknoglobals
	"TOKEN":            "discord.token",
	"CHANNEL_ID":       "discord.channel_id",
	"LOG_PATH":         "watch.log_path",
	"WATCH_QUIESCENCE": "watch.quiescence",
	"PORT":             "http.port",
	"HTTP_HOST":        "http.host",
	"STATIC_PATH":      "http.static_path",
	"EXTERNAL_URL":     "http.external_url",
	"LOG_LEVEL":        "log.level",
	"LOG_FILE":         "log.file",
	"SENTRY_DSN":       "sentry.dsn",
}

// decodeDuration automatically parses the string duration type (1s,1m,1h,etc.) into a real time.Duration type.
func decodeDuration() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, target reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || target != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		value, _ := data.(string)

		duration, errDuration := time.ParseDuration(value)
		if errDuration != nil {
			return nil, errors.Join(errDuration, fmt.Errorf("%w: %s", ErrDecodeDuration, value))
		}

		return duration, nil
	}
}

func setDefaultConfigValues(v *viper.Viper) {
	if home, errHomeDir := homedir.Dir(); errHomeDir == nil {
		v.AddConfigPath(home)
	}

	v.AddConfigPath(".")
	v.SetConfigName("capwatch")
	v.SetConfigType("yml")
	v.SetEnvPrefix("capwatch")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaultConfig := map[string]any{
		"discord.token":           "",
		"discord.channel_id":      DefaultChannelID,
		"watch.log_path":          "server.log",
		"watch.quiescence":        "500ms",
		"http.host":               "",
		"http.port":               3000,
		"http.mode":               "release",
		"http.static_path":        "public",
		"http.external_url":       "",
		"http.prometheus_enabled": false,
		"http.pprof_enabled":      false,
		"http.cors_origins":       []string{},
		"log.level":               "info",
		"log.file":                "",
		"log.http_enabled":        false,
		"sentry.dsn":              "",
	}

	for configKey, value := range defaultConfig {
		v.SetDefault(configKey, value)
	}

	for envName, configKey := range envKeys {
		_ = v.BindEnv(configKey, envName, "CAPWATCH_"+strings.ToUpper(strings.ReplaceAll(configKey, ".", "_")))
	}
}

// applyEnvFile copies values from a .env file for any variable not already present in the
// environment, so real environment variables keep precedence.
func applyEnvFile(v *viper.Viper, path string) error {
	if _, errStat := os.Stat(path); errStat != nil {
		if errors.Is(errStat, os.ErrNotExist) {
			return nil
		}

		return errors.Join(errStat, ErrReadEnvFile)
	}

	envFile := viper.New()
	envFile.SetConfigFile(path)
	envFile.SetConfigType("env")

	if errRead := envFile.ReadInConfig(); errRead != nil {
		return errors.Join(errRead, ErrReadEnvFile)
	}

	for _, key := range envFile.AllKeys() {
		envName := strings.ToUpper(key)

		configKey, found := envKeys[envName]
		if !found {
			continue
		}

		if _, isSet := os.LookupEnv(envName); isSet {
			continue
		}

		v.Set(configKey, envFile.GetString(key))
	}

	return nil
}
