package config

import (
	"errors"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type ReadOpts struct {
	// ConfigFile overrides the default capwatch.yml search.
	ConfigFile string
	// EnvFile is the dotenv file merged under the environment. Defaults to .env in the working directory.
	EnvFile string
}

// Read loads the configuration. Precedence from highest: environment variables, the .env file,
// the config file, then defaults. A missing config file or .env file is not an error.
func Read(opts ReadOpts) (Config, error) {
	var (
		config Config
		v      = viper.New()
	)

	setDefaultConfigValues(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	}

	if errReadConfig := v.ReadInConfig(); errReadConfig != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(errReadConfig, &notFound) {
			return config, errors.Join(errReadConfig, ErrReadConfig)
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}

	if errEnv := applyEnvFile(v, envFile); errEnv != nil {
		return config, errEnv
	}

	hooks := mapstructure.ComposeDecodeHookFunc(decodeDuration(), mapstructure.StringToSliceHookFunc(","))
	if errUnmarshal := v.Unmarshal(&config, viper.DecodeHook(hooks)); errUnmarshal != nil {
		return config, errors.Join(errUnmarshal, ErrFormatConfig)
	}

	return config, nil
}
