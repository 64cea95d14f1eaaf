// Package conf loads application settings from an optional YAML file and
// REWEAR_* environment variables, with sensible defaults for everything.
package conf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds every tunable of the application.
type Settings struct {
	Server   ServerSettings   `mapstructure:"server"`
	Database DatabaseSettings `mapstructure:"database"`
	Log      LogSettings      `mapstructure:"log"`
	Gemini   GeminiSettings   `mapstructure:"gemini"`
	Overpass OverpassSettings `mapstructure:"overpass"`
	Weather  WeatherSettings  `mapstructure:"weather"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Addr string `mapstructure:"addr"`
}

// DatabaseSettings configures the SQLite database.
type DatabaseSettings struct {
	Path string `mapstructure:"path"`
}

// LogSettings configures the optional log file tee.
type LogSettings struct {
	Path string `mapstructure:"path"`
}

// GeminiSettings configures the generative AI provider.
type GeminiSettings struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// OverpassSettings configures the external charity lookup.
type OverpassSettings struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RadiusMeters int           `mapstructure:"radius_meters"`
}

// WeatherSettings configures the weather provider.
type WeatherSettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads settings from the given config file (empty means search the
// working directory for rewear.yaml), overlays REWEAR_* environment variables
// and returns the result. A missing config file is not an error; only an
// unreadable or malformed one is.
func Load(configPath string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("rewear")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("rewear")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.path", "rewear.db")
	v.SetDefault("log.path", "")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("gemini.model", "")
	v.SetDefault("gemini.timeout", 10*time.Second)
	v.SetDefault("overpass.base_url", "")
	v.SetDefault("overpass.timeout", 8*time.Second)
	v.SetDefault("overpass.radius_meters", 15000)
	v.SetDefault("weather.base_url", "")
	v.SetDefault("weather.timeout", 5*time.Second)
}
