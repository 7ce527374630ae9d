// internal/config/config.go
//
// Process configuration.
// Sources, lowest to highest precedence: defaults, ./config.yaml (or the
// file given with --config), .env, environment variables. Environment
// variable names are the keys upper-cased (PORT, JWT_SECRET, ...).

package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port             string `mapstructure:"port"`
	LogLevel         string `mapstructure:"log_level"`
	ClientOrigin     string `mapstructure:"client_origin"`
	JWTSecret        string `mapstructure:"jwt_secret"`
	JWTExpiresDays   int    `mapstructure:"jwt_expires_days"`
	CookieName       string `mapstructure:"cookie_name"`
	Env              string `mapstructure:"node_env"`
	DatabaseURL      string `mapstructure:"database_url"`
	DailySalt        string `mapstructure:"daily_salt"`
	DefaultOpponents int    `mapstructure:"default_opponents"`
	RequestTimeout   int    `mapstructure:"request_timeout"` // seconds
}

// Production reports whether cookies should be Secure / SameSite=None.
func (c *Config) Production() bool { return c.Env == "production" }

var keys = map[string]any{
	"port":              "5175",
	"log_level":         "info",
	"client_origin":     "http://localhost:5173",
	"jwt_secret":        "dev_secret_change_me",
	"jwt_expires_days":  14,
	"cookie_name":       "clue_player",
	"node_env":          "development",
	"database_url":      ":memory:",
	"daily_salt":        "local_dev_salt",
	"default_opponents": 2,
	"request_timeout":   10,
}

// Default returns the configuration with nothing overridden.
func Default() *Config {
	c, _ := load(viper.New(), "")
	return c
}

// Load reads .env, then an optional config file, then the environment.
// An empty file means ./config.yaml or ./config/config.yaml if present.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New(), file)
}

func load(v *viper.Viper, file string) (*Config, error) {
	for k, def := range keys {
		v.SetDefault(k, def)
		_ = v.BindEnv(k, strings.ToUpper(k))
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.DefaultOpponents < 1 || c.DefaultOpponents > 5 {
		c.DefaultOpponents = 2
	}
	return &c, nil
}
