package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/permitsearch"
	"github.com/spf13/viper"
)

// Config holds settings read from defaults, an optional config file and
// PERMITSEARCH_* environment variables. Command-line flags override it.
type Config struct {
	ListenAddr string        `mapstructure:"listen_addr"`
	DBPath     string        `mapstructure:"db_path"`
	DataDir    string        `mapstructure:"data_dir"`
	LogLevel   string        `mapstructure:"log_level"`
	RateLimit  float64       `mapstructure:"rate_limit"`
	RateBurst  int           `mapstructure:"rate_burst"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	TrustProxy bool          `mapstructure:"trust_proxy"`
}

// LoadConfig loads configuration. If path is empty, permitsearch.yaml is
// looked up in the working directory and ~/.permitsearch; a missing file
// is not an error. An explicit path must exist.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PERMITSEARCH")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("db_path", "")
	v.SetDefault("data_dir", "")
	v.SetDefault("log_level", "")
	v.SetDefault("rate_limit", 5.0)
	v.SetDefault("rate_burst", 10)
	v.SetDefault("session_ttl", "30m")
	v.SetDefault("trust_proxy", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	} else {
		v.SetConfigName("permitsearch")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.permitsearch")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("load config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, permitsearch.Errorf(permitsearch.EINVALID, "session_ttl must be positive, got %s", cfg.SessionTTL)
	}
	return cfg, nil
}
