package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

// Config is the process-wide configuration. Values come from an optional
// YAML file with environment variables taking precedence, so deployments
// can run with nothing but env vars.
type Config struct {
	AllowedOrigins []string `yaml:"allowed_origins"`

	Geocoder struct {
		TimeoutSeconds  int `yaml:"timeout_seconds"`
		CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	} `yaml:"geocoder"`

	Mail struct {
		Recipient   string `yaml:"recipient"`
		RatePerHour int    `yaml:"rate_per_hour"`
	} `yaml:"mail"`
}

// Load reads the config file at path if it exists, applies defaults, and
// then applies env overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if cfg.Geocoder.TimeoutSeconds <= 0 {
		cfg.Geocoder.TimeoutSeconds = 5
	}
	if cfg.Geocoder.CacheTTLSeconds <= 0 {
		cfg.Geocoder.CacheTTLSeconds = 3600
	}
	if cfg.Mail.RatePerHour <= 0 {
		cfg.Mail.RatePerHour = 3
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CONTACT_RECIPIENT"); v != "" {
		cfg.Mail.Recipient = v
	}
	if v := os.Getenv("GEOCODER_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Geocoder.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("MAIL_RATE_PER_HOUR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Mail.RatePerHour = n
		}
	}
}

// GeocoderTimeout returns the geocoder call budget as a duration.
func (c Config) GeocoderTimeout() time.Duration {
	return time.Duration(c.Geocoder.TimeoutSeconds) * time.Second
}

// GeocodeCacheTTL returns how long a cached geocode result stays valid.
func (c Config) GeocodeCacheTTL() time.Duration {
	return time.Duration(c.Geocoder.CacheTTLSeconds) * time.Second
}
