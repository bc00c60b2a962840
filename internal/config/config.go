package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort    string `mapstructure:"http_port"`
	StoreDriver string `mapstructure:"store_driver"` // memory | postgres | sqlite
	DatabaseDSN string `mapstructure:"database_dsn"`
	CORSOrigins string `mapstructure:"cors_allowed_origins"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"` // json | console
	Timezone    string `mapstructure:"timezone"`

	PriceFullChicken float64 `mapstructure:"price_full_chicken"`
	PriceHalfChicken float64 `mapstructure:"price_half_chicken"`
	PriceFullPotato  float64 `mapstructure:"price_full_potato"`
	PriceHalfPotato  float64 `mapstructure:"price_half_potato"`

	BlacklistMarker string `mapstructure:"blacklist_marker"`

	// Sunday first, seven comma separated locality labels. Empty keeps the built-in table.
	Schedule string `mapstructure:"schedule"`
}

var defaults = map[string]any{
	"http_port":            "8080",
	"store_driver":         DriverSQLite,
	"database_dsn":         "",
	"cors_allowed_origins": "http://localhost:3000",
	"log_level":            "info",
	"log_format":           "json",
	"timezone":             "Europe/Madrid",
	"price_full_chicken":   11.0,
	"price_half_chicken":   6.0,
	"price_full_potato":    4.0,
	"price_half_potato":    2.5,
	"blacklist_marker":     "🚫",
	"schedule":             "",
}

// Load reads config.yaml (optional) and environment variables. Env wins over the file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	v.AddConfigPath("/etc/pollos/")

	for key, def := range defaults {
		v.SetDefault(key, def)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.StoreDriver == DriverSQLite && c.DatabaseDSN == "" {
		c.DatabaseDSN = "pollos.db"
	}

	for name, p := range map[string]float64{
		"PRICE_FULL_CHICKEN": c.PriceFullChicken,
		"PRICE_HALF_CHICKEN": c.PriceHalfChicken,
		"PRICE_FULL_POTATO":  c.PriceFullPotato,
		"PRICE_HALF_POTATO":  c.PriceHalfPotato,
	} {
		if p < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	if labels := c.ScheduleLabels(); labels != nil && len(labels) != 7 {
		return fmt.Errorf("SCHEDULE must list 7 localities (Sunday first), got %d", len(labels))
	}
	return nil
}

// ScheduleLabels splits SCHEDULE; nil when unset.
func (c *Config) ScheduleLabels() []string {
	if strings.TrimSpace(c.Schedule) == "" {
		return nil
	}
	parts := strings.Split(c.Schedule, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Warnings reports defaults that should not survive into a real deployment.
func (c *Config) Warnings() []string {
	var out []string
	if c.StoreDriver == DriverMemory {
		out = append(out, "[WARN] STORE_DRIVER=memory, data is lost on restart.")
	}
	if c.CORSOrigins == defaults["cors_allowed_origins"] {
		out = append(out, "[WARN] CORS_ALLOWED_ORIGINS uses the default value, set your own origin in production.")
	}
	return out
}
