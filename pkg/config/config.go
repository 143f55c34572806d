package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "FACILITY"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Report   ReportConfig   `mapstructure:"report"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type ReportConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	RowsPerPage    int    `mapstructure:"rows_per_page"`
	Facility       string `mapstructure:"facility"`
	// Profiles is the path to an ini file with per-kind titles and file names.
	Profiles string `mapstructure:"profiles"`
}

// LoadConfig reads the optional config file at path and overlays FACILITY_*
// environment variables, e.g. FACILITY_SERVER_PORT.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Report.RowsPerPage <= 0 {
		return nil, fmt.Errorf("report.rows_per_page must be positive, got %d", cfg.Report.RowsPerPage)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.path", "facility-atlas.db")
	v.SetDefault("report.currency_symbol", "$")
	v.SetDefault("report.rows_per_page", 25)
	v.SetDefault("report.facility", "")
	v.SetDefault("report.profiles", "")
}

func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}
