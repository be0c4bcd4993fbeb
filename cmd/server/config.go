package main

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// ServerConfig is read from an optional YAML file with environment variable overrides.
type ServerConfig struct {
	Port               string  `yaml:"port" env:"PORT" env-default:"8080"`
	DBPath             string  `yaml:"db_path" env:"ROYALTY_DB_PATH" env-default:"royalty.sqlite3"`
	PipelineConfigPath string  `yaml:"pipeline_config" env:"ROYALTY_PIPELINE_CONFIG" env-default:""`
	MatchFloor         float64 `yaml:"match_floor" env:"ROYALTY_MATCH_FLOOR" env-default:"0.6"`
	CORSOrigins        string  `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"*"`
	LogLevel           string  `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	RequestLogging     bool    `yaml:"request_logging" env:"REQUEST_LOGGING" env-default:"true"`

	AllowedOrigins []string `yaml:"-"`
}

// LoadServerConfig reads path (if non-empty) and then the environment.
func LoadServerConfig(path string) (*ServerConfig, error) {
	cfg := &ServerConfig{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.MatchFloor < 0 || cfg.MatchFloor > 1 {
		return nil, fmt.Errorf("match_floor must be between 0 and 1, got %g", cfg.MatchFloor)
	}
	cfg.AllowedOrigins = parseOrigins(cfg.CORSOrigins)
	return cfg, nil
}

func parseOrigins(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
