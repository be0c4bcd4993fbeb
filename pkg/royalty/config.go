package royalty

import (
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty/matching"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty/pipeline"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty/storage"
)

type Config struct {
	DBPath string
	// MatchFloor is the minimum confidence for linking a reported song to a work
	// without review.
	MatchFloor float64
	Pipeline   pipeline.PipelineConfig
	Logger     Logger
	Storage    Storage
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

func WithMatchFloor(floor float64) Option {
	return func(c *Config) {
		c.MatchFloor = floor
	}
}

func WithPipelineConfig(cfg pipeline.PipelineConfig) Option {
	return func(c *Config) {
		c.Pipeline = cfg
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithStorage(storage Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

func defaultConfig() *Config {
	return &Config{
		DBPath:     storage.DefaultDBFile,
		MatchFloor: matching.DefaultAutoLinkFloor,
		Pipeline:   pipeline.DefaultConfig(),
	}
}
