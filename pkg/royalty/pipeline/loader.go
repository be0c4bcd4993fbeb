package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/utils"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadConfigFile reads a TOML or YAML file over DefaultConfig, so the file only needs the
// fields it overrides. The format is chosen by extension (.toml, .yaml, .yml).
func LoadConfigFile(path string) (PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PipelineConfig{}, fmt.Errorf("read pipeline config: %w", err)
	}
	return ParseConfig(data, utils.FileFormat(path))
}

// ParseConfig decodes data in the format named by ext over DefaultConfig.
func ParseConfig(data []byte, ext string) (PipelineConfig, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg); err != nil {
			return PipelineConfig{}, fmt.Errorf("parse pipeline config: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return PipelineConfig{}, fmt.Errorf("parse pipeline config: %w", err)
		}
	default:
		return PipelineConfig{}, fmt.Errorf("unsupported pipeline config format %q", ext)
	}

	return cfg, nil
}
