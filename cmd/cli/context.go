package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/logger"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty/pipeline"
	"github.com/spf13/cobra"
)

type commandContext struct {
	dbFlag       *string
	pipelineFlag *string
	logLevelFlag *string
}

func newCommandContext(dbFlag, pipelineFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		dbFlag:       dbFlag,
		pipelineFlag: pipelineFlag,
		logLevelFlag: logLevelFlag,
	}
}

// pipelineConfig loads the --pipeline-config file over the defaults.
func (c *commandContext) pipelineConfig() (pipeline.PipelineConfig, error) {
	path := ""
	if c.pipelineFlag != nil {
		path = strings.TrimSpace(*c.pipelineFlag)
	}
	if path == "" {
		return pipeline.DefaultConfig(), nil
	}

	cfg, err := pipeline.LoadConfigFile(path)
	if err != nil {
		return pipeline.PipelineConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return pipeline.PipelineConfig{}, fmt.Errorf("invalid pipeline config %s: %w", path, err)
	}
	return cfg, nil
}

// withService opens the catalog for the duration of fn. Log output goes to stderr so
// tables and JSON on stdout stay clean.
func (c *commandContext) withService(cmd *cobra.Command, fn func(royalty.Service) error) error {
	cfg, err := c.pipelineConfig()
	if err != nil {
		return err
	}

	level := logger.WARN
	if c.logLevelFlag != nil {
		if lvl, ok := logger.ParseLevel(*c.logLevelFlag); ok {
			level = lvl
		}
	}
	log := logger.New(logger.Config{
		Level:    level,
		Colorize: true,
		Output:   cmd.ErrOrStderr(),
	})

	svc, err := royalty.NewService(
		royalty.WithDBPath(*c.dbFlag),
		royalty.WithPipelineConfig(cfg),
		royalty.WithLogger(log),
	)
	if err != nil {
		return err
	}
	defer svc.Close()

	return fn(svc)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
