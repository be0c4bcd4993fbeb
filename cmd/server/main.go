package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/EncoreMusictech/encore-live-sub011/pkg/logger"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty"
	"github.com/EncoreMusictech/encore-live-sub011/pkg/royalty/pipeline"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML server config (environment variables override it)")
	flag.Parse()

	log := logger.GetLogger()

	cfg, err := LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if lvl, ok := logger.ParseLevel(cfg.LogLevel); ok {
		log.SetLevel(lvl)
	}

	pipelineCfg := pipeline.DefaultConfig()
	if cfg.PipelineConfigPath != "" {
		pipelineCfg, err = pipeline.LoadConfigFile(cfg.PipelineConfigPath)
		if err != nil {
			log.Fatalf("Failed to load pipeline config: %v", err)
		}
		if err := pipelineCfg.Validate(); err != nil {
			log.Fatalf("Invalid pipeline config %s: %v", cfg.PipelineConfigPath, err)
		}
	}

	service, err := royalty.NewService(
		royalty.WithDBPath(cfg.DBPath),
		royalty.WithPipelineConfig(pipelineCfg),
		royalty.WithMatchFloor(cfg.MatchFloor),
		royalty.WithLogger(log),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := NewServer(service, cfg, log)
	if err := server.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Errorf("Server failed: %v", err)
	}
	log.Infof("Server stopped")
	_ = log.Sync()
}
