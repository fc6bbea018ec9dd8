package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/losardor/youtube-monitorin-pipeline/internal/viewer"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/db"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
)

func main() {
	ctx := context.Background()

	loader, _ := cfg.NewViperLoader()
	config, err := loader.Load()
	if err != nil {
		os.Exit(1)
	}
	logger, _ := log.NewCslLogger()

	mysql, err := db.NewMysql(config)
	if err != nil {
		logger.Error(ctx, "Failed to connect to database: %v", err)
		os.Exit(1)
	}

	server, err := viewer.NewServer(logger, config, mysql, config.Viewer.Port)
	if err != nil {
		logger.Error(ctx, "Failed to create viewer server: %v", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			logger.Error(ctx, "Shutdown error: %v", err)
		}
	}()

	if err := server.Start(); err != nil {
		logger.Error(ctx, "Viewer server error: %v", err)
		os.Exit(1)
	}
}
