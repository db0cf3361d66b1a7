package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/groupe-sii/lumext/internal/logging"
	"github.com/groupe-sii/lumext/internal/server"
	"github.com/groupe-sii/lumext/internal/server/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg := config.LoadConfig(os.Args[1:])

	logger, err := logging.NewZap(cfg.LogLevel, "json")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "init failed", "error", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
	}
}
