package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/groupe-sii/lumext/internal/client/cli"
	"github.com/groupe-sii/lumext/internal/client/config"
	"github.com/groupe-sii/lumext/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig(os.Args[1:])

	logger, err := logging.NewZap(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
