package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/postdesk/internal/buildinfo"
	"github.com/dmitrijs2005/postdesk/internal/client/cli"
	"github.com/dmitrijs2005/postdesk/internal/client/config"
	"github.com/dmitrijs2005/postdesk/internal/client/models"
	"github.com/dmitrijs2005/postdesk/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	if cfg.APIKey == "" {
		key, err := cli.GetAPIKey(os.Stdout)
		if err != nil {
			logger.Warn(ctx, "api key not read, continuing read-only", "error", err)
		}
		cfg.APIKey = key
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx, models.ID(cfg.EditPostID))

}
