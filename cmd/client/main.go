package main

import (
	"context"
	"log"
	"os"

	"github.com/azbs/giftregistry/internal/buildinfo"
	"github.com/azbs/giftregistry/internal/cli"
	"github.com/azbs/giftregistry/internal/config"
	"github.com/azbs/giftregistry/pkg/logger"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}
	zl := logger.New(cfg.LogLevel, os.Stderr)

	app, err := cli.NewApp(cfg, zl)
	if err != nil {
		zl.Fatal().Err(err).Msg("failed to start")
	}

	app.Run(ctx)
}
