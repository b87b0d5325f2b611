package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-quote-guard/internal/client"
	"github.com/MKhiriev/go-quote-guard/internal/config"
	"github.com/MKhiriev/go-quote-guard/internal/crypto"
	"github.com/MKhiriev/go-quote-guard/internal/logger"
	"github.com/MKhiriev/go-quote-guard/internal/service"
	"github.com/MKhiriev/go-quote-guard/internal/store"
	"github.com/MKhiriev/go-quote-guard/internal/tui"
	"github.com/MKhiriev/go-quote-guard/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(info)

	log, logFile := logger.NewClientLogger("go-quote-guard-client", "")
	defer logFile.Close()

	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	keychain := crypto.NewKeyChainService(crypto.Argon2Params{
		Time:      cfg.Security.Argon.Time,
		MemoryKiB: cfg.Security.Argon.MemoryKiB,
		Threads:   cfg.Security.Argon.Threads,
	})

	services := service.NewClientServices(storages, keychain, cfg.Security, log)

	ui, err := tui.New(services, cfg.App, info, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(storages, services, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
