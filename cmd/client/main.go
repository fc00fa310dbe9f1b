package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vibeclip/internal/client"
	"github.com/MKhiriev/vibeclip/internal/config"
	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("vibeclip-client").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("vibeclip-client", cfg.App.LogPath)
	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	app, err := client.NewApp(context.Background(), cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
