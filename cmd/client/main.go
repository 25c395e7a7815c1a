package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-graph-peer/internal/client"
	"github.com/MKhiriev/go-graph-peer/internal/config"
	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// stdout carries the resolved record; logs go to stderr
	log := logger.NewLoggerWithOutput("graph-peer-client", os.Stderr, logger.ParseLevel(""))
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = logger.NewLoggerWithOutput("graph-peer-client", os.Stderr, logger.ParseLevel(cfg.App.LogLevel))

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	app := client.NewApp(cfg, info, os.Stdout, log)

	if err = app.Run(context.Background()); err != nil {
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

	fmt.Fprintf(os.Stderr, "Build version: %s\n", buildVersion)
	fmt.Fprintf(os.Stderr, "Build date: %s\n", buildDate)
	fmt.Fprintf(os.Stderr, "Build commit: %s\n", buildCommit)
}
