package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/MKhiriev/go-graph-peer/internal/config"
	"github.com/MKhiriev/go-graph-peer/internal/logger"
	"github.com/MKhiriev/go-graph-peer/internal/peer"
	"github.com/MKhiriev/go-graph-peer/internal/resolver"
	"github.com/MKhiriev/go-graph-peer/internal/server"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("graph-peer-relay")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log = logger.NewLoggerWithOutput("graph-peer-relay", os.Stdout, logger.ParseLevel(cfg.App.LogLevel))

	log.Debug().Any("config", cfg).Msg("received configs")

	if s, _ := cfg.Node.ParsedScenario(); s != resolver.ScenarioServer && cfg.Node.Scenario != config.DefaultScenario {
		log.Warn().Str("scenario", cfg.Node.Scenario).Msg("relay always resolves the server scenario")
	}

	opts, err := cfg.Node.ServerOptions()
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing node overrides")
	}

	listener, err := net.Listen("tcp", cfg.Server.HTTPAddress)
	if err != nil {
		log.Fatal().Err(err).Str("address", cfg.Server.HTTPAddress).Msg("error listening")
	}

	ctx := context.Background()
	options := []peer.Option{peer.WithLogger(log)}
	if env := cfg.Node.Environment(); env != nil {
		options = append(options, peer.WithEnvironment(*env))
	}

	p, err := peer.NewServer(ctx, listener, cfg.Node.Peers, opts, options...)
	if err != nil {
		listener.Close()
		log.Fatal().Err(err).Msg("error starting relay")
	}

	log.Info().
		Str("address", listener.Addr().String()).
		Str("id", p.ID()).
		Str("storage", p.Record.StorageMode.String()).
		Msg("relay is listening")

	if err = server.Run(ctx, log, p.Close); err != nil {
		log.Fatal().Err(err).Msg("relay shutdown error")
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
