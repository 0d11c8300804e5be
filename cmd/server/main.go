package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/cardify/cardify-server/internal/config"
	myHTTP "github.com/cardify/cardify-server/internal/handler/http"
	"github.com/cardify/cardify-server/internal/logger"
	"github.com/cardify/cardify-server/internal/server"
	"github.com/cardify/cardify-server/internal/service"
	"github.com/cardify/cardify-server/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// a missing .env file is not an error: all settings can come from
	// real environment variables, flags or the JSON config
	_ = godotenv.Load()

	log := logger.NewLogger("cardify-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to postgres")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	repos := store.NewRepositories(db, log)
	services, err := service.NewServices(repos, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}
	handler := myHTTP.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
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
