package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/oliver/market-intel/internal/api"
	"github.com/oliver/market-intel/internal/config"
	"github.com/oliver/market-intel/internal/dataset"
	"github.com/oliver/market-intel/internal/intel"
	"github.com/oliver/market-intel/internal/session"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := config.FromEnv()

	catalog, err := dataset.Load(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load datasets")
	}
	log.Info().
		Int("opportunities", len(catalog.Opportunities)).
		Int("regions", len(catalog.Regions)).
		Int("clients", len(catalog.Clients)).
		Msg("datasets loaded")

	profile, competitors, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load company profile")
	}
	engine := intel.NewEngine(profile, competitors)

	cache, err := session.OpenCache(cfg.CachePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.CachePath).Msg("failed to open session cache")
	}
	defer cache.Close()

	sessions, err := session.NewManager(cache)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to restore sessions")
	}

	srv := api.NewServer(catalog, engine, sessions, cfg.CORSOrigins)
	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := srv.Start(cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
