package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/adapters/database"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/adapters/search"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/application/services"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/observability"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("Invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("Interval must be greater than zero")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-indexer", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, cfg, reset); err != nil {
			log.Error().Err(err).Msg("Reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Info().Dur("next_run_in", interval).Msg("Reindex complete")

		select {
		case <-ctx.Done():
			log.Info().Msg("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, cfg *config.Config, reset bool) error {
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Info().Str("collection", typesense.ProductsCollection).Msg("Resetting collection")
		if err := tsClient.ResetSchema(ctx); err != nil {
			return err
		}
	} else if err := tsClient.InitSchema(ctx); err != nil {
		return err
	}

	catalog := services.NewCatalogService(
		database.NewProductAdapter(pgClient),
		search.NewTypesenseAdapter(tsClient),
	)

	start := time.Now()
	indexed, err := catalog.IndexAll(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("indexed", indexed).Dur("took", time.Since(start)).Msg("Indexed products")
	return nil
}
