package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/adapters/database"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/analysis"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/application/services"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/observability"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/config"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/secrets"
)

func main() {
	var workers int
	var memberID string

	flag.IntVar(&workers, "workers", 3, "Number of concurrent workers")
	flag.StringVar(&memberID, "member", "", "Single member ID to analyze")
	flag.Parse()

	if _, err := secrets.ApplyVaultSecrets(context.Background(), secrets.LoadVaultConfigFromEnv("")); err != nil {
		log.Fatal().Err(err).Msg("Failed to load vault secrets")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-backfill", cfg.Server.Env)

	rules, err := analysis.LoadRuleSet(cfg.Analysis.RulesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load analysis rules")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pgClient.Close()

	surveyRepo := database.NewSurveyAdapter(pgClient)
	engine := analysis.NewEngine(rules,
		analysis.WithMaxResults(cfg.Analysis.MaxRecommendations),
		analysis.WithLogger(log.Logger),
	)

	// No event bus: backfilled records predate any cached member responses.
	analyzer := services.NewAnalysisService(
		engine,
		surveyRepo,
		database.NewMemberAdapter(pgClient),
		database.NewProductAdapter(pgClient),
		database.NewHealthRecordAdapter(pgClient),
		nil,
		nil,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()

	if memberID != "" {
		log.Info().Str("member_id", memberID).Msg("Analyzing single member")
		result, err := analyzer.AnalyzeAndRecommend(ctx, memberID)
		if err != nil {
			log.Fatal().Err(err).Str("member_id", memberID).Msg("Analysis failed")
		}
		log.Info().
			Str("member_id", memberID).
			Strs("ingredients", result.IngredientNames()).
			Int("products", len(result.Recommendations)).
			Msg("Analysis stored")
		return
	}

	log.Info().Int("workers", workers).Msg("Starting reanalysis backfill")
	svc := services.NewReanalysisService(surveyRepo, analyzer, workers)
	summary, err := svc.BackfillAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Backfill failed")
	}

	if summary != nil {
		log.Info().
			Dur("took", time.Since(start)).
			Int("total", summary.TotalProcessed).
			Int("success", summary.SuccessCount).
			Int("skipped", summary.SkippedCount).
			Int("failed", summary.FailureCount).
			Msg("Backfill complete")
	}
}
