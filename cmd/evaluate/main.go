package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/adapters/database"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/analysis"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/entities"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/evaluation"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/config"
)

func main() {
	var scenariosPath string
	var catalogPath string
	var strict bool

	flag.StringVar(&scenariosPath, "scenarios", "config/golden_scenarios.json", "Golden scenario file")
	flag.StringVar(&catalogPath, "catalog", "", "Product catalog JSON file; reads the database when empty")
	flag.BoolVar(&strict, "strict", false, "Exit non-zero when any scenario fails")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	scenarios, err := evaluation.LoadGoldenScenarios(scenariosPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load golden scenarios")
	}
	if err := evaluation.ValidateGoldenScenarios(scenarios); err != nil {
		log.Fatal().Err(err).Msg("Invalid golden scenarios")
	}

	rules, err := analysis.LoadRuleSet(cfg.Analysis.RulesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load analysis rules")
	}

	ctx := context.Background()
	catalog, err := loadCatalog(ctx, cfg, catalogPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load product catalog")
	}

	engine := analysis.NewEngine(rules,
		analysis.WithMaxResults(cfg.Analysis.MaxRecommendations),
		analysis.WithLogger(log.Logger),
	)
	guardrails := evaluation.NewGuardrails(evaluation.GuardrailConfig{MaxIngredients: cfg.Analysis.MaxRecommendations})

	summary, err := evaluation.NewRunner(engine, catalog, guardrails).Run(ctx, scenarios)
	if err != nil {
		log.Fatal().Err(err).Msg("Evaluation failed")
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))

	if strict && summary.Failed > 0 {
		os.Exit(1)
	}
}

func loadCatalog(ctx context.Context, cfg *config.Config, path string) ([]*entities.Product, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var products []*entities.Product
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
		return products, nil
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return nil, err
	}
	defer pgClient.Close()

	return database.NewProductAdapter(pgClient).List(ctx)
}
