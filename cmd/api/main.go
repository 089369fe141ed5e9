package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/adapters/cache"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/adapters/database"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/adapters/events"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/adapters/search"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/analysis"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/api/handlers"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/api/middleware"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/api/routes"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/application/services"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/providers"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/domain/repositories"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/internal/infrastructure/observability"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/config"
	"github.com/zatekoja/Healthsurveyrecommendationdesign/backend/pkg/secrets"
)

func main() {
	vault, err := secrets.ApplyVaultSecrets(context.Background(), secrets.LoadVaultConfigFromEnv(""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load vault secrets: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)
	if vault.Enabled {
		log.Info().Str("path", vault.Path).Int("loaded", vault.Loaded).Int("skipped", vault.Skipped).Msg("Vault secrets applied")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	rules, err := analysis.LoadRuleSet(cfg.Analysis.RulesPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Analysis.RulesPath).Msg("Failed to load analysis rules")
	}
	log.Info().Str("version", rules.Version).Msg("Analysis rules loaded")

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if err := pgClient.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database schema")
	}

	// Redis is optional: without it the catalog is read straight from
	// Postgres and no events are published.
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache and events")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
	}

	var searchRepo repositories.ProductSearchRepository
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Typesense unavailable, product search filters the catalog directly")
	} else {
		searchRepo = search.NewTypesenseAdapter(typesenseClient)
	}

	surveyAdapter := database.NewSurveyAdapter(pgClient)
	questionAdapter := database.NewQuestionAdapter(pgClient)
	memberAdapter := database.NewMemberAdapter(pgClient)
	healthRecordAdapter := database.NewHealthRecordAdapter(pgClient)

	var productRepo repositories.ProductRepository = database.NewProductAdapter(pgClient)
	var cachedCatalog *database.CachedProductAdapter
	if cacheProvider != nil {
		cachedCatalog = database.NewCachedProductAdapter(productRepo, cacheProvider, cfg.Analysis.CatalogCacheTTLSeconds)
		productRepo = cachedCatalog
	}

	engine := analysis.NewEngine(rules,
		analysis.WithMaxResults(cfg.Analysis.MaxRecommendations),
		analysis.WithLogger(log.Logger),
	)

	analysisService := services.NewAnalysisService(engine, surveyAdapter, memberAdapter, productRepo, healthRecordAdapter, eventBus, metrics)
	submissionService := services.NewSubmissionService(surveyAdapter, questionAdapter)
	catalogService := services.NewCatalogService(productRepo, searchRepo)
	healthRecordService := services.NewHealthRecordService(healthRecordAdapter)

	var cacheInvalidationService *services.CacheInvalidationService
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)

		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidationService.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start cache invalidation service")
			cacheInvalidationService = nil
		}

		if cfg.Analysis.CatalogWarmIntervalSeconds > 0 {
			warmer := services.NewCacheWarmingService(cachedCatalog, cacheProvider)
			warmer.StartPeriodicWarming(ctx, time.Duration(cfg.Analysis.CatalogWarmIntervalSeconds)*time.Second)
		}
	}

	router := routes.NewRouter(
		handlers.NewSurveyHandler(submissionService),
		handlers.NewAnalysisHandler(analysisService),
		handlers.NewHealthRecordHandler(healthRecordService),
		handlers.NewProductHandler(catalogService),
		cacheMiddleware,
		middleware.ParseAllowedOrigins(cfg.Server.AllowedOrigins),
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	log.Info().Msg("Server stopped")
}
