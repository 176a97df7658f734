package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/codewithmirza/datanyx/config"
	httpLayer "github.com/codewithmirza/datanyx/http"
	"github.com/codewithmirza/datanyx/logger"
	"github.com/codewithmirza/datanyx/repository"
	"github.com/codewithmirza/datanyx/scheduler"
	"github.com/codewithmirza/datanyx/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log.Info().Msg("Starting datanyx")

	calcRepo, closeRepo, err := openCalculationRepository(cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	cache, closeCache := openCache(cfg, log)
	defer closeCache()

	peers, err := repository.DefaultPeerLoans()
	if err != nil {
		return err
	}

	var llm service.LLMClient
	if cfg.GeminiAPIKey != "" {
		client, err := service.NewGenAIClient(cmd.Context(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AdvisorTimeout)
		if err != nil {
			log.Warn().Err(err).Msg("AI client unavailable, using fallback recommendations")
		} else {
			llm = client
		}
	} else {
		log.Info().Msg("GEMINI_API_KEY not set, using fallback recommendations")
	}

	clock := service.Clock(time.Now)
	metricsService := service.NewMetricsService(calcRepo, peers, clock, log)
	loanService := service.NewLoanService(log)
	advisorService := service.NewAdvisorService(metricsService, llm, cache, cfg.AdviceCacheTTL, log)

	sched := scheduler.New(log)
	retention := service.NewRetentionJob(calcRepo, cfg.Retention(), clock, log)
	if err := sched.AddJob(cfg.RetentionSchedule, retention); err != nil {
		return fmt.Errorf("scheduling %s: %w", retention.Name(), err)
	}
	sched.Start()
	defer sched.Stop()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Metrics:         httpLayer.NewMetricsHandler(metricsService, log),
		Loan:            httpLayer.NewLoanHandler(loanService, clock, log),
		Recommendations: httpLayer.NewRecommendationHandler(advisorService, log),
	}, rateLimiter, log.With().Str("component", "http").Logger())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Port).Msg("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("starting server: %w", err)
	case <-quit:
		log.Info().Msg("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}

func openCalculationRepository(cfg *config.Config, log zerolog.Logger) (repository.CalculationRepository, func(), error) {
	if cfg.Storage != config.StorageSQLite {
		return repository.NewCalculationRepositoryMemory(), func() {}, nil
	}

	repo, err := repository.OpenCalculationRepositorySQLite(cfg.DatabasePath())
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("path", cfg.DatabasePath()).Msg("Using SQLite calculation store")

	return repo, func() {
		if err := repo.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close calculation store")
		}
	}, nil
}

// openCache prefers Redis and falls back to the in-process cache when Redis
// is not configured or not reachable.
func openCache(cfg *config.Config, log zerolog.Logger) (repository.CacheRepository, func()) {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryCache(), func() {}
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr)
	if err := redisCache.Ping(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, using in-memory cache")
		_ = redisCache.Close()
		return repository.NewMemoryCache(), func() {}
	}

	log.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis advice cache")
	return redisCache, func() { _ = redisCache.Close() }
}
