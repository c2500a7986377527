package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/pricescout/backend/config"
	httpDelivery "github.com/pricescout/backend/internal/delivery/http"
	"github.com/pricescout/backend/internal/domain"
	"github.com/pricescout/backend/internal/infrastructure/cache"
	"github.com/pricescout/backend/internal/infrastructure/retailer"
	"github.com/pricescout/backend/internal/logger"
	"github.com/pricescout/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("starting pricescout backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	// Initialize infrastructure dependencies
	resultCache, err := buildCache(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize cache", zap.Error(err))
	}

	adapters := buildAdapters(cfg, zlog)
	if len(adapters) == 0 {
		zlog.Fatal("no retailer adapters enabled")
	}
	for _, a := range adapters {
		zlog.Info("retailer adapter enabled", zap.String("source", a.Name()))
	}

	validator, err := usecase.NewIdentifierValidator(cfg.Validation.BrandPatterns)
	if err != nil {
		zlog.Fatal("invalid brand patterns", zap.Error(err))
	}

	// Initialize usecase layer
	aggregator := usecase.NewAggregatorService(
		adapters,
		resultCache,
		validator,
		usecase.AggregatorConfig{
			CacheTTL:    cfg.Cache.TTL,
			FanOutLimit: cfg.Scraper.FanOutLimit,
		},
		zlog,
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(aggregator)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, zlog)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

// buildCache selects the result cache backend from configuration.
func buildCache(cfg *config.Config, zlog *zap.Logger) (domain.CacheRepository, error) {
	if cfg.Cache.Type == "redis" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	}
	return cache.NewMemoryCache(), nil
}

// buildAdapters constructs the enabled retailer adapters in priority order.
// Each adapter gets its own fetcher so one slow site cannot starve the rest.
func buildAdapters(cfg *config.Config, zlog *zap.Logger) []domain.SourceAdapter {
	fetcherCfg := retailer.FetcherConfig{
		UserAgent:         cfg.Scraper.UserAgent,
		Timeout:           cfg.Scraper.Timeout,
		RequestsPerSecond: cfg.Scraper.RequestsPerSecond,
		MaxRetries:        cfg.Scraper.MaxRetries,
	}
	newFetcher := func() *retailer.Fetcher {
		return retailer.NewFetcher(fetcherCfg, zlog)
	}

	var adapters []domain.SourceAdapter
	if cfg.Retailers.Ferguson.Enabled {
		adapters = append(adapters, retailer.NewFerguson(newFetcher(), cfg.Retailers.Ferguson.BaseURL, zlog))
	}
	if cfg.Retailers.HomeDepot.Enabled {
		adapters = append(adapters, retailer.NewHomeDepot(newFetcher(), cfg.Retailers.HomeDepot.BaseURL, zlog))
	}
	if cfg.Retailers.Lowes.Enabled {
		adapters = append(adapters, retailer.NewLowes(newFetcher(), cfg.Retailers.Lowes.BaseURL, zlog))
	}
	if cfg.Retailers.SupplyCom.Enabled {
		adapters = append(adapters, retailer.NewSupply(newFetcher(), cfg.Retailers.SupplyCom.BaseURL, zlog))
	}
	if cfg.Retailers.BuildCom.Enabled {
		adapters = append(adapters, retailer.NewBuild(newFetcher(), cfg.Retailers.BuildCom.BaseURL, zlog))
	}
	return adapters
}
