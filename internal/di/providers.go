package di

import (
	"fmt"
	"time"

	"QuantLab/internal/domain/repository"
	"QuantLab/internal/domain/service"
	"QuantLab/internal/handler/api"
	mid "QuantLab/internal/middleware"
	internalrepo "QuantLab/internal/repository"
	icache "QuantLab/internal/service/cache"
	"QuantLab/internal/services/portfolio"
	"QuantLab/internal/services/pricing"
	"QuantLab/internal/services/risk"
	"QuantLab/internal/services/signal"
	"QuantLab/internal/services/simulate"
	"QuantLab/internal/services/vol"
	"QuantLab/internal/usecase"
	"QuantLab/pkg/cache"
	"QuantLab/pkg/config"
	xhttp "QuantLab/pkg/http"
	applogger "QuantLab/pkg/logger"
	"QuantLab/pkg/metrics"
	"QuantLab/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Logging.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Logging.Format
	if format == "" {
		format = "console"
	}
	output := cfg.Logging.Output
	if output == "" {
		output = "stdout"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: output})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the result cache configured by cache.backend.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		opts := []cache.MemoryOption{}
		if cfg.Cache.MaxSize > 0 {
			opts = append(opts, cache.WithMemoryMaxSize(cfg.Cache.MaxSize))
		}
		return cache.NewMemoryCache(opts...), nil
	case "redis":
		return redisCache(cfg)
	case "layered":
		rc, err := redisCache(cfg)
		if err != nil {
			return nil, err
		}
		opts := []cache.LayeredOption{}
		if cfg.Cache.MaxSize > 0 {
			opts = append(opts, cache.WithLayeredMemorySize(cfg.Cache.MaxSize))
		}
		return cache.NewLayeredCache(rc, opts...), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func redisCache(cfg *config.Config) (*cache.RedisCache, error) {
	opts := []cache.RedisOption{
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	}
	if cfg.Cache.Redis.Port > 0 {
		opts = append(opts, cache.WithRedisPort(cfg.Cache.Redis.Port))
	}
	if cfg.Cache.Redis.Password != "" {
		opts = append(opts, cache.WithRedisPassword(cfg.Cache.Redis.Password))
	}
	if cfg.Cache.Redis.Prefix != "" {
		opts = append(opts, cache.WithRedisPrefix(cfg.Cache.Redis.Prefix))
	}
	return cache.NewRedisCache(opts...)
}

// ProvidePriceStore creates the deterministic synthetic price store.
func ProvidePriceStore(cfg *config.Config) repository.PriceStore {
	seed := cfg.Data.Seed
	if seed == 0 {
		seed = 1
	}
	return internalrepo.NewStaticPriceStore(seed)
}

// ProvideSimulator creates the path simulation engine.
func ProvideSimulator() service.PathSimulator { return simulate.New() }

// ProvideRiskAnalyzer creates the VaR/CVaR engine.
func ProvideRiskAnalyzer() service.RiskAnalyzer { return risk.New() }

// ProvideForecaster creates the GARCH forecaster.
func ProvideForecaster() service.VolatilityForecaster { return vol.New() }

// ProvideAllocator creates the Merton allocation engine.
func ProvideAllocator() service.Allocator { return portfolio.New() }

// ProvideSignalGenerator creates the pairs-trading signal engine.
func ProvideSignalGenerator() service.SignalGenerator { return signal.New() }

// ProvideLab creates the central computation service.
func ProvideLab(
	store repository.PriceStore,
	simulator service.PathSimulator,
	riskAnalyzer service.RiskAnalyzer,
	forecaster service.VolatilityForecaster,
	allocator service.Allocator,
	signals service.SignalGenerator,
	cacheSvc cache.Service,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.Lab {
	ttl := cfg.Cache.TTL.Std()
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return usecase.NewLab(
		store,
		pricing.New(),
		simulator,
		riskAnalyzer,
		forecaster,
		allocator,
		signals,
		cacheSvc,
		m,
		log,
		ttl,
	)
}

// ProvideCoalescer creates the request coalescer.
func ProvideCoalescer(m repository.Metrics, cfg *config.Config) *mid.Coalescer {
	opts := []mid.CoalescerOption{}
	if cfg.Compute.CoalesceWindow > 0 {
		opts = append(opts, mid.WithWindow(cfg.Compute.CoalesceWindow.Std()))
	}
	return mid.NewCoalescer(m, opts...)
}

// ProvideHandler creates the HTTP handler with a response cache attached.
func ProvideHandler(lab *usecase.Lab, coalescer *mid.Coalescer, log *applogger.Logger) xhttp.Handler {
	h := api.NewLabHandler(lab, coalescer, log)
	h.SetCache(icache.NewTTLCache())
	return h
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	cacheSvc cache.Service,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, log, cacheSvc, handler)
}
