package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/storefront/config"
	cachemem "github.com/Gunvolt24/storefront/internal/cache/memory"
	"github.com/Gunvolt24/storefront/internal/kafka"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/repo/postgres"
	rest "github.com/Gunvolt24/storefront/internal/transport/http"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/logger"
	"github.com/Gunvolt24/storefront/pkg/metrics"
	"github.com/Gunvolt24/storefront/pkg/money"
	"github.com/Gunvolt24/storefront/pkg/telemetry"
	"github.com/Gunvolt24/storefront/pkg/validate"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// App — собранный сервис каталога: HTTP API, отдельный сервер метрик и поток изменений каталога.
type App struct {
	Logger          ports.Logger
	HTTPServer      *http.Server
	MetricsServer   *http.Server // nil — метрики только на /metrics основного сервера
	CatalogConsumer ports.MessageConsumer
	gracefulTimeout time.Duration
}

// Cleanup — освобождение ресурсов в обратном порядке.
type Cleanup func()

// applyGinMode — неизвестное значение → debug и предупреждение.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — сборка зависимостей сервиса.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd, logger.WithFile(cfg.Logger.File))
	if err != nil {
		return nil, func() {}, err
	}

	metrics.MustRegister()

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		_ = cleanupLogger()
		return nil, func() {}, err
	}
	if cfg.Postgres.AutoMigrate {
		applied, mErr := postgres.Migrate(ctx, pool)
		if mErr != nil {
			pool.Close()
			_ = cleanupLogger()
			return nil, func() {}, mErr
		}
		logg.Infof(ctx, "catalog migrations applied=%d", applied)
	}

	shutdownTrace := func(context.Context) error { return nil }
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
			otelServiceName = cfg.Tracing.ServiceName
		}
	}

	repo := postgres.NewProductRepository(pool)
	catalog := usecase.NewCatalogService(repo, cachemem.NewResultCache(cfg.Cache.Capacity, cfg.Cache.TTL), logg,
		usecase.CatalogLimits{
			Latest:  cfg.Catalog.LatestLimit,
			OnSale:  cfg.Catalog.OnSaleLimit,
			Related: cfg.Catalog.RelatedLimit,
		})
	ingest := usecase.NewProductIngestService(repo, catalog, validate.NewProductValidator(), logg)
	checkout := usecase.NewCheckout(usecase.CheckoutConfig{
		Phone:            cfg.Checkout.Phone,
		ShippingBase:     cfg.Checkout.ShippingBase,
		FreeShippingFrom: cfg.Checkout.FreeShippingFrom,
	}, money.NewFormatter(cfg.Checkout.Locale))

	// главная — самая частая выборка, прогреваем её до старта
	if _, err := catalog.Home(ctx); err != nil {
		logg.Warnf(ctx, "home feed warm-up failed: %v", err)
	}

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	handler := rest.NewHandler(catalog, checkout, logg, cfg.HTTP.HandlerTimeout, cfg.Catalog.PageSize)
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           rest.NewRouter(handler, cfg.HTTP.StaticDir, otelServiceName),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	var metricsSrv *http.Server
	if addr := cfg.Metrics.Addr; addr != "" && addr != cfg.HTTP.Addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout}
	}

	consumer := kafka.NewConsumer(&kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		Topic:          cfg.Kafka.Topic,
		StartOffset:    cfg.Kafka.StartOffset,
		ProcessTimeout: cfg.Kafka.ProcessTimeout,
		RetryInitial:   cfg.Kafka.RetryInitial,
		RetryMax:       cfg.Kafka.RetryMax,
	}, ingest, logg)

	a := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		MetricsServer:   metricsSrv,
		CatalogConsumer: consumer,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	cleanup := func() {
		if err := shutdownTrace(context.Background()); err != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", err)
		}
		if err := consumer.Close(); err != nil {
			logg.Warnf(ctx, "catalog consumer close error: %v", err)
		}
		pool.Close()
		_ = cleanupLogger()
	}
	return a, cleanup, nil
}

// Run — серверы и консьюмер до отмены ctx или первой фоновой ошибки, затем graceful stop.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Infof(ctx, "catalog consumer starting")
		err := a.CatalogConsumer.Run(gctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	})
	for _, srv := range a.servers() {
		g.Go(func() error {
			a.Logger.Infof(ctx, "http server starting addr=%s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		a.shutdown(ctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		a.Logger.Warnf(ctx, "background error: %v", err)
	}
	a.Logger.Infof(ctx, "service stopped")
	return nil
}

func (a *App) servers() []*http.Server {
	out := []*http.Server{a.HTTPServer}
	if a.MetricsServer != nil {
		out = append(out, a.MetricsServer)
	}
	return out
}

func (a *App) shutdown(ctx context.Context) {
	a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	for _, srv := range a.servers() {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "http server shutdown failed addr=%s: %v", srv.Addr, err)
		}
	}
	if err := a.CatalogConsumer.Close(); err != nil {
		a.Logger.Warnf(ctx, "catalog consumer close error: %v", err)
	}
}
