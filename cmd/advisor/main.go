package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"stock-advisor/config"
	"stock-advisor/internal/analysis"
	"stock-advisor/internal/api"
	"stock-advisor/internal/cache"
	"stock-advisor/internal/feed"
	"stock-advisor/internal/history"
	"stock-advisor/internal/logger"
	"stock-advisor/internal/metrics"
	"stock-advisor/internal/model"
	"stock-advisor/internal/predict"
	"stock-advisor/internal/service"
	sqlitestore "stock-advisor/internal/store/sqlite"
	"stock-advisor/internal/strategy"
	"stock-advisor/pkg/quoteapi"
)

func main() {
	logger.Init("advisor", slog.LevelInfo)
	slog.Info("starting")

	cfg := config.Load()
	symbols := cfg.ParseSymbols()

	// ---- Metrics & health ----
	prom := metrics.New()
	health := metrics.NewHealthStatus()
	health.SetSymbols(symbols)
	metricsSrv := metrics.NewServer(cfg.MetricsAddr, health)
	metricsSrv.Start()

	// ---- Graceful shutdown ----
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// ---- Result cache: Redis, falling back to in-memory ----
	var resultCache model.ResultCache
	redisCache, err := cache.NewRedis(cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		TTL:      cfg.CacheTTL(),
	})
	if err != nil {
		slog.Warn("redis unavailable, using in-memory cache", "error", err)
		health.SetRedisConnected(false)
		resultCache = cache.NewMemory()
	} else {
		health.SetRedisConnected(true)
		resultCache = redisCache
	}
	defer resultCache.Close()

	// ---- SQLite recorder (best-effort persistence) ----
	var recorder model.Recorder
	if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
		slog.Warn("sqlite unavailable, results will not be persisted", "error", err)
		health.SetSQLiteOK(false)
	} else if sqlRecorder, err := sqlitestore.New(sqlitestore.RecorderConfig{DBPath: cfg.SQLitePath}); err != nil {
		slog.Warn("sqlite unavailable, results will not be persisted", "error", err)
		health.SetSQLiteOK(false)
	} else {
		health.SetSQLiteOK(true)
		recorder = sqlRecorder
		defer sqlRecorder.Close()
	}

	// ---- Bar history ----
	store := history.NewStore(cfg.HistoryCapacity)

	// ---- Live bar feed ----
	if cfg.FeedURL != "" {
		ing, err := feed.New(feed.Config{URL: cfg.FeedURL, Symbols: symbols}, store)
		if err != nil {
			slog.Error("invalid feed url", "url", cfg.FeedURL, "error", err)
			os.Exit(1)
		}
		ing.OnBar = func() {
			prom.FeedBarsTotal.Inc()
			health.SetLastBarTime(time.Now())
		}
		ing.OnReconnect = func() {
			prom.FeedReconnects.Inc()
			health.SetFeedConnected(false)
		}
		ing.OnDropped = func() { prom.FeedDropped.Inc() }

		go func() {
			health.SetFeedConnected(true)
			if err := ing.Start(ctx); err != nil {
				slog.Error("feed stopped", "error", err)
			}
			health.SetFeedConnected(false)
		}()
	}

	// ---- Vendor quote polling ----
	if cfg.QuoteAPIEnabled() && len(symbols) > 0 {
		client := quoteapi.New(quoteapi.Config{
			APIKey:     cfg.QuoteAPIKey,
			ClientCode: cfg.QuoteClientCode,
			Password:   cfg.QuotePassword,
			TOTPSecret: cfg.QuoteTOTPSecret,
		})
		go pollQuotes(ctx, client, store, symbols,
			time.Duration(cfg.QuotePollSeconds)*time.Second, prom, health)
	}

	// ---- Engine & API ----
	svc := service.New(
		analysis.New(strategy.NewEvaluator()),
		predict.NewPredictor(),
		resultCache,
		recorder,
		prom,
	)
	apiSrv := api.NewServer(cfg.HTTPAddr, svc, store)
	go func() {
		if err := apiSrv.Start(); err != nil {
			slog.Error("api server failed", "error", err)
			cancel()
		}
	}()

	select {
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	apiSrv.Stop(shutdownCtx)
	metricsSrv.Stop(shutdownCtx)
	slog.Info("stopped")
}

// pollQuotes logs in to the vendor API and appends one quote bar per symbol
// every interval. Session errors trigger a re-login on the next tick.
func pollQuotes(ctx context.Context, client *quoteapi.Client, store *history.Store,
	symbols []string, interval time.Duration, prom *metrics.Metrics, health *metrics.HealthStatus) {

	loggedIn := false
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !loggedIn {
			if err := client.Login(ctx); err != nil {
				slog.Warn("quote api login failed", "error", err)
				continue
			}
			loggedIn = true
			slog.Info("quote api session opened")
		}

		for _, symbol := range symbols {
			bar, err := client.Quote(ctx, symbol)
			if err != nil {
				slog.Warn("quote fetch failed", "symbol", symbol, "error", err)
				prom.FeedDropped.Inc()
				// Refresh the session once; if that fails, re-login next tick.
				if rerr := client.RefreshSession(ctx); rerr != nil {
					loggedIn = false
				}
				continue
			}
			store.Append(bar)
			prom.FeedBarsTotal.Inc()
			health.SetLastBarTime(bar.TS)
		}
	}
}
