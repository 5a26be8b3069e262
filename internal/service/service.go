// Package service wires the analysis and prediction engines to the result
// cache, the recorder, and metrics. Handlers call this layer only.
package service

import (
	"context"
	"log/slog"
	"time"

	"stock-advisor/internal/analysis"
	"stock-advisor/internal/logger"
	"stock-advisor/internal/metrics"
	"stock-advisor/internal/model"
	"stock-advisor/internal/predict"
)

// Service runs both pipelines with caching and best-effort recording.
type Service struct {
	analyzer  *analysis.Analyzer
	predictor *predict.Predictor
	cache     model.ResultCache
	recorder  model.Recorder
	metrics   *metrics.Metrics
}

// New assembles a Service. recorder may be nil to disable persistence.
func New(analyzer *analysis.Analyzer, predictor *predict.Predictor, cache model.ResultCache, recorder model.Recorder, m *metrics.Metrics) *Service {
	return &Service{
		analyzer:  analyzer,
		predictor: predictor,
		cache:     cache,
		recorder:  recorder,
		metrics:   m,
	}
}

// Analyze returns the technical analysis for symbol over bars, serving from
// cache when the same symbol and bar count were already computed.
func (s *Service) Analyze(ctx context.Context, symbol string, bars []model.Bar) model.AnalysisResult {
	key := model.CacheKey(symbol, len(bars))

	if cached, ok := s.cache.GetAnalysis(ctx, key); ok {
		s.metrics.CacheHits.WithLabelValues("analysis").Inc()
		slog.Debug("analysis cache hit", append(logger.TraceAttrs(ctx), "key", key)...)
		return *cached
	}
	s.metrics.CacheMisses.WithLabelValues("analysis").Inc()

	start := time.Now()
	res := s.analyzer.Analyze(symbol, bars)
	s.metrics.AnalyzeDur.Observe(time.Since(start).Seconds())
	s.metrics.AnalysesTotal.Inc()

	if res.LowConfidence() {
		s.metrics.CacheSkipped.WithLabelValues("analysis").Inc()
	}
	s.cache.PutAnalysis(ctx, key, res)

	if s.recorder != nil {
		if err := s.recorder.RecordAnalysis(ctx, res, len(bars)); err != nil {
			s.metrics.RecordErrors.Inc()
			slog.Error("record analysis failed", append(logger.TraceAttrs(ctx), "symbol", symbol, "error", err)...)
		}
	}

	slog.Info("analysis computed", append(logger.TraceAttrs(ctx),
		"symbol", symbol,
		"bars", len(bars),
		"recommendation", string(res.Recommendation),
		"confidence", res.Confidence.Round(2).String())...)
	return res
}

// Predict returns the heuristic price prediction for symbol over bars,
// serving from cache when available.
func (s *Service) Predict(ctx context.Context, symbol string, bars []model.Bar) model.PredictionResult {
	key := model.CacheKey(symbol, len(bars))

	if cached, ok := s.cache.GetPrediction(ctx, key); ok {
		s.metrics.CacheHits.WithLabelValues("prediction").Inc()
		slog.Debug("prediction cache hit", append(logger.TraceAttrs(ctx), "key", key)...)
		return *cached
	}
	s.metrics.CacheMisses.WithLabelValues("prediction").Inc()

	start := time.Now()
	res := s.predictor.Predict(symbol, bars)
	s.metrics.PredictDur.Observe(time.Since(start).Seconds())
	s.metrics.PredictionsTotal.Inc()

	if res.LowConfidence() {
		s.metrics.CacheSkipped.WithLabelValues("prediction").Inc()
	}
	s.cache.PutPrediction(ctx, key, res)

	if s.recorder != nil {
		if err := s.recorder.RecordPrediction(ctx, res, len(bars)); err != nil {
			s.metrics.RecordErrors.Inc()
			slog.Error("record prediction failed", append(logger.TraceAttrs(ctx), "symbol", symbol, "error", err)...)
		}
	}

	slog.Info("prediction computed", append(logger.TraceAttrs(ctx),
		"symbol", symbol,
		"bars", len(bars),
		"direction", string(res.Direction),
		"confidence", res.Confidence.Round(2).String())...)
	return res
}
