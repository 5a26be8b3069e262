package cache

import (
	"context"
	"testing"

	"stock-advisor/internal/model"

	"github.com/shopspring/decimal"
)

func TestMemory_AnalysisRoundTrip(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	key := model.CacheKey("SBIN", 25)

	if _, ok := c.GetAnalysis(ctx, key); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	res := model.AnalysisResult{
		Symbol:         "SBIN",
		Recommendation: model.Buy,
		Confidence:     decimal.NewFromInt(62),
	}
	c.PutAnalysis(ctx, key, res)

	got, ok := c.GetAnalysis(ctx, key)
	if !ok {
		t.Fatal("expected hit after put")
	}
	if got.Recommendation != model.Buy || !got.Confidence.Equal(res.Confidence) {
		t.Errorf("got %s/%s, want BUY/62", got.Recommendation, got.Confidence)
	}
}

func TestMemory_SkipsLowConfidenceAnalysis(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	key := model.CacheKey("SBIN", 25)

	c.PutAnalysis(ctx, key, model.AnalysisResult{
		Symbol:         "SBIN",
		Recommendation: model.Hold,
		Confidence:     decimal.NewFromInt(29),
	})
	if _, ok := c.GetAnalysis(ctx, key); ok {
		t.Error("analysis below confidence 30 must not be cached")
	}

	// Exactly 30 is cached.
	c.PutAnalysis(ctx, key, model.AnalysisResult{
		Symbol:     "SBIN",
		Confidence: decimal.NewFromInt(30),
	})
	if _, ok := c.GetAnalysis(ctx, key); !ok {
		t.Error("analysis at confidence 30 should be cached")
	}
}

func TestMemory_SkipsLowConfidencePrediction(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	key := model.CacheKey("SBIN", 25)

	c.PutPrediction(ctx, key, model.PredictionResult{
		Symbol:     "SBIN",
		Direction:  model.DirectionNeutral,
		Confidence: decimal.NewFromInt(39),
	})
	if _, ok := c.GetPrediction(ctx, key); ok {
		t.Error("prediction below confidence 40 must not be cached")
	}

	c.PutPrediction(ctx, key, model.PredictionResult{
		Symbol:     "SBIN",
		Direction:  model.DirectionBullish,
		Confidence: decimal.NewFromInt(40),
	})
	if _, ok := c.GetPrediction(ctx, key); !ok {
		t.Error("prediction at confidence 40 should be cached")
	}
}

func TestMemory_KeysAreDisjointByLength(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	c.PutAnalysis(ctx, model.CacheKey("SBIN", 25), model.AnalysisResult{
		Symbol: "SBIN", Confidence: decimal.NewFromInt(60),
	})
	if _, ok := c.GetAnalysis(ctx, model.CacheKey("SBIN", 26)); ok {
		t.Error("different bar count must be a different key")
	}
}

func TestCacheKeyFormat(t *testing.T) {
	if got := model.CacheKey("RELIANCE", 120); got != "RELIANCE_120" {
		t.Errorf("key = %q, want RELIANCE_120", got)
	}
}
