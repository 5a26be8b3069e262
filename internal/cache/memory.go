// Package cache provides ResultCache adapters: a Redis-backed cache for
// deployments and an in-memory cache for tests and API-only mode.
//
// Both adapters enforce the skip rule at Put time: analysis results with
// confidence below 30 and predictions below 40 are never stored, so a
// low-confidence verdict is always recomputed on the next request.
package cache

import (
	"context"
	"sync"

	"stock-advisor/internal/model"
)

// Memory is a map-backed ResultCache. Safe for concurrent use.
type Memory struct {
	mu          sync.RWMutex
	analyses    map[string]model.AnalysisResult
	predictions map[string]model.PredictionResult
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		analyses:    make(map[string]model.AnalysisResult),
		predictions: make(map[string]model.PredictionResult),
	}
}

func (m *Memory) GetAnalysis(_ context.Context, key string) (*model.AnalysisResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res, ok := m.analyses[key]
	if !ok {
		return nil, false
	}
	return &res, true
}

func (m *Memory) PutAnalysis(_ context.Context, key string, res model.AnalysisResult) {
	if res.LowConfidence() {
		return
	}
	m.mu.Lock()
	m.analyses[key] = res
	m.mu.Unlock()
}

func (m *Memory) GetPrediction(_ context.Context, key string) (*model.PredictionResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res, ok := m.predictions[key]
	if !ok {
		return nil, false
	}
	return &res, true
}

func (m *Memory) PutPrediction(_ context.Context, key string, res model.PredictionResult) {
	if res.LowConfidence() {
		return
	}
	m.mu.Lock()
	m.predictions[key] = res
	m.mu.Unlock()
}

func (m *Memory) Close() error { return nil }
