package model

import "context"

// These interfaces decouple the analysis engine from concrete cache and
// persistence implementations (Redis, SQLite, in-memory). The engine never
// reaches into a cache or store directly; adapters are injected by the
// caller.

// ResultCache memoizes computed results keyed by CacheKey(symbol, barCount).
// Put implementations enforce the skip rule: low-confidence results
// (AnalysisResult.LowConfidence, PredictionResult.LowConfidence) are not
// persisted.
type ResultCache interface {
	// GetAnalysis returns the cached analysis for key, if present.
	GetAnalysis(ctx context.Context, key string) (*AnalysisResult, bool)

	// PutAnalysis stores an analysis result unless it is low-confidence.
	PutAnalysis(ctx context.Context, key string, res AnalysisResult)

	// GetPrediction returns the cached prediction for key, if present.
	GetPrediction(ctx context.Context, key string) (*PredictionResult, bool)

	// PutPrediction stores a prediction result unless it is low-confidence.
	PutPrediction(ctx context.Context, key string, res PredictionResult)

	// Close releases underlying resources.
	Close() error
}

// Recorder persists an append-only history of produced results.
// Recording is best-effort: failures are logged by callers, never surfaced.
type Recorder interface {
	// RecordAnalysis appends one analysis result row.
	RecordAnalysis(ctx context.Context, res AnalysisResult, barCount int) error

	// RecordPrediction appends one prediction result row.
	RecordPrediction(ctx context.Context, res PredictionResult, barCount int) error

	// Close releases underlying resources.
	Close() error
}
