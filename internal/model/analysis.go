package model

import "github.com/shopspring/decimal"

// Signal is a strategy's normalized call.
type Signal string

const (
	SignalBuy     Signal = "BUY"
	SignalSell    Signal = "SELL"
	SignalNeutral Signal = "NEUTRAL"
)

// Recommendation is the aggregated verdict over all strategies.
type Recommendation string

const (
	StrongBuy  Recommendation = "STRONG_BUY"
	Buy        Recommendation = "BUY"
	Hold       Recommendation = "HOLD"
	Sell       Recommendation = "SELL"
	StrongSell Recommendation = "STRONG_SELL"
)

// StrategyResult is one indicator's normalized call with a fixed confidence
// in [0,100].
type StrategyResult struct {
	Name           string          `json:"name"`
	Signal         Signal          `json:"signal"`
	Confidence     decimal.Decimal `json:"confidence"`
	Interpretation string          `json:"interpretation"`
}

// AnalysisResult is the aggregated recommendation for one symbol, computed
// from a single bar sequence. It has no persisted identity; the external
// cache is the only component that retains it across calls.
type AnalysisResult struct {
	Symbol         string           `json:"symbol"`
	Recommendation Recommendation   `json:"recommendation"`
	Confidence     decimal.Decimal  `json:"confidence"`
	Strategies     []StrategyResult `json:"strategies"`
	Notes          string           `json:"notes"`
}

// analysisCacheFloor is the confidence below which results are not worth
// caching.
var analysisCacheFloor = decimal.NewFromInt(30)

// LowConfidence flags results the caching boundary should skip.
func (a AnalysisResult) LowConfidence() bool {
	return a.Confidence.LessThan(analysisCacheFloor)
}
