package model

import "github.com/shopspring/decimal"

// Direction is the predicted price direction.
type Direction string

const (
	DirectionBullish Direction = "BULLISH"
	DirectionBearish Direction = "BEARISH"
	DirectionNeutral Direction = "NEUTRAL"
)

// Features is the transient scalar bundle feeding the heuristic predictor.
// All values default to zero.
type Features struct {
	CurrentPrice   decimal.Decimal `json:"current_price"`
	PriceChange    decimal.Decimal `json:"price_change"`
	Volatility     decimal.Decimal `json:"volatility"`
	Momentum       decimal.Decimal `json:"momentum"`
	VolumeTrend    decimal.Decimal `json:"volume_trend"`
	RelativeVolume decimal.Decimal `json:"relative_volume"`
	RSISignal      decimal.Decimal `json:"rsi_signal"`
	MACDSignal     decimal.Decimal `json:"macd_signal"`
	MASignal       decimal.Decimal `json:"ma_signal"`
}

// PredictionResult is the heuristic predictor's output: a direction, a
// target price, and a confidence in [0,85].
type PredictionResult struct {
	Symbol         string          `json:"symbol"`
	Direction      Direction       `json:"direction"`
	TargetPrice    decimal.Decimal `json:"target_price"`
	Confidence     decimal.Decimal `json:"confidence"`
	Interpretation string          `json:"interpretation"`
}

var predictionCacheFloor = decimal.NewFromInt(40)

// LowConfidence flags predictions the caching boundary should skip.
func (p PredictionResult) LowConfidence() bool {
	return p.Confidence.LessThan(predictionCacheFloor)
}
