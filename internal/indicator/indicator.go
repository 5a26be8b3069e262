// Package indicator provides five independent technical detectors over a
// bar sequence: RSI, MACD, Bollinger Bands, Moving Average values, and
// volume trend.
//
// Every detector sorts its input chronologically before computing and never
// fails: null, empty, or under-threshold input degrades to a neutral result
// with interpretation "insufficient data".
package indicator

import (
	"stock-advisor/internal/model"

	"github.com/shopspring/decimal"
)

const insufficientData = "insufficient data"

// closes extracts the last-price series from chronologically sorted bars.
func closes(bars []model.Bar) []decimal.Decimal {
	out := make([]decimal.Decimal, len(bars))
	for i, b := range bars {
		out[i] = b.LastPrice
	}
	return out
}

// volumes extracts the volume series from chronologically sorted bars.
func volumes(bars []model.Bar) []decimal.Decimal {
	out := make([]decimal.Decimal, len(bars))
	for i, b := range bars {
		out[i] = decimal.NewFromInt(b.Volume)
	}
	return out
}
