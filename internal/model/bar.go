// Package model defines the core data types shared across the analysis
// engine: price bars, indicator results, strategy results, and the final
// analysis and prediction value objects.
//
// All monetary and percentage values use shopspring decimals so that
// rounding behavior is reproducible bit-for-bit across runs.
package model

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one immutable price/volume snapshot for a single symbol.
// Volume is optional at the input boundary and defaults to 0.
type Bar struct {
	Symbol        string          `json:"symbol"`
	CompanyName   string          `json:"company_name,omitempty"`
	LastPrice     decimal.Decimal `json:"last_price"`
	Change        decimal.Decimal `json:"change"`
	PercentChange decimal.Decimal `json:"percent_change"`
	Open          decimal.Decimal `json:"open"`
	DayHigh       decimal.Decimal `json:"day_high"`
	DayLow        decimal.Decimal `json:"day_low"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	Volume        int64           `json:"volume"`
	Turnover      decimal.Decimal `json:"turnover"`
	TS            time.Time       `json:"ts"`
}

// SortedByTime returns a copy of bars ordered by non-decreasing timestamp.
// Callers may pass unsorted input; every consumer sorts before computing.
func SortedByTime(bars []Bar) []Bar {
	out := make([]Bar, len(bars))
	copy(out, bars)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TS.Before(out[j].TS)
	})
	return out
}

// CacheKey builds the memoization key for a result computed from barCount
// bars of one symbol: "SYMBOL_<count>".
func CacheKey(symbol string, barCount int) string {
	return symbol + "_" + strconv.Itoa(barCount)
}
