package indicator

import (
	"fmt"

	"stock-advisor/internal/model"
	"stock-advisor/internal/numutil"
)

const (
	maShortPeriod = 20
	maLongPeriod  = 50
	maMinBars     = maShortPeriod
)

// MovingAverage reports SMA(20) and SMA(50) as raw values; the directional
// call is derived from the price/SMA alignment by the strategy evaluator.
// With fewer than 50 bars the long SMA degrades to the mean of the
// available series.
func MovingAverage(bars []model.Bar) model.MAResult {
	if len(bars) < maMinBars {
		return model.MAResult{Interpretation: insufficientData}
	}
	prices := closes(model.SortedByTime(bars))

	sma20 := numutil.SMA(prices, maShortPeriod)
	sma50 := numutil.SMA(prices, maLongPeriod)
	price := prices[len(prices)-1]

	return model.MAResult{
		SMA20: sma20,
		SMA50: sma50,
		Price: price,
		Interpretation: fmt.Sprintf("price %s, SMA20 %s, SMA50 %s",
			price.Round(numutil.DisplayScale), sma20.Round(numutil.DisplayScale), sma50.Round(numutil.DisplayScale)),
	}
}
