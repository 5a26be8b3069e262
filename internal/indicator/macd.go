package indicator

import (
	"fmt"

	"stock-advisor/internal/model"
	"stock-advisor/internal/numutil"

	"github.com/shopspring/decimal"
)

const (
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9

	// Enough history for the slow EMA plus a signal-line tail with one
	// extra step for crossover detection.
	macdMinBars = macdSlowPeriod + macdSignalPeriod
)

// MACD computes the MACD line (EMA12 - EMA26), the signal line (EMA9 of the
// MACD series), and the histogram. A crossover signal is reported only when
// the line crossed the signal line on the latest bar.
func MACD(bars []model.Bar) model.MACDResult {
	if len(bars) < macdMinBars {
		return model.MACDResult{Signal: model.MACDNeutral, Interpretation: insufficientData}
	}
	prices := closes(model.SortedByTime(bars))

	// MACD series over the last signalPeriod+1 steps: one extra point so
	// the previous line/signal pair is available for crossover detection.
	n := len(prices)
	series := make([]decimal.Decimal, 0, macdSignalPeriod+1)
	for i := n - macdSignalPeriod - 1; i < n; i++ {
		window := prices[:i+1]
		series = append(series, numutil.EMA(window, macdFastPeriod).Sub(numutil.EMA(window, macdSlowPeriod)))
	}

	line := series[len(series)-1]
	signalLine := numutil.EMA(series, macdSignalPeriod)
	prevLine := series[len(series)-2]
	prevSignal := numutil.EMA(series[:len(series)-1], macdSignalPeriod)
	histogram := line.Sub(signalLine)

	var sig model.MACDSignal
	var text string
	switch {
	case prevLine.LessThanOrEqual(prevSignal) && line.GreaterThan(signalLine):
		sig = model.MACDBullishCrossover
		text = "MACD bullish crossover: line crossed above signal"
	case prevLine.GreaterThanOrEqual(prevSignal) && line.LessThan(signalLine):
		sig = model.MACDBearishCrossover
		text = "MACD bearish crossover: line crossed below signal"
	case line.GreaterThan(signalLine):
		sig = model.MACDBullish
		text = fmt.Sprintf("MACD above signal (histogram %s)", histogram.Round(numutil.DisplayScale))
	case line.LessThan(signalLine):
		sig = model.MACDBearish
		text = fmt.Sprintf("MACD below signal (histogram %s)", histogram.Round(numutil.DisplayScale))
	default:
		sig = model.MACDNeutral
		text = "MACD flat against signal"
	}

	return model.MACDResult{
		Line:           line,
		SignalLine:     signalLine,
		Histogram:      histogram,
		Signal:         sig,
		Interpretation: text,
	}
}
