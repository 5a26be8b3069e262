package indicator

import (
	"fmt"

	"stock-advisor/internal/model"
	"stock-advisor/internal/numutil"

	"github.com/shopspring/decimal"
)

const (
	rsiPeriod  = 14
	rsiMinBars = rsiPeriod + 1
)

var (
	rsiOversoldLevel   = decimal.NewFromInt(30)
	rsiOverboughtLevel = decimal.NewFromInt(70)
	rsiMidpoint        = decimal.NewFromInt(50)
	one                = decimal.NewFromInt(1)
)

// RSI computes the Relative Strength Index from the cumulative gain/loss
// ratio over the full window. The value is always within [0,100].
func RSI(bars []model.Bar) model.RSIResult {
	if len(bars) < rsiMinBars {
		return model.RSIResult{Signal: model.RSINeutral, Interpretation: insufficientData}
	}
	prices := closes(model.SortedByTime(bars))

	gains := decimal.Zero
	losses := decimal.Zero
	for i := 1; i < len(prices); i++ {
		delta := prices[i].Sub(prices[i-1])
		if delta.IsPositive() {
			gains = gains.Add(delta)
		} else {
			losses = losses.Sub(delta)
		}
	}

	var value decimal.Decimal
	switch {
	case gains.IsZero() && losses.IsZero():
		// No price movement at all: neutral midpoint.
		value = rsiMidpoint
	case losses.IsZero():
		value = numutil.Hundred
	default:
		rs := numutil.Div(gains, losses)
		value = numutil.Hundred.Sub(numutil.Div(numutil.Hundred, one.Add(rs)))
	}

	signal := model.RSINeutral
	text := fmt.Sprintf("RSI %s: neutral", value.Round(numutil.DisplayScale))
	switch {
	case value.LessThanOrEqual(rsiOversoldLevel):
		signal = model.RSIOversold
		text = fmt.Sprintf("RSI %s: oversold", value.Round(numutil.DisplayScale))
	case value.GreaterThanOrEqual(rsiOverboughtLevel):
		signal = model.RSIOverbought
		text = fmt.Sprintf("RSI %s: overbought", value.Round(numutil.DisplayScale))
	}

	return model.RSIResult{Value: value, Signal: signal, Interpretation: text}
}
