package indicator

import (
	"fmt"

	"stock-advisor/internal/model"
	"stock-advisor/internal/numutil"

	"github.com/shopspring/decimal"
)

const bollingerPeriod = 20

var bollingerK = decimal.NewFromInt(2)

// Bollinger computes SMA(20) bands at 2 standard deviations of the last 20
// prices. Touching the lower band reads as oversold, the upper as
// overbought.
func Bollinger(bars []model.Bar) model.BollingerResult {
	if len(bars) < bollingerPeriod {
		return model.BollingerResult{Signal: model.BollingerNeutral, Interpretation: insufficientData}
	}
	prices := closes(model.SortedByTime(bars))

	window := prices[len(prices)-bollingerPeriod:]
	middle := numutil.SMA(window, bollingerPeriod)
	band := numutil.StddevValues(window).Mul(bollingerK)
	upper := middle.Add(band)
	lower := middle.Sub(band)
	price := prices[len(prices)-1]

	var sig model.BollingerSignal
	var text string
	switch {
	case price.LessThanOrEqual(lower):
		sig = model.BollingerOversold
		text = fmt.Sprintf("price %s at or below lower band %s: oversold",
			price.Round(numutil.DisplayScale), lower.Round(numutil.DisplayScale))
	case price.GreaterThanOrEqual(upper):
		sig = model.BollingerOverbought
		text = fmt.Sprintf("price %s at or above upper band %s: overbought",
			price.Round(numutil.DisplayScale), upper.Round(numutil.DisplayScale))
	default:
		sig = model.BollingerNeutral
		text = fmt.Sprintf("price %s within bands [%s, %s]",
			price.Round(numutil.DisplayScale), lower.Round(numutil.DisplayScale), upper.Round(numutil.DisplayScale))
	}

	return model.BollingerResult{
		Upper:          upper,
		Middle:         middle,
		Lower:          lower,
		Price:          price,
		Signal:         sig,
		Interpretation: text,
	}
}
