// Package predict implements the second pipeline: a feature extractor over
// the recent bar window and a fixed-weight heuristic scorer producing a
// direction, target price, and confidence. It is deterministic arithmetic,
// not a trained model.
package predict

import (
	"stock-advisor/internal/model"
	"stock-advisor/internal/numutil"

	"github.com/shopspring/decimal"
)

const (
	// MinBars is the minimum overall sequence length for a prediction.
	MinBars = 20

	// featureWindow is the recent-bar window features are computed over.
	featureWindow = 10

	momentumLookback = 5
	volumeEdgeWindow = 3
)

var (
	one   = decimal.NewFromInt(1)
	two   = decimal.NewFromInt(2)
	three = decimal.NewFromInt(3)
)

// ExtractFeatures computes the normalized feature bundle from the most
// recent window of bars. ok is false when the sequence is too short for any
// feature to be meaningful.
func ExtractFeatures(bars []model.Bar) (feats model.Features, ok bool) {
	if len(bars) < MinBars {
		return model.Features{}, false
	}
	sorted := model.SortedByTime(bars)
	window := sorted[len(sorted)-featureWindow:]

	prices := make([]decimal.Decimal, len(window))
	vols := make([]decimal.Decimal, len(window))
	for i, b := range window {
		prices[i] = b.LastPrice
		vols[i] = decimal.NewFromInt(b.Volume)
	}

	last := prices[len(prices)-1]
	first := prices[0]

	feats.CurrentPrice = last
	feats.PriceChange = numutil.Div(last.Sub(first), first)
	feats.Volatility = numutil.StddevReturns(prices)

	momBase := prices[len(prices)-1-momentumLookback]
	feats.Momentum = numutil.Div(last.Sub(momBase), momBase)

	feats.VolumeTrend = volumeTrend(vols)
	feats.RelativeVolume = relativeVolume(vols)
	feats.RSISignal = rsiSignal(prices)

	feats.MACDSignal = numutil.Div(numutil.EMA(prices, 5).Sub(numutil.EMA(prices, 10)), last)

	sma10 := numutil.SMA(prices, featureWindow)
	feats.MASignal = numutil.Div(last.Sub(sma10), sma10)

	return feats, true
}

// volumeTrend compares the mean of the last three volumes against the mean
// of the first three; a zero early average short-circuits to zero.
func volumeTrend(vols []decimal.Decimal) decimal.Decimal {
	lastAvg := numutil.SMA(vols, volumeEdgeWindow)
	firstAvg := numutil.SMA(vols[:volumeEdgeWindow], volumeEdgeWindow)
	if firstAvg.IsZero() {
		return decimal.Zero
	}
	return numutil.Div(lastAvg.Sub(firstAvg), firstAvg)
}

// relativeVolume is the last volume over the window's mean volume; zero
// when the mean is zero.
func relativeVolume(vols []decimal.Decimal) decimal.Decimal {
	mean := numutil.SMA(vols, len(vols))
	if mean.IsZero() {
		return decimal.Zero
	}
	return numutil.Div(vols[len(vols)-1], mean)
}

// rsiSignal maps the window's gain share into [-1, 1]:
// 2*(gains/(gains+losses)) - 1, zero when the price never moved.
func rsiSignal(prices []decimal.Decimal) decimal.Decimal {
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
	total := gains.Add(losses)
	if total.IsZero() {
		return decimal.Zero
	}
	return two.Mul(numutil.Div(gains, total)).Sub(one)
}
