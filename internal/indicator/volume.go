package indicator

import (
	"fmt"

	"stock-advisor/internal/model"
	"stock-advisor/internal/numutil"

	"github.com/shopspring/decimal"
)

const (
	volumeRecentWindow = 5
	volumeMinBars      = 2 * volumeRecentWindow
)

var (
	volumeStrongRatio = decimal.RequireFromString("2.0")
	volumeHighRatio   = decimal.RequireFromString("1.5")
)

// Volume compares the recent average volume (last 5 bars) against the
// historical average over the whole sequence. An elevated ratio is bullish
// when the price rose over the recent window and bearish when it fell.
func Volume(bars []model.Bar) model.VolumeResult {
	if len(bars) < volumeMinBars {
		return model.VolumeResult{Signal: model.VolumeNeutral, Interpretation: insufficientData}
	}
	sorted := model.SortedByTime(bars)
	vols := volumes(sorted)
	prices := closes(sorted)

	recent := numutil.SMA(vols, volumeRecentWindow)
	historical := numutil.SMA(vols, len(vols))
	if historical.IsZero() {
		return model.VolumeResult{Signal: model.VolumeNeutral, Interpretation: "no volume data"}
	}
	ratio := numutil.Div(recent, historical)

	last := prices[len(prices)-1]
	windowStart := prices[len(prices)-1-volumeRecentWindow]
	priceRising := last.GreaterThan(windowStart)
	priceFalling := last.LessThan(windowStart)

	// Elevated volume on a flat price confirms nothing either way.
	var sig model.VolumeSignal
	switch {
	case ratio.GreaterThanOrEqual(volumeStrongRatio) && priceRising:
		sig = model.VolumeStrongBullish
	case ratio.GreaterThanOrEqual(volumeStrongRatio) && priceFalling:
		sig = model.VolumeStrongBearish
	case ratio.GreaterThanOrEqual(volumeHighRatio) && priceRising:
		sig = model.VolumeBullish
	case ratio.GreaterThanOrEqual(volumeHighRatio) && priceFalling:
		sig = model.VolumeBearish
	default:
		sig = model.VolumeNeutral
	}

	return model.VolumeResult{
		Ratio:          ratio,
		Signal:         sig,
		Interpretation: fmt.Sprintf("recent volume at %sx historical average", ratio.Round(numutil.DisplayScale)),
	}
}
