package predict

import (
	"fmt"

	"stock-advisor/internal/model"
	"stock-advisor/internal/numutil"

	"github.com/shopspring/decimal"
)

// Fixed scoring weights. These are contracts, not tunables.
var (
	weightPriceChange = decimal.RequireFromString("0.3")
	weightMomentum    = decimal.RequireFromString("0.25")
	weightVolumeTrend = decimal.RequireFromString("0.15")
	weightSignalAvg   = decimal.RequireFromString("0.3")

	directionThreshold = decimal.RequireFromString("0.05")

	lowVolatility    = decimal.RequireFromString("0.02")
	highVolatility   = decimal.RequireFromString("0.05")
	relVolumeLow     = decimal.RequireFromString("0.5")
	relVolumeHigh    = decimal.RequireFromString("2.0")
	strongSignalBar  = decimal.RequireFromString("0.3")
	baseConfidence   = decimal.NewFromInt(50)
	confidenceCap    = decimal.NewFromInt(85)
	lowVolBonus      = decimal.NewFromInt(15)
	highVolPenalty   = decimal.NewFromInt(10)
	normalVolBonus   = decimal.NewFromInt(10)
	strongSignalStep = decimal.NewFromInt(8)
)

// Predictor derives a direction and target price from the extracted
// features. Stateless and safe for concurrent use.
type Predictor struct{}

// NewPredictor creates a heuristic predictor.
func NewPredictor() *Predictor {
	return &Predictor{}
}

// Predict scores the bar sequence. It never returns an error: short input
// degrades to a neutral zero-confidence result and any internal fault is
// converted into a neutral result carrying the fault message.
func (p *Predictor) Predict(symbol string, bars []model.Bar) (res model.PredictionResult) {
	defer func() {
		if r := recover(); r != nil {
			res = model.PredictionResult{
				Symbol:         symbol,
				Direction:      model.DirectionNeutral,
				TargetPrice:    decimal.Zero,
				Confidence:     decimal.Zero,
				Interpretation: fmt.Sprintf("error: %v", r),
			}
		}
	}()

	feats, ok := ExtractFeatures(bars)
	if !ok {
		return model.PredictionResult{
			Symbol:         symbol,
			Direction:      model.DirectionNeutral,
			TargetPrice:    decimal.Zero,
			Confidence:     decimal.Zero,
			Interpretation: "insufficient data",
		}
	}

	signalAvg := numutil.Div(feats.RSISignal.Add(feats.MACDSignal).Add(feats.MASignal), three)
	score := weightPriceChange.Mul(feats.PriceChange).
		Add(weightMomentum.Mul(feats.Momentum)).
		Add(weightVolumeTrend.Mul(feats.VolumeTrend)).
		Add(weightSignalAvg.Mul(signalAvg))

	res = model.PredictionResult{Symbol: symbol, Confidence: confidence(feats)}
	switch {
	case score.GreaterThan(directionThreshold):
		res.Direction = model.DirectionBullish
		res.TargetPrice = feats.CurrentPrice.Mul(one.Add(score))
	case score.LessThan(directionThreshold.Neg()):
		res.Direction = model.DirectionBearish
		res.TargetPrice = feats.CurrentPrice.Mul(one.Add(score))
	default:
		res.Direction = model.DirectionNeutral
		res.TargetPrice = feats.CurrentPrice
	}
	res.Interpretation = fmt.Sprintf("%s: score %s, target %s",
		res.Direction, score.Round(numutil.Scale), res.TargetPrice.Round(numutil.DisplayScale))
	return res
}

// confidence starts at 50 and applies the fixed volatility, volume, and
// signal-strength adjustments, clamped to [0, 85].
func confidence(feats model.Features) decimal.Decimal {
	conf := baseConfidence

	if feats.Volatility.LessThan(lowVolatility) {
		conf = conf.Add(lowVolBonus)
	}
	if feats.Volatility.GreaterThan(highVolatility) {
		conf = conf.Sub(highVolPenalty)
	}
	if feats.RelativeVolume.GreaterThan(relVolumeLow) && feats.RelativeVolume.LessThan(relVolumeHigh) {
		conf = conf.Add(normalVolBonus)
	}
	for _, sig := range []decimal.Decimal{feats.RSISignal, feats.MACDSignal, feats.MASignal} {
		if sig.Abs().GreaterThan(strongSignalBar) {
			conf = conf.Add(strongSignalStep)
		}
	}

	if conf.GreaterThan(confidenceCap) {
		conf = confidenceCap
	}
	if conf.IsNegative() {
		conf = decimal.Zero
	}
	return conf
}
