// Package strategy normalizes each indicator's typed result into a
// BUY/SELL/NEUTRAL call with a fixed confidence value.
//
// The confidence constants form a contract with downstream aggregation and
// must not be tuned.
package strategy

import (
	"stock-advisor/internal/indicator"
	"stock-advisor/internal/model"

	"github.com/shopspring/decimal"
)

// Strategy names, in the order they are evaluated.
const (
	NameRSI           = "RSI"
	NameMACD          = "MACD"
	NameBollinger     = "BOLLINGER_BANDS"
	NameMovingAverage = "MOVING_AVERAGE"
	NameVolume        = "VOLUME"
)

var (
	conf50 = decimal.NewFromInt(50)
	conf60 = decimal.NewFromInt(60)
	conf65 = decimal.NewFromInt(65)
	conf70 = decimal.NewFromInt(70)
	conf75 = decimal.NewFromInt(75)
	conf80 = decimal.NewFromInt(80)
	conf85 = decimal.NewFromInt(85)
)

// Evaluator maps indicator results to strategy calls. It is stateless and
// safe for concurrent use.
type Evaluator struct{}

// NewEvaluator creates a strategy evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate runs all five indicators over bars and returns their normalized
// strategy results in fixed order.
func (e *Evaluator) Evaluate(bars []model.Bar) []model.StrategyResult {
	return []model.StrategyResult{
		e.EvalRSI(indicator.RSI(bars)),
		e.EvalMACD(indicator.MACD(bars)),
		e.EvalBollinger(indicator.Bollinger(bars)),
		e.EvalMovingAverage(indicator.MovingAverage(bars)),
		e.EvalVolume(indicator.Volume(bars)),
	}
}

// EvalRSI maps an RSI result: oversold → BUY 75, overbought → SELL 75.
func (e *Evaluator) EvalRSI(r model.RSIResult) model.StrategyResult {
	res := model.StrategyResult{Name: NameRSI, Signal: model.SignalNeutral, Confidence: conf50, Interpretation: r.Interpretation}
	switch {
	case r.Bullish():
		res.Signal = model.SignalBuy
		res.Confidence = conf75
	case r.Bearish():
		res.Signal = model.SignalSell
		res.Confidence = conf75
	}
	return res
}

// EvalMACD maps a MACD result: a fresh crossover carries confidence 85, a
// standing line/signal spread 70.
func (e *Evaluator) EvalMACD(r model.MACDResult) model.StrategyResult {
	res := model.StrategyResult{Name: NameMACD, Signal: model.SignalNeutral, Confidence: conf50, Interpretation: r.Interpretation}
	switch {
	case r.Bullish():
		res.Signal = model.SignalBuy
		res.Confidence = conf70
		if r.Signal == model.MACDBullishCrossover {
			res.Confidence = conf85
		}
	case r.Bearish():
		res.Signal = model.SignalSell
		res.Confidence = conf70
		if r.Signal == model.MACDBearishCrossover {
			res.Confidence = conf85
		}
	}
	return res
}

// EvalBollinger maps a Bollinger result: a band touch carries confidence 80,
// other directional readings 65.
func (e *Evaluator) EvalBollinger(r model.BollingerResult) model.StrategyResult {
	res := model.StrategyResult{Name: NameBollinger, Signal: model.SignalNeutral, Confidence: conf50, Interpretation: r.Interpretation}
	switch {
	case r.Bullish():
		res.Signal = model.SignalBuy
		res.Confidence = conf65
		if r.Signal == model.BollingerOversold {
			res.Confidence = conf80
		}
	case r.Bearish():
		res.Signal = model.SignalSell
		res.Confidence = conf65
		if r.Signal == model.BollingerOverbought {
			res.Confidence = conf80
		}
	}
	return res
}

// EvalMovingAverage maps the price/SMA alignment: full alignment (price
// above both SMAs, SMA20 above SMA50) → BUY 80, partial alignment → BUY 65,
// inverse for sells.
func (e *Evaluator) EvalMovingAverage(r model.MAResult) model.StrategyResult {
	res := model.StrategyResult{Name: NameMovingAverage, Signal: model.SignalNeutral, Confidence: conf50, Interpretation: r.Interpretation}

	fullBull := r.Price.GreaterThan(r.SMA20) && r.Price.GreaterThan(r.SMA50) && r.SMA20.GreaterThan(r.SMA50)
	fullBear := r.Price.LessThan(r.SMA20) && r.Price.LessThan(r.SMA50) && r.SMA20.LessThan(r.SMA50)

	switch {
	case fullBull:
		res.Signal = model.SignalBuy
		res.Confidence = conf80
	case fullBear:
		res.Signal = model.SignalSell
		res.Confidence = conf80
	case r.Bullish():
		res.Signal = model.SignalBuy
		res.Confidence = conf65
	case r.Bearish():
		res.Signal = model.SignalSell
		res.Confidence = conf65
	}
	return res
}

// EvalVolume maps a volume result: strong signals carry confidence 75,
// regular ones 60.
func (e *Evaluator) EvalVolume(r model.VolumeResult) model.StrategyResult {
	res := model.StrategyResult{Name: NameVolume, Signal: model.SignalNeutral, Confidence: conf50, Interpretation: r.Interpretation}
	switch {
	case r.Bullish():
		res.Signal = model.SignalBuy
		res.Confidence = conf60
		if r.Signal == model.VolumeStrongBullish {
			res.Confidence = conf75
		}
	case r.Bearish():
		res.Signal = model.SignalSell
		res.Confidence = conf60
		if r.Signal == model.VolumeStrongBearish {
			res.Confidence = conf75
		}
	}
	return res
}
