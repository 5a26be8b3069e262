// Package analysis folds the five weighted strategy calls into a single
// recommendation with an overall confidence.
package analysis

import (
	"fmt"

	"stock-advisor/internal/model"
	"stock-advisor/internal/numutil"
	"stock-advisor/internal/strategy"

	"github.com/shopspring/decimal"
)

// MinBars is the minimum sequence length before any indicator runs.
const MinBars = 20

var (
	strongThreshold = decimal.NewFromInt(70)
	conf50          = decimal.NewFromInt(50)
)

// Analyzer computes AnalysisResults. It is stateless and safe for
// concurrent use; output depends only on the input sequence.
type Analyzer struct {
	evaluator *strategy.Evaluator
}

// New creates an Analyzer using the given evaluator.
func New(ev *strategy.Evaluator) *Analyzer {
	return &Analyzer{evaluator: ev}
}

// Analyze runs the full technical pipeline over bars. It never returns an
// error: insufficient data degrades to HOLD with confidence 0, and any
// internal fault is converted into a HOLD result carrying the fault message.
func (a *Analyzer) Analyze(symbol string, bars []model.Bar) (res model.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			res = model.AnalysisResult{
				Symbol:         symbol,
				Recommendation: model.Hold,
				Confidence:     decimal.Zero,
				Notes:          fmt.Sprintf("error: %v", r),
			}
		}
	}()

	if len(bars) < MinBars {
		return model.AnalysisResult{
			Symbol:         symbol,
			Recommendation: model.Hold,
			Confidence:     decimal.Zero,
			Notes:          "insufficient data",
		}
	}

	return Aggregate(symbol, a.evaluator.Evaluate(bars))
}

// Aggregate combines weighted strategy confidences into one recommendation.
// Each strategy contributes weight = confidence/100 to the total; NEUTRAL
// strategies dilute the buy/sell percentages without adding to either side.
func Aggregate(symbol string, strategies []model.StrategyResult) model.AnalysisResult {
	buyScore := decimal.Zero
	sellScore := decimal.Zero
	totalWeight := decimal.Zero
	buys, sells, neutrals := 0, 0, 0

	for _, s := range strategies {
		w := numutil.Div(s.Confidence, numutil.Hundred)
		totalWeight = totalWeight.Add(w)
		switch s.Signal {
		case model.SignalBuy:
			buyScore = buyScore.Add(w)
			buys++
		case model.SignalSell:
			sellScore = sellScore.Add(w)
			sells++
		default:
			neutrals++
		}
	}

	if totalWeight.IsZero() {
		return model.AnalysisResult{
			Symbol:         symbol,
			Recommendation: model.Hold,
			Confidence:     decimal.Zero,
			Strategies:     strategies,
			Notes:          "no weighted signals",
		}
	}

	buyPct := numutil.Div(buyScore, totalWeight).Mul(numutil.Hundred)
	sellPct := numutil.Div(sellScore, totalWeight).Mul(numutil.Hundred)
	notes := fmt.Sprintf("%d buy / %d sell / %d neutral signals", buys, sells, neutrals)

	res := model.AnalysisResult{Symbol: symbol, Strategies: strategies, Notes: notes}
	switch {
	case buyPct.GreaterThan(sellPct):
		res.Recommendation = model.Buy
		if buyPct.GreaterThanOrEqual(strongThreshold) {
			res.Recommendation = model.StrongBuy
		}
		res.Confidence = buyPct
	case sellPct.GreaterThan(buyPct):
		res.Recommendation = model.Sell
		if sellPct.GreaterThanOrEqual(strongThreshold) {
			res.Recommendation = model.StrongSell
		}
		res.Confidence = sellPct
	default:
		res.Recommendation = model.Hold
		res.Confidence = conf50
	}
	return res
}
