package predict

import (
	"reflect"
	"testing"
	"time"

	"stock-advisor/internal/model"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func makeBars(prices []int64, vols []int64) []model.Bar {
	base := time.Date(2024, 1, 2, 9, 15, 0, 0, time.UTC)
	out := make([]model.Bar, len(prices))
	for i, p := range prices {
		var v int64
		if vols != nil {
			v = vols[i]
		}
		out[i] = model.Bar{
			Symbol:    "SBIN",
			LastPrice: decimal.NewFromInt(p),
			Volume:    v,
			TS:        base.Add(time.Duration(i) * time.Minute),
		}
	}
	return out
}

func uniformBars(n int, price, step, vol int64) []model.Bar {
	prices := make([]int64, n)
	vols := make([]int64, n)
	for i := range prices {
		prices[i] = price + int64(i)*step
		vols[i] = vol
	}
	return makeBars(prices, vols)
}

func TestPredict_InsufficientData(t *testing.T) {
	p := NewPredictor()
	for _, bars := range [][]model.Bar{nil, {}, uniformBars(19, 100, 0, 1000)} {
		res := p.Predict("SBIN", bars)
		if res.Direction != model.DirectionNeutral {
			t.Errorf("direction = %s, want NEUTRAL", res.Direction)
		}
		if !res.TargetPrice.IsZero() || !res.Confidence.IsZero() {
			t.Errorf("target/confidence = %s/%s, want 0/0", res.TargetPrice, res.Confidence)
		}
		if res.Interpretation != "insufficient data" {
			t.Errorf("interpretation = %q", res.Interpretation)
		}
		if !res.LowConfidence() {
			t.Error("degraded prediction should be flagged low-confidence")
		}
	}
}

func TestPredict_ConstantPrice(t *testing.T) {
	p := NewPredictor()
	res := p.Predict("SBIN", uniformBars(25, 100, 0, 1000))

	if res.Direction != model.DirectionNeutral {
		t.Errorf("direction = %s, want NEUTRAL", res.Direction)
	}
	// Zero variance earns the +15 bonus, relative volume 1 earns +10.
	if !res.Confidence.Equal(dec("75")) {
		t.Errorf("confidence = %s, want 75", res.Confidence)
	}
	if !res.TargetPrice.Equal(dec("100")) {
		t.Errorf("target = %s, want exactly 100", res.TargetPrice)
	}
}

func TestPredict_ConstantPriceZeroVolume(t *testing.T) {
	p := NewPredictor()
	res := p.Predict("SBIN", uniformBars(25, 100, 0, 0))
	// No relative-volume bonus when the mean volume is zero.
	if !res.Confidence.Equal(dec("65")) {
		t.Errorf("confidence = %s, want 65", res.Confidence)
	}
	if res.Direction != model.DirectionNeutral {
		t.Errorf("direction = %s, want NEUTRAL", res.Direction)
	}
}

func TestPredict_RisingPrices(t *testing.T) {
	p := NewPredictor()
	bars := uniformBars(25, 100, 2, 1000)
	res := p.Predict("SBIN", bars)

	if res.Direction != model.DirectionBullish {
		t.Errorf("direction = %s, want BULLISH", res.Direction)
	}
	last := bars[len(bars)-1].LastPrice
	if !res.TargetPrice.GreaterThan(last) {
		t.Errorf("target %s not above current price %s", res.TargetPrice, last)
	}
	// +15 low volatility, +10 relative volume, +8 for the saturated RSI
	// signal; MACD and MA signals stay under the 0.3 bar on a gentle slope.
	if !res.Confidence.Equal(dec("83")) {
		t.Errorf("confidence = %s, want 83", res.Confidence)
	}
}

func TestPredict_FallingPrices(t *testing.T) {
	p := NewPredictor()
	bars := uniformBars(25, 200, -2, 1000)
	res := p.Predict("SBIN", bars)

	if res.Direction != model.DirectionBearish {
		t.Errorf("direction = %s, want BEARISH", res.Direction)
	}
	last := bars[len(bars)-1].LastPrice
	if !res.TargetPrice.LessThan(last) {
		t.Errorf("target %s not below current price %s", res.TargetPrice, last)
	}
}

func TestPredict_Deterministic(t *testing.T) {
	p := NewPredictor()
	bars := uniformBars(30, 150, 3, 700)
	first := p.Predict("SBIN", bars)
	second := p.Predict("SBIN", bars)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical input diverged:\n%+v\n%+v", first, second)
	}
}

func TestConfidence_CappedAt85(t *testing.T) {
	feats := model.Features{
		Volatility:     dec("0.01"),
		RelativeVolume: dec("1"),
		RSISignal:      dec("1"),
		MACDSignal:     dec("0.5"),
		MASignal:       dec("-0.4"),
	}
	if got := confidence(feats); !got.Equal(dec("85")) {
		t.Errorf("confidence = %s, want cap 85", got)
	}
}

func TestConfidence_HighVolatilityPenalty(t *testing.T) {
	feats := model.Features{Volatility: dec("0.1")}
	if got := confidence(feats); !got.Equal(dec("40")) {
		t.Errorf("confidence = %s, want 40", got)
	}
}

func TestExtractFeatures_VolumeEdgeCases(t *testing.T) {
	// First three window volumes zero: volume trend short-circuits to 0.
	prices := make([]int64, 25)
	vols := make([]int64, 25)
	for i := range prices {
		prices[i] = 100
		vols[i] = 500
	}
	for i := 15; i < 18; i++ {
		vols[i] = 0
	}
	feats, ok := ExtractFeatures(makeBars(prices, vols))
	if !ok {
		t.Fatal("expected features")
	}
	if !feats.VolumeTrend.IsZero() {
		t.Errorf("volume trend = %s, want 0", feats.VolumeTrend)
	}
}

func TestExtractFeatures_WindowValues(t *testing.T) {
	// 25 bars, last 10 rising 130..148: priceChange = 18/130.
	feats, ok := ExtractFeatures(uniformBars(25, 100, 2, 1000))
	if !ok {
		t.Fatal("expected features")
	}
	if !feats.CurrentPrice.Equal(dec("148")) {
		t.Errorf("current price = %s, want 148", feats.CurrentPrice)
	}
	if !feats.PriceChange.Equal(dec("0.1385")) {
		t.Errorf("price change = %s, want 0.1385", feats.PriceChange)
	}
	if !feats.Momentum.Equal(dec("0.0725")) {
		t.Errorf("momentum = %s, want 0.0725", feats.Momentum)
	}
	if !feats.RSISignal.Equal(dec("1")) {
		t.Errorf("rsi signal = %s, want 1", feats.RSISignal)
	}
	if !feats.RelativeVolume.Equal(dec("1")) {
		t.Errorf("relative volume = %s, want 1", feats.RelativeVolume)
	}
}
