package indicator

import (
	"testing"
	"time"

	"stock-advisor/internal/model"

	"github.com/shopspring/decimal"
)

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

func risingBars(n int, start, step, vol int64) []model.Bar {
	prices := make([]int64, n)
	vols := make([]int64, n)
	for i := range prices {
		prices[i] = start + int64(i)*step
		vols[i] = vol
	}
	return makeBars(prices, vols)
}

func flatBars(n int, price, vol int64) []model.Bar {
	prices := make([]int64, n)
	vols := make([]int64, n)
	for i := range prices {
		prices[i] = price
		vols[i] = vol
	}
	return makeBars(prices, vols)
}

func reversed(bars []model.Bar) []model.Bar {
	out := make([]model.Bar, len(bars))
	for i, b := range bars {
		out[len(bars)-1-i] = b
	}
	return out
}

func TestRSI_InsufficientData(t *testing.T) {
	for _, bars := range [][]model.Bar{nil, {}, flatBars(14, 100, 0)} {
		res := RSI(bars)
		if res.Signal != model.RSINeutral {
			t.Errorf("signal = %s, want NEUTRAL", res.Signal)
		}
		if !res.Value.IsZero() {
			t.Errorf("value = %s, want 0", res.Value)
		}
		if res.Interpretation != "insufficient data" {
			t.Errorf("interpretation = %q", res.Interpretation)
		}
	}
}

func TestRSI_AllGainsIsOverbought(t *testing.T) {
	res := RSI(risingBars(25, 100, 2, 0))
	if !res.Value.Equal(decimal.NewFromInt(100)) {
		t.Errorf("RSI = %s, want 100", res.Value)
	}
	if res.Signal != model.RSIOverbought {
		t.Errorf("signal = %s, want OVERBOUGHT", res.Signal)
	}
	if !res.Bearish() || res.Bullish() {
		t.Errorf("overbought should be bearish only")
	}
}

func TestRSI_AllLossesIsOversold(t *testing.T) {
	res := RSI(risingBars(25, 200, -2, 0))
	if !res.Value.IsZero() {
		t.Errorf("RSI = %s, want 0", res.Value)
	}
	if res.Signal != model.RSIOversold {
		t.Errorf("signal = %s, want OVERSOLD", res.Signal)
	}
}

func TestRSI_FlatPricesAreNeutral(t *testing.T) {
	res := RSI(flatBars(25, 100, 0))
	if !res.Value.Equal(decimal.NewFromInt(50)) {
		t.Errorf("RSI = %s, want 50", res.Value)
	}
	if res.Signal != model.RSINeutral {
		t.Errorf("signal = %s, want NEUTRAL", res.Signal)
	}
}

func TestRSI_ValueWithinBounds(t *testing.T) {
	prices := []int64{100, 103, 99, 105, 102, 108, 101, 110, 104, 112, 99, 115, 103, 117, 105, 120}
	res := RSI(makeBars(prices, nil))
	if res.Value.IsNegative() || res.Value.GreaterThan(decimal.NewFromInt(100)) {
		t.Errorf("RSI %s out of [0,100]", res.Value)
	}
	if res.Bullish() && res.Bearish() {
		t.Error("Bullish and Bearish simultaneously true")
	}
}

func TestRSI_SortsUnsortedInput(t *testing.T) {
	bars := risingBars(25, 100, 2, 0)
	a := RSI(bars)
	b := RSI(reversed(bars))
	if !a.Value.Equal(b.Value) || a.Signal != b.Signal {
		t.Errorf("unsorted input diverged: %s/%s vs %s/%s", a.Value, a.Signal, b.Value, b.Signal)
	}
}

func TestMACD_InsufficientData(t *testing.T) {
	res := MACD(flatBars(34, 100, 0))
	if res.Signal != model.MACDNeutral || res.Interpretation != "insufficient data" {
		t.Errorf("got %s / %q, want NEUTRAL / insufficient data", res.Signal, res.Interpretation)
	}
}

func TestMACD_UptrendIsBullish(t *testing.T) {
	res := MACD(risingBars(40, 100, 2, 0))
	if !res.Bullish() {
		t.Errorf("uptrend MACD signal = %s, want bullish", res.Signal)
	}
	if res.Bearish() {
		t.Error("Bullish and Bearish simultaneously true")
	}
	if !res.Line.GreaterThan(res.SignalLine) {
		t.Errorf("line %s not above signal %s", res.Line, res.SignalLine)
	}
	if !res.Histogram.Equal(res.Line.Sub(res.SignalLine)) {
		t.Errorf("histogram %s != line-signal %s", res.Histogram, res.Line.Sub(res.SignalLine))
	}
}

func TestMACD_DowntrendIsBearish(t *testing.T) {
	res := MACD(risingBars(40, 300, -2, 0))
	if !res.Bearish() {
		t.Errorf("downtrend MACD signal = %s, want bearish", res.Signal)
	}
}

func TestMACD_FlatPricesAreNeutral(t *testing.T) {
	res := MACD(flatBars(40, 100, 0))
	if res.Signal != model.MACDNeutral {
		t.Errorf("signal = %s, want NEUTRAL", res.Signal)
	}
	if !res.Line.IsZero() || !res.SignalLine.IsZero() {
		t.Errorf("flat prices: line %s signal %s, want 0/0", res.Line, res.SignalLine)
	}
}

func TestBollinger_InsufficientData(t *testing.T) {
	res := Bollinger(flatBars(19, 100, 0))
	if res.Signal != model.BollingerNeutral || res.Interpretation != "insufficient data" {
		t.Errorf("got %s / %q", res.Signal, res.Interpretation)
	}
}

func TestBollinger_SpikeAboveUpperBand(t *testing.T) {
	prices := make([]int64, 24)
	for i := range prices {
		prices[i] = 100
	}
	prices[23] = 150
	res := Bollinger(makeBars(prices, nil))
	if res.Signal != model.BollingerOverbought {
		t.Errorf("signal = %s, want OVERBOUGHT", res.Signal)
	}
	if !res.Bearish() || res.Bullish() {
		t.Error("overbought should be bearish only")
	}
}

func TestBollinger_DropBelowLowerBand(t *testing.T) {
	prices := make([]int64, 24)
	for i := range prices {
		prices[i] = 100
	}
	prices[23] = 50
	res := Bollinger(makeBars(prices, nil))
	if res.Signal != model.BollingerOversold {
		t.Errorf("signal = %s, want OVERSOLD", res.Signal)
	}
}

func TestBollinger_WithinBandsIsNeutral(t *testing.T) {
	prices := make([]int64, 24)
	for i := range prices {
		prices[i] = 100
		if i%2 == 1 {
			prices[i] = 102
		}
	}
	prices[23] = 101
	res := Bollinger(makeBars(prices, nil))
	if res.Signal != model.BollingerNeutral {
		t.Errorf("signal = %s, want NEUTRAL (bands [%s, %s], price %s)",
			res.Signal, res.Lower, res.Upper, res.Price)
	}
}

func TestMovingAverage_RisingAlignment(t *testing.T) {
	res := MovingAverage(risingBars(25, 100, 2, 0))
	if !res.Bullish() {
		t.Errorf("rising series: price %s sma20 %s sma50 %s, want bullish alignment",
			res.Price, res.SMA20, res.SMA50)
	}
	if !res.SMA20.GreaterThan(res.SMA50) {
		t.Errorf("SMA20 %s not above SMA50 %s", res.SMA20, res.SMA50)
	}
}

func TestMovingAverage_FallingAlignment(t *testing.T) {
	res := MovingAverage(risingBars(60, 300, -2, 0))
	if !res.Bearish() {
		t.Errorf("falling series: price %s sma20 %s sma50 %s, want bearish alignment",
			res.Price, res.SMA20, res.SMA50)
	}
}

func TestMovingAverage_InsufficientData(t *testing.T) {
	res := MovingAverage(flatBars(19, 100, 0))
	if res.Interpretation != "insufficient data" {
		t.Errorf("interpretation = %q", res.Interpretation)
	}
	if res.Bullish() || res.Bearish() {
		t.Error("degraded result should be directionless")
	}
}

func TestVolume_FlatVolumeIsNeutral(t *testing.T) {
	res := Volume(risingBars(25, 100, 2, 1000))
	if res.Signal != model.VolumeNeutral {
		t.Errorf("signal = %s, want NEUTRAL (ratio %s)", res.Signal, res.Ratio)
	}
	if !res.Ratio.Equal(decimal.NewFromInt(1)) {
		t.Errorf("ratio = %s, want 1", res.Ratio)
	}
}

func TestVolume_SpikeWithRisingPrice(t *testing.T) {
	bars := risingBars(20, 100, 1, 100)
	for i := 15; i < 20; i++ {
		bars[i].Volume = 300
	}
	res := Volume(bars)
	if res.Signal != model.VolumeStrongBullish {
		t.Errorf("signal = %s, want STRONG_BULLISH (ratio %s)", res.Signal, res.Ratio)
	}
}

func TestVolume_SpikeWithFallingPrice(t *testing.T) {
	bars := risingBars(20, 200, -1, 100)
	for i := 15; i < 20; i++ {
		bars[i].Volume = 300
	}
	res := Volume(bars)
	if res.Signal != model.VolumeStrongBearish {
		t.Errorf("signal = %s, want STRONG_BEARISH (ratio %s)", res.Signal, res.Ratio)
	}
}

func TestVolume_SpikeWithFlatPriceIsNeutral(t *testing.T) {
	// Elevated volume without a price move confirms neither direction.
	bars := flatBars(20, 100, 100)
	for i := 15; i < 20; i++ {
		bars[i].Volume = 300
	}
	res := Volume(bars)
	if !res.Ratio.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("ratio = %s, want 2", res.Ratio)
	}
	if res.Signal != model.VolumeNeutral {
		t.Errorf("signal = %s, want NEUTRAL", res.Signal)
	}
}

func TestVolume_ModerateSpikeIsBullish(t *testing.T) {
	// recent=180, historical=(15*100+5*180)/20=120 → ratio 1.5 exactly.
	bars := risingBars(20, 100, 1, 100)
	for i := 15; i < 20; i++ {
		bars[i].Volume = 180
	}
	res := Volume(bars)
	if res.Signal != model.VolumeBullish {
		t.Errorf("signal = %s, want BULLISH (ratio %s)", res.Signal, res.Ratio)
	}
}

func TestVolume_ZeroVolumeIsNeutral(t *testing.T) {
	res := Volume(risingBars(25, 100, 2, 0))
	if res.Signal != model.VolumeNeutral {
		t.Errorf("signal = %s, want NEUTRAL", res.Signal)
	}
}
