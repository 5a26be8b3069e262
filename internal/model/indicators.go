package model

import "github.com/shopspring/decimal"

// RSISignal classifies the RSI reading.
type RSISignal string

const (
	RSIOversold   RSISignal = "OVERSOLD"
	RSIOverbought RSISignal = "OVERBOUGHT"
	RSINeutral    RSISignal = "NEUTRAL"
)

// RSIResult is the outcome of one RSI computation.
type RSIResult struct {
	Value          decimal.Decimal `json:"value"`
	Signal         RSISignal       `json:"signal"`
	Interpretation string          `json:"interpretation"`
}

// Bullish reports whether the RSI reading favors buying (oversold).
func (r RSIResult) Bullish() bool { return r.Signal == RSIOversold }

// Bearish reports whether the RSI reading favors selling (overbought).
func (r RSIResult) Bearish() bool { return r.Signal == RSIOverbought }

// MACDSignal classifies the MACD line relative to its signal line.
// Crossover values mean the relation flipped on the latest bar.
type MACDSignal string

const (
	MACDBullishCrossover MACDSignal = "BULLISH_CROSSOVER"
	MACDBearishCrossover MACDSignal = "BEARISH_CROSSOVER"
	MACDBullish          MACDSignal = "BULLISH"
	MACDBearish          MACDSignal = "BEARISH"
	MACDNeutral          MACDSignal = "NEUTRAL"
)

// MACDResult is the outcome of one MACD computation.
type MACDResult struct {
	Line           decimal.Decimal `json:"line"`
	SignalLine     decimal.Decimal `json:"signal_line"`
	Histogram      decimal.Decimal `json:"histogram"`
	Signal         MACDSignal      `json:"signal"`
	Interpretation string          `json:"interpretation"`
}

func (r MACDResult) Bullish() bool {
	return r.Signal == MACDBullishCrossover || r.Signal == MACDBullish
}

func (r MACDResult) Bearish() bool {
	return r.Signal == MACDBearishCrossover || r.Signal == MACDBearish
}

// BollingerSignal classifies where the price sits relative to the bands.
type BollingerSignal string

const (
	BollingerOversold   BollingerSignal = "OVERSOLD"
	BollingerOverbought BollingerSignal = "OVERBOUGHT"
	BollingerNeutral    BollingerSignal = "NEUTRAL"
)

// BollingerResult is the outcome of one Bollinger Bands computation.
type BollingerResult struct {
	Upper          decimal.Decimal `json:"upper"`
	Middle         decimal.Decimal `json:"middle"`
	Lower          decimal.Decimal `json:"lower"`
	Price          decimal.Decimal `json:"price"`
	Signal         BollingerSignal `json:"signal"`
	Interpretation string          `json:"interpretation"`
}

func (r BollingerResult) Bullish() bool { return r.Signal == BollingerOversold }
func (r BollingerResult) Bearish() bool { return r.Signal == BollingerOverbought }

// MAResult carries the raw moving averages; the directional call is made by
// the strategy evaluator from the price/SMA alignment.
type MAResult struct {
	SMA20          decimal.Decimal `json:"sma20"`
	SMA50          decimal.Decimal `json:"sma50"`
	Price          decimal.Decimal `json:"price"`
	Interpretation string          `json:"interpretation"`
}

// Bullish reports full or partial bullish alignment (price above SMA20 and
// SMA20 above SMA50).
func (r MAResult) Bullish() bool {
	return r.Price.GreaterThan(r.SMA20) && r.SMA20.GreaterThan(r.SMA50)
}

// Bearish reports the inverse alignment.
func (r MAResult) Bearish() bool {
	return r.Price.LessThan(r.SMA20) && r.SMA20.LessThan(r.SMA50)
}

// VolumeSignal classifies recent volume against its historical average,
// qualified by price direction.
type VolumeSignal string

const (
	VolumeStrongBullish VolumeSignal = "STRONG_BULLISH"
	VolumeBullish       VolumeSignal = "BULLISH"
	VolumeNeutral       VolumeSignal = "NEUTRAL"
	VolumeBearish       VolumeSignal = "BEARISH"
	VolumeStrongBearish VolumeSignal = "STRONG_BEARISH"
)

// VolumeResult is the outcome of one volume-trend computation.
type VolumeResult struct {
	Ratio          decimal.Decimal `json:"ratio"`
	Signal         VolumeSignal    `json:"signal"`
	Interpretation string          `json:"interpretation"`
}

func (r VolumeResult) Bullish() bool {
	return r.Signal == VolumeStrongBullish || r.Signal == VolumeBullish
}

func (r VolumeResult) Bearish() bool {
	return r.Signal == VolumeStrongBearish || r.Signal == VolumeBearish
}
