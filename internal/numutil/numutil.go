// Package numutil provides the fixed-point arithmetic helpers shared by the
// indicator library and the predictor: moving averages, return variance, and
// a deterministic square-root approximation.
//
// Every division goes through Div, which rounds half-up at 4 fractional
// digits. That scale is a contract: it fixes last-digit precision so two
// runs over the same bar sequence produce bit-identical results.
package numutil

import "github.com/shopspring/decimal"

// Scale is the internal fixed-point scale for all division.
const Scale = 4

// DisplayScale is used when rounding values for presentation.
const DisplayScale = 2

var (
	two     = decimal.NewFromInt(2)
	Hundred = decimal.NewFromInt(100)
)

// Div divides a by b with half-up rounding at the internal scale.
// A zero denominator short-circuits to zero; callers treat that as a
// degraded (not failed) computation.
func Div(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.DivRound(b, Scale)
}

// SMA returns the mean of the last period values. With fewer than period
// values it averages what is available, so a one-element series yields the
// last available price. An empty series yields zero.
func SMA(values []decimal.Decimal, period int) decimal.Decimal {
	if len(values) == 0 || period <= 0 {
		return decimal.Zero
	}
	n := period
	if len(values) < period {
		n = len(values)
	}
	sum := decimal.Zero
	for _, v := range values[len(values)-n:] {
		sum = sum.Add(v)
	}
	return Div(sum, decimal.NewFromInt(int64(n)))
}

// EMA returns the exponential moving average of values: seeded with the
// value period steps from the end (clamped to the first value), multiplier
// 2/(period+1), iterated forward to the end.
func EMA(values []decimal.Decimal, period int) decimal.Decimal {
	if len(values) == 0 || period <= 0 {
		return decimal.Zero
	}
	start := len(values) - period
	if start < 0 {
		start = 0
	}
	mult := Div(two, decimal.NewFromInt(int64(period+1)))
	ema := values[start]
	for _, v := range values[start+1:] {
		ema = v.Sub(ema).Mul(mult).Add(ema)
	}
	return ema
}

// Returns computes the stepwise return series r_i = (p_i - p_{i-1}) / p_{i-1}.
// A zero previous price short-circuits that step's return to zero.
func Returns(values []decimal.Decimal) []decimal.Decimal {
	if len(values) < 2 {
		return nil
	}
	out := make([]decimal.Decimal, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		out = append(out, Div(values[i].Sub(values[i-1]), values[i-1]))
	}
	return out
}

// Variance returns the population variance of values (mean of squared
// deviations from the mean). Empty input yields zero.
func Variance(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(len(values)))
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	mean := Div(sum, n)
	sq := decimal.Zero
	for _, v := range values {
		d := v.Sub(mean)
		sq = sq.Add(d.Mul(d))
	}
	return Div(sq, n)
}

// StddevReturns is the population standard deviation of the stepwise
// returns of values. Used for return volatility.
func StddevReturns(values []decimal.Decimal) decimal.Decimal {
	return SqrtApprox(Variance(Returns(values)))
}

// StddevValues is the population standard deviation of the raw values.
// Used for Bollinger band width.
func StddevValues(values []decimal.Decimal) decimal.Decimal {
	return SqrtApprox(Variance(values))
}

// SqrtApprox approximates the square root with exactly 10 Babylonian
// iterations seeded at x/2. The fixed iteration count is a contract: it
// pins last-digit precision for reproducibility. Zero and negative input
// yield zero.
func SqrtApprox(x decimal.Decimal) decimal.Decimal {
	if x.IsZero() || x.IsNegative() {
		return decimal.Zero
	}
	guess := Div(x, two)
	for i := 0; i < 10; i++ {
		if guess.IsZero() {
			return decimal.Zero
		}
		guess = Div(guess.Add(Div(x, guess)), two)
	}
	return guess
}
