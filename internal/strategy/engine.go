package strategy

import (
	"errors"
	"fmt"
	"math"

	"StockAdvisor/internal/model"
)

// ErrMalformedInput is returned when a decision input is not a finite number.
var ErrMalformedInput = errors.New("malformed indicator input")

// buyTargetMultiplier projects the BUY target slightly above resistance.
const buyTargetMultiplier = 1.02

// Inputs are the latest indicator values the decision is made from.
type Inputs struct {
	Close   float64
	MAShort float64
	MALong  float64
	K       float64
	D       float64
	Levels  model.Levels
}

// InputsFromBar builds Inputs from the last cleaned bar and the estimated levels.
func InputsFromBar(b model.EnrichedBar, lv model.Levels) Inputs {
	return Inputs{Close: b.Close, MAShort: b.MAShort, MALong: b.MALong, K: b.K, D: b.D, Levels: lv}
}

// Validate rejects non-finite values and a non-positive close.
func (in Inputs) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"close", in.Close},
		{"ma_short", in.MAShort},
		{"ma_long", in.MALong},
		{"k", in.K},
		{"d", in.D},
		{"support", in.Levels.Support},
		{"resistance", in.Levels.Resistance},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s=%v", ErrMalformedInput, f.name, f.v)
		}
	}
	if in.Close <= 0 {
		return fmt.Errorf("%w: close=%v", ErrMalformedInput, in.Close)
	}
	return nil
}

// Decide computes the advice, expected return and explanatory signals.
// Buy and sell triggers firing together, or neither firing, resolve to HOLD.
func Decide(in Inputs) model.Decision {
	buy := buySignal(in)
	sell := sellSignal(in)

	dec := model.Decision{
		MASignal: maSignal(in.MAShort, in.MALong),
		KDSignal: kdSignal(in.K, in.D),
	}

	switch {
	case buy && !sell:
		dec.Advice = model.AdviceBuy
		target := in.Levels.Resistance * buyTargetMultiplier
		dec.ExpectedReturn = (target - in.Close) / in.Close * 100
	case sell && !buy:
		dec.Advice = model.AdviceSell
		dec.ExpectedReturn = (in.Close - in.Levels.Support) / in.Close * 100
	default:
		dec.Advice = model.AdviceHold
		dec.ExpectedReturn = 0
		if buy && sell {
			dec.Note = "多空訊號同時出現，建議觀望"
		}
	}
	return dec
}
