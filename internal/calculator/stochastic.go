package calculator

import (
	"math"

	"StockAdvisor/internal/model"
)

const (
	// KDWindow is the stochastic look-back n.
	KDWindow = 9
	// KDCom is the EWMA center of mass used for both K and D.
	KDCom = 2.0
	// neutralRSV is used when the high-low range is flat or the value is undefined.
	neutralRSV = 50.0
)

// EWMA computes the non-adjusted exponentially weighted moving average with the given
// center of mass: alpha = 1/(1+com), y[0] = x[0], y[i] = (1-alpha)*y[i-1] + alpha*x[i].
func EWMA(values []float64, com float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 1 / (1 + com)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = (1-alpha)*out[i-1] + alpha*values[i]
	}
	return out
}

// RSV computes the raw stochastic value for each bar over a trailing window of n bars.
// A zero high-low range yields 50, as does any undefined result.
func RSV(bars []model.OHLCV, n int) []float64 {
	lowMin := RollingMin(extractLows(bars), n)
	highMax := RollingMax(extractHighs(bars), n)

	rsv := make([]float64, len(bars))
	for i, b := range bars {
		denom := highMax[i] - lowMin[i]
		v := neutralRSV
		if denom > 0 {
			v = (b.Close - lowMin[i]) / denom * 100
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = neutralRSV
		}
		rsv[i] = v
	}
	return rsv
}

// Stochastic returns the K and D lines for bars using window n.
func Stochastic(bars []model.OHLCV, n int) (k, d []float64) {
	k = EWMA(RSV(bars, n), KDCom)
	d = EWMA(k, KDCom)
	return k, d
}
