package calculator

import (
	"math"

	"StockAdvisor/internal/model"
)

// Moving-average windows.
const (
	ShortWindow = 5
	LongWindow  = 20
)

// RollingMean computes the trailing mean over window samples for every index.
// Windows with fewer samples average whatever is available; NaN values are skipped,
// and a window with no finite value yields NaN.
func RollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		sum, n := 0.0, 0
		for j := windowStart(i, window); j <= i; j++ {
			if math.IsNaN(values[j]) {
				continue
			}
			sum += values[j]
			n++
		}
		if n == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(n)
	}
	return out
}

// RollingMin computes the trailing minimum over window samples (min-periods 1).
func RollingMin(values []float64, window int) []float64 {
	return rollingExtreme(values, window, func(a, b float64) bool { return a < b })
}

// RollingMax computes the trailing maximum over window samples (min-periods 1).
func RollingMax(values []float64, window int) []float64 {
	return rollingExtreme(values, window, func(a, b float64) bool { return a > b })
}

func rollingExtreme(values []float64, window int, better func(a, b float64) bool) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		ext := math.NaN()
		for j := windowStart(i, window); j <= i; j++ {
			v := values[j]
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(ext) || better(v, ext) {
				ext = v
			}
		}
		out[i] = ext
	}
	return out
}

func windowStart(i, window int) int {
	if window < 1 {
		window = 1
	}
	start := i - window + 1
	if start < 0 {
		start = 0
	}
	return start
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func extractLows(bars []model.OHLCV) []float64 {
	lows := make([]float64, len(bars))
	for i, b := range bars {
		lows[i] = b.Low
	}
	return lows
}

func extractHighs(bars []model.OHLCV) []float64 {
	highs := make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
	}
	return highs
}
