package calculator

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"StockAdvisor/internal/model"
)

// ErrNoBullishBars is returned by the bullish policy when no bar in the window closed above its open.
var ErrNoBullishBars = errors.New("no bullish bars in window")

// Policy selects how support and resistance are estimated.
type Policy string

const (
	// PolicyRecent takes the median low/high of the most recent bars.
	PolicyRecent Policy = "recent"
	// PolicyBullish averages the low/high of bullish bars inside a trailing day window.
	PolicyBullish Policy = "bullish"
)

const (
	recentBars  = 5
	bullishDays = 7
)

// ParsePolicy maps a config value onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyRecent, "":
		return PolicyRecent, nil
	case PolicyBullish:
		return PolicyBullish, nil
	default:
		return "", fmt.Errorf("unknown support/resistance policy %q", s)
	}
}

// SupportResistance estimates levels from a cleaned series using the given policy.
func SupportResistance(bars []model.EnrichedBar, policy Policy) (model.Levels, error) {
	if len(bars) == 0 {
		return model.Levels{}, errors.New("no bars provided")
	}
	switch policy {
	case PolicyBullish:
		return BullishLevels(bars, bullishDays)
	default:
		return RecentMedianLevels(bars, recentBars), nil
	}
}

// RecentMedianLevels returns the median low and median high of the last min(n, len) bars.
func RecentMedianLevels(bars []model.EnrichedBar, n int) model.Levels {
	if n > len(bars) {
		n = len(bars)
	}
	recent := bars[len(bars)-n:]
	lows := make([]float64, len(recent))
	highs := make([]float64, len(recent))
	for i, b := range recent {
		lows[i] = b.Low
		highs[i] = b.High
	}
	return model.Levels{
		Support:    Round2(median(lows)),
		Resistance: Round2(median(highs)),
	}
}

// BullishLevels averages the low (support) and high (resistance) of bullish bars whose
// time is strictly after last.Time minus days.
func BullishLevels(bars []model.EnrichedBar, days int) (model.Levels, error) {
	cutoff := bars[len(bars)-1].Time.Add(-time.Duration(days) * 24 * time.Hour)

	var sumLow, sumHigh float64
	n := 0
	for _, b := range bars {
		if !b.Time.After(cutoff) || !b.Bullish() {
			continue
		}
		sumLow += b.Low
		sumHigh += b.High
		n++
	}
	if n == 0 {
		return model.Levels{}, ErrNoBullishBars
	}
	return model.Levels{
		Support:    Round2(sumLow / float64(n)),
		Resistance: Round2(sumHigh / float64(n)),
	}, nil
}

// Round2 rounds v to 2 decimal places.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
