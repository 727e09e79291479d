package calculator

import (
	"errors"
	"fmt"
	"math"

	"StockAdvisor/internal/model"
)

// MinCleanRows is the minimum number of complete rows required for analysis.
const MinCleanRows = 3

// ErrInsufficientData matches any *InsufficientDataError.
var ErrInsufficientData = errors.New("insufficient data")

// InsufficientDataError reports how many complete rows survived cleaning.
type InsufficientDataError struct {
	Rows int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d valid rows, need %d", e.Rows, MinCleanRows)
}

func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }

// Enrich derives MA5, MA20, K and D for every bar.
func Enrich(bars []model.OHLCV) []model.EnrichedBar {
	closes := extractCloses(bars)
	maShort := RollingMean(closes, ShortWindow)
	maLong := RollingMean(closes, LongWindow)
	k, d := Stochastic(bars, KDWindow)

	out := make([]model.EnrichedBar, len(bars))
	for i, b := range bars {
		out[i] = model.EnrichedBar{
			OHLCV:   b,
			MAShort: maShort[i],
			MALong:  maLong[i],
			K:       k[i],
			D:       d[i],
		}
	}
	return out
}

// Clean drops rows with any undefined close, MA or K/D value and enforces MinCleanRows.
func Clean(bars []model.EnrichedBar) ([]model.EnrichedBar, error) {
	cleaned := make([]model.EnrichedBar, 0, len(bars))
	for _, b := range bars {
		if undefined(b.Close) || undefined(b.MAShort) || undefined(b.MALong) || undefined(b.K) || undefined(b.D) {
			continue
		}
		cleaned = append(cleaned, b)
	}
	if len(cleaned) < MinCleanRows {
		return nil, &InsufficientDataError{Rows: len(cleaned)}
	}
	return cleaned, nil
}

func undefined(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
