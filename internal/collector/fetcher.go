package collector

import (
	"context"
	"time"

	"StockAdvisor/internal/model"
)

// Request identifies one provider call.
type Request struct {
	Symbol         string
	Interval       string
	Start          time.Time
	End            time.Time
	IncludePrePost bool
}

// Column is the bar data for one symbol inside a provider response.
type Column struct {
	Symbol string
	Bars   []model.OHLCV
}

// Table is a provider response. More than one column means the provider
// batched several symbols even though one was requested.
type Table struct {
	Columns []Column
}

// Empty reports whether the table holds no bars at all.
func (t *Table) Empty() bool {
	if t == nil {
		return true
	}
	for _, c := range t.Columns {
		if len(c.Bars) > 0 {
			return false
		}
	}
	return true
}

// Provider defines the interface for fetching market data.
type Provider interface {
	FetchBars(ctx context.Context, req Request) (*Table, error)
	Name() string
}
