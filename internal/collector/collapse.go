package collector

import (
	"strings"

	"StockAdvisor/internal/logger"
	"StockAdvisor/internal/model"
)

// Collapse tiers, in the order they are tried.
const (
	TierSingle    = "single"
	TierExact     = "exact"
	TierContains  = "contains"
	TierFirst     = "first"
	TierNoColumns = "none"
)

// SelectColumn reduces a possibly multi-symbol table to the requested symbol's bars.
// Order: exact match, substring containment in either direction, first available column.
func SelectColumn(log *logger.Logger, requested string, table *Table) ([]model.OHLCV, string) {
	if table == nil || len(table.Columns) == 0 {
		return nil, TierNoColumns
	}
	if len(table.Columns) == 1 {
		return table.Columns[0].Bars, TierSingle
	}

	for _, c := range table.Columns {
		if c.Symbol == requested {
			return c.Bars, TierExact
		}
	}
	for _, c := range table.Columns {
		if strings.Contains(c.Symbol, requested) || strings.Contains(requested, c.Symbol) {
			log.Debugw("multi-symbol response: using containment match",
				"requested", requested, "column", c.Symbol)
			return c.Bars, TierContains
		}
	}
	first := table.Columns[0]
	log.Debugw("multi-symbol response: requested symbol not found, using first column",
		"requested", requested, "column", first.Symbol)
	return first.Bars, TierFirst
}
