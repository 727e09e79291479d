package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"StockAdvisor/internal/logger"
)

func TestSelectColumn_Tiers(t *testing.T) {
	log := logger.Nop()
	a, b, c := bars(1), bars(2), bars(3)

	tests := []struct {
		name      string
		requested string
		table     *Table
		wantLen   int
		wantTier  string
	}{
		{"nil table", "2330.TW", nil, 0, TierNoColumns},
		{"no columns", "2330.TW", &Table{}, 0, TierNoColumns},
		{"single column kept as is", "2330.TW", &Table{Columns: []Column{{Symbol: "OTHER", Bars: a}}}, 1, TierSingle},
		{"exact beats containment", "2330.TW", &Table{Columns: []Column{
			{Symbol: "2330.TWO", Bars: a},
			{Symbol: "2330.TW", Bars: b},
		}}, 2, TierExact},
		{"column contains requested", "2330", &Table{Columns: []Column{
			{Symbol: "2317.TW", Bars: a},
			{Symbol: "2330.TW", Bars: c},
		}}, 3, TierContains},
		{"requested contains column", "2330.TW", &Table{Columns: []Column{
			{Symbol: "2317", Bars: a},
			{Symbol: "2330", Bars: b},
		}}, 2, TierContains},
		{"first available fallback", "2330.TW", &Table{Columns: []Column{
			{Symbol: "2317.TW", Bars: c},
			{Symbol: "2454.TW", Bars: a},
		}}, 3, TierFirst},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, tier := SelectColumn(log, tt.requested, tt.table)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantTier, tier)
		})
	}
}
