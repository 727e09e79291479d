package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Bullish reports whether the bar closed above its open.
func (b OHLCV) Bullish() bool { return b.Close > b.Open }

// Granularity describes the sampling interval and lookback window a series was fetched with.
type Granularity struct {
	Name     string
	Label    string // shown in the report note
	Interval string // provider interval, e.g. "15m", "1d"
	Lookback time.Duration
	Intraday bool
}

var (
	// Intraday is the fine-grained path used while the market session is open.
	Intraday = Granularity{
		Name:     "intraday",
		Label:    "盤中 15 分鐘線（近 1 日）",
		Interval: "15m",
		Lookback: 24 * time.Hour,
		Intraday: true,
	}

	// Daily is the coarse fallback path.
	Daily = Granularity{
		Name:     "daily",
		Label:    "日線（近 14 日）",
		Interval: "1d",
		Lookback: 14 * 24 * time.Hour,
	}
)

// BarSeries holds the bars of exactly one symbol plus how they were fetched.
type BarSeries struct {
	Symbol      string
	Bars        []OHLCV
	Granularity Granularity
	SessionOpen bool
	FetchedAt   time.Time
}
