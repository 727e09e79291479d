package model

// Advice is the trading recommendation.
type Advice string

const (
	AdviceBuy  Advice = "BUY"
	AdviceSell Advice = "SELL"
	AdviceHold Advice = "HOLD"
)

// Glyph returns the fixed emoji shown next to the advice.
func (a Advice) Glyph() string {
	switch a {
	case AdviceBuy:
		return "✅"
	case AdviceSell:
		return "❌"
	default:
		return "⏸"
	}
}

// Decision is the output of the strategy engine.
type Decision struct {
	Advice         Advice
	ExpectedReturn float64 // percentage
	MASignal       string
	KDSignal       string
	Note           string
}

// Report carries everything the formatter renders for one symbol.
type Report struct {
	Symbol      string
	Close       float64
	Levels      Levels
	Decision    Decision
	Granularity Granularity
	Rows        int
}
