package model

// EnrichedBar is a bar plus its derived indicator values.
type EnrichedBar struct {
	OHLCV
	MAShort float64
	MALong  float64
	K       float64
	D       float64
}

// Levels is a support/resistance pair, rounded to 2 decimals.
type Levels struct {
	Support    float64
	Resistance float64
}
