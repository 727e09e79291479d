package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockAdvisor/internal/calculator"
	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/logger"
	"StockAdvisor/internal/metrics"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/notifier"
	"StockAdvisor/internal/strategy"
)

// Fetcher retrieves the bar series for one symbol.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string) (*model.BarSeries, error)
}

// Analyzer runs the per-symbol pipeline: fetch, indicators, levels, decision.
type Analyzer struct {
	fetcher Fetcher
	policy  calculator.Policy
	log     *logger.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(fetcher Fetcher, policy calculator.Policy, log *logger.Logger) *Analyzer {
	return &Analyzer{
		fetcher: fetcher,
		policy:  policy,
		log:     log.With("component", "analyzer"),
	}
}

// Evaluate produces a report for symbol. The returned bool is the session state seen at fetch time.
func (a *Analyzer) Evaluate(ctx context.Context, symbol string) (*model.Report, bool, error) {
	series, err := a.fetcher.Fetch(ctx, symbol)
	if err != nil {
		return nil, false, err
	}

	enriched, err := calculator.Clean(calculator.Enrich(series.Bars))
	if err != nil {
		return nil, series.SessionOpen, err
	}

	levels, err := calculator.SupportResistance(enriched, a.policy)
	if err != nil {
		return nil, series.SessionOpen, err
	}

	last := enriched[len(enriched)-1]
	in := strategy.InputsFromBar(last, levels)
	if err := in.Validate(); err != nil {
		return nil, series.SessionOpen, err
	}
	dec := strategy.Decide(in)

	return &model.Report{
		Symbol:      series.Symbol,
		Close:       last.Close,
		Levels:      levels,
		Decision:    dec,
		Granularity: series.Granularity,
		Rows:        len(enriched),
	}, series.SessionOpen, nil
}

// Analyze returns the rendered reply block for symbol. It never fails: every error,
// including a panic inside the pipeline, becomes a per-symbol failure message.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (text string) {
	start := time.Now()
	defer func() {
		metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	}()
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorw("analysis panicked", "symbol", symbol, "panic", r)
			metrics.Analyses.WithLabelValues("error").Inc()
			text = notifier.FormatFailure(symbol, fmt.Errorf("internal error: %v", r), false)
		}
	}()

	report, open, err := a.Evaluate(ctx, symbol)
	if err != nil {
		outcome := outcomeOf(err)
		metrics.Analyses.WithLabelValues(outcome).Inc()
		a.log.Warnw("analysis failed", "symbol", symbol, "outcome", outcome, "error", err)
		return notifier.FormatFailure(symbol, err, open)
	}

	metrics.Analyses.WithLabelValues(outcomeOfAdvice(report.Decision.Advice)).Inc()
	a.log.Infow("analysis complete",
		"symbol", symbol,
		"advice", report.Decision.Advice,
		"expected_return", report.Decision.ExpectedReturn,
		"granularity", report.Granularity.Name,
		"rows", report.Rows,
	)
	return notifier.FormatReport(report)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, collector.ErrDownloadFailed):
		return "download_failed"
	case errors.Is(err, collector.ErrNoData):
		return "no_data"
	case errors.Is(err, calculator.ErrInsufficientData):
		return "insufficient"
	case errors.Is(err, calculator.ErrNoBullishBars):
		return "no_bullish"
	case errors.Is(err, strategy.ErrMalformedInput):
		return "malformed"
	default:
		return "error"
	}
}

func outcomeOfAdvice(a model.Advice) string {
	switch a {
	case model.AdviceBuy:
		return "buy"
	case model.AdviceSell:
		return "sell"
	default:
		return "hold"
	}
}
