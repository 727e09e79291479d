// Package router turns inbound chat text into one combined reply.
package router

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"StockAdvisor/internal/logger"
	"StockAdvisor/internal/symbol"
)

const (
	// DefaultMaxRunes keeps the reply plus TruncationMarker under LINE's 5000-character limit.
	DefaultMaxRunes = 4900
	// DefaultConcurrency bounds parallel per-symbol analyses.
	DefaultConcurrency = 4

	TruncationMarker = "\n\n(結果過長，已截斷)"
	segmentSeparator = "\n\n"
)

// SymbolAnalyzer renders the reply block for one symbol and never fails.
type SymbolAnalyzer interface {
	Analyze(ctx context.Context, symbol string) string
}

// Router dispatches chat text to per-symbol analyses.
type Router struct {
	analyzer    SymbolAnalyzer
	concurrency int
	maxRunes    int
	log         *logger.Logger
}

// Options tunes the router. Zero values select the defaults.
type Options struct {
	Concurrency int
	MaxRunes    int
}

// New creates a new Router.
func New(analyzer SymbolAnalyzer, opts Options, log *logger.Logger) *Router {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.MaxRunes <= 0 {
		opts.MaxRunes = DefaultMaxRunes
	}
	return &Router{
		analyzer:    analyzer,
		concurrency: opts.Concurrency,
		maxRunes:    opts.MaxRunes,
		log:         log.With("component", "router"),
	}
}

// Handle analyzes every stock code in text. ok is false when text holds no stock code,
// in which case nothing should be sent back.
func (r *Router) Handle(ctx context.Context, text string) (string, bool) {
	codes := symbol.Extract(text)
	if len(codes) == 0 {
		return "", false
	}
	r.log.Infow("dispatching analyses", "symbols", codes)

	segments := make([]string, len(codes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, code := range codes {
		g.Go(func() error {
			segments[i] = r.analyzer.Analyze(gctx, code)
			return nil
		})
	}
	_ = g.Wait() // analyses report failures as text

	return truncate(strings.Join(segments, segmentSeparator), r.maxRunes), true
}

// truncate cuts s to max runes and appends TruncationMarker when it is longer.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + TruncationMarker
}
