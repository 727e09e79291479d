package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"StockAdvisor/internal/logger"
	"StockAdvisor/internal/metrics"
	"StockAdvisor/internal/model"
)

// MinIntradayBars is the number of intraday bars needed to skip the daily fallback.
const MinIntradayBars = 3

var (
	// ErrDownloadFailed matches any *DownloadError.
	ErrDownloadFailed = errors.New("download failed")
	// ErrNoData is returned when every call succeeded but none returned bars.
	ErrNoData = errors.New("no data returned")
)

// DownloadError reports that every provider call of the final attempt errored or came back empty,
// with at least one error among them.
type DownloadError struct {
	Granularity string
	Attempts    int
	Err         error // last provider error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("%s download failed after %d attempts: %v", e.Granularity, e.Attempts, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

func (e *DownloadError) Is(target error) bool { return target == ErrDownloadFailed }

// Options tunes retry and rate-limit behavior.
type Options struct {
	Retries           int // provider calls per attempt
	RequestsPerMinute int // 0 disables limiting
}

// Collector orchestrates bar retrieval across granularities.
type Collector struct {
	Provider Provider
	Session  *Session
	Limiter  *rate.Limiter
	Retries  int
	Intraday model.Granularity
	Daily    model.Granularity
	log      *logger.Logger
}

// NewCollector creates a new Collector.
func NewCollector(provider Provider, session *Session, opts Options, log *logger.Logger) *Collector {
	if opts.Retries <= 0 {
		opts.Retries = 3
	}
	return &Collector{
		Provider: provider,
		Session:  session,
		Limiter:  newLimiter(opts.RequestsPerMinute),
		Retries:  opts.Retries,
		Intraday: model.Intraday,
		Daily:    model.Daily,
		log:      log.With("component", "collector", "provider", provider.Name()),
	}
}

func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	// Allow burst of 10% of per-minute limit
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
}

// Fetch retrieves bars for symbol. While the session is open the intraday path is tried
// first and accepted with at least MinIntradayBars bars; otherwise the daily path is used.
// Failure of the daily path is terminal.
func (c *Collector) Fetch(ctx context.Context, symbol string) (*model.BarSeries, error) {
	now := c.Session.Now()
	open := c.Session.IsOpenAt(now)

	if open {
		bars, err := c.attempt(ctx, symbol, c.Intraday, now)
		switch {
		case err != nil:
			c.log.Infow("intraday attempt failed, falling back to daily", "symbol", symbol, "error", err)
		case len(bars) < MinIntradayBars:
			c.log.Infow("intraday bars insufficient, falling back to daily", "symbol", symbol, "bars", len(bars))
		default:
			return c.series(symbol, bars, c.Intraday, open, now), nil
		}
	}

	bars, err := c.attempt(ctx, symbol, c.Daily, now)
	if err != nil {
		return nil, err
	}
	return c.series(symbol, bars, c.Daily, open, now), nil
}

// attempt makes up to Retries provider calls for one granularity, without backoff.
func (c *Collector) attempt(ctx context.Context, symbol string, g model.Granularity, now time.Time) ([]model.OHLCV, error) {
	req := Request{
		Symbol:   symbol,
		Interval: g.Interval,
		Start:    now.Add(-g.Lookback),
		End:      now,
	}

	var lastErr error
	for i := 1; i <= c.Retries; i++ {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, &DownloadError{Granularity: g.Name, Attempts: i - 1, Err: fmt.Errorf("rate limiter: %w", err)}
		}

		table, err := c.Provider.FetchBars(ctx, req)
		if err != nil {
			lastErr = err
			metrics.FetchCalls.WithLabelValues(g.Name, "error").Inc()
			c.log.Warnw("provider call failed",
				"symbol", symbol, "granularity", g.Name, "attempt", i, "max", c.Retries, "error", err)
			continue
		}

		bars, tier := SelectColumn(c.log, symbol, table)
		if len(bars) > 0 {
			metrics.FetchCalls.WithLabelValues(g.Name, "success").Inc()
			c.log.Infow("bars downloaded",
				"symbol", symbol, "granularity", g.Name, "bars", len(bars), "tier", tier, "attempt", i)
			return bars, nil
		}
		metrics.FetchCalls.WithLabelValues(g.Name, "empty").Inc()
		c.log.Debugw("provider returned no bars", "symbol", symbol, "granularity", g.Name, "attempt", i)
	}

	if lastErr != nil {
		return nil, &DownloadError{Granularity: g.Name, Attempts: c.Retries, Err: lastErr}
	}
	return nil, ErrNoData
}

func (c *Collector) series(symbol string, bars []model.OHLCV, g model.Granularity, open bool, now time.Time) *model.BarSeries {
	return &model.BarSeries{
		Symbol:      symbol,
		Bars:        bars,
		Granularity: g,
		SessionOpen: open,
		FetchedAt:   now,
	}
}
