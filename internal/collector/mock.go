package collector

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"StockAdvisor/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
// Data and Err are keyed by interval; intervals without an entry get synthetic bars.
type MockProvider struct {
	Price float64
	Data  map[string]*Table
	Err   map[string]error

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchBars(_ context.Context, req Request) (*Table, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[req.Interval]++
	m.mu.Unlock()

	if err := m.Err[req.Interval]; err != nil {
		return nil, err
	}
	if t, ok := m.Data[req.Interval]; ok {
		return t, nil
	}
	return &Table{Columns: []Column{{Symbol: req.Symbol, Bars: generateMockBars(m.Price, req)}}}, nil
}

// Calls returns how many times interval was requested.
func (m *MockProvider) Calls(interval string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[interval]
}

func generateMockBars(basePrice float64, req Request) []model.OHLCV {
	if basePrice <= 0 {
		basePrice = 100
	}
	step := intervalDuration(req.Interval)
	count := int(req.End.Sub(req.Start) / step)
	if count > 500 {
		count = 500
	}
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   req.End.Add(-time.Duration(count-i) * step),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// intervalDuration parses provider intervals such as "15m", "1h" and "1d".
func intervalDuration(interval string) time.Duration {
	if strings.HasSuffix(interval, "d") {
		if n, err := strconv.Atoi(strings.TrimSuffix(interval, "d")); err == nil && n > 0 {
			return time.Duration(n) * 24 * time.Hour
		}
	}
	if d, err := time.ParseDuration(interval); err == nil && d > 0 {
		return d
	}
	return 24 * time.Hour
}
