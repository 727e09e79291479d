package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"StockAdvisor/internal/model"
)

// RESTProvider implements Provider against a self-hosted bars API.
//
// GET {BaseURL}/api/v1/bars?symbol=&interval=&start=&end=&prepost= returns either a
// JSON array of bars, or an object mapping symbol to bar arrays when the backend
// batches several tickers.
type RESTProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTProvider creates a new provider with optional proxy support.
func NewRESTProvider(baseURL, apiKey, proxyURL string, timeout time.Duration) *RESTProvider {
	return &RESTProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (p *RESTProvider) Name() string { return "rest" }

// restBar is the expected JSON shape of one bar.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (p *RESTProvider) FetchBars(ctx context.Context, req Request) (*Table, error) {
	q := url.Values{}
	q.Set("symbol", req.Symbol)
	q.Set("interval", req.Interval)
	q.Set("start", strconv.FormatInt(req.Start.Unix(), 10))
	q.Set("end", strconv.FormatInt(req.End.Unix(), 10))
	q.Set("prepost", strconv.FormatBool(req.IncludePrePost))
	endpoint := fmt.Sprintf("%s/api/v1/bars?%s", p.BaseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if p.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)
	}
	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read bars: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, truncateBody(body))
	}
	return decodeRESTBars(req.Symbol, body)
}

func decodeRESTBars(symbol string, body []byte) (*Table, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Table{}, nil
	}

	if trimmed[0] == '[' {
		var bars []restBar
		if err := json.Unmarshal(trimmed, &bars); err != nil {
			return nil, fmt.Errorf("decode bars: %w", err)
		}
		return &Table{Columns: []Column{{Symbol: symbol, Bars: convertRESTBars(bars)}}}, nil
	}

	var batched map[string][]restBar
	if err := json.Unmarshal(trimmed, &batched); err != nil {
		return nil, fmt.Errorf("decode batched bars: %w", err)
	}
	symbols := make([]string, 0, len(batched))
	for s := range batched {
		symbols = append(symbols, s)
	}
	// Map order is random; keep "first available" deterministic.
	sort.Strings(symbols)

	table := &Table{}
	for _, s := range symbols {
		table.Columns = append(table.Columns, Column{Symbol: s, Bars: convertRESTBars(batched[s])})
	}
	return table, nil
}

func convertRESTBars(in []restBar) []model.OHLCV {
	bars := make([]model.OHLCV, len(in))
	for i, rb := range in {
		bars[i] = model.OHLCV{
			Time:   time.Unix(rb.Timestamp, 0),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars
}
