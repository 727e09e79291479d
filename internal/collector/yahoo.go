package collector

import (
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

// DefaultYahooBaseURL is the public Yahoo Finance chart endpoint root.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooProvider implements Provider using the Yahoo Finance chart API.
type YahooProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooProvider creates a Yahoo provider with optional proxy support.
func NewYahooProvider(baseURL, proxyURL string, timeout time.Duration) *YahooProvider {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	return &YahooProvider{
		BaseURL: baseURL,
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol string `json:"symbol"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (p *YahooProvider) FetchBars(ctx context.Context, req Request) (*Table, error) {
	q := url.Values{}
	q.Set("interval", req.Interval)
	q.Set("period1", strconv.FormatInt(req.Start.Unix(), 10))
	q.Set("period2", strconv.FormatInt(req.End.Unix(), 10))
	q.Set("includePrePost", strconv.FormatBool(req.IncludePrePost))
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", p.BaseURL, url.PathEscape(req.Symbol), q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		// Unknown symbol: Yahoo answers 404 with a chart.error payload. Treat as empty.
		return &Table{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, truncateBody(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}

	table := &Table{}
	for _, result := range chart.Chart.Result {
		col := Column{Symbol: result.Meta.Symbol}
		if col.Symbol == "" {
			col.Symbol = req.Symbol
		}
		if len(result.Indicators.Quote) > 0 {
			quote := result.Indicators.Quote[0]
			for i, ts := range result.Timestamp {
				o, okO := at(quote.Open, i)
				h, okH := at(quote.High, i)
				l, okL := at(quote.Low, i)
				c, okC := at(quote.Close, i)
				if !okO || !okH || !okL || !okC {
					continue // null bar (halt, holiday, partial candle)
				}
				v, _ := at(quote.Volume, i)
				col.Bars = append(col.Bars, model.OHLCV{
					Time:   time.Unix(ts, 0),
					Open:   o,
					High:   h,
					Low:    l,
					Close:  c,
					Volume: v,
				})
			}
		}
		sort.Slice(col.Bars, func(i, j int) bool { return col.Bars[i].Time.Before(col.Bars[j].Time) })
		table.Columns = append(table.Columns, col)
	}
	return table, nil
}

func at(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}

func truncateBody(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
