package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRESTProvider_SingleSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/bars", r.URL.Path)
		assert.Equal(t, "2330.TW", r.URL.Query().Get("symbol"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"timestamp":20,"open":2,"high":3,"low":1,"close":2.5},{"timestamp":10,"open":1,"high":2,"low":0.5,"close":1.5}]`))
	}))
	defer srv.Close()

	table, err := NewRESTProvider(srv.URL, "secret", "", time.Second).FetchBars(context.Background(), Request{Symbol: "2330.TW", Interval: "1d"})
	require.NoError(t, err)
	require.Len(t, table.Columns, 1)
	require.Len(t, table.Columns[0].Bars, 2)
	assert.Equal(t, 1.5, table.Columns[0].Bars[0].Close)
}

func TestRESTProvider_BatchedSymbols(t *testing.T) {
	table, err := decodeRESTBars("2330.TW", []byte(`{"2454.TW":[{"timestamp":1,"close":9}],"2330.TW":[{"timestamp":1,"close":5}]}`))
	require.NoError(t, err)
	require.Len(t, table.Columns, 2)
	assert.Equal(t, "2330.TW", table.Columns[0].Symbol)

	got, tier := SelectColumn(nil, "2330.TW", table)
	require.Len(t, got, 1)
	assert.Equal(t, 5.0, got[0].Close)
	assert.Equal(t, TierExact, tier)
}

func TestRESTProvider_EmptyAndBadBodies(t *testing.T) {
	table, err := decodeRESTBars("2330.TW", []byte("  "))
	require.NoError(t, err)
	assert.True(t, table.Empty())

	_, err = decodeRESTBars("2330.TW", []byte(`{"broken"`))
	assert.Error(t, err)
}
