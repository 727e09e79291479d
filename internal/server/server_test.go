package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAdvisor/internal/logger"
)

func testHandler(callback http.Handler) http.Handler {
	if callback == nil {
		callback = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("OK"))
		})
	}
	return NewHandler(Config{Service: "stock-advisor", Version: "test"}, Handlers{
		Callback: callback,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("# metrics"))
		}),
	}, logger.Nop())
}

func do(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestWakeUp(t *testing.T) {
	rec := do(testHandler(nil), http.MethodGet, "/render_wake_up")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, WakeUpReply, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestWakeUp_RejectsPost(t *testing.T) {
	rec := do(testHandler(nil), http.MethodPost, "/render_wake_up")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthz(t *testing.T) {
	rec := do(testHandler(nil), http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "stock-advisor", status.Service)
	assert.NotEmpty(t, status.Uptime)
}

func TestHealth_Uptime(t *testing.T) {
	start := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)
	h := &healthHandler{service: "s", start: start, now: func() time.Time { return start.Add(3 * time.Hour) }}
	rec := httptest.NewRecorder()
	h.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "3 hours", status.Uptime)
}

func TestMetricsAndCallbackRouted(t *testing.T) {
	h := testHandler(nil)
	assert.Equal(t, "# metrics", do(h, http.MethodGet, "/metrics").Body.String())
	assert.Equal(t, "OK", do(h, http.MethodPost, "/callback").Body.String())
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/nope").Code)
}

func TestRecovery(t *testing.T) {
	h := testHandler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := do(h, http.MethodPost, "/callback")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(mw("a"), mw("b"), mw("c"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "c", "handler"}, order)
}

func TestServer_ServeAndStop(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(Config{Service: "stock-advisor"}, Handlers{Callback: http.NotFoundHandler()}, logger.Nop())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/render_wake_up")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, WakeUpReply, string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.NoError(t, <-done)
}
