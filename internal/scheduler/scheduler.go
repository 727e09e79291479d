package scheduler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"StockAdvisor/internal/logger"
	"StockAdvisor/internal/metrics"
)

// DefaultSpec pings every ten minutes, inside the idle window of free hosting tiers.
const DefaultSpec = "@every 10m"

// Scheduler owns the keep-alive cron job. It shares no state with request handling.
type Scheduler struct {
	Cron   *cron.Cron
	URL    string
	Spec   string
	Client *http.Client
	log    *logger.Logger
}

// NewScheduler creates a new Scheduler. An empty spec selects DefaultSpec.
func NewScheduler(url, spec string, client *http.Client, log *logger.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Scheduler{
		Cron:   cron.New(),
		URL:    url,
		Spec:   spec,
		Client: client,
		log:    log.With("component", "keepalive"),
	}
}

// Register adds the keep-alive job. It reports false when no URL is configured.
func (s *Scheduler) Register() (bool, error) {
	if s.URL == "" {
		s.log.Info("keep-alive disabled: no URL configured")
		return false, nil
	}
	if _, err := s.Cron.AddFunc(s.Spec, s.tick); err != nil {
		return false, fmt.Errorf("register keep-alive task %q: %w", s.Spec, err)
	}
	s.log.Infow("keep-alive registered", "url", s.URL, "spec", s.Spec)
	return true, nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running ping to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.Client.Timeout+time.Second)
	defer cancel()
	s.Ping(ctx)
}

// Ping issues one GET against URL. Failures are logged and counted, never returned to the caller's flow.
func (s *Scheduler) Ping(ctx context.Context) error {
	err := s.ping(ctx)
	if err != nil {
		metrics.KeepAlivePings.WithLabelValues("failed").Inc()
		s.log.Warnw("keep-alive ping failed", "url", s.URL, "error", err)
		return err
	}
	metrics.KeepAlivePings.WithLabelValues("success").Inc()
	s.log.Debugw("keep-alive ping ok", "url", s.URL)
	return nil
}

func (s *Scheduler) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
