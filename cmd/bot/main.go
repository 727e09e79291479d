package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockAdvisor/internal/analysis"
	"StockAdvisor/internal/calculator"
	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/config"
	"StockAdvisor/internal/logger"
	"StockAdvisor/internal/metrics"
	"StockAdvisor/internal/notifier"
	"StockAdvisor/internal/router"
	"StockAdvisor/internal/scheduler"
	"StockAdvisor/internal/server"
)

var version = "dev"

func main() {
	mock := flag.Bool("mock", false, "serve synthetic bars instead of calling the market-data provider")
	flag.Parse()

	// Load config
	cfgPath := config.DefaultPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *mock {
		cfg.Fetch.Provider = "mock"
	}

	if err := logger.Init(logger.Options{Level: cfg.Log.Level, Env: cfg.Log.Env, File: cfg.Log.File}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}
	log.Infow("StockAdvisor starting", "version", version, "config", cfgPath)

	metrics.Init()

	// Market data
	provider := newProvider(cfg)
	session, err := collector.NewSession(cfg.Market.Timezone, cfg.Market.Open, cfg.Market.Close, time.Now)
	if err != nil {
		log.Fatalf("init market session: %v", err)
	}
	col := collector.NewCollector(provider, session, collector.Options{
		Retries:           cfg.Fetch.Retries,
		RequestsPerMinute: cfg.Fetch.RequestsPerMinute,
	}, log)
	log.Infow("data source ready", "provider", provider.Name(), "session_open", session.IsOpen())

	// Analysis and routing
	policy, err := calculator.ParsePolicy(cfg.Analysis.SupportPolicy)
	if err != nil {
		log.Fatalf("support policy: %v", err)
	}
	analyzer := analysis.NewAnalyzer(col, policy, log)
	rt := router.New(analyzer, router.Options{
		Concurrency: cfg.Analysis.MaxConcurrency,
		MaxRunes:    cfg.Reply.MaxRunes,
	}, log)

	// LINE
	var replier notifier.Replier
	if cfg.Line.ChannelAccessToken != "" {
		lr, err := notifier.NewLineReplier(cfg.Line.ChannelAccessToken, cfg.Fetch.Proxy)
		if err != nil {
			log.Fatalf("init LINE replier: %v", err)
		}
		replier = lr
	}
	callback := notifier.NewWebhookHandler(cfg.Line.ChannelSecret, rt, replier, log)

	// Keep-alive, registered once per process
	sched := scheduler.NewScheduler(cfg.KeepAlive.URL, cfg.KeepAlive.Cron, nil, log)
	if _, err := sched.Register(); err != nil {
		log.Fatalf("register keep-alive: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Port:    cfg.Server.Port,
		Service: "stock-advisor",
		Version: version,
	}, server.Handlers{
		Callback: callback,
		Metrics:  metrics.Handler(),
	}, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	log.Info("StockAdvisor is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info("shutdown signal received, stopping...")
	case err := <-errCh:
		if err != nil {
			log.Errorw("HTTP server stopped", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
	log.Info("StockAdvisor stopped")
}

func newProvider(cfg *config.Config) collector.Provider {
	switch cfg.Fetch.Provider {
	case "mock":
		return &collector.MockProvider{Price: cfg.Fetch.MockPrice}
	case "rest":
		return collector.NewRESTProvider(cfg.Fetch.BaseURL, cfg.Fetch.APIKey, cfg.Fetch.Proxy, cfg.Fetch.Timeout)
	default:
		return collector.NewYahooProvider(cfg.Fetch.BaseURL, cfg.Fetch.Proxy, cfg.Fetch.Timeout)
	}
}
