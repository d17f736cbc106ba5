package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketPanel/internal/cache"
	"MarketPanel/internal/collector"
	"MarketPanel/internal/config"
	"MarketPanel/internal/logger"
	"MarketPanel/internal/panel"
	"MarketPanel/internal/report"
	"MarketPanel/internal/scheduler"
	"MarketPanel/internal/server"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "path to the YAML config")
	once := flag.Bool("once", false, "render the panel once, print the summary and exit")
	flag.Parse()
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		*cfgPath = v
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Init(cfg.Log)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}
	log.Info("MarketPanel starting...")

	start, _ := cfg.StartDate()
	entry, _ := cfg.EntryDate()

	src := newSource(cfg, start)
	if cfg.DataSource.Breaker.Enabled {
		src = collector.NewBreakerSource(src, cfg.DataSource.Breaker.Options)
	}
	log.Infof("data source: %s", src.Name())

	p := panel.New(collector.NewFallbackFetcher(src), cache.New(nil), panel.Options{
		Candidates:       cfg.DataSource.Candidates,
		Start:            start,
		TTL:              cfg.Cache.TTL,
		EntryDate:        entry,
		EntryLabel:       cfg.Chart.EntryLabel,
		ReferenceLabel:   cfg.Chart.ReferenceLabel,
		ReferenceValues:  cfg.Chart.ReferenceValues,
		DefaultReference: cfg.Chart.DefaultReference,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *once {
		v := p.Render(ctx)
		fmt.Print(report.FormatSummary(v))
		if v.Status == panel.StatusEmpty {
			os.Exit(2)
		}
		return
	}

	sched := scheduler.NewScheduler(ctx, p)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, rendering panel now")
		go sched.RunNow()
	}

	srv := server.New(cfg.Server.Addr, p, cfg.Log.Level == "debug")
	go func() {
		if err := srv.Start(); err != nil {
			log.Errorf("http server: %v", err)
			cancel()
		}
	}()

	log.Info("MarketPanel is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info("shutdown signal received, stopping...")
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("http shutdown: %v", err)
	}
	log.Info("MarketPanel stopped")
}

// newSource picks the provider named in the config. The mock provider serves
// a synthetic series for each candidate ending at its reference value.
func newSource(cfg *config.Config, start time.Time) collector.Source {
	if cfg.DataSource.Provider == "mock" {
		m := collector.NewMockSource()
		for _, c := range cfg.DataSource.Candidates {
			ref, ok := cfg.Chart.ReferenceValues[c.Label]
			if !ok {
				ref = cfg.Chart.DefaultReference
			}
			m.Series[c.Symbol] = collector.GenerateBars(start, 250, ref*0.85, ref)
		}
		return m
	}
	return collector.NewYahooSource(collector.YahooOptions{
		BaseURL:     cfg.DataSource.BaseURL,
		ProxyURL:    cfg.Proxy,
		Timeout:     cfg.DataSource.Timeout,
		MinInterval: cfg.DataSource.MinInterval,
		AutoAdjust:  *cfg.DataSource.AutoAdjust,
	})
}
