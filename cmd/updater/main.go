package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"LiquiditySentinel/internal/collector"
	"LiquiditySentinel/internal/config"
	"LiquiditySentinel/internal/recorder"
	"LiquiditySentinel/internal/scheduler"
	"LiquiditySentinel/internal/updater"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] LiquiditySentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	if cfg.Providers.FREDAPIKey == "" {
		log.Println("[WARN] no FRED API key configured; requests may be rate-limited")
	}

	// Init fetchers
	coingecko := collector.NewCoinGeckoFetcher(cfg.Providers.CoinGeckoBase, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	upd := &updater.Updater{
		Cfg:       cfg,
		Macro:     collector.NewFREDFetcher(cfg.Providers.FREDBase, cfg.Providers.FREDAPIKey, cfg.Proxy),
		Market:    coingecko,
		Dominance: coingecko,
		Flows:     collector.NewSoSoValueFetcher(cfg.Providers.SoSoValueURL, cfg.Proxy),
		Sentiment: collector.NewFearGreedFetcher(cfg.Providers.FearGreedBase, cfg.Proxy),
		Prices:    collector.NewYahooFetcher(cfg.Providers.YahooBase, cfg.Proxy),
		Recorder:  rec,
	}

	// One-shot mode: run the update sequence once and exit.
	if os.Getenv("RUN_ONCE") == "true" {
		upd.RunOnce()
		log.Println("[INFO] LiquiditySentinel finished")
		return
	}

	// Init scheduler
	sched := scheduler.NewScheduler(upd.RunOnce)
	if err := sched.Register(cfg.Schedule.UpdateCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing update now")
		go sched.RunNow()
	}

	log.Println("[INFO] LiquiditySentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	log.Println("[INFO] LiquiditySentinel stopped")
}
