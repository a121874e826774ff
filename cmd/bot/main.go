package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"FishSentinel/internal/api"
	"FishSentinel/internal/availability"
	"FishSentinel/internal/catalog"
	"FishSentinel/internal/clock"
	"FishSentinel/internal/config"
	"FishSentinel/internal/eorzea"
	"FishSentinel/internal/notifier"
	"FishSentinel/internal/prefs"
	"FishSentinel/internal/recorder"
	"FishSentinel/internal/scheduler"
	"FishSentinel/internal/zone"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] FishSentinel starting...")

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

	// Weather tables
	oracle := eorzea.Default()
	if cfg.Data.WeatherFile != "" {
		table, names, err := eorzea.LoadTable(cfg.Data.WeatherFile)
		if err != nil {
			log.Fatalf("[FATAL] load weather table: %v", err)
		}
		oracle = eorzea.NewOracle(table, names)
		log.Printf("[INFO] weather table: %s (%d zones)", cfg.Data.WeatherFile, len(table))
	}
	zones := zone.NewResolver(oracle, eorzea.DefaultMapNames(), eorzea.DefaultOverrides())

	// Catalog
	var loader catalog.Loader
	if cfg.Data.BaseURL != "" {
		loader = catalog.NewHTTPLoader(cfg.Data.BaseURL, cfg.Proxy)
	} else {
		loader = catalog.NewFileLoader(cfg.Data.Dir)
	}
	log.Printf("[INFO] catalog source: %s", loader.Name())
	cat := catalog.New(loader, zones)

	engine := availability.NewEngine(oracle, zones, availability.Options{
		MergeLimit:         cfg.Search.MergeLimit,
		WeatherSearchDays:  cfg.Search.WeatherDays,
		CombinedSearchDays: cfg.Search.CombinedDays,
	})

	store, err := prefs.NewStore(cfg.Prefs.StateFile)
	if err != nil {
		log.Fatalf("[FATAL] init prefs: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0755); err != nil {
			log.Printf("[WARN] create database dir: %v", err)
		}
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

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telegram is optional; without a token the bot only serves HTTP.
	var tn *notifier.TelegramNotifier
	var sender scheduler.Sender
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sender = tn
	} else {
		log.Println("[WARN] telegram.bot_token not set, notifications disabled")
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, cat, engine, zones, store, sender, rec, clock.NewSystem())
	if err := sched.Reload(); err != nil {
		log.Printf("[WARN] initial catalog load failed, retrying on schedule: %v", err)
	}
	if err := sched.RegisterAll(cfg.Schedule.TickCron, cfg.Schedule.ReloadCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.New(cat, engine, zones, store, rec, clock.NewSystem()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("[INFO] HTTP API listening on %s", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] http server: %v", err)
		}
	}()

	log.Println("[INFO] FishSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] FishSentinel stopped")
}
