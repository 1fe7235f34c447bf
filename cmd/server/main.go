package main

import (
	"context"
	"log"
	"net/http"

	"focusdash/internal/api"
	"focusdash/internal/db"
	"focusdash/pkg/assist"
	"focusdash/pkg/config"
	"focusdash/pkg/event"
	"focusdash/pkg/focus"
	"focusdash/pkg/task"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var eventLog event.Log
	var tasks task.Store

	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("connect: %v", err)
		}
		defer pool.Close()

		pgEvents := event.NewPgLog(pool)
		if err := pgEvents.EnsureTable(ctx); err != nil {
			log.Fatalf("ensure events table: %v", err)
		}
		eventLog = pgEvents
		events := event.NewBus(eventLog)

		pgTasks := task.NewPgStore(pool, events)
		if err := pgTasks.EnsureTable(ctx); err != nil {
			log.Fatalf("ensure tasks table: %v", err)
		}
		tasks = pgTasks
		run(cfg, tasks, events)
		return
	}

	eventLog = event.NewMemLog()
	events := event.NewBus(eventLog)
	tasks = task.NewMemStore(events)
	run(cfg, tasks, events)
}

func run(cfg config.Config, tasks task.Store, events *event.Bus) {
	client := assist.NewClient(cfg.AssistBaseURL, cfg.AssistAPIKey, cfg.AssistTimeout)
	scanner := assist.NewScanner()
	suggestions := assist.NewSuggestions(client, scanner, tasks, events)
	session := focus.NewSession()
	defer session.Close()

	server := api.New(tasks, suggestions, client, scanner, session, events, cfg.ExtractMaxTasks)

	log.Printf("focusdash listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, server); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
