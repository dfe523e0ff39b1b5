package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"teen-coach-be/internal/config"
	"teen-coach-be/pkg/events"
	pktNats "teen-coach-be/pkg/nats"

	"github.com/fatih/color"
)

// Moderation-side listener: tails crisis events from the EVENTS stream so an
// on-call reviewer can watch flagged turns without access to the chat service.
func main() {
	cfg := config.Load()

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		color.Red("Failed to connect to NATS at %s: %v", cfg.App.NatsURL, err)
		os.Exit(1)
	}
	defer sub.Close()

	color.Cyan("👁  Watching crisis events on %s", cfg.App.NatsURL)

	err = sub.Subscribe("events.crisis.detected", "crisis-watch", func(ctx context.Context, event events.Event) error {
		data, ok := event.Payload().(map[string]interface{})
		if !ok {
			log.Printf("[WARN] Unexpected payload shape for %s", event.EventType())
			return nil
		}
		color.Red("⚠ crisis turn  session=%v user=%v at=%v",
			data["chat_session_id"], data["user_id"], data["timestamp"])
		return nil
	})
	if err != nil {
		color.Red("Failed to subscribe: %v", err)
		os.Exit(1)
	}

	err = sub.Subscribe("events.turn.recorded", "crisis-watch-turns", func(ctx context.Context, event events.Event) error {
		data, ok := event.Payload().(map[string]interface{})
		if !ok {
			return nil
		}
		log.Printf("turn recorded  session=%v intent=%v risk=%v",
			data["chat_session_id"], data["intent"], data["risk_level"])
		return nil
	})
	if err != nil {
		color.Red("Failed to subscribe: %v", err)
		os.Exit(1)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	color.Yellow("Shutting down.")
}
