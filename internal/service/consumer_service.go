package service

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"
	"time"

	"teen-coach-be/internal/websocket"
	"teen-coach-be/pkg/events"
	pktNats "teen-coach-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the turn event topic: every recorded turn is
// appended to the JSONL turn log, forwarded to NATS when a connection is
// available, and crisis turns are broadcast to the moderation dashboard.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	turnLogPath string
	natsPub     *pktNats.Publisher
	wsHub       *websocket.Hub

	mu sync.Mutex // serializes turn log appends
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	turnLogPath string,
	natsPub *pktNats.Publisher,
	wsHub *websocket.Hub,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		turnLogPath: turnLogPath,
		natsPub:     natsPub,
		wsHub:       wsHub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload events.TurnRecordedPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal turn event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if err := cs.appendToTurnLog(payload); err != nil {
		log.Printf("[ERROR] Failed to append turn %s to log: %v", payload.TurnId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	// Best effort NATS forward for external consumers.
	if cs.natsPub != nil {
		if err := cs.natsPub.Publish(ctx, events.TurnRecordedEvent{Data: payload}); err != nil {
			log.Printf("[WARN] Failed to forward turn %s to NATS: %v", payload.TurnId, err)
		}
		if payload.Crisis {
			crisisEvent := events.CrisisDetectedEvent{Data: events.CrisisDetectedPayload{
				ChatSessionId: payload.ChatSessionId,
				UserId:        payload.UserId,
				Timestamp:     payload.Timestamp,
			}}
			if err := cs.natsPub.Publish(ctx, crisisEvent); err != nil {
				log.Printf("[WARN] Failed to forward crisis event to NATS: %v", err)
			}
		}
	}

	if payload.Crisis && cs.wsHub != nil {
		cs.wsHub.BroadcastCrisisAlert(map[string]interface{}{
			"chat_session_id": payload.ChatSessionId,
			"timestamp":       payload.Timestamp.Format(time.RFC3339),
		})
	}

	msg.Ack()
}

func (cs *consumerService) appendToTurnLog(payload events.TurnRecordedPayload) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	file, err := os.OpenFile(cs.turnLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	line, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	line = append(line, '\n')
	_, err = file.Write(line)
	return err
}
