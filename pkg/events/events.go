// Package events defines the domain events published on the internal bus and
// optionally forwarded to NATS.
package events

import "time"

// Event is anything that can be put on the bus.
type Event interface {
	EventType() string
	Payload() interface{}
}

// BaseEvent is the generic wrapper used when events come back off the wire
// and the concrete type is only known from the subject.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string    { return e.Type }
func (e BaseEvent) Payload() interface{} { return e.Data }

// TurnRecordedPayload describes one completed conversation turn.
type TurnRecordedPayload struct {
	TurnId        string    `json:"turn_id"`
	ChatSessionId string    `json:"chat_session_id"`
	UserId        string    `json:"user_id"`
	Intent        string    `json:"intent"`
	Tone          string    `json:"tone"`
	RiskLevel     string    `json:"risk_level"`
	Crisis        bool      `json:"crisis"`
	CardTitles    []string  `json:"card_titles,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

type TurnRecordedEvent struct {
	Data TurnRecordedPayload
}

func (e TurnRecordedEvent) EventType() string    { return "turn.recorded" }
func (e TurnRecordedEvent) Payload() interface{} { return e.Data }

// CrisisDetectedPayload flags a turn that tripped the crisis gate.
type CrisisDetectedPayload struct {
	ChatSessionId string    `json:"chat_session_id"`
	UserId        string    `json:"user_id"`
	Country       string    `json:"country,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

type CrisisDetectedEvent struct {
	Data CrisisDetectedPayload
}

func (e CrisisDetectedEvent) EventType() string    { return "crisis.detected" }
func (e CrisisDetectedEvent) Payload() interface{} { return e.Data }
