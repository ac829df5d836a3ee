package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// EventsChannel carries user-facing lifecycle events, relayed to
	// websocket clients by the hub.
	EventsChannel = "leeder.events"

	// ContractsChannel is the external hook consumed by the contract
	// generation service when an application is accepted. Nothing in this
	// codebase generates contracts; we only publish the trigger.
	ContractsChannel = "leeder.contracts"
)

const (
	EventApplicationSubmitted = "application.submitted"
	EventApplicationStatus    = "application.status_changed"
	EventMissionStatus        = "mission.status_changed"
	EventContractGenerate     = "contract.generate"
)

// Event is the wire shape published to Redis. UserID addresses the
// recipient; the hub drops events for users without an open socket.
type Event struct {
	Type      string         `json:"type"`
	UserID    uuid.UUID      `json:"user_id"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type Publisher struct {
	RDB *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{RDB: rdb}
}

// Publish is best-effort: a failed publish is logged and swallowed so a
// notification problem never fails the mutation that triggered it.
func (p *Publisher) Publish(ctx context.Context, channel string, ev Event) {
	if p == nil || p.RDB == nil {
		return
	}
	ev.CreatedAt = time.Now()

	b, err := json.Marshal(ev)
	if err != nil {
		log.Printf("notify: marshal event failed: %v", err)
		return
	}
	if err := p.RDB.Publish(ctx, channel, b).Err(); err != nil {
		log.Printf("notify: publish %s failed: %v", ev.Type, err)
	}
}
