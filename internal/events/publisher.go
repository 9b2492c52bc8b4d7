// Package events publishes round completion reports to NATS so other
// services can follow results without polling the database.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// SubjectPrefix is prepended to the game id to form the publish subject.
const SubjectPrefix = "brainarcade.results."

// CompletionEvent is the JSON payload published when a round completes.
type CompletionEvent struct {
	RoundID      string    `json:"round_id"`
	GameID       string    `json:"game_id"`
	Player       string    `json:"player,omitempty"`
	Moves        int       `json:"moves"`
	MatchedPairs int       `json:"matched_pairs"`
	Score        int       `json:"score"`
	DurationMS   int64     `json:"duration_ms"`
	FinishedAt   time.Time `json:"finished_at"`
}

// Conn is the subset of *nats.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// Publisher sends completion events. A nil *Publisher is valid and
// publishes nothing, so callers need no branching when NATS is disabled.
type Publisher struct {
	conn Conn
}

// Connect dials the NATS server at url.
func Connect(url, name string) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(10 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(5),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("events: connect %s: %w", url, err)
	}
	return NewPublisher(nc), nil
}

// NewPublisher wraps an existing connection.
func NewPublisher(conn Conn) *Publisher {
	return &Publisher{conn: conn}
}

// Subject returns the subject events for gameID are published on.
func Subject(gameID string) string {
	return SubjectPrefix + gameID
}

// Publish sends ev on the subject of its game.
func (p *Publisher) Publish(ev CompletionEvent) error {
	if p == nil || p.conn == nil {
		return nil
	}
	if ev.GameID == "" {
		return fmt.Errorf("events: completion event has no game id")
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("events: encode: %w", err)
	}
	if err := p.conn.Publish(Subject(ev.GameID), data); err != nil {
		return fmt.Errorf("events: publish %s: %w", Subject(ev.GameID), err)
	}
	return nil
}

// Close flushes pending messages and closes the connection.
func (p *Publisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}

// Decode parses a payload received on a results subject.
func Decode(data []byte) (CompletionEvent, error) {
	var ev CompletionEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return ev, fmt.Errorf("events: decode: %w", err)
	}
	return ev, nil
}
