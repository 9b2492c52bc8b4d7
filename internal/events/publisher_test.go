package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
	drained  bool
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.subjects = append(c.subjects, subject)
	c.payloads = append(c.payloads, data)
	return nil
}

func (c *fakeConn) Drain() error {
	c.drained = true
	return nil
}

func TestPublishEncodesEvent(t *testing.T) {
	conn := &fakeConn{}
	p := NewPublisher(conn)

	finished := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	ev := CompletionEvent{
		RoundID:      "r-1",
		GameID:       "memory",
		Player:       "ana",
		Moves:        15,
		MatchedPairs: 12,
		Score:        85,
		DurationMS:   61000,
		FinishedAt:   finished,
	}
	require.NoError(t, p.Publish(ev))

	require.Len(t, conn.subjects, 1)
	assert.Equal(t, "brainarcade.results.memory", conn.subjects[0])
	assert.JSONEq(t, `{
		"round_id": "r-1",
		"game_id": "memory",
		"player": "ana",
		"moves": 15,
		"matched_pairs": 12,
		"score": 85,
		"duration_ms": 61000,
		"finished_at": "2026-03-01T10:00:00Z"
	}`, string(conn.payloads[0]))

	decoded, err := Decode(conn.payloads[0])
	require.NoError(t, err)
	assert.Equal(t, ev, decoded)
}

func TestPublishErrors(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	p := NewPublisher(conn)

	err := p.Publish(CompletionEvent{GameID: "memory"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brainarcade.results.memory")

	assert.Error(t, p.Publish(CompletionEvent{}), "missing game id")

	_, err = Decode([]byte("{"))
	assert.Error(t, err)
}

func TestNilPublisherIsNoop(t *testing.T) {
	var p *Publisher
	assert.NoError(t, p.Publish(CompletionEvent{GameID: "memory"}))
	assert.NoError(t, p.Close())
}

func TestCloseDrains(t *testing.T) {
	conn := &fakeConn{}
	require.NoError(t, NewPublisher(conn).Close())
	assert.True(t, conn.drained)
}

func TestConnectFailure(t *testing.T) {
	_, err := Connect("nats://127.0.0.1:1", "test")
	assert.Error(t, err)
}
