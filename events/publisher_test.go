package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestNewEnvelope(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	env, err := NewEnvelope(GameScoreUpdated, map[string]any{"game_id": "g-1", "team1_score": 13}, now)
	if err != nil {
		t.Fatalf("new envelope: %v", err)
	}
	if env.EventID == "" {
		t.Fatal("expected event id")
	}
	if env.EventType != GameScoreUpdated {
		t.Fatalf("event type = %q, want %q", env.EventType, GameScoreUpdated)
	}
	if env.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp location = %v, want UTC", env.Timestamp.Location())
	}

	var payload map[string]any
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["game_id"] != "g-1" {
		t.Fatalf("payload game_id = %v", payload["game_id"])
	}
}

func TestNewEnvelopeRejectsUnencodablePayload(t *testing.T) {
	if _, err := NewEnvelope(GameCreated, make(chan int), time.Now()); err == nil {
		t.Fatal("expected marshal error")
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.Publish(context.Background(), TeamCreated, nil); err != nil {
		t.Fatalf("publish: %v", err)
	}
}
