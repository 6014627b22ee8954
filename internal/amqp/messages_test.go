package amqp

import (
	"testing"
	"time"
)

func TestNewMutationMessage(t *testing.T) {
	before := time.Now()
	msg := NewMutationMessage("resident", "update", "abc-123")
	after := time.Now()

	if msg.Entity != "resident" || msg.Op != "update" || msg.ID != "abc-123" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Timestamp.Before(before) || msg.Timestamp.After(after) {
		t.Errorf("timestamp %v not between %v and %v", msg.Timestamp, before, after)
	}
}

func TestMutationMessage_JSON(t *testing.T) {
	msg := NewMutationMessage("expense", "delete", "id-9")
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := MutationMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Entity != msg.Entity || got.Op != msg.Op || got.ID != msg.ID {
		t.Errorf("round trip mismatch: %+v vs %+v", got, msg)
	}
	if !got.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("timestamp mismatch: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestMutationMessage_InvalidJSON(t *testing.T) {
	if _, err := MutationMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
