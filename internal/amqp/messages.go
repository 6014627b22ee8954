package amqp

import (
	"encoding/json"
	"time"
)

// MutationMessage tells the worker that the ledger changed. It carries only
// the entity/op/id triple; the worker reloads the snapshot from the store
// and rebuilds the summary from it.
type MutationMessage struct {
	Entity    string    `json:"entity"`
	Op        string    `json:"op"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMutationMessage creates a mutation message stamped with the current time
func NewMutationMessage(entity, op, id string) *MutationMessage {
	return &MutationMessage{
		Entity:    entity,
		Op:        op,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *MutationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MutationMessageFromJSON creates a message from JSON bytes
func MutationMessageFromJSON(data []byte) (*MutationMessage, error) {
	var msg MutationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
