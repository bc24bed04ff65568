package events

import (
	"encoding/json"
	"time"
)

const (
	EntityUser        = "user"
	EntityTransaction = "transaction"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// EntityEvent describes one mutation of a persisted record. The
// payload is intentionally small: consumers that need the record fetch
// it by id.
type EntityEvent struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        string    `json:"id"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntityEvent(entity, action, id, actor string) *EntityEvent {
	return &EntityEvent{
		Entity:    entity,
		Action:    action,
		ID:        id,
		Actor:     actor,
		Timestamp: time.Now(),
	}
}

func (e *EntityEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func EntityEventFromJSON(data []byte) (*EntityEvent, error) {
	var e EntityEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
