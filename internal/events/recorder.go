package events

import (
	"context"
	"log/slog"
)

// Publisher is the sink a Recorder writes to.
type Publisher interface {
	Publish(ctx context.Context, event *EntityEvent) error
}

// Recorder emits audit events for entity mutations. A nil publisher
// makes it a no-op, so handlers can record unconditionally. A publish
// failure is logged and swallowed: the mutation already happened and
// must not be reported as failed.
type Recorder struct {
	pub Publisher
}

func NewRecorder(pub Publisher) *Recorder {
	return &Recorder{pub: pub}
}

func (r *Recorder) Record(ctx context.Context, entity, action, id, actor string) {
	if r == nil || r.pub == nil {
		return
	}
	event := NewEntityEvent(entity, action, id, actor)
	if err := r.pub.Publish(ctx, event); err != nil {
		slog.ErrorContext(ctx, "Failed to publish entity event",
			"error", err,
			"entity", entity,
			"action", action,
			"id", id)
	}
}
