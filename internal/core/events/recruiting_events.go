package events

import (
	"time"

	"github.com/google/uuid"
)

const EntityChangedEventType = "entity.changed"

// Entity kinds carried by EntityChangedEvent.
const (
	EntityJob         = "job"
	EntityCandidate   = "candidate"
	EntityApplication = "application"
	EntityInterview   = "interview"
	EntityFeedback    = "feedback"
	EntityTenant      = "tenant"
)

// EntityChangedEvent is published after any successful mutation of a
// tenant-scoped entity. Subscribers use it to drop stale cached views.
type EntityChangedEvent struct {
	ID        string
	Entity    string
	EntityID  string
	TenantID  string
	Action    string // created | updated | deleted
	Timestamp time.Time
}

func NewEntityChangedEvent(entity, entityID, tenantID, action string) EntityChangedEvent {
	return EntityChangedEvent{
		ID:        uuid.NewString(),
		Entity:    entity,
		EntityID:  entityID,
		TenantID:  tenantID,
		Action:    action,
		Timestamp: time.Now(),
	}
}

func (e EntityChangedEvent) EventType() string     { return EntityChangedEventType }
func (e EntityChangedEvent) EventID() string       { return e.ID }
func (e EntityChangedEvent) OccurredAt() time.Time { return e.Timestamp }

func (e EntityChangedEvent) Payload() interface{} {
	return map[string]interface{}{
		"entity":    e.Entity,
		"entity_id": e.EntityID,
		"tenant_id": e.TenantID,
		"action":    e.Action,
	}
}
