package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jobnest/jobnest/internal/core/events"
)

// Views caches serialized list responses per tenant. A nil *Views is a
// valid no-op so services do not branch on whether caching is enabled.
type Views struct {
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

func NewViews(cache Cache, ttl time.Duration, logger *slog.Logger) *Views {
	return &Views{cache: cache, ttl: ttl, logger: logger}
}

// GetList unmarshals the cached list view into out. Cache failures degrade
// to a miss; the caller falls through to storage.
func (v *Views) GetList(ctx context.Context, entity, tenantID string, out interface{}) bool {
	if v == nil {
		return false
	}
	data, found, err := v.cache.Get(ctx, ListKey(entity, tenantID))
	if err != nil {
		v.logger.Warn("cache read failed", "entity", entity, "tenant_id", tenantID, "error", err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		v.logger.Warn("cache entry corrupt, dropping", "entity", entity, "tenant_id", tenantID, "error", err)
		_ = v.cache.Delete(ctx, ListKey(entity, tenantID))
		return false
	}
	return true
}

func (v *Views) PutList(ctx context.Context, entity, tenantID string, val interface{}) {
	if v == nil {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		v.logger.Warn("cache marshal failed", "entity", entity, "error", err)
		return
	}
	if err := v.cache.Set(ctx, ListKey(entity, tenantID), data, v.ttl); err != nil {
		v.logger.Warn("cache write failed", "entity", entity, "tenant_id", tenantID, "error", err)
	}
}

func (v *Views) DropList(ctx context.Context, entity, tenantID string) {
	if v == nil {
		return
	}
	if err := v.cache.Delete(ctx, ListKey(entity, tenantID)); err != nil {
		v.logger.Warn("cache invalidation failed", "entity", entity, "tenant_id", tenantID, "error", err)
	}
}

// SubscribeInvalidation drops the affected tenant's cached list view
// whenever an entity mutation is published.
func (v *Views) SubscribeInvalidation(bus *events.EventBus) {
	if v == nil || bus == nil {
		return
	}
	bus.Subscribe(events.EntityChangedEventType, func(ctx context.Context, event events.Event) error {
		changed, ok := event.(events.EntityChangedEvent)
		if !ok {
			return nil
		}
		v.DropList(ctx, changed.Entity, changed.TenantID)
		return nil
	})
}
