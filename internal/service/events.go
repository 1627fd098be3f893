package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/suryateja948/Restaurant-API/internal/domain"
	"github.com/suryateja948/Restaurant-API/internal/queue"
	"go.uber.org/zap"
)

// publishCatalogEvent sends a mutation event to the audit stream after the
// write has committed. Publishing is best-effort: a broker failure is logged
// and never fails the request.
func publishCatalogEvent(ctx context.Context, broker queue.Broker, logger *zap.SugaredLogger, event domain.CatalogEvent) {
	if broker == nil {
		return
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		logger.Errorw("failed to marshal catalog event", "event_type", event.EventType, "error", err)
		return
	}

	if err := broker.Publish(ctx, queue.QueueCatalogEvents, eventBytes); err != nil {
		logger.Errorw("failed to publish catalog event", "event_type", event.EventType, "entity_id", event.EntityID, "error", err)
		return
	}

	logger.Infow("catalog event published", "event_type", event.EventType, "entity_id", event.EntityID)
}
