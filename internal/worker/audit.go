package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/suryateja948/Restaurant-API/internal/domain"
	"github.com/suryateja948/Restaurant-API/internal/queue"
	"github.com/suryateja948/Restaurant-API/internal/repo"
	"go.uber.org/zap"
)

// CatalogAuditWorker drains the catalog event queue into the audit
// collection.
type CatalogAuditWorker struct {
	auditRepo repo.CatalogAuditRepository
	broker    queue.Broker
	logger    *zap.SugaredLogger
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewCatalogAuditWorker(
	auditRepo repo.CatalogAuditRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *CatalogAuditWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &CatalogAuditWorker{
		auditRepo: auditRepo,
		broker:    broker,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (w *CatalogAuditWorker) Start() error {
	w.logger.Info("starting catalog audit worker")

	return w.broker.Subscribe(w.ctx, queue.QueueCatalogEvents, w.handleMessage)
}

func (w *CatalogAuditWorker) Stop() {
	w.logger.Info("stopping catalog audit worker")
	w.cancel()
}

func (w *CatalogAuditWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.CatalogEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal catalog event", "error", err)
		return fmt.Errorf("failed to unmarshal catalog event: %w", err)
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	audit := &domain.CatalogAudit{
		EventType:    event.EventType,
		EntityID:     event.EntityID,
		RestaurantID: event.RestaurantID,
		ActorID:      event.ActorID,
		Detail:       event.Detail,
		Timestamp:    event.Timestamp,
	}

	if err := w.auditRepo.Create(ctx, audit); err != nil {
		w.logger.Errorw("failed to persist catalog audit", "entity_id", event.EntityID, "error", err)
		return err
	}

	w.logger.Infow("catalog audit recorded", "event_type", event.EventType, "entity_id", event.EntityID)

	return nil
}
