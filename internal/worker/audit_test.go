package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suryateja948/Restaurant-API/internal/domain"
	"github.com/suryateja948/Restaurant-API/internal/queue"
	"go.uber.org/zap"
)

type fakeAuditRepo struct {
	audits []domain.CatalogAudit
}

func (f *fakeAuditRepo) Create(_ context.Context, audit *domain.CatalogAudit) error {
	f.audits = append(f.audits, *audit)
	return nil
}

func (f *fakeAuditRepo) GetByEntityID(_ context.Context, entityID string, limit int) ([]domain.CatalogAudit, error) {
	var out []domain.CatalogAudit
	for _, a := range f.audits {
		if a.EntityID == entityID {
			out = append(out, a)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type subscribingBroker struct {
	queueName string
	handler   queue.MessageHandler
}

func (b *subscribingBroker) Publish(_ context.Context, _ string, _ []byte) error { return nil }

func (b *subscribingBroker) Subscribe(_ context.Context, queueName string, handler queue.MessageHandler) error {
	b.queueName = queueName
	b.handler = handler
	return nil
}

func (b *subscribingBroker) Close() error { return nil }

func TestCatalogAuditWorker_PersistsEvents(t *testing.T) {
	repo := &fakeAuditRepo{}
	broker := &subscribingBroker{}
	w := NewCatalogAuditWorker(repo, broker, zap.NewNop().Sugar())
	defer w.Stop()

	require.NoError(t, w.Start())
	assert.Equal(t, queue.QueueCatalogEvents, broker.queueName)
	require.NotNil(t, broker.handler)

	event := domain.CatalogEvent{
		EventType:    domain.EventMealCreated,
		EntityID:     "meal-1",
		RestaurantID: "rest-1",
		ActorID:      "user-1",
		Timestamp:    time.Now(),
	}
	body, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, broker.handler(context.Background(), body))

	require.Len(t, repo.audits, 1)
	assert.Equal(t, domain.EventMealCreated, repo.audits[0].EventType)
	assert.Equal(t, "meal-1", repo.audits[0].EntityID)
	assert.Equal(t, "user-1", repo.audits[0].ActorID)
}

func TestCatalogAuditWorker_DefaultsTimestamp(t *testing.T) {
	repo := &fakeAuditRepo{}
	w := NewCatalogAuditWorker(repo, &subscribingBroker{}, zap.NewNop().Sugar())
	defer w.Stop()

	body, err := json.Marshal(domain.CatalogEvent{EventType: domain.EventRestaurantDeleted, EntityID: "rest-2"})
	require.NoError(t, err)

	require.NoError(t, w.handleMessage(context.Background(), body))

	require.Len(t, repo.audits, 1)
	assert.False(t, repo.audits[0].Timestamp.IsZero())
}

func TestCatalogAuditWorker_RejectsMalformedMessage(t *testing.T) {
	repo := &fakeAuditRepo{}
	w := NewCatalogAuditWorker(repo, &subscribingBroker{}, zap.NewNop().Sugar())
	defer w.Stop()

	err := w.handleMessage(context.Background(), []byte("not json"))
	require.Error(t, err)
	assert.Empty(t, repo.audits)
}
