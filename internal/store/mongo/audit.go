package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/suryateja948/Restaurant-API/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CatalogAuditRepository struct {
	collection *mongo.Collection
}

func NewCatalogAuditRepository(db *mongo.Database) *CatalogAuditRepository {
	return &CatalogAuditRepository{
		collection: db.Collection("catalog_audit"),
	}
}

func (r *CatalogAuditRepository) Create(ctx context.Context, audit *domain.CatalogAudit) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectID()
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, audit)
	if err != nil {
		return fmt.Errorf("failed to create catalog audit: %w", err)
	}

	return nil
}

func (r *CatalogAuditRepository) GetByEntityID(ctx context.Context, entityID string, limit int) ([]domain.CatalogAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"entity_id": entityID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog audits: %w", err)
	}
	defer cursor.Close(ctx)

	var audits []domain.CatalogAudit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, fmt.Errorf("failed to decode catalog audits: %w", err)
	}

	return audits, nil
}
