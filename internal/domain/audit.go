package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogAudit is the persisted form of a CatalogEvent.
type CatalogAudit struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventType    string             `bson:"event_type" json:"event_type"`
	EntityID     string             `bson:"entity_id" json:"entity_id"`
	RestaurantID string             `bson:"restaurant_id,omitempty" json:"restaurant_id,omitempty"`
	ActorID      string             `bson:"actor_id" json:"actor_id"`
	Detail       string             `bson:"detail,omitempty" json:"detail,omitempty"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
}
