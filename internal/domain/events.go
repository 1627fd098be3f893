package domain

import "time"

// CatalogEvent is published after every committed restaurant or meal mutation
// and consumed by the audit worker.
type CatalogEvent struct {
	EventType    string    `json:"event_type"`
	EntityID     string    `json:"entity_id"`
	RestaurantID string    `json:"restaurant_id,omitempty"`
	ActorID      string    `json:"actor_id"`
	Detail       string    `json:"detail,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

const (
	EventRestaurantCreated = "restaurant.created"
	EventRestaurantUpdated = "restaurant.updated"
	EventRestaurantDeleted = "restaurant.deleted"
	EventMealCreated       = "meal.created"
	EventMealUpdated       = "meal.updated"
	EventMealDeleted       = "meal.deleted"
)
