package repo

import (
	"context"

	"github.com/suryateja948/Restaurant-API/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListQuery carries the optional listing inputs: page (default 1), limit
// (default 10) and a case-insensitive name keyword.
type ListQuery struct {
	Page    int
	Limit   int
	Keyword string
}

func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	return q
}

func (q ListQuery) Skip() int64 {
	n := q.Normalize()
	return int64(n.Limit * (n.Page - 1))
}

type RestaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error)
	// Find lists all restaurants matching the query.
	Find(ctx context.Context, q ListQuery) ([]domain.Restaurant, error)
	// FindAccessible lists Fine Dining restaurants plus those owned by ownerID.
	FindAccessible(ctx context.Context, q ListQuery, ownerID primitive.ObjectID) ([]domain.Restaurant, error)
	// AccessibleIDs returns the ids of Fine Dining restaurants plus those
	// owned by ownerID, for scoping meal listings.
	AccessibleIDs(ctx context.Context, ownerID primitive.ObjectID) ([]primitive.ObjectID, error)
	// Update applies the non-nil patch fields and records updatedBy. Returns
	// the updated document, or domain.ErrNotFound.
	Update(ctx context.Context, id primitive.ObjectID, patch domain.RestaurantPatch, updatedBy primitive.ObjectID) (*domain.Restaurant, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AddMealRef(ctx context.Context, restaurantID, mealID primitive.ObjectID) error
	RemoveMealRef(ctx context.Context, restaurantID, mealID primitive.ObjectID) error
}
