package repo

import (
	"context"

	"github.com/suryateja948/Restaurant-API/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MealRepository interface {
	Create(ctx context.Context, meal *domain.Meal) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error)
	// GetByNameAndRestaurant looks a meal up by its normalized name within one
	// restaurant; returns domain.ErrNotFound on a miss.
	GetByNameAndRestaurant(ctx context.Context, name string, restaurantID primitive.ObjectID) (*domain.Meal, error)
	GetAll(ctx context.Context) ([]domain.Meal, error)
	FindByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]domain.Meal, error)
	FindByRestaurantIDs(ctx context.Context, restaurantIDs []primitive.ObjectID) ([]domain.Meal, error)
	// Update replaces the mutable fields of the meal document in place.
	Update(ctx context.Context, meal *domain.Meal) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) error
}
