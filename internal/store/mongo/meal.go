package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/suryateja948/Restaurant-API/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MealRepository struct {
	collection *mongo.Collection
}

func NewMealRepository(db *mongo.Database) *MealRepository {
	return &MealRepository{
		collection: db.Collection("meals"),
	}
}

func (r *MealRepository) Create(ctx context.Context, meal *domain.Meal) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if meal.ID.IsZero() {
		meal.ID = primitive.NewObjectID()
	}
	meal.CreatedAt = time.Now()
	meal.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, meal)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("duplicate meal name for restaurant: %w", domain.ErrConflict)
		}
		return fmt.Errorf("failed to create meal: %w", err)
	}

	return nil
}

func (r *MealRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var meal domain.Meal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&meal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("meal not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	return &meal, nil
}

func (r *MealRepository) GetByNameAndRestaurant(ctx context.Context, name string, restaurantID primitive.ObjectID) (*domain.Meal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var meal domain.Meal
	err := r.collection.FindOne(ctx, bson.M{"name": name, "restaurant": restaurantID}).Decode(&meal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("meal not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get meal by name: %w", err)
	}

	return &meal, nil
}

func (r *MealRepository) GetAll(ctx context.Context) ([]domain.Meal, error) {
	return r.findAll(ctx, bson.M{})
}

func (r *MealRepository) FindByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]domain.Meal, error) {
	return r.findAll(ctx, bson.M{"restaurant": restaurantID})
}

func (r *MealRepository) FindByRestaurantIDs(ctx context.Context, restaurantIDs []primitive.ObjectID) ([]domain.Meal, error) {
	if len(restaurantIDs) == 0 {
		return []domain.Meal{}, nil
	}
	return r.findAll(ctx, bson.M{"restaurant": bson.M{"$in": restaurantIDs}})
}

func (r *MealRepository) findAll(ctx context.Context, filter bson.M) ([]domain.Meal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer cursor.Close(ctx)

	var meals []domain.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, fmt.Errorf("failed to decode meals: %w", err)
	}

	return meals, nil
}

func (r *MealRepository) Update(ctx context.Context, meal *domain.Meal) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	meal.UpdatedAt = time.Now()

	set := bson.M{
		"name":        meal.Name,
		"description": meal.Description,
		"price":       meal.Price,
		"category":    meal.Category,
		"user":        meal.UserID,
		"updated_at":  meal.UpdatedAt,
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": meal.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update meal: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("meal not found: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *MealRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("meal not found: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *MealRepository) DeleteByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"restaurant": restaurantID}); err != nil {
		return fmt.Errorf("failed to delete meals for restaurant: %w", err)
	}

	return nil
}
