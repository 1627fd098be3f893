package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/suryateja948/Restaurant-API/internal/domain"
	"github.com/suryateja948/Restaurant-API/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RestaurantRepository struct {
	collection *mongo.Collection
}

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{
		collection: db.Collection("restaurants"),
	}
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if restaurant.ID.IsZero() {
		restaurant.ID = primitive.NewObjectID()
	}
	if restaurant.MealIDs == nil {
		restaurant.MealIDs = []primitive.ObjectID{}
	}
	restaurant.CreatedAt = time.Now()
	restaurant.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, restaurant)
	if err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	return nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var restaurant domain.Restaurant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&restaurant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("restaurant not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	return &restaurant, nil
}

func keywordFilter(keyword string) bson.M {
	if keyword == "" {
		return bson.M{}
	}
	return bson.M{
		"name": bson.M{
			"$regex":   keyword,
			"$options": "i",
		},
	}
}

func (r *RestaurantRepository) find(ctx context.Context, filter bson.M, q repo.ListQuery) ([]domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q = q.Normalize()
	opts := options.Find().
		SetLimit(int64(q.Limit)).
		SetSkip(q.Skip()).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	var restaurants []domain.Restaurant
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, fmt.Errorf("failed to decode restaurants: %w", err)
	}

	return restaurants, nil
}

func (r *RestaurantRepository) Find(ctx context.Context, q repo.ListQuery) ([]domain.Restaurant, error) {
	return r.find(ctx, keywordFilter(q.Keyword), q)
}

func accessibleFilter(keyword string, ownerID primitive.ObjectID) bson.M {
	fineDining := bson.M{"category": domain.CategoryFineDining}
	owned := bson.M{"user": ownerID}
	if keyword != "" {
		name := bson.M{"$regex": keyword, "$options": "i"}
		fineDining["name"] = name
		owned["name"] = name
	}
	return bson.M{"$or": bson.A{fineDining, owned}}
}

func (r *RestaurantRepository) FindAccessible(ctx context.Context, q repo.ListQuery, ownerID primitive.ObjectID) ([]domain.Restaurant, error) {
	return r.find(ctx, accessibleFilter(q.Keyword, ownerID), q)
}

func (r *RestaurantRepository) AccessibleIDs(ctx context.Context, ownerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, accessibleFilter("", ownerID), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list accessible restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode restaurant ids: %w", err)
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}

	return ids, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.RestaurantPatch, updatedBy primitive.ObjectID) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	set := bson.M{
		"updated_by": updatedBy,
		"updated_at": time.Now(),
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.PhoneNo != nil {
		set["phone_no"] = *patch.PhoneNo
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Images != nil {
		set["images"] = patch.Images
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Restaurant
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("restaurant not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}

	return &updated, nil
}

func (r *RestaurantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("restaurant not found: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *RestaurantRepository) AddMealRef(ctx context.Context, restaurantID, mealID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{"meals": mealID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": restaurantID}, update)
	if err != nil {
		return fmt.Errorf("failed to add meal reference: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("restaurant not found: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *RestaurantRepository) RemoveMealRef(ctx context.Context, restaurantID, mealID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"meals": mealID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": restaurantID}, update)
	if err != nil {
		return fmt.Errorf("failed to remove meal reference: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("restaurant not found: %w", domain.ErrNotFound)
	}

	return nil
}
