package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/suryateja948/Restaurant-API/internal/domain"
	"github.com/suryateja948/Restaurant-API/internal/queue"
	"github.com/suryateja948/Restaurant-API/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the service tests. They mirror the mongo
// implementations' behavior, including wrapping domain.ErrNotFound and
// domain.ErrConflict the same way.

type fakeUserRepo struct {
	mu    sync.Mutex
	users []*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate email: %w", domain.ErrConflict)
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	copied := *user
	f.users = append(f.users, &copied)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
}

func (f *fakeUserRepo) GetAll(_ context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		copied := *u
		copied.Password = ""
		users = append(users, copied)
	}
	return users, nil
}

type fakeRestaurantRepo struct {
	mu          sync.Mutex
	restaurants []*domain.Restaurant
}

func (f *fakeRestaurantRepo) Create(_ context.Context, r *domain.Restaurant) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if r.MealIDs == nil {
		r.MealIDs = []primitive.ObjectID{}
	}
	copied := *r
	f.restaurants = append(f.restaurants, &copied)
	return nil
}

func (f *fakeRestaurantRepo) get(id primitive.ObjectID) *domain.Restaurant {
	for _, r := range f.restaurants {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (f *fakeRestaurantRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if r := f.get(id); r != nil {
		copied := *r
		return &copied, nil
	}
	return nil, fmt.Errorf("restaurant not found: %w", domain.ErrNotFound)
}

func matchKeyword(name, keyword string) bool {
	if keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(keyword))
}

func paginate(restaurants []domain.Restaurant, q repo.ListQuery) []domain.Restaurant {
	q = q.Normalize()
	skip := int(q.Skip())
	if skip >= len(restaurants) {
		return []domain.Restaurant{}
	}
	end := skip + q.Limit
	if end > len(restaurants) {
		end = len(restaurants)
	}
	return restaurants[skip:end]
}

func (f *fakeRestaurantRepo) Find(_ context.Context, q repo.ListQuery) ([]domain.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Restaurant
	for _, r := range f.restaurants {
		if matchKeyword(r.Name, q.Keyword) {
			out = append(out, *r)
		}
	}
	return paginate(out, q), nil
}

func (f *fakeRestaurantRepo) FindAccessible(_ context.Context, q repo.ListQuery, ownerID primitive.ObjectID) ([]domain.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Restaurant
	for _, r := range f.restaurants {
		if (r.Category == domain.CategoryFineDining || r.UserID == ownerID) && matchKeyword(r.Name, q.Keyword) {
			out = append(out, *r)
		}
	}
	return paginate(out, q), nil
}

func (f *fakeRestaurantRepo) AccessibleIDs(_ context.Context, ownerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var ids []primitive.ObjectID
	for _, r := range f.restaurants {
		if r.Category == domain.CategoryFineDining || r.UserID == ownerID {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (f *fakeRestaurantRepo) Update(_ context.Context, id primitive.ObjectID, patch domain.RestaurantPatch, updatedBy primitive.ObjectID) (*domain.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := f.get(id)
	if r == nil {
		return nil, fmt.Errorf("restaurant not found: %w", domain.ErrNotFound)
	}

	if patch.Name != nil {
		r.Name = *patch.Name
	}
	if patch.Description != nil {
		r.Description = *patch.Description
	}
	if patch.Email != nil {
		r.Email = *patch.Email
	}
	if patch.PhoneNo != nil {
		r.PhoneNo = *patch.PhoneNo
	}
	if patch.Address != nil {
		r.Address = *patch.Address
	}
	if patch.Category != nil {
		r.Category = *patch.Category
	}
	if patch.Images != nil {
		r.Images = patch.Images
	}
	r.UpdatedByID = updatedBy

	copied := *r
	return &copied, nil
}

func (f *fakeRestaurantRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, r := range f.restaurants {
		if r.ID == id {
			f.restaurants = append(f.restaurants[:i], f.restaurants[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("restaurant not found: %w", domain.ErrNotFound)
}

func (f *fakeRestaurantRepo) AddMealRef(_ context.Context, restaurantID, mealID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := f.get(restaurantID)
	if r == nil {
		return fmt.Errorf("restaurant not found: %w", domain.ErrNotFound)
	}
	for _, id := range r.MealIDs {
		if id == mealID {
			return nil
		}
	}
	r.MealIDs = append(r.MealIDs, mealID)
	return nil
}

func (f *fakeRestaurantRepo) RemoveMealRef(_ context.Context, restaurantID, mealID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := f.get(restaurantID)
	if r == nil {
		return fmt.Errorf("restaurant not found: %w", domain.ErrNotFound)
	}
	for i, id := range r.MealIDs {
		if id == mealID {
			r.MealIDs = append(r.MealIDs[:i], r.MealIDs[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeMealRepo struct {
	mu    sync.Mutex
	meals []*domain.Meal
}

func (f *fakeMealRepo) Create(_ context.Context, meal *domain.Meal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, m := range f.meals {
		if m.Name == meal.Name && m.RestaurantID == meal.RestaurantID {
			return fmt.Errorf("duplicate meal name for restaurant: %w", domain.ErrConflict)
		}
	}
	if meal.ID.IsZero() {
		meal.ID = primitive.NewObjectID()
	}
	copied := *meal
	f.meals = append(f.meals, &copied)
	return nil
}

func (f *fakeMealRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, m := range f.meals {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("meal not found: %w", domain.ErrNotFound)
}

func (f *fakeMealRepo) GetByNameAndRestaurant(_ context.Context, name string, restaurantID primitive.ObjectID) (*domain.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, m := range f.meals {
		if m.Name == name && m.RestaurantID == restaurantID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("meal not found: %w", domain.ErrNotFound)
}

func (f *fakeMealRepo) GetAll(_ context.Context) ([]domain.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	meals := make([]domain.Meal, 0, len(f.meals))
	for _, m := range f.meals {
		meals = append(meals, *m)
	}
	return meals, nil
}

func (f *fakeMealRepo) FindByRestaurant(_ context.Context, restaurantID primitive.ObjectID) ([]domain.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	meals := []domain.Meal{}
	for _, m := range f.meals {
		if m.RestaurantID == restaurantID {
			meals = append(meals, *m)
		}
	}
	return meals, nil
}

func (f *fakeMealRepo) FindByRestaurantIDs(_ context.Context, restaurantIDs []primitive.ObjectID) ([]domain.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	allowed := make(map[primitive.ObjectID]bool, len(restaurantIDs))
	for _, id := range restaurantIDs {
		allowed[id] = true
	}

	meals := []domain.Meal{}
	for _, m := range f.meals {
		if allowed[m.RestaurantID] {
			meals = append(meals, *m)
		}
	}
	return meals, nil
}

func (f *fakeMealRepo) Update(_ context.Context, meal *domain.Meal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, m := range f.meals {
		if m.ID == meal.ID {
			m.Name = meal.Name
			m.Description = meal.Description
			m.Price = meal.Price
			m.Category = meal.Category
			m.UserID = meal.UserID
			return nil
		}
	}
	return fmt.Errorf("meal not found: %w", domain.ErrNotFound)
}

func (f *fakeMealRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, m := range f.meals {
		if m.ID == id {
			f.meals = append(f.meals[:i], f.meals[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("meal not found: %w", domain.ErrNotFound)
}

func (f *fakeMealRepo) DeleteByRestaurant(_ context.Context, restaurantID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.meals[:0]
	for _, m := range f.meals {
		if m.RestaurantID != restaurantID {
			kept = append(kept, m)
		}
	}
	f.meals = kept
	return nil
}

// fakeTxRunner runs the function directly; the fakes have no sessions.
type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// fakeBroker records published messages.
type fakeBroker struct {
	mu        sync.Mutex
	published []queuedMessage
}

type queuedMessage struct {
	Queue string
	Body  []byte
}

func (f *fakeBroker) Publish(_ context.Context, queueName string, message []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, queuedMessage{Queue: queueName, Body: message})
	return nil
}

func (f *fakeBroker) Subscribe(_ context.Context, _ string, _ queue.MessageHandler) error {
	return nil
}

func (f *fakeBroker) Close() error { return nil }
