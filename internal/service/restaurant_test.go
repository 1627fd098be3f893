package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suryateja948/Restaurant-API/internal/authz"
	"github.com/suryateja948/Restaurant-API/internal/domain"
	"github.com/suryateja948/Restaurant-API/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type restaurantFixture struct {
	svc         *RestaurantService
	restaurants *fakeRestaurantRepo
	meals       *fakeMealRepo
	users       *fakeUserRepo
	broker      *fakeBroker
	tx          *fakeTxRunner

	admin authz.Actor
	owner authz.Actor
	other authz.Actor

	ownerID primitive.ObjectID
	otherID primitive.ObjectID
}

func newRestaurantFixture(t *testing.T) *restaurantFixture {
	t.Helper()

	f := &restaurantFixture{
		restaurants: &fakeRestaurantRepo{},
		meals:       &fakeMealRepo{},
		users:       &fakeUserRepo{},
		broker:      &fakeBroker{},
		tx:          &fakeTxRunner{},
	}

	ctx := context.Background()

	adminUser := &domain.User{Name: "admin", Email: "admin@example.com", Role: domain.RoleAdmin}
	ownerUser := &domain.User{Name: "owner", Email: "owner@example.com", Role: domain.RoleUser}
	otherUser := &domain.User{Name: "other", Email: "other@example.com", Role: domain.RoleUser}
	require.NoError(t, f.users.Create(ctx, adminUser))
	require.NoError(t, f.users.Create(ctx, ownerUser))
	require.NoError(t, f.users.Create(ctx, otherUser))

	f.ownerID = ownerUser.ID
	f.otherID = otherUser.ID
	f.admin = authz.Actor{ID: adminUser.ID.Hex(), Role: domain.RoleAdmin}
	f.owner = authz.Actor{ID: ownerUser.ID.Hex(), Role: domain.RoleUser}
	f.other = authz.Actor{ID: otherUser.ID.Hex(), Role: domain.RoleUser}

	f.svc = NewRestaurantService(f.restaurants, f.meals, f.users, f.broker, f.tx, zap.NewNop().Sugar())
	return f
}

func (f *restaurantFixture) seed(t *testing.T, name string, category domain.Category, ownerID primitive.ObjectID) *domain.Restaurant {
	t.Helper()

	r := &domain.Restaurant{Name: name, Category: category, UserID: ownerID}
	require.NoError(t, f.restaurants.Create(context.Background(), r))
	return r
}

func TestCreateRestaurant_SetsOwner(t *testing.T) {
	f := newRestaurantFixture(t)

	details, err := f.svc.Create(context.Background(), f.owner, CreateRestaurantInput{
		Name:     "Blue Lagoon",
		Email:    "hello@bluelagoon.example.com",
		PhoneNo:  "555-0101",
		Address:  "12 Shore Rd",
		Category: domain.CategoryCafe,
	})
	require.NoError(t, err)

	assert.Equal(t, f.ownerID, details.UserID)
	require.NotNil(t, details.Owner)
	assert.Equal(t, "owner@example.com", details.Owner.Email)
	assert.False(t, details.ID.IsZero())
}

func TestCreateRestaurant_InvalidRole(t *testing.T) {
	f := newRestaurantFixture(t)

	_, err := f.svc.Create(context.Background(), authz.Actor{ID: f.ownerID.Hex(), Role: domain.Role("ghost")}, CreateRestaurantInput{
		Name:     "Nope",
		Category: domain.CategoryCafe,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.EqualError(t, err, "Invalid role")
}

func TestListRestaurants_AdminSeesAll(t *testing.T) {
	f := newRestaurantFixture(t)
	f.seed(t, "Alpha", domain.CategoryCafe, f.ownerID)
	f.seed(t, "Beta", domain.CategoryFastFood, f.otherID)
	f.seed(t, "Gamma", domain.CategoryFineDining, f.otherID)

	all, err := f.svc.List(context.Background(), f.admin, repo.ListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListRestaurants_UserSeesFineDiningPlusOwn(t *testing.T) {
	f := newRestaurantFixture(t)
	f.seed(t, "Mine", domain.CategoryCafe, f.ownerID)
	f.seed(t, "Fancy", domain.CategoryFineDining, f.otherID)
	f.seed(t, "Hidden", domain.CategoryFastFood, f.otherID)

	visible, err := f.svc.List(context.Background(), f.owner, repo.ListQuery{})
	require.NoError(t, err)
	require.Len(t, visible, 2)

	names := []string{visible[0].Name, visible[1].Name}
	assert.Contains(t, names, "Mine")
	assert.Contains(t, names, "Fancy")
}

func TestListRestaurants_KeywordAndPagination(t *testing.T) {
	f := newRestaurantFixture(t)
	f.seed(t, "Sunrise Grill", domain.CategoryCafe, f.ownerID)
	f.seed(t, "Sunset Grill", domain.CategoryCafe, f.ownerID)
	f.seed(t, "Moonlight Diner", domain.CategoryCafe, f.ownerID)

	ctx := context.Background()

	matched, err := f.svc.List(ctx, f.admin, repo.ListQuery{Keyword: "grill"})
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	page1, err := f.svc.List(ctx, f.admin, repo.ListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page2, err := f.svc.List(ctx, f.admin, repo.ListQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 1)
}

func TestGetRestaurant(t *testing.T) {
	f := newRestaurantFixture(t)
	r := f.seed(t, "Lookup", domain.CategoryCafe, f.ownerID)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.EqualError(t, err, "Invalid ID. Please enter a correct ID.")

	_, err = f.svc.Get(ctx, primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "Restaurant not found")

	details, err := f.svc.Get(ctx, r.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Lookup", details.Name)
}

func TestUpdateRestaurant(t *testing.T) {
	f := newRestaurantFixture(t)
	ctx := context.Background()

	t.Run("owner updates own restaurant", func(t *testing.T) {
		r := f.seed(t, "Old Name", domain.CategoryCafe, f.ownerID)

		newName := "New Name"
		details, err := f.svc.Update(ctx, f.owner, r.ID.Hex(), domain.RestaurantPatch{Name: &newName})
		require.NoError(t, err)

		assert.Equal(t, "New Name", details.Name)
		// ownership never changes on update, only the updater is recorded
		assert.Equal(t, f.ownerID, details.UserID)
		assert.Equal(t, f.ownerID, details.UpdatedByID)
	})

	t.Run("non-owner denied on cafe", func(t *testing.T) {
		r := f.seed(t, "Private Cafe", domain.CategoryCafe, f.ownerID)

		newName := "Taken Over"
		_, err := f.svc.Update(ctx, f.other, r.ID.Hex(), domain.RestaurantPatch{Name: &newName})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.EqualError(t, err, "You can only update Fine Dining restaurants or restaurants that you own.")
	})

	t.Run("anyone updates fine dining", func(t *testing.T) {
		r := f.seed(t, "Shared Fine", domain.CategoryFineDining, f.ownerID)

		desc := "now with tasting menu"
		details, err := f.svc.Update(ctx, f.other, r.ID.Hex(), domain.RestaurantPatch{Description: &desc})
		require.NoError(t, err)

		assert.Equal(t, "now with tasting menu", details.Description)
		assert.Equal(t, f.ownerID, details.UserID)
		assert.Equal(t, f.otherID, details.UpdatedByID)
		require.NotNil(t, details.UpdatedBy)
		assert.Equal(t, "other@example.com", details.UpdatedBy.Email)
	})

	t.Run("missing restaurant", func(t *testing.T) {
		newName := "x"
		_, err := f.svc.Update(ctx, f.admin, primitive.NewObjectID().Hex(), domain.RestaurantPatch{Name: &newName})
		require.Error(t, err)
		assert.EqualError(t, err, "Restaurant not found")
	})
}

func TestDeleteRestaurant_CascadesMeals(t *testing.T) {
	f := newRestaurantFixture(t)
	ctx := context.Background()

	r := f.seed(t, "Doomed", domain.CategoryCafe, f.ownerID)
	for _, name := range []string{"a", "b"} {
		require.NoError(t, f.meals.Create(ctx, &domain.Meal{Name: name, RestaurantID: r.ID, UserID: f.ownerID}))
	}

	result, err := f.svc.Delete(ctx, f.owner, r.ID.Hex())
	require.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.Equal(t, "Restaurant deleted successfully", result.Message)
	assert.Equal(t, 1, f.tx.calls)

	_, err = f.restaurants.GetByID(ctx, r.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	orphans, err := f.meals.FindByRestaurant(ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestDeleteRestaurant_MissingIsNotAnError(t *testing.T) {
	f := newRestaurantFixture(t)

	result, err := f.svc.Delete(context.Background(), f.admin, primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.False(t, result.Deleted)
	assert.Equal(t, "Already deleted or does not exist", result.Message)
}

func TestDeleteRestaurant_SharesUpdatePredicate(t *testing.T) {
	f := newRestaurantFixture(t)
	ctx := context.Background()

	cafe := f.seed(t, "Keep Out", domain.CategoryCafe, f.ownerID)
	_, err := f.svc.Delete(ctx, f.other, cafe.ID.Hex())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// fine dining is deletable by any authenticated actor, same as updates
	fine := f.seed(t, "Open Fine", domain.CategoryFineDining, f.ownerID)
	result, err := f.svc.Delete(ctx, f.other, fine.ID.Hex())
	require.NoError(t, err)
	assert.True(t, result.Deleted)
}
