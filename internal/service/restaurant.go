package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/suryateja948/Restaurant-API/internal/authz"
	"github.com/suryateja948/Restaurant-API/internal/domain"
	"github.com/suryateja948/Restaurant-API/internal/queue"
	"github.com/suryateja948/Restaurant-API/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type RestaurantService struct {
	restaurants repo.RestaurantRepository
	meals       repo.MealRepository
	users       repo.UserRepository
	broker      queue.Broker
	tx          repo.TxRunner
	logger      *zap.SugaredLogger
}

func NewRestaurantService(
	restaurants repo.RestaurantRepository,
	meals repo.MealRepository,
	users repo.UserRepository,
	broker queue.Broker,
	tx repo.TxRunner,
	logger *zap.SugaredLogger,
) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		meals:       meals,
		users:       users,
		broker:      broker,
		tx:          tx,
		logger:      logger,
	}
}

type CreateRestaurantInput struct {
	Name        string
	Description string
	Email       string
	PhoneNo     string
	Address     string
	Category    domain.Category
	Images      []string
}

// actorObjectID resolves the actor's id back into an ObjectID. The auth
// middleware builds actors from verified tokens, so a failure here means a
// stale or forged identity.
func actorObjectID(actor authz.Actor) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return primitive.NilObjectID, domain.Unauthorized("Login first to access this resource")
	}
	return id, nil
}

func (s *RestaurantService) Create(ctx context.Context, actor authz.Actor, input CreateRestaurantInput) (*domain.RestaurantDetails, error) {
	if decision := authz.CanCreateRestaurant(actor); !decision.Allowed {
		return nil, domain.Unauthorized(decision.Reason)
	}

	ownerID, err := actorObjectID(actor)
	if err != nil {
		return nil, err
	}

	restaurant := &domain.Restaurant{
		Name:        input.Name,
		Description: input.Description,
		Email:       input.Email,
		PhoneNo:     input.PhoneNo,
		Address:     input.Address,
		Category:    input.Category,
		Images:      input.Images,
		UserID:      ownerID,
	}

	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	s.logger.Infow("restaurant created", "restaurant_id", restaurant.ID.Hex(), "owner", actor.ID)

	publishCatalogEvent(ctx, s.broker, s.logger, domain.CatalogEvent{
		EventType:    domain.EventRestaurantCreated,
		EntityID:     restaurant.ID.Hex(),
		RestaurantID: restaurant.ID.Hex(),
		ActorID:      actor.ID,
	})

	return s.populate(ctx, restaurant)
}

func (s *RestaurantService) List(ctx context.Context, actor authz.Actor, q repo.ListQuery) ([]domain.RestaurantDetails, error) {
	scope, decision := authz.ListRestaurantsScope(actor)
	if !decision.Allowed {
		return nil, domain.Unauthorized(decision.Reason)
	}

	var (
		restaurants []domain.Restaurant
		err         error
	)
	switch scope {
	case authz.ScopeAll:
		restaurants, err = s.restaurants.Find(ctx, q)
	case authz.ScopeAccessible:
		var ownerID primitive.ObjectID
		ownerID, err = actorObjectID(actor)
		if err != nil {
			return nil, err
		}
		restaurants, err = s.restaurants.FindAccessible(ctx, q, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	details := make([]domain.RestaurantDetails, 0, len(restaurants))
	for i := range restaurants {
		d, err := s.populate(ctx, &restaurants[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}

	return details, nil
}

func (s *RestaurantService) Get(ctx context.Context, id string) (*domain.RestaurantDetails, error) {
	restaurantID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.BadRequest("Invalid ID. Please enter a correct ID.")
	}

	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Restaurant not found")
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	return s.populate(ctx, restaurant)
}

func (s *RestaurantService) Update(ctx context.Context, actor authz.Actor, id string, patch domain.RestaurantPatch) (*domain.RestaurantDetails, error) {
	restaurantID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.BadRequest("Invalid ID. Please enter a correct ID.")
	}

	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Restaurant not found")
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if decision := authz.CanMutateRestaurant(actor, restaurant); !decision.Allowed {
		return nil, domain.Unauthorized(decision.Reason)
	}

	updatedBy, err := actorObjectID(actor)
	if err != nil {
		return nil, err
	}

	updated, err := s.restaurants.Update(ctx, restaurantID, patch, updatedBy)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Restaurant not found")
		}
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}

	s.logger.Infow("restaurant updated", "restaurant_id", id, "actor", actor.ID)

	publishCatalogEvent(ctx, s.broker, s.logger, domain.CatalogEvent{
		EventType:    domain.EventRestaurantUpdated,
		EntityID:     id,
		RestaurantID: id,
		ActorID:      actor.ID,
	})

	return s.populate(ctx, updated)
}

type DeleteRestaurantResult struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message"`
}

// Delete removes a restaurant and its meals in one transaction. The predicate
// is the same one updates use, so Fine Dining restaurants are deletable by
// any authenticated actor.
func (s *RestaurantService) Delete(ctx context.Context, actor authz.Actor, id string) (*DeleteRestaurantResult, error) {
	restaurantID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.BadRequest("Invalid ID. Please enter a correct ID.")
	}

	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &DeleteRestaurantResult{
				Deleted: false,
				Message: "Already deleted or does not exist",
			}, nil
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if decision := authz.CanMutateRestaurant(actor, restaurant); !decision.Allowed {
		return nil, domain.Unauthorized(decision.Reason)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.meals.DeleteByRestaurant(ctx, restaurantID); err != nil {
			return err
		}
		return s.restaurants.Delete(ctx, restaurantID)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &DeleteRestaurantResult{
				Deleted: false,
				Message: "Already deleted or does not exist",
			}, nil
		}
		return nil, fmt.Errorf("failed to delete restaurant: %w", err)
	}

	s.logger.Infow("restaurant deleted", "restaurant_id", id, "actor", actor.ID)

	publishCatalogEvent(ctx, s.broker, s.logger, domain.CatalogEvent{
		EventType:    domain.EventRestaurantDeleted,
		EntityID:     id,
		RestaurantID: id,
		ActorID:      actor.ID,
	})

	return &DeleteRestaurantResult{
		Deleted: true,
		Message: "Restaurant deleted successfully",
	}, nil
}

// populate resolves the restaurant's direct references (owner, updater,
// meals) so callers never see bare foreign-key ids.
func (s *RestaurantService) populate(ctx context.Context, restaurant *domain.Restaurant) (*domain.RestaurantDetails, error) {
	details := &domain.RestaurantDetails{Restaurant: *restaurant}

	if !restaurant.UserID.IsZero() {
		owner, err := s.users.GetByID(ctx, restaurant.UserID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to populate owner: %w", err)
		}
		details.Owner = owner.Summary()
	}

	if !restaurant.UpdatedByID.IsZero() {
		updatedBy, err := s.users.GetByID(ctx, restaurant.UpdatedByID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to populate updater: %w", err)
		}
		details.UpdatedBy = updatedBy.Summary()
	}

	meals, err := s.meals.FindByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to populate meals: %w", err)
	}
	details.Meals = meals

	return details, nil
}
