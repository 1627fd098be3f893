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

type MealService struct {
	meals       repo.MealRepository
	restaurants repo.RestaurantRepository
	users       repo.UserRepository
	broker      queue.Broker
	tx          repo.TxRunner
	logger      *zap.SugaredLogger
}

func NewMealService(
	meals repo.MealRepository,
	restaurants repo.RestaurantRepository,
	users repo.UserRepository,
	broker queue.Broker,
	tx repo.TxRunner,
	logger *zap.SugaredLogger,
) *MealService {
	return &MealService{
		meals:       meals,
		restaurants: restaurants,
		users:       users,
		broker:      broker,
		tx:          tx,
		logger:      logger,
	}
}

type CreateMealInput struct {
	Name         string
	Description  string
	Price        float64
	Category     domain.MealCategory
	RestaurantID string
}

// Create is the upsert-by-name entry point. A meal whose normalized name
// already exists under the restaurant is updated in place; otherwise a new
// meal is inserted and linked to the restaurant's meal list in a single
// transaction. The result is tagged so callers can tell which branch ran.
func (s *MealService) Create(ctx context.Context, actor authz.Actor, input CreateMealInput) (*domain.MealUpsert, error) {
	restaurantID, err := primitive.ObjectIDFromHex(input.RestaurantID)
	if err != nil {
		return nil, domain.BadRequest("Invalid restaurant ID provided.")
	}

	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Restaurant not found")
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if decision := authz.CanCreateMeal(actor, restaurant); !decision.Allowed {
		return nil, domain.Forbidden(decision.Reason)
	}

	actorID, err := actorObjectID(actor)
	if err != nil {
		return nil, err
	}

	normalized := domain.NormalizeMealName(input.Name)

	existing, err := s.meals.GetByNameAndRestaurant(ctx, normalized, restaurantID)
	switch {
	case err == nil:
		// update the existing meal in place; the meal list already links it
		existing.Description = input.Description
		existing.Price = input.Price
		existing.Category = input.Category
		existing.UserID = actorID

		if err := s.meals.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update meal: %w", err)
		}

		s.logger.Infow("meal updated in place", "meal_id", existing.ID.Hex(), "restaurant_id", input.RestaurantID, "actor", actor.ID)

		publishCatalogEvent(ctx, s.broker, s.logger, domain.CatalogEvent{
			EventType:    domain.EventMealUpdated,
			EntityID:     existing.ID.Hex(),
			RestaurantID: input.RestaurantID,
			ActorID:      actor.ID,
			Detail:       "upsert hit on " + existing.Name,
		})

		details, err := s.populateRestaurant(ctx, restaurantID)
		if err != nil {
			return nil, err
		}

		return &domain.MealUpsert{
			Outcome:    domain.MealUpdated,
			Meal:       *existing,
			Restaurant: details,
		}, nil

	case errors.Is(err, domain.ErrNotFound):
		meal := &domain.Meal{
			Name:         normalized,
			Description:  input.Description,
			Price:        input.Price,
			Category:     input.Category,
			RestaurantID: restaurantID,
			UserID:       actorID,
		}

		// the meal document and the restaurant's meal list move together
		err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
			if err := s.meals.Create(ctx, meal); err != nil {
				return err
			}
			return s.restaurants.AddMealRef(ctx, restaurantID, meal.ID)
		})
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				// lost the find-then-insert race to a concurrent create
				return nil, domain.Conflict("Meal with this name already exists for the restaurant")
			}
			return nil, fmt.Errorf("failed to create meal: %w", err)
		}

		s.logger.Infow("meal created", "meal_id", meal.ID.Hex(), "restaurant_id", input.RestaurantID, "actor", actor.ID)

		publishCatalogEvent(ctx, s.broker, s.logger, domain.CatalogEvent{
			EventType:    domain.EventMealCreated,
			EntityID:     meal.ID.Hex(),
			RestaurantID: input.RestaurantID,
			ActorID:      actor.ID,
		})

		details, err := s.populateRestaurant(ctx, restaurantID)
		if err != nil {
			return nil, err
		}

		return &domain.MealUpsert{
			Outcome:    domain.MealCreated,
			Meal:       *meal,
			Restaurant: details,
		}, nil

	default:
		return nil, fmt.Errorf("failed to look up meal by name: %w", err)
	}
}

// List returns every meal for admins, and meals of accessible restaurants
// (Fine Dining or owned) for users.
func (s *MealService) List(ctx context.Context, actor authz.Actor) ([]domain.MealDetails, error) {
	scope, decision := authz.ListMealsScope(actor)
	if !decision.Allowed {
		return nil, domain.Unauthorized(decision.Reason)
	}

	var (
		meals []domain.Meal
		err   error
	)
	switch scope {
	case authz.ScopeAll:
		meals, err = s.meals.GetAll(ctx)
	case authz.ScopeAccessible:
		var ownerID primitive.ObjectID
		ownerID, err = actorObjectID(actor)
		if err != nil {
			return nil, err
		}

		var restaurantIDs []primitive.ObjectID
		restaurantIDs, err = s.restaurants.AccessibleIDs(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve accessible restaurants: %w", err)
		}
		meals, err = s.meals.FindByRestaurantIDs(ctx, restaurantIDs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	return s.populateMeals(ctx, meals)
}

func (s *MealService) ListByRestaurant(ctx context.Context, actor authz.Actor, restaurantIDStr string) ([]domain.MealDetails, error) {
	restaurantID, err := primitive.ObjectIDFromHex(restaurantIDStr)
	if err != nil {
		return nil, domain.BadRequest("Invalid restaurant ID provided.")
	}

	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Restaurant not found.")
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if decision := authz.CanViewRestaurantMeals(actor, restaurant); !decision.Allowed {
		return nil, domain.Unauthorized(decision.Reason)
	}

	meals, err := s.meals.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	return s.populateMeals(ctx, meals)
}

func (s *MealService) Update(ctx context.Context, actor authz.Actor, mealIDStr, restaurantIDStr string, patch domain.MealPatch) (*domain.MealDetails, error) {
	mealID, err := primitive.ObjectIDFromHex(mealIDStr)
	if err != nil {
		return nil, domain.BadRequest("Invalid meal ID provided.")
	}
	restaurantID, err := primitive.ObjectIDFromHex(restaurantIDStr)
	if err != nil {
		return nil, domain.BadRequest("Invalid restaurant ID provided.")
	}

	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Restaurant not found")
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if decision := authz.CanUpdateMeal(actor, restaurant); !decision.Allowed {
		return nil, domain.Forbidden(decision.Reason)
	}

	meal, err := s.meals.GetByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Meal not found")
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	if meal.RestaurantID != restaurantID {
		return nil, domain.BadRequest("Meal does not belong to the specified restaurant")
	}

	actorID, err := actorObjectID(actor)
	if err != nil {
		return nil, err
	}

	// apply only the provided fields; unset fields stay as they are
	if patch.Name != nil {
		meal.Name = domain.NormalizeMealName(*patch.Name)
	}
	if patch.Description != nil {
		meal.Description = *patch.Description
	}
	if patch.Price != nil {
		meal.Price = *patch.Price
	}
	if patch.Category != nil {
		meal.Category = *patch.Category
	}
	meal.UserID = actorID

	if err := s.meals.Update(ctx, meal); err != nil {
		return nil, fmt.Errorf("failed to update meal: %w", err)
	}

	updated, err := s.meals.GetByID(ctx, mealID)
	if err != nil {
		return nil, domain.Internal(fmt.Sprintf("Failed to retrieve meal with id %s after update.", mealIDStr))
	}

	s.logger.Infow("meal updated", "meal_id", mealIDStr, "restaurant_id", restaurantIDStr, "actor", actor.ID)

	publishCatalogEvent(ctx, s.broker, s.logger, domain.CatalogEvent{
		EventType:    domain.EventMealUpdated,
		EntityID:     mealIDStr,
		RestaurantID: restaurantIDStr,
		ActorID:      actor.ID,
	})

	return s.populateMeal(ctx, updated)
}

type DeleteMealResult struct {
	Message string `json:"message"`
}

func (s *MealService) Delete(ctx context.Context, actor authz.Actor, mealIDStr, restaurantIDStr string) (*DeleteMealResult, error) {
	mealID, err := primitive.ObjectIDFromHex(mealIDStr)
	if err != nil {
		return nil, domain.NotFound("Meal not found or already deleted")
	}
	restaurantID, err := primitive.ObjectIDFromHex(restaurantIDStr)
	if err != nil {
		return nil, domain.NotFound("Meal not found or already deleted")
	}

	meal, err := s.meals.GetByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Meal not found or already deleted")
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	// pairing check happens before any role branching
	if meal.RestaurantID != restaurantID {
		return nil, domain.NotFound("Meal not found or already deleted")
	}

	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Meal not found or already deleted")
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if decision := authz.CanDeleteMeal(actor, meal, restaurant); !decision.Allowed {
		return nil, domain.Unauthorized(decision.Reason)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.meals.Delete(ctx, mealID); err != nil {
			return err
		}
		return s.restaurants.RemoveMealRef(ctx, restaurantID, mealID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete meal: %w", err)
	}

	s.logger.Infow("meal deleted", "meal_id", mealIDStr, "restaurant_id", restaurantIDStr, "actor", actor.ID, "role", actor.Role)

	publishCatalogEvent(ctx, s.broker, s.logger, domain.CatalogEvent{
		EventType:    domain.EventMealDeleted,
		EntityID:     mealIDStr,
		RestaurantID: restaurantIDStr,
		ActorID:      actor.ID,
	})

	message := "Meal deleted successfully"
	if actor.Role == domain.RoleAdmin {
		message = "Meal deleted successfully by admin"
	}

	return &DeleteMealResult{Message: message}, nil
}

func (s *MealService) populateMeal(ctx context.Context, meal *domain.Meal) (*domain.MealDetails, error) {
	details := &domain.MealDetails{Meal: *meal}

	restaurant, err := s.restaurants.GetByID(ctx, meal.RestaurantID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to populate restaurant: %w", err)
	}
	details.Restaurant = restaurant

	if !meal.UserID.IsZero() {
		owner, err := s.users.GetByID(ctx, meal.UserID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("failed to populate owner: %w", err)
		}
		details.Owner = owner.Summary()
	}

	return details, nil
}

func (s *MealService) populateMeals(ctx context.Context, meals []domain.Meal) ([]domain.MealDetails, error) {
	details := make([]domain.MealDetails, 0, len(meals))
	for i := range meals {
		d, err := s.populateMeal(ctx, &meals[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}

	return details, nil
}

// populateRestaurant rebuilds the restaurant view returned by the create-meal
// endpoint: the restaurant with its meals, owner and updater resolved.
func (s *MealService) populateRestaurant(ctx context.Context, restaurantID primitive.ObjectID) (*domain.RestaurantDetails, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Internal(fmt.Sprintf("Failed to retrieve restaurant with id %s after save.", restaurantID.Hex()))
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

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

	meals, err := s.meals.FindByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to populate meals: %w", err)
	}
	details.Meals = meals

	return details, nil
}
