package main

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/suryateja948/Restaurant-API/internal/domain"
	"github.com/suryateja948/Restaurant-API/internal/service"
)

type CreateMealRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description string  `json:"description" validate:"required,max=1000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required,oneof=Soups Salads Sandwiches Pasta 'Main Course' Desserts Beverages"`
	Restaurant  string  `json:"restaurant" validate:"required"`
}

type UpdateMealRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category" validate:"omitempty,oneof=Soups Salads Sandwiches Pasta 'Main Course' Desserts Beverages"`
}

// createMealHandler godoc
//
//	@Summary		Create or update a meal
//	@Description	Upserts by normalized name within the restaurant: an existing (name, restaurant) pair is updated in place, otherwise a new meal is created and linked. Returns the restaurant with its meals.
//	@Tags			meals
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateMealRequest	true	"Meal payload"
//	@Success		200		{object}	domain.RestaurantDetails
//	@Success		201		{object}	domain.RestaurantDetails
//	@Failure		400		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/meals [post]
func (app *application) createMealHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateMealRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	actor := actorFromContext(r.Context())

	result, err := app.mealService.Create(r.Context(), actor, service.CreateMealInput{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     domain.MealCategory(req.Category),
		RestaurantID: req.Restaurant,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Outcome == domain.MealCreated {
		status = http.StatusCreated
	}

	response := map[string]any{
		"outcome":    result.Outcome,
		"restaurant": result.Restaurant,
	}

	if err := app.jsonRespone(w, status, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getAllMealsHandler godoc
//
//	@Summary		List meals
//	@Description	Admins see every meal; users see meals of Fine Dining restaurants plus restaurants they own
//	@Tags			meals
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Failure		401	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/meals [get]
func (app *application) getAllMealsHandler(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())

	meals, err := app.mealService.List(r.Context(), actor)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	response := map[string]any{
		"role":  actor.Role,
		"meals": meals,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMealsByRestaurantHandler godoc
//
//	@Summary		List meals of one restaurant
//	@Tags			meals
//	@Produce		json
//	@Param			restaurantId	path		string	true	"Restaurant ID"
//	@Success		200				{array}		domain.MealDetails
//	@Failure		400				{object}	map[string]string
//	@Failure		401				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Failure		500				{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/meals/restaurant/{restaurantId} [get]
func (app *application) getMealsByRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	restaurantID := chi.URLParam(r, "restaurantId")

	actor := actorFromContext(r.Context())

	meals, err := app.mealService.ListByRestaurant(r.Context(), actor, restaurantID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, meals); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateMealHandler godoc
//
//	@Summary		Update a meal within a restaurant
//	@Description	Partial update; unset fields stay unchanged. Permission is checked on the restaurant.
//	@Tags			meals
//	@Accept			json
//	@Produce		json
//	@Param			mealId			path		string				true	"Meal ID"
//	@Param			restaurantId	path		string				true	"Restaurant ID"
//	@Param			request			body		UpdateMealRequest	true	"Fields to update"
//	@Success		200				{object}	domain.MealDetails
//	@Failure		400				{object}	map[string]string
//	@Failure		403				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Failure		500				{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/meals/{mealId}/restaurant/{restaurantId} [put]
func (app *application) updateMealHandler(w http.ResponseWriter, r *http.Request) {
	mealID := chi.URLParam(r, "mealId")
	restaurantID := chi.URLParam(r, "restaurantId")

	var req UpdateMealRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	patch := domain.MealPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if req.Category != nil {
		category := domain.MealCategory(*req.Category)
		patch.Category = &category
	}

	actor := actorFromContext(r.Context())

	meal, err := app.mealService.Update(r.Context(), actor, mealID, restaurantID, patch)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, meal); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteMealHandler godoc
//
//	@Summary		Delete a meal from a restaurant
//	@Description	Admins may delete any meal. Users must own the restaurant, the restaurant must be Fine Dining, and they must own the meal.
//	@Tags			meals
//	@Produce		json
//	@Param			mealId			path		string	true	"Meal ID"
//	@Param			restaurantId	path		string	true	"Restaurant ID"
//	@Success		200				{object}	service.DeleteMealResult
//	@Failure		401				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Failure		500				{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/meals/{mealId}/restaurant/{restaurantId} [delete]
func (app *application) deleteMealHandler(w http.ResponseWriter, r *http.Request) {
	mealID := chi.URLParam(r, "mealId")
	restaurantID := chi.URLParam(r, "restaurantId")

	actor := actorFromContext(r.Context())

	result, err := app.mealService.Delete(r.Context(), actor, mealID, restaurantID)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}
