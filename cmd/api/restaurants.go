package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/suryateja948/Restaurant-API/internal/domain"
	"github.com/suryateja948/Restaurant-API/internal/repo"
	"github.com/suryateja948/Restaurant-API/internal/service"
)

type CreateRestaurantRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Description string   `json:"description" validate:"required,max=1000"`
	Email       string   `json:"email" validate:"required,email"`
	PhoneNo     string   `json:"phone_no" validate:"required"`
	Address     string   `json:"address" validate:"required"`
	Category    string   `json:"category" validate:"required,oneof='Fast Food' 'Cafe' 'Fine Dining'"`
	Images      []string `json:"images"`
}

type UpdateRestaurantRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	PhoneNo     *string  `json:"phone_no"`
	Address     *string  `json:"address"`
	Category    *string  `json:"category" validate:"omitempty,oneof='Fast Food' 'Cafe' 'Fine Dining'"`
	Images      []string `json:"images"`
}

// createRestaurantHandler godoc
//
//	@Summary		Create a restaurant
//	@Description	Creates a restaurant owned by the calling actor
//	@Tags			restaurants
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateRestaurantRequest	true	"Restaurant payload"
//	@Success		201		{object}	domain.RestaurantDetails
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/restaurants [post]
func (app *application) createRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateRestaurantRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	actor := actorFromContext(r.Context())

	restaurant, err := app.restaurantService.Create(r.Context(), actor, service.CreateRestaurantInput{
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		PhoneNo:     req.PhoneNo,
		Address:     req.Address,
		Category:    domain.Category(req.Category),
		Images:      req.Images,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getAllRestaurantsHandler godoc
//
//	@Summary		List restaurants
//	@Description	Admins see every restaurant; users see Fine Dining plus their own. Supports keyword, page and limit query params.
//	@Tags			restaurants
//	@Produce		json
//	@Param			keyword	query		string	false	"Case-insensitive name filter"
//	@Param			page	query		int		false	"Page (default 1)"
//	@Param			limit	query		int		false	"Page size (default 10)"
//	@Success		200		{array}		domain.RestaurantDetails
//	@Failure		401		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/restaurants [get]
func (app *application) getAllRestaurantsHandler(w http.ResponseWriter, r *http.Request) {
	query := repo.ListQuery{
		Keyword: r.URL.Query().Get("keyword"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		query.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		query.Limit = limit
	}

	actor := actorFromContext(r.Context())

	restaurants, err := app.restaurantService.List(r.Context(), actor, query)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurants); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getRestaurantHandler godoc
//
//	@Summary		Get a restaurant by ID
//	@Tags			restaurants
//	@Produce		json
//	@Param			id	path		string	true	"Restaurant ID"
//	@Success		200	{object}	domain.RestaurantDetails
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{id} [get]
func (app *application) getRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	restaurant, err := app.restaurantService.Get(r.Context(), id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateRestaurantHandler godoc
//
//	@Summary		Update a restaurant
//	@Description	Allowed for admins, the owner, or anyone when the restaurant is Fine Dining
//	@Tags			restaurants
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Restaurant ID"
//	@Param			request	body		UpdateRestaurantRequest	true	"Fields to update"
//	@Success		200		{object}	domain.RestaurantDetails
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{id} [put]
func (app *application) updateRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateRestaurantRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	patch := domain.RestaurantPatch{
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		PhoneNo:     req.PhoneNo,
		Address:     req.Address,
		Images:      req.Images,
	}
	if req.Category != nil {
		category := domain.Category(*req.Category)
		patch.Category = &category
	}

	actor := actorFromContext(r.Context())

	restaurant, err := app.restaurantService.Update(r.Context(), actor, id, patch)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, restaurant); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteRestaurantHandler godoc
//
//	@Summary		Delete a restaurant
//	@Description	Same predicate as update: admins, the owner, or anyone when the restaurant is Fine Dining
//	@Tags			restaurants
//	@Produce		json
//	@Param			id	path		string	true	"Restaurant ID"
//	@Success		200	{object}	service.DeleteRestaurantResult
//	@Failure		400	{object}	map[string]string
//	@Failure		401	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/restaurants/{id} [delete]
func (app *application) deleteRestaurantHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	actor := actorFromContext(r.Context())

	result, err := app.restaurantService.Delete(r.Context(), actor, id)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}
