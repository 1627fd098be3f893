package main

import (
	"net/http"

	"github.com/suryateja948/Restaurant-API/internal/service"
)

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,max=72"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// signUpHandler godoc
//
//	@Summary		Register a new user
//	@Description	Creates a user account with the given role (defaults to user)
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignUpRequest	true	"Signup request"
//	@Success		201		{object}	domain.User
//	@Failure		400		{object}	map[string]string
//	@Failure		409		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/auth/signup [post]
func (app *application) signUpHandler(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user, err := app.authService.SignUp(r.Context(), service.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, user); err != nil {
		app.internalServerError(w, r, err)
	}
}

// loginHandler godoc
//
//	@Summary		Log a user in
//	@Description	Verifies credentials and returns a signed JWT
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Login request"
//	@Success		200		{object}	service.LoginResult
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/auth/login [post]
func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	result, err := app.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getUsersHandler godoc
//
//	@Summary		List all users
//	@Description	Admin-only listing of registered users, without password hashes
//	@Tags			auth
//	@Produce		json
//	@Success		200	{array}		domain.User
//	@Failure		401	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/auth/users [get]
func (app *application) getUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.authService.Users(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, users); err != nil {
		app.internalServerError(w, r, err)
	}
}
