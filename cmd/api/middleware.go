package main

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/suryateja948/Restaurant-API/internal/authz"
	"github.com/suryateja948/Restaurant-API/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const actorCtxKey contextKey = "actor"

// AuthTokenMiddleware validates the bearer token and re-fetches the user so a
// deleted account cannot keep using an old token. The resulting actor is the
// only identity the services ever see.
func (app *application) AuthTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			app.unauthorizedResponse(w, r, errors.New("Authorization header required (Bearer <token>)"))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := app.authenticator.VerifyToken(tokenStr)
		if err != nil {
			app.unauthorizedResponse(w, r, errors.New("Invalid or expired token"))
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			app.unauthorizedResponse(w, r, errors.New("Invalid or expired token"))
			return
		}

		user, err := app.userRepo.GetByID(r.Context(), userID)
		if err != nil {
			app.unauthorizedResponse(w, r, errors.New("Login first to access this resource"))
			return
		}

		actor := authz.Actor{ID: user.ID.Hex(), Role: user.Role}
		ctx := context.WithValue(r.Context(), actorCtxKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRoles gates a route on the actor's role.
func (app *application) requireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := actorFromContext(r.Context())
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			app.forbiddenResponse(w, r, errors.New("Access denied for this role."))
		})
	}
}

func actorFromContext(ctx context.Context) authz.Actor {
	actor, _ := ctx.Value(actorCtxKey).(authz.Actor)
	return actor
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
