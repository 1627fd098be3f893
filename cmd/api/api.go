package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/suryateja948/Restaurant-API/docs"
	"github.com/suryateja948/Restaurant-API/internal/auth"
	"github.com/suryateja948/Restaurant-API/internal/domain"
	"github.com/suryateja948/Restaurant-API/internal/queue"
	"github.com/suryateja948/Restaurant-API/internal/ratelimiter"
	"github.com/suryateja948/Restaurant-API/internal/repo"
	"github.com/suryateja948/Restaurant-API/internal/service"
	"github.com/suryateja948/Restaurant-API/internal/store/mongo"
	"github.com/suryateja948/Restaurant-API/internal/worker"
	"go.uber.org/zap"
)

type application struct {
	config            config
	logger            *zap.SugaredLogger
	rateLimiter       ratelimiter.Limiter
	storage           *mongo.Storage
	broker            queue.Broker
	authenticator     *auth.Authenticator
	userRepo          repo.UserRepository
	authService       *service.AuthService
	restaurantService *service.RestaurantService
	mealService       *service.MealService
	auditWorker       *worker.CatalogAuditWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
	auth        authConfig
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type authConfig struct {
	secret string
	expiry time.Duration
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.RateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", app.signUpHandler)
			r.Post("/login", app.loginHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Use(app.requireRoles(domain.RoleAdmin))
				r.Get("/users", app.getUsersHandler)
			})
		})

		r.Route("/restaurants", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Use(app.requireRoles(domain.RoleAdmin, domain.RoleUser))

			r.Post("/", app.createRestaurantHandler)
			r.Get("/", app.getAllRestaurantsHandler)
			r.Get("/{id}", app.getRestaurantHandler)
			r.Put("/{id}", app.updateRestaurantHandler)
			r.Delete("/{id}", app.deleteRestaurantHandler)
		})

		r.Route("/meals", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Use(app.requireRoles(domain.RoleAdmin, domain.RoleUser))

			r.Post("/", app.createMealHandler)
			r.Get("/", app.getAllMealsHandler)
			r.Get("/restaurant/{restaurantId}", app.getMealsByRestaurantHandler)
			r.Put("/{mealId}/restaurant/{restaurantId}", app.updateMealHandler)
			r.Delete("/{mealId}/restaurant/{restaurantId}", app.deleteMealHandler)
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Restaurant API"
	docs.SwaggerInfo.Description = "REST backend for the restaurant and meal marketplace"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.auditWorker != nil {
		if err := app.auditWorker.Start(); err != nil {
			return fmt.Errorf("failed to start audit worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.auditWorker != nil {
			app.auditWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
