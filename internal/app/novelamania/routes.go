// Package novelamania собирает HTTP API: маршруты, middleware и зависимости.
package novelamania

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/novelamania/internal/http/handlers/auth/forgot"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/auth/reset"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/auth/signin"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/auth/signout"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/auth/signup"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/auth/verify"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/health"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/packages/create"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/packages/edit"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/packages/getall"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/packages/getbyid"
	packageremove "github.com/magabrotheeeer/novelamania/internal/http/handlers/packages/remove"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/packages/subscribe"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/subscription/check"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/subscription/validate"
	usergetbyid "github.com/magabrotheeeer/novelamania/internal/http/handlers/users/getbyid"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/users/inactive"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/users/profile"
	userremove "github.com/magabrotheeeer/novelamania/internal/http/handlers/users/remove"
	"github.com/magabrotheeeer/novelamania/internal/http/handlers/users/subscribers"
	"github.com/magabrotheeeer/novelamania/internal/http/middlewarectx"
	"github.com/magabrotheeeer/novelamania/internal/models"
	"github.com/magabrotheeeer/novelamania/internal/services/access"
	authservice "github.com/magabrotheeeer/novelamania/internal/services/auth"
	"github.com/magabrotheeeer/novelamania/internal/services/entitlement"
	"github.com/magabrotheeeer/novelamania/internal/services/packages"
)

// Dependencies сервисы, которые обслуживают маршруты.
type Dependencies struct {
	Auth          *authservice.AuthService
	Authenticator middlewarectx.Authenticator
	Gate          *access.Gate
	Evaluator     *entitlement.Evaluator
	Packages      *packages.Service
	DB            health.Pinger
	Registry      *prometheus.Registry
	TokenTTL      time.Duration
	RateRPS       float64
	RateBurst     int
	TrustProxy    bool
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Dependencies) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	authenticate := middlewarectx.Authenticate(logger, deps.Authenticator)
	subscribed := middlewarectx.RequireActiveSubscription(logger, deps.Gate)
	adminOnly := middlewarectx.RequireRole(logger, models.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger, deps.DB).ServeHTTP)
		r.Get("/logout", signout.New(logger, deps.Auth).ServeHTTP)
		r.Post("/reset-password", reset.New(logger, deps.Auth).ServeHTTP)
		r.With(middlewarectx.OptionalAuthenticate(logger, deps.Authenticator)).
			Post("/user/signup", signup.New(logger, deps.Auth).ServeHTTP)

		// Подбор паролей и рассылка писем ограничены по частоте
		r.Group(func(r chi.Router) {
			if deps.TrustProxy {
				r.Use(middleware.RealIP)
			}
			r.Use(middlewarectx.RateLimit(logger, deps.RateRPS, deps.RateBurst))
			r.Post("/signin", signin.New(logger, deps.Auth, deps.TokenTTL).ServeHTTP)
			r.Post("/forgot-password", forgot.New(logger, deps.Auth).ServeHTTP)
		})

		// Требуется действующий токен
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/check/verify-token", verify.New(logger))
			r.Get("/validate/subscription", validate.New(logger, deps.Gate).ServeHTTP)
			r.Get("/user/userprofile", profile.New(logger, deps.Auth).ServeHTTP)
			r.Get("/user/getuserbyid/{id}", usergetbyid.New(logger, deps.Auth, deps.Evaluator).ServeHTTP)
			r.Post("/package/subscribe", subscribe.New(logger, deps.Packages).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(subscribed)
				r.Get("/check/checkSubscription", check.New(logger))
				r.Get("/package/getall", getall.New(logger, deps.Packages).ServeHTTP)
				r.Get("/package/getbyid/{id}", getbyid.New(logger, deps.Packages).ServeHTTP)
			})

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Put("/user/inactive/{id}", inactive.New(logger, deps.Auth).ServeHTTP)
				r.Delete("/admin/user/delete/{id}", userremove.New(logger, deps.Auth).ServeHTTP)
				r.Get("/user/subscribers", subscribers.New(logger, deps.Auth).ServeHTTP)
				r.Post("/package/create", create.New(logger, deps.Packages).ServeHTTP)
				r.Put("/package/edit/{id}", edit.New(logger, deps.Packages).ServeHTTP)
				r.Delete("/package/delete/{id}", packageremove.New(logger, deps.Packages).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
