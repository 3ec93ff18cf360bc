package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/handlers"
	custommiddleware "github.com/Rahul-Chotaliya/tradehub/internal/api/middleware"
	"github.com/Rahul-Chotaliya/tradehub/internal/config"
	"github.com/Rahul-Chotaliya/tradehub/internal/service"
)

// Services groups the services the router exposes.
type Services struct {
	System   *service.SystemService
	Category *service.CategoryService
	Asset    *service.AssetService
	Auth     *service.AuthService
}

// NewRouter creates and configures the HTTP router.
// Trailing slashes are stripped, so "/api/assets/" and "/api/assets" are the same route.
func NewRouter(services Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(services.System)
	authHandler := handlers.NewAuthHandler(services.Auth)
	categoryHandler := handlers.NewCategoryHandler(services.Category)
	assetHandler := handlers.NewAssetHandler(services.Asset)
	transactionHandler := handlers.NewTransactionHandler(services.Asset)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Post("/api-token-auth", authHandler.ObtainToken)

		// Everything below requires a token
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.Authenticate(services.Auth))

			r.Get("/categories", categoryHandler.Categories)
			r.Get("/assets", assetHandler.Assets)

			r.Route("/{"+handlers.CategorySlugParam+"}/assets", func(r chi.Router) {
				r.Use(custommiddleware.ValidateSlugParams(handlers.CategorySlugParam))

				r.Get("/", assetHandler.CategoryAssets)
				r.Post("/create", assetHandler.CreateAsset)

				r.Route("/{"+handlers.AssetSlugParam+"}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateSlugParams(handlers.AssetSlugParam))

					r.Get("/", assetHandler.Asset)
					r.Delete("/delete", assetHandler.DeleteAsset)
					r.Post("/transaction", transactionHandler.CreateTransaction)
					r.With(custommiddleware.ValidateUUIDParam(handlers.TransactionIDParam)).
						Delete("/transaction/delete/{"+handlers.TransactionIDParam+"}", transactionHandler.DeleteTransaction)
				})
			})
		})
	})

	return r
}
