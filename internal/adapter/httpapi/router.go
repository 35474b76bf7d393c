package httpapi

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/renthome/renter-service/internal/platform/auth"
)

// NewRouter wires the public and authenticated route groups.
func NewRouter(h *Handler, authSvc *auth.Service, logger *zap.Logger) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(RequestLogger(logger))

	mux.Post("/api/renter/register", h.HandleRegister)
	mux.Post("/api/renter/login", h.HandleLogin)
	mux.Get("/api/renter/{id}", h.HandleGetRenter)
	mux.Get("/api/renters", h.HandleListRenters)
	mux.Get("/api/listings", h.HandleListListings)

	mux.Group(func(r chi.Router) {
		r.Use(JWTAuth(authSvc))

		r.Post("/api/listings", h.HandleCreateListing)
		r.Delete("/api/listings/{id}", h.HandleDeleteListing)
	})

	return mux
}
