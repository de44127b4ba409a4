package routers

import (
	"github.com/go-chi/chi/v5"

	"prepwise/server/internal/handlers"
)

func AuthRoutes(router *chi.Mux, authHandler *handlers.AuthHandler) {
	router.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/sign-up", authHandler.SignUpHandler)
		r.Post("/sign-in", authHandler.SignInHandler)
		r.Post("/sign-out", authHandler.SignOutHandler)
		r.Get("/current-user", authHandler.CurrentUserHandler)
	})
}
