package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/login", apiHandler.LoginHandler)
		r.Get("/health", apiHandler.HealthHandler)
		r.Get("/suggestions", apiHandler.SuggestionsHandler)
		r.Get("/responses", apiHandler.EnhancedResponseHandler)

		// Signed-in routes
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.AuthMiddleware)

			r.Get("/me", apiHandler.MeHandler)
			r.Post("/logout", apiHandler.LogoutHandler)

			r.Get("/chats", apiHandler.ListChatsHandler)
			r.Post("/chats", apiHandler.CreateChatHandler)
			r.Get("/chats/active", apiHandler.ActiveChatHandler)
			r.Get("/chats/{chatID}", apiHandler.GetChatHandler)
			r.Post("/chats/{chatID}/select", apiHandler.SelectChatHandler)
			r.Delete("/chats/{chatID}", apiHandler.DeleteChatHandler)

			r.Post("/messages", apiHandler.PostMessageHandler)
			r.Delete("/streams", apiHandler.CancelStreamsHandler)
		})
	})

	return r
}
