package routes

import (
	"github.com/epicesports/tournament-platform/handlers"
	"github.com/epicesports/tournament-platform/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes собирает публичный API, админ-группу и websocket-endpoint.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Auth,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	paymentHandler *handlers.PaymentHandler,
	teamHandler *handlers.TeamHandler,
	participantHandler *handlers.ParticipantHandler,
	resultHandler *handlers.ResultHandler,
	webSocketHandler *handlers.WebSocketHandler,
	allowedOrigins []string,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Razorpay-Signature"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListHandler)
			r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
			r.Get("/{tournamentID}/results", resultHandler.ListHandler)

			// Админ-группа
			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Use(auth.Authorize("admin"))

				r.Post("/", tournamentHandler.CreateHandler)
				r.Put("/{tournamentID}", tournamentHandler.UpdateHandler)
				r.Delete("/{tournamentID}", tournamentHandler.DeleteHandler)
				r.Post("/{tournamentID}/banner", tournamentHandler.UploadBannerHandler)
				r.Get("/{tournamentID}/registrations/export", teamHandler.ExportHandler)
				r.Post("/{tournamentID}/results", resultHandler.CreateHandler)
			})
		})

		r.Get("/teams", teamHandler.ListHandler)
		r.Get("/participants", participantHandler.ListHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.Authorize("admin"))
			r.Patch("/participants/{participantID}/status", participantHandler.UpdateStatusHandler)
		})

		// Платёжный поток: создание ордера, verify-and-commit, webhook шлюза.
		r.Route("/payments", func(r chi.Router) {
			r.Post("/order", paymentHandler.CreateOrderHandler)
			r.Post("/verify", paymentHandler.VerifyHandler)
			r.Post("/webhook", paymentHandler.WebhookHandler)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
