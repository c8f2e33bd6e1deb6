package main

import (
	"log"
	"net/http"

	_ "github.com/sajeme/SRI/docs" // swagger docs

	"github.com/sajeme/SRI/internal/cache"
	"github.com/sajeme/SRI/internal/config"
	"github.com/sajeme/SRI/internal/db"
	"github.com/sajeme/SRI/internal/handler"
	"github.com/sajeme/SRI/internal/repository"
	"github.com/sajeme/SRI/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title SRI Game Recommender API
// @version 1.0
// @description Sistema de recomendación de videojuegos (reglas de asociación, TF-IDF, KNN, SVD, cold-start)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// repos
	userRepo := repository.NewUserRepository()
	gameRepo := repository.NewGameRepository()
	interactionRepo := repository.NewInteractionRepository()
	gameReqRepo := repository.NewGameRequestRepository()
	recRepo := repository.NewRecommendationRepository()

	loader := repository.NewMongoSnapshotLoader(userRepo, gameRepo, interactionRepo)

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	gameSvc := service.NewGameService(gameRepo)
	interactionSvc := service.NewInteractionService(interactionRepo, gameRepo)
	gameReqSvc := service.NewGameRequestService(gameReqRepo, gameSvc)
	adminSvc := service.NewAdminService(userRepo, gameRepo, interactionRepo)
	// el conteo de resultados es aleatorio en producción (5 a 10)
	recSvc := service.NewRecommendService(loader, recRepo, service.RandomCount)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	gameH := handler.NewGameHandler(gameSvc)
	interactionH := handler.NewInteractionHandler(interactionSvc)
	gameReqH := handler.NewGameRequestHandler(gameReqSvc)
	adminH := handler.NewAdminHandler(adminSvc)
	recH := handler.NewRecommendHandler(recSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// Catálogo (público)
	r.Get("/games", gameH.Search)
	r.Get("/games/most-played", recH.MostPlayed)
	r.Get("/games/top-rated", recH.TopRated)
	r.Get("/games/{id}", gameH.GetByID)

	// Boosting (público: es un ranking editorial, no depende del usuario)
	r.Post("/recommendations/boost", recH.Boost)
	r.Get("/recommend/rpg", recH.RecommendRPG)
	r.Get("/recommend/action-window", recH.RecommendActionWindow)

	// Vecinos por ítem (público)
	r.Get("/collaborative/similar-games/{gameId}", recH.SimilarGames)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		// ---- Endpoints /me (USER normal) ----
		r.Route("/me", func(r chi.Router) {
			r.Get("/interactions", interactionH.GetMine)
			r.Post("/interactions", interactionH.Upsert)
			r.Get("/interactions/{gameId}", interactionH.GetOne)
		})

		// game requests (USER)
		r.Post("/game-requests", gameReqH.Create)
		r.Get("/game-requests/mine", gameReqH.ListMine)

		// edición de usuario (el propio o, como admin, cualquiera)
		r.Put("/users/{id}/update", authH.UpdateUser)

		// ---- Recomendaciones por algoritmo ----
		r.Get("/recommendations/association/{id}", recH.Association)
		r.Get("/recommendations/content-based/{id}", recH.ContentBased)
		r.Get("/recommendations/cold-start/{id}", recH.ColdStart)
		r.Get("/collaborative/user-based/{id}", recH.UserBased)
		r.Get("/collaborative/item-based/{id}", recH.ItemBased)
		r.Get("/collaborative/svd/{id}", recH.SVD)

		r.Get("/users/{id}/recommendations/history", recH.History)

		// WebSocket
		r.Get("/users/{id}/ws/recommendations", recH.RecommendationsWS)

		// ---- Endpoints solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())

			r.Get("/users", authH.ListUsers)
			r.Get("/users/{id}", authH.GetUserByID)

			// gestión del catálogo
			r.Post("/games", gameH.Create)
			r.Put("/games/{id}", gameH.Update)

			// game-requests (ADMIN)
			r.Get("/game-requests", gameReqH.ListAll)
			r.Post("/game-requests/{id}/approve", gameReqH.Approve)
			r.Post("/game-requests/{id}/reject", gameReqH.Reject)

			// panel admin
			r.Get("/admin/dataset/summary", adminH.DatasetSummary)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
