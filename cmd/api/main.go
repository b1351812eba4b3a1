package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"socialfeed/cmd/app"
	"socialfeed/internal/config"
	handlers "socialfeed/internal/handler"
	"socialfeed/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set in the .env file")
	}

	db, feedCache, _, services := app.App(cfg)
	defer db.CloseDB()
	defer feedCache.Close()

	handler := handlers.NewHandlers(services, cfg)

	router := mux.NewRouter()

	router.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// public auth endpoints
	auth := api.NewRoute().Subrouter()
	auth.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)
	auth.HandleFunc("/me/verify-email/{token}", handler.VerifyEmail).Methods(http.MethodGet)

	// public reads, identity attached when a token is present
	reads := api.NewRoute().Subrouter()
	reads.Use(middleware.OptionalAuthMiddleware(cfg))
	reads.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	reads.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	reads.HandleFunc("/posts/{id}/comments", handler.GetComments).Methods(http.MethodGet)
	reads.HandleFunc("/posts/{id}/comments/{commentId}/replies", handler.GetReplies).Methods(http.MethodGet)

	// every mutating action requires a signed-in user
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg))
	protected.HandleFunc("/auth/sign-out", handler.SignOut).Methods(http.MethodPost)

	protected.HandleFunc("/me", handler.GetCurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/me", handler.DeleteAccount).Methods(http.MethodDelete)
	protected.HandleFunc("/me/display-name", handler.UpdateDisplayName).Methods(http.MethodPatch)
	protected.HandleFunc("/me/photo", handler.UpdateProfilePhoto).Methods(http.MethodPut)
	protected.HandleFunc("/me/verify-email", handler.SendEmailVerification).Methods(http.MethodPost)

	protected.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	protected.HandleFunc("/posts/{id}", handler.UpdatePost).Methods(http.MethodPatch)
	protected.HandleFunc("/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)
	protected.HandleFunc("/posts/{id}/like", handler.ToggleLike).Methods(http.MethodPost)

	protected.HandleFunc("/posts/{id}/comments", handler.AddComment).Methods(http.MethodPost)
	protected.HandleFunc("/posts/{id}/comments/{commentId}", handler.DeleteComment).Methods(http.MethodDelete)
	protected.HandleFunc("/posts/{id}/comments/{commentId}/replies", handler.AddReply).Methods(http.MethodPost)

	protected.HandleFunc("/uploads/image", handler.UploadImage).Methods(http.MethodPost)
	protected.HandleFunc("/uploads/video", handler.UploadVideo).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Server started on %s\n", addr)
	fmt.Printf("Database: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
