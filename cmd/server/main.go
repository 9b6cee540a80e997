package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	handler "github.com/threedblog/api/internal/adapters/handler/http"
	"github.com/threedblog/api/internal/adapters/oauth/google"
	"github.com/threedblog/api/internal/adapters/repository/postgres"
	"github.com/threedblog/api/internal/config"
	"github.com/threedblog/api/internal/core/ports"
	"github.com/threedblog/api/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Startup either yields a working store or dies; there is no
	// degraded stub mode.
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("db ping: %v", err)
	}

	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	bookmarkRepo := postgres.NewBookmarkRepository(db)

	var exchanger ports.IdentityExchanger
	if cfg.UseMockIdentityProvider() {
		slog.Warn("google client secret missing or placeholder, using mock identity provider")
		exchanger = google.NewMockExchanger()
	} else {
		exchanger = google.NewExchanger(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.CallbackURL())
	}

	codec := services.NewTokenCodec([]byte(cfg.JWTSecret))
	authService := services.NewAuthService(userRepo, exchanger, codec)
	userService := services.NewUserService(userRepo)
	postService := services.NewPostService(postRepo, bookmarkRepo)
	bookmarkService := services.NewBookmarkService(postRepo, bookmarkRepo)

	authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
	postHandler := handler.NewPostHandler(postService)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService)
	memberHandler := handler.NewMemberHandler(userService, postService)
	authMiddleware := handler.NewAuthMiddleware(authService)

	router := handler.NewHandler(authHandler, postHandler, bookmarkHandler, memberHandler, authMiddleware, cfg.CORSOrigins)

	server := &stdhttp.Server{Addr: "0.0.0.0:" + cfg.Port, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	slog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
