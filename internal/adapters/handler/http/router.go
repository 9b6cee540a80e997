package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewHandler(
	authHandler *AuthHandler,
	postHandler *PostHandler,
	bookmarkHandler *BookmarkHandler,
	memberHandler *MemberHandler,
	authMiddleware *AuthMiddleware,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"message": "Threed API is working!"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/google/callback", authHandler.GoogleCallback)
			r.Get("/refresh", authHandler.Refresh)
			r.With(authMiddleware.RequireAuth).Get("/me", authHandler.Me)
			r.With(authMiddleware.RequireAuth).Post("/logout", authHandler.Logout)
		})

		r.Route("/member-posts", func(r chi.Router) {
			r.Get("/", postHandler.ListPosts)
			r.Get("/popular", postHandler.ListPopular)
			r.With(authMiddleware.OptionalAuth).Get("/{id}", postHandler.GetPost)
		})

		r.Route("/members", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Get("/profile", memberHandler.Profile)
			r.Get("/posts", memberHandler.Posts)
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)
			r.Get("/", bookmarkHandler.List)
			r.Post("/{postId}", bookmarkHandler.Toggle)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not Found")
	})

	return r
}
