package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
)

type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{
		service: service,
	}
}

func pageInput(r *http.Request) ports.ListPostsInput {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	return ports.ListPostsInput{Page: page, Size: size}
}

// ListPosts godoc
// @Summary      Lists published posts, newest first
// @Tags         posts
// @Success      200
// @Router       /member-posts [get]
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context(), pageInput(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"elements": posts})
}

// ListPopular godoc
// @Summary      Lists published posts by view count
// @Tags         posts
// @Success      200
// @Router       /member-posts/popular [get]
func (h *PostHandler) ListPopular(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPopular(r.Context(), pageInput(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch popular posts")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"elements": posts})
}

// GetPost godoc
// @Summary      Returns one post, flagging whether the caller bookmarked it
// @Tags         posts
// @Success      200
// @Failure      404
// @Router       /member-posts/{id} [get]
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondDomainError(w, domain.ErrInvalidID)
		return
	}

	var viewerID *int64
	if user := UserFromContext(r.Context()); user != nil {
		viewerID = &user.ID
	}

	post, bookmarked, err := h.service.GetPost(r.Context(), id, viewerID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"post":         post,
		"isBookmarked": bookmarked,
	})
}
