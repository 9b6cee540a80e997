package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
)

type BookmarkHandler struct {
	service ports.BookmarkService
}

func NewBookmarkHandler(service ports.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{
		service: service,
	}
}

// List godoc
// @Summary      Lists the caller's bookmarked posts
// @Tags         bookmarks
// @Success      200
// @Failure      401
// @Router       /bookmarks [get]
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	posts, err := h.service.ListPosts(r.Context(), user.ID, pageInput(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch bookmarks")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"elements": posts})
}

// Toggle godoc
// @Summary      Toggles a bookmark on a post
// @Tags         bookmarks
// @Success      200
// @Failure      401
// @Failure      404
// @Router       /bookmarks/{postId} [post]
func (h *BookmarkHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	postID, err := strconv.ParseInt(chi.URLParam(r, "postId"), 10, 64)
	if err != nil {
		respondDomainError(w, domain.ErrInvalidID)
		return
	}

	bookmarked, err := h.service.Toggle(r.Context(), user.ID, postID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"bookmarked": bookmarked})
}
