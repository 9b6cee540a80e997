package http

import (
	"net/http"

	"github.com/threedblog/api/internal/core/ports"
)

type MemberHandler struct {
	userService ports.UserService
	postService ports.PostService
}

func NewMemberHandler(userService ports.UserService, postService ports.PostService) *MemberHandler {
	return &MemberHandler{
		userService: userService,
		postService: postService,
	}
}

// Profile godoc
// @Summary      Returns the caller's profile, read fresh from the directory
// @Tags         members
// @Success      200
// @Failure      401
// @Router       /members/profile [get]
func (h *MemberHandler) Profile(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	if caller == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetByID(r.Context(), caller.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

// Posts godoc
// @Summary      Lists the caller's published posts
// @Tags         members
// @Success      200
// @Failure      401
// @Router       /members/posts [get]
func (h *MemberHandler) Posts(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	if caller == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	posts, err := h.postService.ListByAuthor(r.Context(), caller.ID, pageInput(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"elements": posts})
}
