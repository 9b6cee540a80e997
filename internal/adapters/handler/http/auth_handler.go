package http

import (
	"net/http"

	"github.com/threedblog/api/internal/core/domain"
	"github.com/threedblog/api/internal/core/ports"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

type userResponse struct {
	ID              int64  `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profileImageUrl"`
}

func toUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		ProfileImageURL: user.ProfileImg,
	}
}

// GoogleCallback godoc
// @Summary      Exchanges a Google authorization code for a session
// @Description  Returns an access token, a refresh token and the account profile. The refresh token is also set as an httpOnly cookie.
// @Tags         auth
// @Param        code query string true "authorization code"
// @Success      200
// @Failure      400
// @Router       /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "Authorization code is required")
		return
	}

	result, err := h.authService.LoginWithCode(r.Context(), code)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	h.setRefreshCookie(w, result.RefreshToken)

	respondJSON(w, http.StatusOK, map[string]any{
		"token":        result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user":         toUserResponse(result.User),
	})
}

// Me godoc
// @Summary      Returns the authenticated account profile
// @Tags         auth
// @Success      200
// @Failure      401
// @Router       /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

// Refresh godoc
// @Summary      Mints a new access token from a refresh token
// @Description  Reads the refresh token from the refreshToken cookie, falling back to the Authorization header.
// @Tags         auth
// @Success      200
// @Failure      401
// @Router       /auth/refresh [get]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	if cookie, err := r.Cookie(refreshCookieName); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" {
		if token, ok := bearerToken(r); ok {
			refreshToken = token
		}
	}
	if refreshToken == "" {
		respondError(w, http.StatusUnauthorized, "No refresh token provided")
		return
	}

	accessToken, user, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token": accessToken,
		"user":  toUserResponse(user),
	})
}

// Logout godoc
// @Summary      Revokes the stored refresh credential
// @Tags         auth
// @Success      200
// @Failure      401
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to logout")
		return
	}

	h.expireRefreshCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(domain.RefreshTokenTTL.Seconds()),
	})
}

func (h *AuthHandler) expireRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
