package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/threedblog/api/internal/core/domain"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondDomainError maps the error taxonomy to HTTP. Every token
// failure collapses into the same 401 body so clients cannot tell a
// forged credential from an expired one.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidGrant):
		respondError(w, http.StatusBadRequest, "Invalid or expired authorization code")
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrPostNotFound):
		respondError(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, domain.ErrInvalidID):
		respondError(w, http.StatusBadRequest, "Invalid id")
	case errors.Is(err, domain.ErrIdentityProvider):
		respondError(w, http.StatusInternalServerError, "Authentication failed")
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
