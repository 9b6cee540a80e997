package domain

import "errors"

// Auth errors
var (
	ErrInvalidGrant     = errors.New("invalid or expired authorization code") // 400
	ErrIdentityProvider = errors.New("identity provider request failed")      // 500
	ErrUnauthorized     = errors.New("unauthorized")                          // 401, uniform for every token failure
)

// Content errors
var (
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidID    = errors.New("invalid id")
)

var ErrInternal = errors.New("internal server error")
