package domain

import "time"

// Token kinds. Every issued token carries one in its "type" claim and
// callers must check it after verification; an otherwise valid refresh
// token is never accepted where an access token is required.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)
