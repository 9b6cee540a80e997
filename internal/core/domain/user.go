package domain

import "time"

// User is a local account. GoogleID is set on the first OAuth login and
// is unique per account, as is Email. RefreshToken holds the single
// redeemable refresh credential for the account, nil when logged out.
type User struct {
	ID           int64     `json:"id"`
	GoogleID     *string   `json:"-"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	ProfileImg   string    `json:"profileImageUrl"`
	RefreshToken *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
