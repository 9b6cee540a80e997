package google

import (
	"context"

	"github.com/google/uuid"
	"github.com/threedblog/api/internal/core/ports"
)

// MockExchanger stands in for Google when no provider secret is
// configured. It never contacts the network and resolves every code to
// the same test identity; the email is stable so repeated logins land
// on the same account. Wired only outside production.
type MockExchanger struct{}

func NewMockExchanger() *MockExchanger {
	return &MockExchanger{}
}

func (e *MockExchanger) Exchange(_ context.Context, _ string) (*ports.Identity, error) {
	return &ports.Identity{
		GoogleID:   "mock_" + uuid.NewString(),
		Email:      "test@example.com",
		Name:       "Test User",
		PictureURL: "https://via.placeholder.com/150",
	}, nil
}
