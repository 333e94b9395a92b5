// Package interfaces defines service contracts for kabu.
package interfaces

import (
	"context"

	"github.com/bobmcallan/kabu/internal/models"
)

// AuthAPI covers the backend authentication endpoints consumed by the
// session store.
type AuthAPI interface {
	// Login exchanges credentials for a token bundle via POST /auth/login.
	Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthTokens, error)

	// Register creates an account via POST /auth/register.
	Register(ctx context.Context, creds models.RegisterCredentials) (*models.User, error)

	// Profile fetches the user owning accessToken via GET /users/profile.
	// The caller supplies the bearer credential explicitly so a login can
	// use a freshly issued bundle before it is committed anywhere.
	Profile(ctx context.Context, accessToken string) (*models.User, error)
}

// PortfolioAPI covers the read-only portfolio endpoint consumed by views.
type PortfolioAPI interface {
	// GetPortfolio retrieves all holdings via GET /portfolio.
	GetPortfolio(ctx context.Context) ([]*models.Portfolio, error)
}

// Assistant produces a scripted reply to a user prompt. The default
// implementation matches keywords against compile-time fixtures; a real
// completion backend could satisfy the same contract.
type Assistant interface {
	Reply(ctx context.Context, prompt string) (*models.ChatMessage, error)
}
