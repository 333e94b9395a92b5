package interfaces

import (
	"context"

	"github.com/bobmcallan/kabu/internal/models"
)

// SessionStorage persists the durable subset of the session under a fixed
// storage key so it survives process restarts.
type SessionStorage interface {
	// Load reads the persisted record. Returns storage.ErrNotFound when no
	// record exists.
	Load() (*models.PersistedSession, error)

	// Save writes the record atomically.
	Save(record *models.PersistedSession) error

	// Clear removes the record. Clearing an absent record is not an error.
	Clear() error
}

// UserStore persists user accounts for the reference server.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User, passwordHash string) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, string, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// PortfolioStore persists holdings for the reference server.
type PortfolioStore interface {
	SavePortfolio(ctx context.Context, item *models.Portfolio) error
	ListPortfolios(ctx context.Context, userID string) ([]*models.Portfolio, error)
}
