package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bobmcallan/kabu/internal/interfaces"
	"github.com/bobmcallan/kabu/internal/models"
)

// userRecord is the on-disk shape of a user account. The password hash
// lives alongside the profile but never leaves the server.
type userRecord struct {
	User         models.User `json:"user"`
	PasswordHash string      `json:"password_hash"`
}

// UserStore persists user accounts keyed by email.
type UserStore struct {
	fs *FileStore
}

// NewUserStore creates a user store on top of a FileStore.
func NewUserStore(fs *FileStore) *UserStore {
	return &UserStore{fs: fs}
}

// CreateUser stores a new account. Fails if the email is already registered.
func (s *UserStore) CreateUser(ctx context.Context, user *models.User, passwordHash string) error {
	key := emailKey(user.Email)
	var existing userRecord
	if err := s.fs.readJSON("users", key, &existing); err == nil {
		return fmt.Errorf("email already registered")
	}

	record := userRecord{User: *user, PasswordHash: passwordHash}
	if err := s.fs.writeJSON("users", key, &record); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// GetUserByEmail returns the account and its password hash.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var record userRecord
	if err := s.fs.readJSON("users", emailKey(email), &record); err != nil {
		return nil, "", err
	}
	return &record.User, record.PasswordHash, nil
}

// GetUserByID scans accounts for a matching user ID.
func (s *UserStore) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	keys, err := s.fs.listKeys("users")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, key := range keys {
		var record userRecord
		if err := s.fs.readJSON("users", key, &record); err != nil {
			continue
		}
		if record.User.UserID == userID {
			return &record.User, nil
		}
	}
	return nil, ErrNotFound
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PortfolioStore persists holdings keyed by portfolio ID.
type PortfolioStore struct {
	fs *FileStore
}

// NewPortfolioStore creates a portfolio store on top of a FileStore.
func NewPortfolioStore(fs *FileStore) *PortfolioStore {
	return &PortfolioStore{fs: fs}
}

// SavePortfolio stores one holding.
func (s *PortfolioStore) SavePortfolio(ctx context.Context, item *models.Portfolio) error {
	if item.PortfolioID == "" {
		return fmt.Errorf("portfolio ID is required")
	}
	if err := s.fs.writeJSON("portfolios", item.PortfolioID, item); err != nil {
		return fmt.Errorf("failed to save portfolio item: %w", err)
	}
	return nil
}

// ListPortfolios returns all holdings owned by a user, oldest first.
func (s *PortfolioStore) ListPortfolios(ctx context.Context, userID string) ([]*models.Portfolio, error) {
	keys, err := s.fs.listKeys("portfolios")
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}

	var items []*models.Portfolio
	for _, key := range keys {
		var item models.Portfolio
		if err := s.fs.readJSON("portfolios", key, &item); err != nil {
			continue
		}
		if item.UserID == userID {
			items = append(items, &item)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt < items[j].CreatedAt
	})
	return items, nil
}

var (
	_ interfaces.UserStore      = (*UserStore)(nil)
	_ interfaces.PortfolioStore = (*PortfolioStore)(nil)
)
