package server

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bobmcallan/kabu/internal/common"
	"github.com/bobmcallan/kabu/internal/interfaces"
	"github.com/bobmcallan/kabu/internal/models"
)

// Demo account credentials created by Seed.
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "demo123"
)

var demoHoldings = []models.Portfolio{
	{Symbol: "AAPL", Quantity: 10, AveragePrice: 150.00},
	{Symbol: "GOOGL", Quantity: 5, AveragePrice: 2500.00},
	{Symbol: "TSLA", Quantity: 20, AveragePrice: 200.00},
	{Symbol: "MSFT", Quantity: 15, AveragePrice: 300.00},
}

// Seed creates the demo user and holdings if they do not already exist.
func Seed(ctx context.Context, users interfaces.UserStore, portfolios interfaces.PortfolioStore, logger *common.Logger) error {
	if _, _, err := users.GetUserByEmail(ctx, DemoEmail); err == nil {
		logger.Debug().Msg("Demo user already present, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	user := &models.User{
		UserID:        uuid.NewString(),
		Email:         DemoEmail,
		RiskTolerance: models.RiskMedium,
		IsActive:      true,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := users.CreateUser(ctx, user, string(hash)); err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}

	for _, holding := range demoHoldings {
		item := holding
		item.PortfolioID = uuid.NewString()
		item.UserID = user.UserID
		item.CreatedAt = time.Now().UTC().Format(time.RFC3339)
		if err := portfolios.SavePortfolio(ctx, &item); err != nil {
			return fmt.Errorf("failed to seed holding %s: %w", item.Symbol, err)
		}
	}

	logger.Info().Str("email", DemoEmail).Int("holdings", len(demoHoldings)).Msg("Seeded demo data")
	return nil
}
