package models

import (
	"fmt"
	"net/mail"
	"strings"
)

// Risk tolerance levels accepted by the backend.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// User represents the authenticated user's profile as returned by the backend.
type User struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	RiskTolerance string `json:"risk_tolerance"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// AuthTokens is the opaque credential bundle issued by POST /auth/login.
// The client never inspects token contents; it only forwards AccessToken
// as a bearer credential on authenticated requests.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// LoginCredentials is the request body for POST /auth/login.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterCredentials is the request body for POST /auth/register.
// ConfirmPassword is validated client-side and never sent over the wire.
type RegisterCredentials struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	RiskTolerance   string `json:"risk_tolerance,omitempty"`
}

// ValidationError reports malformed input caught before any network call.
// Field names the offending input so it can be reported inline.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateRiskTolerance checks that the value is one of low, medium, high.
// Empty is allowed (the backend defaults it).
func ValidateRiskTolerance(value string) error {
	switch value {
	case "", RiskLow, RiskMedium, RiskHigh:
		return nil
	}
	return fmt.Errorf("invalid risk tolerance %q: must be one of %s, %s, %s",
		value, RiskLow, RiskMedium, RiskHigh)
}

// Validate checks login credentials before they reach the network.
func (c *LoginCredentials) Validate() error {
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	return validatePassword(c.Password)
}

// Validate checks registration input, including password confirmation.
func (c *RegisterCredentials) Validate() error {
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	if err := validatePassword(c.Password); err != nil {
		return err
	}
	if c.Password != c.ConfirmPassword {
		return &ValidationError{Field: "confirm_password", Message: "passwords do not match"}
	}
	if err := ValidateRiskTolerance(c.RiskTolerance); err != nil {
		return &ValidationError{Field: "risk_tolerance", Message: err.Error()}
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return &ValidationError{Field: "email", Message: "invalid email address"}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	return nil
}
