package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bobmcallan/kabu/internal/common"
	"github.com/bobmcallan/kabu/internal/models"
)

// signToken creates a signed HMAC-SHA256 JWT for the given user.
func signToken(user *models.User, tokenUse string, expiry time.Duration, config *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.UserID,
		"email": user.Email,
		"use":   tokenUse,
		"iss":   "kabu-server",
		"iat":   now.Unix(),
		"exp":   now.Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// issueTokens creates the access/refresh bundle returned by /auth/login.
func issueTokens(user *models.User, config *common.AuthConfig) (*models.AuthTokens, error) {
	access, err := signToken(user, "access", config.GetAccessExpiry(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := signToken(user, "refresh", config.GetRefreshExpiry(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &models.AuthTokens{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// validateToken parses and validates a JWT, returning its claims.
func validateToken(tokenString string, secret []byte) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// requireAuth wraps a handler with bearer token validation and hands the
// resolved user ID to the wrapped handler.
func (s *Server) requireAuth(next func(w http.ResponseWriter, r *http.Request, userID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			WriteError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		claims, err := validateToken(strings.TrimPrefix(auth, "Bearer "), []byte(s.config.Auth.JWTSecret))
		if err != nil {
			WriteError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		if use, _ := claims["use"].(string); use != "access" {
			WriteError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			WriteError(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		next(w, r, sub)
	}
}
