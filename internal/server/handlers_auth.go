package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bobmcallan/kabu/internal/models"
	"github.com/bobmcallan/kabu/internal/storage"
)

// handleRegister handles POST /api/v1/auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Email         string `json:"email"`
		Password      string `json:"password"`
		RiskTolerance string `json:"risk_tolerance"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || len(req.Password) < 6 {
		WriteError(w, http.StatusBadRequest, "Email and a password of at least 6 characters are required")
		return
	}
	if req.RiskTolerance == "" {
		req.RiskTolerance = models.RiskMedium
	}
	if err := models.ValidateRiskTolerance(req.RiskTolerance); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if _, _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		WriteError(w, http.StatusBadRequest, "Email already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Password hash failed")
		WriteError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user := &models.User{
		UserID:        uuid.NewString(),
		Email:         req.Email,
		RiskTolerance: req.RiskTolerance,
		IsActive:      true,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.users.CreateUser(ctx, user, string(hash)); err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Registration failed")
		WriteError(w, http.StatusBadRequest, "Email already registered")
		return
	}

	s.logger.Info().Str("email", user.Email).Msg("User registered")
	WriteJSON(w, http.StatusCreated, user)
}

// handleLogin handles POST /api/v1/auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.LoginCredentials
	if !DecodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	user, passwordHash, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().Err(err).Str("email", req.Email).Msg("Login lookup failed")
		}
		WriteError(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)) != nil {
		WriteError(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	if !user.IsActive {
		WriteError(w, http.StatusBadRequest, "Inactive user")
		return
	}

	tokens, err := issueTokens(user, &s.config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Token issue failed")
		WriteError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	s.logger.Info().Str("email", user.Email).Msg("User logged in")
	WriteJSON(w, http.StatusOK, tokens)
}
