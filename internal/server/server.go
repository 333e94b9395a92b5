// Package server implements the kabu reference backend: the four REST
// endpoints the client consumes, plus health and version probes.
package server

import (
	"net/http"

	"github.com/bobmcallan/kabu/internal/common"
	"github.com/bobmcallan/kabu/internal/interfaces"
)

// Server holds handler dependencies.
type Server struct {
	config     *common.Config
	logger     *common.Logger
	users      interfaces.UserStore
	portfolios interfaces.PortfolioStore
}

// NewServer creates a server over the given stores.
func NewServer(config *common.Config, logger *common.Logger, users interfaces.UserStore, portfolios interfaces.PortfolioStore) *Server {
	return &Server{
		config:     config,
		logger:     logger,
		users:      users,
		portfolios: portfolios,
	}
}

// Handler builds the HTTP mux. All API routes live under /api/v1 to match
// the client's default base URL.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("/api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("/api/v1/users/profile", s.requireAuth(s.handleProfile))
	mux.HandleFunc("/api/v1/portfolio", s.requireAuth(s.handlePortfolio))

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
