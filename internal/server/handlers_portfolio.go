package server

import (
	"fmt"
	"net/http"

	"github.com/bobmcallan/kabu/internal/models"
)

// handlePortfolio handles GET /api/v1/portfolio.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request, userID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	items, err := s.portfolios.ListPortfolios(r.Context(), userID)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing portfolio: %v", err))
		return
	}

	if items == nil {
		items = []*models.Portfolio{}
	}
	WriteJSON(w, http.StatusOK, items)
}
