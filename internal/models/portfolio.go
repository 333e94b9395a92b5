package models

// Portfolio is a single holding row as returned by GET /portfolio.
// The client treats portfolio items as read-only; they are fetched per view
// render and never cached or mutated locally.
type Portfolio struct {
	PortfolioID  string  `json:"portfolio_id"`
	UserID       string  `json:"user_id"`
	Symbol       string  `json:"symbol"`
	Quantity     float64 `json:"quantity"`
	AveragePrice float64 `json:"average_price"`
	PurchaseDate string  `json:"purchase_date,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

// CostBasis returns quantity * average price.
func (p *Portfolio) CostBasis() float64 {
	return p.Quantity * p.AveragePrice
}

// PortfolioWithMarketData joins a holding with its latest quoted price and
// the derived valuation figures shown in the portfolio table.
type PortfolioWithMarketData struct {
	Portfolio
	CurrentPrice         float64 `json:"current_price,omitempty"`
	CurrentValue         float64 `json:"current_value,omitempty"`
	UnrealizedPnL        float64 `json:"unrealized_pnl,omitempty"`
	UnrealizedPnLPercent float64 `json:"unrealized_pnl_percent,omitempty"`
}

// Enrich computes the derived valuation fields from a quoted price.
func (p *Portfolio) Enrich(currentPrice float64) PortfolioWithMarketData {
	enriched := PortfolioWithMarketData{
		Portfolio:    *p,
		CurrentPrice: currentPrice,
		CurrentValue: p.Quantity * currentPrice,
	}
	cost := p.CostBasis()
	enriched.UnrealizedPnL = enriched.CurrentValue - cost
	if cost != 0 {
		enriched.UnrealizedPnLPercent = enriched.UnrealizedPnL / cost * 100
	}
	return enriched
}
