// Package views renders the dashboard, portfolio and chat screens for the
// terminal client. Views read session snapshots and fetch their own
// read-only collections per render; they never mutate session state.
package views

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bobmcallan/kabu/internal/common"
	"github.com/bobmcallan/kabu/internal/interfaces"
)

// PortfolioView renders the holdings table.
type PortfolioView struct {
	api    interfaces.PortfolioAPI
	logger *common.Logger
}

// NewPortfolioView creates a portfolio view.
func NewPortfolioView(api interfaces.PortfolioAPI, logger *common.Logger) *PortfolioView {
	return &PortfolioView{api: api, logger: logger}
}

// Render fetches the holdings and writes the valuation table. The fetch
// happens on every render; nothing is cached between calls.
func (v *PortfolioView) Render(ctx context.Context, w io.Writer) error {
	items, err := v.api.GetPortfolio(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch portfolio: %w", err)
	}
	v.logger.Debug().Int("holdings", len(items)).Msg("Portfolio fetched")

	if len(items) == 0 {
		fmt.Fprintln(w, "No holdings yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tQTY\tAVG PRICE\tPRICE\tVALUE\tP&L\tP&L %")

	var totalCost, totalValue float64
	for _, item := range items {
		quote, ok := QuoteFor(item.Symbol)
		price := item.AveragePrice
		if ok {
			price = quote.Price
		}
		row := item.Enrich(price)

		totalCost += row.CostBasis()
		totalValue += row.CurrentValue

		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%+.2f\t%+.2f%%\n",
			row.Symbol, row.Quantity, row.AveragePrice,
			row.CurrentPrice, row.CurrentValue,
			row.UnrealizedPnL, row.UnrealizedPnLPercent)
	}

	totalPnL := totalValue - totalCost
	totalPct := 0.0
	if totalCost != 0 {
		totalPct = totalPnL / totalCost * 100
	}
	fmt.Fprintf(tw, "TOTAL\t\t\t\t%.2f\t%+.2f\t%+.2f%%\n", totalValue, totalPnL, totalPct)

	return tw.Flush()
}
