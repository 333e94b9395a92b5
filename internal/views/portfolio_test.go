package views

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bobmcallan/kabu/internal/common"
	"github.com/bobmcallan/kabu/internal/models"
)

type fakePortfolioAPI struct {
	items []*models.Portfolio
	err   error
	calls int
}

func (f *fakePortfolioAPI) GetPortfolio(ctx context.Context) ([]*models.Portfolio, error) {
	f.calls++
	return f.items, f.err
}

func TestPortfolioView_RendersValuations(t *testing.T) {
	api := &fakePortfolioAPI{items: []*models.Portfolio{
		{Symbol: "AAPL", Quantity: 10, AveragePrice: 150.00},
		{Symbol: "UNLISTED", Quantity: 2, AveragePrice: 50.00},
	}}
	view := NewPortfolioView(api, common.NewSilentLogger())

	var buf bytes.Buffer
	if err := view.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "SYMBOL") {
		t.Error("expected table header")
	}
	// AAPL valued at the fixture price: 10 * 175.50 = 1755.00, P&L +255.00.
	if !strings.Contains(out, "1755.00") {
		t.Errorf("expected AAPL value 1755.00 in output:\n%s", out)
	}
	if !strings.Contains(out, "+255.00") {
		t.Errorf("expected AAPL P&L +255.00 in output:\n%s", out)
	}
	// Symbols without a quote fall back to cost, so P&L is flat.
	if !strings.Contains(out, "+0.00") {
		t.Errorf("expected flat P&L for unquoted symbol:\n%s", out)
	}
	if !strings.Contains(out, "TOTAL") {
		t.Error("expected totals row")
	}
}

func TestPortfolioView_EmptyPortfolio(t *testing.T) {
	view := NewPortfolioView(&fakePortfolioAPI{}, common.NewSilentLogger())

	var buf bytes.Buffer
	if err := view.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No holdings yet.") {
		t.Errorf("expected empty-state message, got %q", buf.String())
	}
}

func TestPortfolioView_FetchesPerRender(t *testing.T) {
	api := &fakePortfolioAPI{}
	view := NewPortfolioView(api, common.NewSilentLogger())

	var buf bytes.Buffer
	ctx := context.Background()
	view.Render(ctx, &buf)
	view.Render(ctx, &buf)
	if api.calls != 2 {
		t.Errorf("expected a fetch per render, got %d calls", api.calls)
	}
}

func TestPortfolioView_PropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("backend unavailable")
	view := NewPortfolioView(&fakePortfolioAPI{err: fetchErr}, common.NewSilentLogger())

	var buf bytes.Buffer
	err := view.Render(context.Background(), &buf)
	if !errors.Is(err, fetchErr) {
		t.Errorf("Render error = %v, want wrapped %v", err, fetchErr)
	}
}
