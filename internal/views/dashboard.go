package views

import (
	"bytes"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/kabu/internal/models"
)

// DashboardView renders the market summary screen.
type DashboardView struct{}

// NewDashboardView creates a dashboard view.
func NewDashboardView() *DashboardView {
	return &DashboardView{}
}

// Render writes indices, movers and headlines.
func (v *DashboardView) Render(w io.Writer) error {
	summary := Summary()

	fmt.Fprintln(w, "MARKET SUMMARY")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, idx := range summary.Indices {
		fmt.Fprintf(tw, "%s\t%.0f\t%+.0f\t%+.1f%%\n", idx.Name, idx.Level, idx.Change, idx.ChangePercent)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nMOVERS")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, q := range summary.Movers {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%+.2f%%\n", q.Symbol, q.Name, q.Price, q.ChangePercent)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nHEADLINES")
	for _, n := range summary.News {
		fmt.Fprintf(w, "  [%s] %s — %s\n", n.Category, n.Title, n.Source)
	}

	return nil
}

// sectorColors cycles through the palette used for allocation slices.
var sectorColors = []drawing.Color{
	drawing.ColorFromHex("2563eb"), // blue-600
	drawing.ColorFromHex("16a34a"), // green-600
	drawing.ColorFromHex("d97706"), // amber-600
	drawing.ColorFromHex("9ca3af"), // gray-400
	drawing.ColorFromHex("dc2626"), // red-600
}

// RenderAllocationChart renders a PNG pie chart of sector weights.
// Returns raw PNG bytes.
func RenderAllocationChart(sectors []models.SectorWeight) ([]byte, error) {
	if len(sectors) == 0 {
		return nil, fmt.Errorf("no sector weights to chart")
	}

	values := make([]chart.Value, len(sectors))
	for i, s := range sectors {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s %.0f%%", s.Sector, s.Weight),
			Value: s.Weight,
			Style: chart.Style{
				FillColor: sectorColors[i%len(sectorColors)],
			},
		}
	}

	graph := chart.PieChart{
		Title:  "Sector Allocation",
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
