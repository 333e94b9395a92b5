package views

import (
	"bytes"
	"strings"
	"testing"
)

func TestDashboardView_Render(t *testing.T) {
	var buf bytes.Buffer
	if err := NewDashboardView().Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"MARKET SUMMARY", "Nikkei 225", "MOVERS", "TSLA", "HEADLINES"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderAllocationChart_ProducesPNG(t *testing.T) {
	png, err := RenderAllocationChart(Summary().Sectors)
	if err != nil {
		t.Fatalf("RenderAllocationChart failed: %v", err)
	}
	if len(png) < 8 || !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("expected PNG magic bytes, got %d bytes", len(png))
	}
}

func TestRenderAllocationChart_EmptySectors(t *testing.T) {
	if _, err := RenderAllocationChart(nil); err == nil {
		t.Error("expected error for empty sector list")
	}
}
