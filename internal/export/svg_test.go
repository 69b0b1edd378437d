package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
	"github.com/ZaydAbdullayev/bubbles/internal/field"
)

func TestFieldToSVG(t *testing.T) {
	bubbles := []bubble.Bubble{
		{Key: "a", Wallet: "<wallet>", Color: "#3B82F6", X: 50, Y: 50},
		{Key: "b", Wallet: "w", Color: "#F97316", X: 10, Y: 90},
		{Key: "c", Wallet: "w", Color: "#F97316", X: 150, Y: 90},
	}
	svg := FieldToSVG(bubbles, 200, 100)

	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("circles = %d, want 2 (out-of-bounds bubble skipped)", got)
	}
	if !strings.Contains(svg, `cx="100.0" cy="50.0"`) {
		t.Error("center bubble not placed at canvas center")
	}
	if strings.Contains(svg, "<wallet>") {
		t.Error("wallet label not escaped")
	}
}

func TestFieldToSVGRejectsBadColors(t *testing.T) {
	bubbles := []bubble.Bubble{
		{Key: "a", Color: `red" onload="alert(1)`, X: 50, Y: 50},
		{Key: "b", Color: "#3B82F6", X: 20, Y: 20},
	}
	svg := FieldToSVG(bubbles, 100, 100)

	if strings.Contains(svg, "onload") {
		t.Error("unvalidated color reached the markup")
	}
	if !strings.Contains(svg, `fill="`+fallbackColor+`"`) {
		t.Error("bad color should fall back")
	}
	if !strings.Contains(svg, `fill="#3b82f6"`) {
		t.Error("valid color should be kept")
	}
}

func TestPopulationToSVG(t *testing.T) {
	samples := []field.Sample{
		{At: 0, Count: 10},
		{At: time.Minute, Count: 20},
		{At: 2 * time.Minute, Count: 15},
	}
	svg := PopulationToSVG(samples, 300, 100, "#22c55e")
	if !strings.HasPrefix(svg, "<?xml") || !strings.Contains(svg, " L300.0,") {
		t.Errorf("unexpected path:\n%s", svg)
	}
	if PopulationToSVG(samples[:1], 300, 100, "#fff") != "" {
		t.Error("single sample should produce no chart")
	}
}

func TestRim(t *testing.T) {
	if got := rim("#3B82F6"); got == "#3b82f6" || !strings.HasPrefix(got, "#") {
		t.Errorf("rim = %s", got)
	}
	if got := rim("nope"); got != "nope" {
		t.Errorf("invalid hex should pass through, got %s", got)
	}
}

func TestWriteSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.svg")
	res := &field.Result{Final: []bubble.Bubble{{Key: "a", Color: "#10B981", X: 20, Y: 20}}}
	if err := WriteSVG(path, res, 100, 100); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "#10b981") {
		t.Error("bubble color missing from file")
	}
}
