package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ZaydAbdullayev/bubbles/internal/bubble"
	"github.com/ZaydAbdullayev/bubbles/internal/field"
)

const (
	background = "#0a0a0a"
	// drawn for bubbles whose color is not a hex value
	fallbackColor = "#9ca3af"
)

// FieldToSVG draws each bubble as a shaded circle at its percentage
// position on a width x height canvas.
func FieldToSVG(bubbles []bubble.Bubble, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	short := width
	if height < short {
		short = height
	}
	radius := float64(short) * 0.025
	if radius < 2 {
		radius = 2
	}

	for _, b := range bubbles {
		if !b.InBounds() {
			continue
		}
		cx := b.X / 100 * float64(width)
		cy := b.Y / 100 * float64(height)
		fill := fallbackColor
		if c, err := colorful.Hex(b.Color); err == nil {
			fill = c.Hex()
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="1"><title>%s</title></circle>
`, cx, cy, radius, fill, rim(fill), escape(bubble.FormatWallet(b.Wallet))))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// PopulationToSVG plots the sampled population of a run as a polyline.
func PopulationToSVG(samples []field.Sample, width, height int, strokeColor string) string {
	if len(samples) < 2 {
		return ""
	}

	maxX := samples[len(samples)-1].At.Seconds()
	maxY := 0
	for _, s := range samples {
		if s.Count > maxY {
			maxY = s.Count
		}
	}
	if maxX == 0 {
		maxX = 1
	}
	// headroom above the peak
	rangeY := float64(maxY) * 1.1
	if rangeY == 0 {
		rangeY = 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor))

	for i, s := range samples {
		x := s.At.Seconds() / maxX * float64(width)
		y := float64(height) - float64(s.Count)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// WriteSVG writes the final field of a run to path.
func WriteSVG(path string, result *field.Result, width, height int) error {
	svg := FieldToSVG(result.Final, width, height)
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return fmt.Errorf("export: writing %s: %w", path, err)
	}
	return nil
}

func rim(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, l*0.7).Clamped().Hex()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
