// Package export renders a single sketch frame to SVG. Unlike the
// braille canvas the SVG keeps full float precision and edge weights.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sketchlab/internal/sketch"
)

// FrameToSVG serializes one frame. Edge weight becomes stroke opacity;
// attractor vertices keep their perspective depth as opacity.
func FrameToSVG(f sketch.Frame, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if len(f.Edges) > 0 {
		sb.WriteString(`<g stroke="#7fd7ff" stroke-width="1">` + "\n")
		for _, e := range f.Edges {
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke-opacity="%.3f"/>`+"\n",
				e.X1, e.Y1, e.X2, e.Y2, e.Weight))
		}
		sb.WriteString("</g>\n")
	}

	for _, line := range f.Lines {
		if len(line) < 2 {
			continue
		}
		opacity := 0.4 + 0.6*clamp01(line[len(line)-1].Depth)
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#ffb86c" stroke-width="1.2" stroke-opacity="%.3f" d="M`, opacity))
		for i, v := range line {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", v.X, v.Y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", v.X, v.Y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	for i, level := range f.Contours {
		if len(level) == 0 {
			continue
		}
		opacity := 0.3 + 0.7*float64(i+1)/float64(len(f.Contours))
		sb.WriteString(fmt.Sprintf(`<g stroke="#50fa7b" stroke-width="1" stroke-opacity="%.3f">`+"\n", opacity))
		for _, s := range level {
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
				s.X1, s.Y1, s.X2, s.Y2))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
