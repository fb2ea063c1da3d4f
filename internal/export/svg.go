package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/springcurve/internal/scene"
)

// FrameToSVG draws one frame on a width x height surface: skeleton, curve,
// tangent markers, then control points on top.
func FrameToSVG(f scene.Frame, width, height float64, style Style) string {
	if len(f.Polyline) < 2 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, style.Background))

	c := f.Controls
	sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-opacity="%.2f" stroke-width="1" stroke-dasharray="5,5" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f"/>
`, style.Skeleton, style.SkeletonAlpha, c[0].X, c[0].Y, c[1].X, c[1].Y, c[2].X, c[2].Y, c[3].X, c[3].Y))

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="4" stroke-linecap="round" stroke-linejoin="round" d="M`, style.Curve))
	for i, p := range f.Polyline {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}
	sb.WriteString(`"/>
`)

	if len(f.Tangents) > 0 {
		sb.WriteString(fmt.Sprintf(`<g stroke="%s" stroke-opacity="%.2f" stroke-width="1">
`, style.Tangent, style.TangentAlpha))
		for _, m := range f.Tangents {
			end := m.End()
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, m.Anchor.X, m.Anchor.Y, end.X, end.Y))
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString(fmt.Sprintf(`<g fill="%s">
`, style.Point))
	for _, p := range []int{1, 2} {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="6"/>
`, c[p].X, c[p].Y))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
