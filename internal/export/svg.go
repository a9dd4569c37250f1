package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/mosaic/internal/mosaic"
)

// TilesToSVG draws every tile as a filled rect. Coordinates are canvas units
// times scale.
func TilesToSVG(canvas mosaic.Size, tiles []mosaic.Tile, scale float64) string {
	if scale <= 0 {
		scale = 1
	}
	width := canvas.W * scale
	height := canvas.H * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<g>
`, width, height, width, height))

	for _, t := range tiles {
		sb.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>
`, num(t.X*scale), num(t.Y*scale), num(t.W*scale), num(t.H*scale), t.Color.Hex()))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PointerPathSVG plots the pointer trail of a run over the canvas outline.
func PointerPathSVG(canvas mosaic.Size, frames []mosaic.Stat, strokeColor string) string {
	if len(frames) < 2 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		canvas.W, canvas.H, canvas.W, canvas.H, strokeColor))

	for i, f := range frames {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", f.Pointer.X, f.Pointer.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", f.Pointer.X, f.Pointer.Y))
		}
	}

	sb.WriteString(`"/>
`)
	for _, f := range frames {
		if f.Reset {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="#ff3b30"/>
`, f.Pointer.X, f.Pointer.Y))
		}
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}

// num rounds to 4 decimals without trailing zeros so tiny tiles keep their
// fractional extents.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
