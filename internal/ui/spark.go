package ui

import (
	"math"
	"strings"

	"github.com/nexusriot/ducktrend/pkg/trend"
)

// sparkline blocks: low -> high
var blocks = []rune("▁▂▃▄▅▆▇█")

// sparkLevels maps values onto block indexes with the same normalization
// the SVG renderer uses, so flat data sits in the middle.
func sparkLevels(values []float64) []int {
	top := float64(len(blocks) - 1)
	pts := trend.Normalize(values, trend.Box{MaxX: float64(len(values)), MaxY: top})
	out := make([]int, len(pts))
	for i, p := range pts {
		idx := int(math.Round(top - p.Y))
		out[i] = min(max(idx, 0), len(blocks)-1)
	}
	return out
}

// Spark draws the last width values, one column each, padded to width.
func Spark(values []float64, width int) string {
	return GradientSpark(values, width, nil, "")
}

// GradientSpark is Spark with every column painted by the gradient at its
// horizontal position, or by stroke when there are no stops.
func GradientSpark(values []float64, width int, stops []trend.Stop, stroke string) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat(" ", width)
	}
	// take last width points
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var b strings.Builder
	levels := sparkLevels(values)
	for i, lvl := range levels {
		r := string(blocks[lvl])
		color := stroke
		if len(stops) > 0 {
			color = colorAt(stops, columnPercent(i, len(levels)))
		}
		if color != "" {
			r = inkStyle(color).Render(r)
		}
		b.WriteString(r)
	}
	// pad to width
	if len(values) < width {
		b.WriteString(strings.Repeat(" ", width-len(values)))
	}
	return b.String()
}

func columnPercent(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1) * 100
}

// colorAt returns the hex color of the gradient at pct. Zero-width segments
// are hard edges and resolve to the later stop.
func colorAt(stops []trend.Stop, pct float64) string {
	if len(stops) == 0 {
		return ""
	}
	last := stops[len(stops)-1]
	if pct >= last.Offset {
		c, _ := trend.HexColor(last.Color)
		return c
	}
	if pct <= stops[0].Offset {
		c, _ := trend.HexColor(stops[0].Color)
		return c
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if pct >= b.Offset || b.Offset == a.Offset {
			continue
		}
		ca, err := trend.ParseColor(a.Color)
		if err != nil {
			return ""
		}
		cb, err := trend.ParseColor(b.Color)
		if err != nil {
			return ""
		}
		t := (pct - a.Offset) / (b.Offset - a.Offset)
		return ca.BlendHcl(cb, t).Clamped().Hex()
	}
	c, _ := trend.HexColor(last.Color)
	return c
}

// markerColumn returns the spark column under x in a chart of n points
// drawn in box.
func markerColumn(x float64, box trend.Box, n int) int {
	if n <= 1 || box.MaxX <= box.MinX {
		return 0
	}
	f := (x - box.MinX) / (box.MaxX - box.MinX)
	col := int(math.Round(f * float64(n-1)))
	return min(max(col, 0), n-1)
}
