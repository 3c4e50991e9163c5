package ui

import (
	"fmt"
	"strings"

	"github.com/nexusriot/ducktrend/pkg/trend"
)

func (m Model) renderPreviewText(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Preview") + "  " + subtleStyle.Render(m.cfg.String()) + "\n\n")

	if m.source != nil {
		line := fmt.Sprintf("live %s: ", m.source.Name())
		if m.sampled {
			line += liveStyle.Render(m.source.Format(m.lastSample))
		} else {
			line += subtleStyle.Render("waiting for samples…")
		}
		b.WriteString(line + "\n")
	}

	if m.chart == nil || m.chart.Empty() {
		b.WriteString(subtleStyle.Render("Collecting data… a trend needs at least 2 points") + "\n")
		return b.String()
	}

	values := m.cfg.Values()
	if len(values) > width {
		values = values[len(values)-width:]
	}
	b.WriteString(GradientSpark(values, width, m.chart.Stops(), hexOr(m.cfg.Stroke)) + "\n")

	mk, ok := m.chart.Marker()
	if ok {
		n := len(m.cfg.Data)
		col := markerColumn(mk.X, m.cfg.ChartBox(), n) - (n - len(values))
		if col >= 0 {
			dot := inkStyle(mk.Color).Render("●")
			b.WriteString(strings.Repeat(" ", col) + dot + "\n")
		}
		b.WriteString(fmt.Sprintf("marker %s at (%s, %s), %s of %s along the line\n",
			mk.Band, trend.FormatFloat(mk.X), trend.FormatFloat(mk.Y),
			trend.FormatFloat(mk.Distance), trend.FormatFloat(m.chart.Length())))
	} else {
		b.WriteString(subtleStyle.Render("no marker") + "\n")
	}

	if stops := m.chart.Stops(); len(stops) > 0 {
		parts := make([]string, len(stops))
		for i, s := range stops {
			parts[i] = trend.FormatFloat(s.Offset) + "% " + s.Color
		}
		b.WriteString(subtleStyle.Render("stops: "+strings.Join(parts, " · ")) + "\n")
	}
	b.WriteString(subtleStyle.Render(trunc("d: "+m.chart.Path().String(), width)))
	return b.String()
}

func hexOr(color string) string {
	if c, err := trend.HexColor(color); err == nil {
		return c
	}
	return color
}
