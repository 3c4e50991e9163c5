package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nexusriot/ducktrend/internal/config"
	"github.com/nexusriot/ducktrend/pkg/trend"
)

type field int

const (
	fieldSmooth field = iota
	fieldRadius
	fieldStrokeWidth
	fieldLinecap
	fieldGradient
	fieldScore
	fieldPolicy
	fieldAutoDraw
	fieldEasing
	fieldSource
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldSmooth:      "Smooth",
	fieldRadius:      "Radius",
	fieldStrokeWidth: "Stroke width",
	fieldLinecap:     "Linecap",
	fieldGradient:    "Gradient",
	fieldScore:       "Score",
	fieldPolicy:      "Marker policy",
	fieldAutoDraw:    "Auto-draw",
	fieldEasing:      "Easing",
	fieldSource:      "Source",
}

const (
	radiusStep      = 1
	strokeWidthStep = 0.5
	scoreStep       = 0.5
)

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.cursor = (m.cursor + fieldCount - 1) % fieldCount
		return m, nil
	case "down", "j":
		m.cursor = (m.cursor + 1) % fieldCount
		return m, nil
	case "left", "h":
		m.adjust(-1)
		m.status = ""
		m.rebuild()
		return m, nil
	case "right", "l":
		m.adjust(1)
		m.status = ""
		m.rebuild()
		return m, nil
	case "enter", " ":
		if m.cursor == fieldScore {
			m.editingScore = true
			m.scoreInput.SetValue(scoreText(m.cfg.Score))
			m.scoreInput.CursorEnd()
			return m, m.scoreInput.Focus()
		}
		m.adjust(1)
		m.status = ""
		m.rebuild()
		return m, nil
	}
	return m, nil
}

// adjust steps the field under the cursor by delta.
func (m *Model) adjust(delta int) {
	c := &m.cfg
	switch m.cursor {
	case fieldSmooth:
		c.Smooth = !c.Smooth
	case fieldRadius:
		c.Radius = max(0, c.Radius+float64(delta)*radiusStep)
	case fieldStrokeWidth:
		c.StrokeWidth = max(strokeWidthStep, c.StrokeWidth+float64(delta)*strokeWidthStep)
	case fieldLinecap:
		c.StrokeLinecap = config.Cycle(config.Linecaps, c.StrokeLinecap, delta)
	case fieldGradient:
		n := len(config.Gradients)
		i := config.GradientIndex(*c)
		if i < 0 {
			i = 0
		} else {
			i = ((i+delta)%n + n) % n
		}
		config.Gradients[i].Apply(c)
	case fieldScore:
		s := 0.0
		if c.Score != nil {
			s = *c.Score + float64(delta)*scoreStep
		}
		c.Score = &s
	case fieldPolicy:
		c.Marker.Policy = config.Cycle(config.Policies, c.Marker.Policy, delta)
	case fieldAutoDraw:
		c.AutoDraw.Enabled = !c.AutoDraw.Enabled
	case fieldEasing:
		c.AutoDraw.Easing = config.Cycle(config.Easings, c.AutoDraw.Easing, delta)
	case fieldSource:
		m.switchSource(config.Cycle(config.Sources, c.Source, delta))
	}
}

// commitScore parses the typed score. Empty input removes the marker.
func (m *Model) commitScore(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		m.cfg.Score = nil
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !trend.IsScore(v) {
		return fmt.Errorf("score %q is not a finite number", s)
	}
	m.cfg.Score = &v
	return nil
}

func scoreText(s *float64) string {
	if s == nil {
		return ""
	}
	return trend.FormatFloat(*s)
}

func (m Model) fieldValue(f field) string {
	c := m.cfg
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	switch f {
	case fieldSmooth:
		return onOff(c.Smooth)
	case fieldRadius:
		return trend.FormatFloat(c.Radius)
	case fieldStrokeWidth:
		return trend.FormatFloat(c.StrokeWidth)
	case fieldLinecap:
		return c.StrokeLinecap
	case fieldGradient:
		if i := config.GradientIndex(c); i >= 0 {
			p := config.Gradients[i]
			return p.Name + " (" + strings.Join(p.Colors, "/") + ")"
		}
		if len(c.Gradient) == 0 {
			return "solid " + c.Stroke
		}
		return strings.Join(c.Gradient, "/")
	case fieldScore:
		if c.Score == nil {
			return "none"
		}
		return scoreText(c.Score)
	case fieldPolicy:
		return c.Marker.Policy
	case fieldAutoDraw:
		if !c.AutoDraw.Enabled {
			return "off"
		}
		return c.AutoDraw.Duration.String()
	case fieldEasing:
		return c.AutoDraw.Easing
	case fieldSource:
		return c.Source
	}
	return ""
}

func (m Model) renderFormText() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Configure") + "\n\n")
	for f := field(0); f < fieldCount; f++ {
		label := labelStyle.Render(fieldLabels[f])
		value := m.fieldValue(f)
		if f == fieldScore && m.editingScore {
			value = m.scoreInput.View()
		}
		line := label + " " + value
		if f == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
