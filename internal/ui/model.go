// Package ui is the terminal demo shell: a live preview of the trend chart,
// a form over its configuration and the code that reproduces it.
package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/nexusriot/ducktrend/internal/config"
	"github.com/nexusriot/ducktrend/internal/probe"
	"github.com/nexusriot/ducktrend/pkg/trend"
	"github.com/nexusriot/ducktrend/pkg/trend/chart"
)

type tab int

const (
	tabConfigure tab = iota
	tabCode
	tabCount
)

const (
	headerH = 1
	footerH = 1

	// previewID keeps preview output stable across rebuilds.
	previewID = "preview"
	// liveHistory bounds the number of samples plotted from a live source.
	liveHistory = 60
)

const version = "0.1.0"

type tickMsg time.Time

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type errMsg struct{ error }

type sampleMsg struct {
	source string
	value  float64
}

type hostMsg string

type savedMsg struct {
	path string
	err  error
}

type Model struct {
	w, h int

	activeTab tab
	log       zerolog.Logger
	host      string

	cfg        config.Config
	staticData []trend.DataPoint
	chart      *chart.Chart
	err        error
	status     string

	cursor       field
	scoreInput   textinput.Model
	editingScore bool

	codeVP   viewport.Model
	codeText string

	source     probe.Source
	lastSample float64
	sampled    bool
}

// NewModel builds the shell around cfg. lg receives debug output; pass a
// disabled logger when the terminal is the only output.
func NewModel(cfg config.Config, lg zerolog.Logger) Model {
	si := textinput.New()
	si.Placeholder = "e.g. -1.5, empty for none"
	si.Prompt = "score: "
	si.CharLimit = 16

	m := Model{
		activeTab:  tabConfigure,
		log:        lg,
		cfg:        cfg,
		staticData: cfg.Data,
		scoreInput: si,
		codeVP:     viewport.New(0, 0),
	}
	m.switchSource(cfg.Source)
	m.rebuild()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		hostCmd(),
		tickEvery(1*time.Second),
	)
}

// bodyHeight returns height available for the tab body area.
// We also subtract a small constant for borders/padding breathing room.
func (m Model) bodyHeight() int {
	return max(8, m.h-headerH-footerH-2)
}

func hostCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return hostMsg(probe.Hostname(ctx))
	}
}

func sampleCmd(src probe.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 900*time.Millisecond)
		defer cancel()
		v, err := src.Sample(ctx)
		if err != nil {
			return errMsg{fmt.Errorf("%s: %w", src.Name(), err)}
		}
		return sampleMsg{source: src.Name(), value: v}
	}
}

func saveCmd(path, svg string) tea.Cmd {
	return func() tea.Msg {
		err := os.WriteFile(path, []byte(svg), 0o644)
		return savedMsg{path: path, err: err}
	}
}

// rebuild derives the preview chart and the code listing from the config.
func (m *Model) rebuild() {
	if m.chart != nil {
		m.chart.Close()
		m.chart = nil
	}
	opts, err := m.cfg.ChartOptions()
	if err == nil {
		if opts.ID == "" {
			opts.ID = previewID
		}
		m.chart, err = chart.New(opts)
	}
	m.err = err
	if err != nil {
		m.log.Debug().Err(err).Msg("preview rebuild failed")
	}

	m.codeText = m.renderCodeText()
	m.codeVP.SetContent(hardClipLinesToWidth(m.codeText, m.codeVP.Width))
}

// switchSource swaps the data source. Live sources start from an empty
// history; going back to static restores the original data.
func (m *Model) switchSource(name string) {
	src, err := probe.NewSource(name)
	if err != nil {
		m.err = err
		return
	}
	m.cfg.Source = name
	m.source = src
	m.sampled = false
	if src == nil {
		m.cfg.Data = m.staticData
	} else {
		m.cfg.Data = nil
	}
	m.log.Debug().Str("source", name).Msg("data source switched")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height

		codeW := boxWidth(m.w)
		m.codeVP.Width = max(10, codeW-2)
		m.codeVP.Height = max(5, m.bodyHeight()-2)
		m.codeVP.SetContent(hardClipLinesToWidth(m.codeText, m.codeVP.Width))
		return m, nil

	case hostMsg:
		m.host = string(msg)
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickEvery(1 * time.Second)}
		if m.source != nil {
			cmds = append(cmds, sampleCmd(m.source))
		}
		return m, tea.Batch(cmds...)

	case sampleMsg:
		// a sample may arrive after the source was switched away
		if m.source == nil || msg.source != m.source.Name() {
			return m, nil
		}
		m.lastSample = msg.value
		m.sampled = true
		data := append(m.cfg.Data[:len(m.cfg.Data):len(m.cfg.Data)], trend.Number(msg.value))
		m.cfg.Data = probe.ClampHistory(data, liveHistory)
		m.rebuild()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.log.Error().Err(msg.err).Str("path", msg.path).Msg("save failed")
			return m, nil
		}
		m.status = "saved " + msg.path
		m.log.Info().Str("path", msg.path).Msg("chart saved")
		return m, nil

	case errMsg:
		m.err = msg.error
		return m, nil

	case tea.KeyMsg:
		if m.editingScore {
			return m.updateScoreInput(msg)
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+s":
			return m, m.save()
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "1":
			m.activeTab = tabConfigure
			return m, nil
		case "2":
			m.activeTab = tabCode
			return m, nil
		}
		if m.activeTab == tabConfigure {
			return m.updateForm(msg)
		}
	}

	// Code tab: scroll via viewport
	if m.activeTab == tabCode {
		var cmd tea.Cmd
		m.codeVP, cmd = m.codeVP.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) save() tea.Cmd {
	if m.chart == nil || m.chart.Empty() {
		return func() tea.Msg { return errMsg{fmt.Errorf("nothing to save: need at least 2 data points")} }
	}
	svg, err := m.chart.SVG()
	if err != nil {
		return func() tea.Msg { return errMsg{err} }
	}
	path := m.cfg.Output
	if path == "" {
		path = "trend.svg"
	}
	return saveCmd(path, svg)
}

func (m Model) updateScoreInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if err := m.commitScore(m.scoreInput.Value()); err != nil {
			m.err = err
			return m, nil
		}
		m.editingScore = false
		m.scoreInput.Blur()
		m.rebuild()
		return m, nil
	case "esc":
		m.editingScore = false
		m.scoreInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.scoreInput, cmd = m.scoreInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := m.renderHeader()

	var body string
	switch m.activeTab {
	case tabConfigure:
		body = m.viewConfigure()
	case tabCode:
		body = m.viewCode()
	}

	footer := subtleStyle.Render("Keys: tab/1/2 • ↑/↓ field • ←/→ change • enter edit • ctrl+s save svg • ctrl+c quit")
	switch {
	case m.err != nil:
		footer = errStyle.Render("Error: " + m.err.Error())
	case m.status != "":
		footer = liveStyle.Render(m.status)
	}

	footer = clampToWidthOneLine(footer, m.w)
	footer = lipgloss.NewStyle().Width(m.w).Render(footer)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer) + "\x1b[0m"
}

func (m Model) renderHeader() string {
	tabs := []string{
		renderTab("1 Configure", m.activeTab == tabConfigure),
		renderTab("2 Code", m.activeTab == tabCode),
	}

	left := titleStyle.Render("ducktrend 🦆 "+version) + " " + subtleStyle.Render(fmt.Sprintf("(%dx%d)", m.w, m.h))
	if m.host != "" {
		left += " " + subtleStyle.Render(m.host)
	}

	rem := m.w - lipgloss.Width(left)
	if rem < 0 {
		rem = 0
	}

	right := joinTabsWithinWidth(tabs, rem)

	line := left + padTo(rem, right)
	return lipgloss.NewStyle().Width(m.w).Render(line)
}

func renderTab(s string, active bool) string {
	if active {
		return selectedStyle.Padding(0, 1).Render(s)
	}
	return subtleStyle.Padding(0, 1).Render(s)
}

func (m Model) viewConfigure() string {
	w := boxWidth(m.w)
	preview := boxStyle.Width(w).Render(m.renderPreviewText(max(10, w-4)))
	form := boxStyle.Width(w).Render(m.renderFormText())
	return lipgloss.JoinVertical(lipgloss.Left, preview, form)
}

func (m Model) viewCode() string {
	w := boxWidth(m.w)
	return boxStyle.Width(w).Height(m.bodyHeight()).Render(m.codeVP.View())
}

func (m Model) renderCodeText() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Go") + "\n\n")
	code, err := config.Snippet(m.cfg)
	if err != nil {
		b.WriteString(errStyle.Render(err.Error()) + "\n")
	} else {
		b.WriteString(code)
	}
	b.WriteString("\n" + titleStyle.Render("YAML") + "\n\n")
	y, err := m.cfg.YAML()
	if err != nil {
		b.WriteString(errStyle.Render(err.Error()) + "\n")
	} else {
		b.Write(y)
	}
	return b.String()
}
