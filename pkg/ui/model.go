// Package ui is the interactive terminal front end. It drives the chart
// engine against a cell-grid surface and animates transitions with a frame
// tick while any bar is still moving.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dfmore/calviz/pkg/chart"
	"github.com/dfmore/calviz/pkg/debug"
	"github.com/dfmore/calviz/pkg/model"
	"github.com/dfmore/calviz/pkg/views"
	"github.com/dfmore/calviz/pkg/watcher"
)

const frameInterval = time.Second / 30

// sidePanelWidth is the column reserved for legend and insights.
const sidePanelWidth = 34

type tickMsg time.Time

type dataChangedMsg struct{}

type reloadedMsg struct {
	data *model.Collection
	err  error
}

// ChartSettings carries the configurable chart behaviour: band padding and
// the animation timings. Zero values fall back to the engine defaults.
type ChartSettings struct {
	Padding         float64
	InitialDuration time.Duration
	SwitchDuration  time.Duration
	Stagger         time.Duration
}

// Model is the bubbletea model for the chart screen.
type Model struct {
	data    *model.Collection
	reg     *views.Registry
	surface *CellSurface
	ctrl    *chart.Controller
	theme   Theme
	keys    keyMap

	// Reload reads the data source again. Nil when the dataset is static.
	Reload func() (*model.Collection, error)
	// Watch delivers change notifications from the data file, or nil.
	Watch *watcher.Watcher
	// Settings tunes padding and animation, typically from config.
	Settings ChartSettings

	width, height int
	showInsights  bool
	animating     bool
	insightsMD    string
	status        string
	err           error
}

// NewModel creates the chart screen over an aggregated collection.
func NewModel(data *model.Collection) *Model {
	r := lipgloss.DefaultRenderer()
	return &Model{
		data:    data,
		reg:     views.NewRegistry(data),
		surface: NewCellSurface(0, 0),
		theme:   DefaultTheme(r),
		keys:    defaultKeyMap(),
	}
}

// Init starts the watcher listener when one is configured.
func (m *Model) Init() tea.Cmd {
	if m.Watch != nil {
		return m.waitForChange()
	}
	return nil
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.Watch.Changed()
		return dataChangedMsg{}
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, m.rebuild()

	case tickMsg:
		if m.ctrl == nil {
			return m, nil
		}
		m.animating = m.ctrl.Advance(time.Time(msg))
		if m.animating {
			return m, frameTick()
		}
		return m, nil

	case dataChangedMsg:
		return m, tea.Batch(m.reload(), m.waitForChange())

	case reloadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("reload failed: %v", msg.err)
			return m, nil
		}
		m.data = msg.data
		m.reg = views.NewRegistry(msg.data)
		m.status = "data reloaded"
		return m, m.rebuild()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Categories):
		return m, m.switchTo(views.ViewCategories)
	case key.Matches(msg, m.keys.Tags):
		return m, m.switchTo(views.ViewTags)
	case key.Matches(msg, m.keys.Count):
		return m, m.switchTo(views.ViewCount)
	case key.Matches(msg, m.keys.NextView):
		return m, m.switchTo(m.nextView())
	case key.Matches(msg, m.keys.Insights):
		m.showInsights = !m.showInsights
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		if m.Reload != nil {
			return m, m.reload()
		}
	}
	return m, nil
}

func (m *Model) nextView() views.ID {
	if m.ctrl == nil {
		return m.reg.Default()
	}
	ids := m.reg.IDs()
	cur := m.ctrl.CurrentView()
	for i, id := range ids {
		if id == cur {
			return ids[(i+1)%len(ids)]
		}
	}
	return m.reg.Default()
}

func (m *Model) switchTo(id views.ID) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	if err := m.ctrl.SwitchView(id); err != nil {
		if !errors.Is(err, chart.ErrUnknownView) {
			m.err = err
		}
		return nil
	}
	if cfg, ok := m.reg.Get(id); ok {
		m.surface.SetYMax(cfg.YMax)
	}
	m.refreshInsights()
	m.animating = true
	return frameTick()
}

// rebuild recreates the controller for the current terminal size, keeping
// the active view. The resized construct settles immediately; only the very
// first construct plays the staggered entrance.
func (m *Model) rebuild() tea.Cmd {
	cols := m.width - sidePanelWidth - 8
	rows := m.height - 8
	if cols < 12 || rows < 6 {
		m.surface.Resize(0, 0)
		return nil
	}
	m.surface.Resize(cols, rows)

	previous := views.ID("")
	resized := false
	if m.ctrl != nil {
		previous = m.ctrl.CurrentView()
		resized = true
	}

	m.ctrl = chart.New(m.reg, m.data, m.surface, chart.Options{
		Width:           float64(cols),
		Height:          float64(rows - 1),
		Padding:         m.Settings.Padding,
		InitialDuration: m.Settings.InitialDuration,
		SwitchDuration:  m.Settings.SwitchDuration,
		Stagger:         m.Settings.Stagger,
		Panels:          m.surface,
		Controls:        m.surface,
		Logf:            debug.Log,
	})
	if err := m.ctrl.Construct(); err != nil {
		m.err = err
		return nil
	}
	if previous != "" && previous != m.ctrl.CurrentView() {
		if err := m.ctrl.SwitchView(previous); err != nil {
			m.err = err
		}
	}
	if cfg, ok := m.reg.Get(m.ctrl.CurrentView()); ok {
		m.surface.SetYMax(cfg.YMax)
	}
	m.refreshInsights()
	if resized {
		m.ctrl.Settle()
		return nil
	}
	m.animating = true
	return frameTick()
}

func (m *Model) reload() tea.Cmd {
	reload := m.Reload
	if reload == nil {
		return nil
	}
	return func() tea.Msg {
		data, err := reload()
		return reloadedMsg{data: data, err: err}
	}
}

// refreshInsights re-renders the insight lines as markdown for the side
// panel. Rendering failures fall back to plain text.
func (m *Model) refreshInsights() {
	lines := m.surface.Insights()
	if len(lines) == 0 {
		m.insightsMD = ""
		return
	}
	md := "- " + strings.Join(lines, "\n- ")
	out, err := glamour.Render(md, "dark")
	if err != nil {
		m.insightsMD = md
		return
	}
	m.insightsMD = strings.TrimRight(out, "\n")
}

// View renders the whole screen.
func (m *Model) View() string {
	if m.err != nil {
		return m.theme.Base.Render(fmt.Sprintf("error: %v\n", m.err))
	}
	if m.ctrl == nil || !m.surface.Ready() {
		return m.theme.Help.Render("terminal too small")
	}

	header := m.renderHeader()
	stats := m.renderStats()
	chartBody := m.surface.Render(m.theme.Renderer, m.theme)
	side := m.renderSidePanel()

	body := lipgloss.JoinHorizontal(lipgloss.Top, chartBody, "  ", side)
	help := m.theme.Help.Render("1/2/3 views · tab next · i insights · r reload · q quit")
	if m.status != "" {
		help += "  " + m.theme.Help.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, stats, "", body, "", help)
}

func (m *Model) renderHeader() string {
	title := m.theme.Header.Render("Calendar Hours")
	tabs := make([]string, 0, 3)
	for _, id := range m.reg.IDs() {
		label := string(id)
		if id == m.ctrl.CurrentView() {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabIdle.Render(label))
		}
	}
	return title + "   " + strings.Join(tabs, "  ")
}

func (m *Model) renderStats() string {
	stats := m.surface.Stats()
	cards := make([]string, 0, len(stats))
	for _, s := range stats {
		if s.Value == "" {
			continue
		}
		card := m.theme.StatValue.Render(s.Value) + "\n" + m.theme.StatLabel.Render(s.Label)
		cards = append(cards, m.theme.Panel.Render(card))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m *Model) renderSidePanel() string {
	title, entries := m.surface.Legend()
	if title == "" {
		title = "Legend"
	}
	var b strings.Builder
	b.WriteString(m.theme.PanelHead.Render(title))
	for _, e := range entries {
		swatch := m.theme.Renderer.NewStyle().
			Foreground(ThemeFg(HexOf(e.Color))).
			Render(barRune)
		label := runewidth.Truncate(e.Label, sidePanelWidth-6, "…")
		b.WriteString("\n" + swatch + " " + label)
	}
	panel := m.theme.Panel.Width(sidePanelWidth).Render(b.String())

	if !m.showInsights || m.insightsMD == "" {
		return panel
	}
	insights := m.theme.Panel.Width(sidePanelWidth).Render(
		m.theme.PanelHead.Render("Insights") + "\n" + m.insightsMD)
	return lipgloss.JoinVertical(lipgloss.Left, panel, insights)
}
