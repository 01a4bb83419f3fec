// Package statsui provides the Bubble Tea history interface.
package statsui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/komorebi/internal/daily"
	"github.com/verte-zerg/komorebi/internal/model"
	"github.com/verte-zerg/komorebi/internal/scoring"
	"github.com/verte-zerg/komorebi/internal/stats"
)

const (
	tabOverview = iota
	tabDays
	tabMissed
)

const (
	daysStep    = 7
	maxDays     = 365
	missedLimit = 10
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea history UI.
type Model struct {
	history map[string]model.DayData
	cfg     model.AppConfig
	sc      model.StatsConfig
	today   string

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	dayTable  table.Model

	width  int
	height int
}

// NewModel constructs a history UI over a snapshot of saved days.
func NewModel(history map[string]model.DayData, cfg model.AppConfig, sc model.StatsConfig, today string) *Model {
	if sc.Days <= 0 {
		sc.Days = stats.DefaultDays
	}
	if sc.Until == "" {
		sc.Until = today
	}
	m := &Model{
		history: history,
		cfg:     cfg,
		sc:      sc,
		today:   today,
		tabs:    []string{"Overview", "Days", "Most Missed"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.dayTable = table.New(table.WithColumns(dayColumns()), table.WithHeight(1))
	m.dayTable.SetStyles(dayTableStyles())
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=", "+":
			m.sc.Days = nextSpan(m.sc.Days)
			m.refreshReport()
			return m, nil
		case "-":
			m.sc.Days = prevSpan(m.sc.Days)
			m.refreshReport()
			return m, nil
		case "[":
			m.sc.Until = daily.Shift(m.sc.Until, -m.sc.Days)
			m.refreshReport()
			return m, nil
		case "]":
			next := daily.Shift(m.sc.Until, m.sc.Days)
			if next > m.today {
				next = m.today
			}
			m.sc.Until = next
			m.refreshReport()
			return m, nil
		case "g", "home":
			if m.activeTab == tabDays {
				m.dayTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabDays {
				m.dayTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.activeTab == tabDays {
				m.dayTable, cmd = m.dayTable.Update(msg)
				return m, cmd
			}
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.dayTable.SetWidth(m.width)
	m.dayTable.SetHeight(max(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabDays {
		m.dayTable.Focus()
	} else {
		m.dayTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	from := daily.Shift(m.sc.Until, -(m.sc.Days - 1))
	summary := fmt.Sprintf("Range: %s .. %s  days=%d  window=%d", from, m.sc.Until, m.sc.Days, m.sc.Window)
	return m.renderTabs() + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down  Span: -/=  Page: [/]  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	if m.activeTab == tabDays {
		if m.report.Summary.Saved == 0 {
			return "No saved days in range."
		}
		return tableMutedStyle.Render(m.dayTable.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(m.history, m.cfg, m.sc, m.today)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.report = report
	m.dayTable.SetRows(dayRows(report))
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, m.sc.Window, width))
	m.viewports[tabMissed].SetContent(renderMissed(stats.MostMissed(m.history, m.cfg, m.report, missedLimit)))
}

func renderOverview(r stats.Report, window, width int) string {
	if r.Summary.Saved == 0 {
		return "No saved days in range."
	}
	s := r.Summary
	cards := []string{
		metricCard("Saved", fmt.Sprintf("%d/%d", s.Saved, s.Days)),
		metricCard("Avg XP", fmt.Sprintf("%.0f", s.Average)),
		metricCard("Best XP", fmt.Sprintf("%d", s.Best)),
		metricCard("Streak", fmt.Sprintf("%d", s.Streak)),
	}
	summary := strings.Join(cards, "\n")
	if width >= 80 {
		summary = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}

	var buf bytes.Buffer
	if err := stats.RenderBars(&buf, r, stats.BarWidthFor(width), true); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	if err := stats.RenderTrend(&buf, r, window); err != nil {
		return fmt.Sprintf("Failed to render trend: %v", err)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String(), "\n")
}

func renderMissed(misses []stats.ItemMiss) string {
	if len(misses) == 0 {
		return "Nothing missed in range."
	}
	var buf bytes.Buffer
	if err := stats.RenderMissed(&buf, misses); err != nil {
		return fmt.Sprintf("Failed to render: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func dayColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 10},
		{Title: "XP", Width: 6},
		{Title: "Progress", Width: 8},
		{Title: "Level", Width: 8},
		{Title: "Checked", Width: 7},
		{Title: "Note", Width: 30},
	}
}

// dayRows lists saved days, most recent first.
func dayRows(r stats.Report) []table.Row {
	rows := make([]table.Row, 0, len(r.Points))
	for i := len(r.Points) - 1; i >= 0; i-- {
		p := r.Points[i]
		if !p.Saved {
			continue
		}
		rows = append(rows, table.Row{
			p.Date,
			fmt.Sprintf("%d", p.XP),
			fmt.Sprintf("%d%%", scoring.ProgressPercent(p.XP, r.MaxXP)),
			string(p.Level),
			fmt.Sprintf("%d", p.Checked),
			strings.Join(strings.Fields(p.Note), " "),
		})
	}
	return rows
}

func dayTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func nextSpan(n int) int {
	if n < daysStep {
		return daysStep
	}
	return min(((n/daysStep)+1)*daysStep, maxDays)
}

func prevSpan(n int) int {
	if n <= daysStep {
		return daysStep
	}
	if n%daysStep == 0 {
		return n - daysStep
	}
	return (n / daysStep) * daysStep
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
