// Package tui provides the Bubble Tea day checklist.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/komorebi/internal/daily"
	"github.com/verte-zerg/komorebi/internal/model"
	"github.com/verte-zerg/komorebi/internal/scoring"
	"github.com/verte-zerg/komorebi/internal/ui"
)

// DaySaver persists a day record.
type DaySaver interface {
	Save(ctx context.Context, rec model.DayData) error
}

// Options configures a checklist model.
type Options struct {
	Config  model.AppConfig
	Day     model.DayData
	Saver   DaySaver
	Content daily.Content
	Workout model.Workout
}

type itemRef struct {
	cardTitle string
	item      model.ProtocolItem
}

type savedMsg struct {
	rev int
	err error
}

// Model implements the Bubble Tea checklist for one day.
type Model struct {
	ctx     context.Context
	cfg     model.AppConfig
	saver   DaySaver
	content daily.Content
	workout model.Workout

	rec   model.DayData
	rev   int
	dirty bool

	items  []itemRef
	cursor int

	note    textarea.Model
	editing bool

	confirmQuit bool
	status      string

	keys keyMap
	help help.Model

	width  int
	height int
}

var (
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB77E"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C8C8C8"))
)

// NewModel constructs a checklist model.
func NewModel(ctx context.Context, opts Options) *Model {
	note := textarea.New()
	note.Placeholder = "Log your discipline and reflect..."
	note.ShowLineNumbers = false
	note.SetHeight(3)
	note.SetValue(opts.Day.Note)

	m := &Model{
		ctx:     ctx,
		cfg:     opts.Config,
		saver:   opts.Saver,
		content: opts.Content,
		workout: opts.Workout,
		rec:     opts.Day,
		note:    note,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	for _, section := range m.cfg.Protocols {
		for _, card := range section.Cards {
			for _, item := range card.Items {
				m.items = append(m.items, itemRef{cardTitle: card.Title, item: item})
			}
		}
	}
	return m
}

// Day returns the in-memory record, including unsaved changes.
func (m *Model) Day() model.DayData { return m.rec }

// Dirty reports whether the record has changes that were not saved.
func (m *Model) Dirty() bool { return m.dirty }

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
		m.note.SetWidth(max(20, msg.Width-4))
		m.help.Width = msg.Width
		return m, nil
	case savedMsg:
		if msg.err != nil {
			m.status = "Save failed: " + msg.err.Error()
			return m, nil
		}
		if msg.rev == m.rev {
			m.dirty = false
		}
		m.status = "Saved " + m.rec.Date + "."
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateNote(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.confirmQuit = false
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		if msg.String() == "ctrl+c" || !m.dirty || m.confirmQuit {
			return m, tea.Quit
		}
		m.confirmQuit = true
		m.status = "Unsaved changes. Press q again to quit or s to save."
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.cursor < len(m.items) {
			m.mutate(m.rec.Toggle(m.items[m.cursor].item.ID))
		}
	case key.Matches(msg, m.keys.Note):
		m.editing = true
		m.note.SetValue(m.rec.Note)
		return m, m.note.Focus()
	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()
	}
	return m, nil
}

func (m *Model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Done):
		m.finishNote()
		return m, nil
	case msg.String() == "ctrl+s":
		m.finishNote()
		return m, m.saveCmd()
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)
	return m, cmd
}

func (m *Model) finishNote() {
	m.editing = false
	m.note.Blur()
	if value := m.note.Value(); value != m.rec.Note {
		m.mutate(m.rec.SetNote(value))
	}
}

func (m *Model) mutate(rec model.DayData) {
	m.rec = rec
	m.rev++
	m.dirty = true
}

func (m *Model) saveCmd() tea.Cmd {
	if m.saver == nil {
		return nil
	}
	rec, rev := m.rec, m.rev
	m.status = "Saving…"
	return func() tea.Msg {
		return savedMsg{rev: rev, err: m.saver.Save(m.ctx, rec)}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.renderHeader()
	body, focus := m.renderChecklist()

	var tail []string
	if m.editing {
		tail = append(tail, ui.Key.Render("Note"), m.note.View())
	} else {
		note := ui.Muted.Render("(none)")
		if strings.TrimSpace(m.rec.Note) != "" {
			note = m.rec.Note
		}
		tail = append(tail, ui.LabelValue("Note", note))
	}
	if m.status != "" {
		tail = append(tail, ui.Muted.Render(m.status))
	}
	tail = append(tail, m.renderFooter(), m.help.View(m.keys))

	if m.height > 0 {
		room := m.height - len(header) - strings.Count(strings.Join(tail, "\n"), "\n") - 2
		body = clipLines(body, focus, max(room, 3))
	}
	lines := append(append(header, ""), body...)
	lines = append(lines, "")
	lines = append(lines, tail...)
	return strings.Join(lines, "\n")
}

func (m *Model) renderHeader() []string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	lines := []string{ui.Heading(ui.IconSun, "Komorebi OS") + "  " + ui.Muted.Render(m.rec.Date)}
	if c := m.content.Model; c != nil {
		lines = append(lines, ui.LabelValue("Model", c.Name))
	}
	if c := m.content.Productivity; c != nil {
		lines = append(lines, ui.LabelValue("Focus", c.Name))
	}
	if c := m.content.Investor; c != nil {
		lines = append(lines, ui.LabelValue("Investor", c.Name))
	}
	if m.workout.Title != "" {
		lines = append(lines, ui.LabelValue("Workout", m.workout.Title+" · "+m.workout.Desc))
	}
	if q := m.content.Quote; q != nil {
		for _, line := range wrapText(*q, width-2) {
			lines = append(lines, ui.Muted.Italic(true).Render(line))
		}
	}
	return lines
}

func (m *Model) renderChecklist() ([]string, int) {
	var lines []string
	focus := 0
	idx := 0
	for _, section := range m.cfg.Protocols {
		lines = append(lines, ui.H2.Render(section.Title))
		for _, card := range section.Cards {
			xp := scoring.CardXP(card, m.rec.CheckedItems)
			lines = append(lines, fmt.Sprintf("  %s %s", card.Title, ui.Muted.Render(fmt.Sprintf("%d/%d XP", xp, card.MaxXP))))
			for _, item := range card.Items {
				marker := "  "
				if idx == m.cursor {
					marker = ui.SelectedRow.Render("› ")
					focus = len(lines)
				}
				box, style := "[ ]", pendingStyle
				if m.rec.IsChecked(item.ID) {
					box, style = "["+ui.IconCheck+"]", checkedStyle
				}
				lines = append(lines, fmt.Sprintf("  %s%s %s %s", marker, style.Render(box), style.Render(item.Label), ui.Muted.Render(fmt.Sprintf("+%d", item.XP))))
				idx++
			}
		}
	}
	if len(m.items) == 0 {
		lines = append(lines, ui.Muted.Render("No habits configured."))
	}
	return lines, focus
}

func (m *Model) renderFooter() string {
	xp := scoring.TotalXP(m.cfg, m.rec)
	level := scoring.ClassifyLevel(xp, m.cfg.Levels)
	segments := []string{
		fmt.Sprintf("XP %d/%d", xp, m.cfg.MaxXP),
		fmt.Sprintf("%d%%", scoring.ProgressPercent(xp, m.cfg.MaxXP)),
		string(level),
	}
	if next, toGo, ok := scoring.NextLevel(xp, m.cfg.Levels); ok {
		segments = append(segments, fmt.Sprintf("%s in %d", next, toGo))
	}
	if m.dirty {
		segments = append(segments, ui.IconUnsaved+" unsaved")
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
