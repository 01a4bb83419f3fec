package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/komorebi/internal/daily"
	"github.com/verte-zerg/komorebi/internal/model"
)

type recordingSaver struct {
	saved []model.DayData
	err   error
}

func (s *recordingSaver) Save(_ context.Context, rec model.DayData) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, rec)
	return nil
}

func testConfig() model.AppConfig {
	return model.AppConfig{
		Levels: model.LevelThresholds{Elite: 300, Strong: 200, Survival: 100},
		MaxXP:  300,
		Protocols: []model.ProtocolSection{{
			Title: "Core",
			Cards: []model.ProtocolCard{
				{ID: "c1", Title: "Body", MaxXP: 200, Items: []model.ProtocolItem{
					{ID: "a", Label: "Walk", XP: 100},
					{ID: "b", Label: "Lift", XP: 100},
				}},
				{ID: "c2", Title: "Mind", MaxXP: 100, Items: []model.ProtocolItem{
					{ID: "c", Label: "Read", XP: 100},
				}},
			},
		}},
	}
}

func newTestModel(saver DaySaver) *Model {
	return NewModel(context.Background(), Options{
		Config: testConfig(),
		Day:    model.NewDay("2024-05-01"),
		Saver:  saver,
	})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestToggleMarksDirty(t *testing.T) {
	m := newTestModel(&recordingSaver{})
	m.Update(space)
	m.Update(runes("j"))
	m.Update(runes("j"))
	m.Update(space)

	assert.True(t, m.Dirty())
	assert.True(t, m.Day().IsChecked("a"))
	assert.False(t, m.Day().IsChecked("b"))
	assert.True(t, m.Day().IsChecked("c"))
	assert.Contains(t, m.renderFooter(), "XP 200/300")
	assert.Contains(t, m.renderFooter(), "unsaved")

	m.Update(space)
	assert.False(t, m.Day().IsChecked("c"))
}

func TestCursorStaysInRange(t *testing.T) {
	m := newTestModel(nil)
	m.Update(runes("k"))
	assert.Equal(t, 0, m.cursor)
	for i := 0; i < 5; i++ {
		m.Update(runes("j"))
	}
	assert.Equal(t, 2, m.cursor)
}

func TestSaveClearsDirty(t *testing.T) {
	saver := &recordingSaver{}
	m := newTestModel(saver)
	m.Update(space)

	_, cmd := m.Update(runes("s"))
	require.NotNil(t, cmd)
	m.Update(cmd())

	require.Len(t, saver.saved, 1)
	assert.True(t, saver.saved[0].IsChecked("a"))
	assert.False(t, m.Dirty())
	assert.NotContains(t, m.renderFooter(), "unsaved")
}

func TestSaveDuringEditKeepsDirty(t *testing.T) {
	saver := &recordingSaver{}
	m := newTestModel(saver)
	m.Update(space)
	_, cmd := m.Update(runes("s"))
	m.Update(runes("j"))
	m.Update(space)

	m.Update(cmd())
	assert.True(t, m.Dirty())
	assert.False(t, saver.saved[0].IsChecked("b"))
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	m := newTestModel(&recordingSaver{err: errors.New("disk full")})
	m.Update(space)
	_, cmd := m.Update(runes("s"))
	m.Update(cmd())
	assert.True(t, m.Dirty())
	assert.Contains(t, m.status, "disk full")
}

func TestQuitConfirmsUnsaved(t *testing.T) {
	m := newTestModel(nil)
	_, cmd := m.Update(runes("q"))
	assert.True(t, isQuit(cmd))

	m = newTestModel(nil)
	m.Update(space)
	_, cmd = m.Update(runes("q"))
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.status, "Unsaved changes")
	_, cmd = m.Update(runes("q"))
	assert.True(t, isQuit(cmd))
}

func TestNoteEditing(t *testing.T) {
	m := newTestModel(nil)
	m.Update(runes("n"))
	require.True(t, m.editing)
	m.Update(runes("tired"))
	assert.False(t, m.Dirty())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.editing)
	assert.Equal(t, "tired", m.Day().Note)
	assert.True(t, m.Dirty())
}

func TestViewRendersChecklist(t *testing.T) {
	quote := "Amor Fati."
	m := NewModel(context.Background(), Options{
		Config:  testConfig(),
		Day:     model.NewDay("2024-05-01").Toggle("a"),
		Content: dailyContent(&quote),
		Workout: model.Workout{Title: "Upper Body", Desc: "Push"},
	})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	out := m.View()
	for _, want := range []string{"Komorebi OS", "2024-05-01", "Body", "100/200 XP", "Walk", "Read", "Amor Fati.", "Upper Body · Push", "SURVIVAL"} {
		assert.Contains(t, out, want)
	}
}

func dailyContent(quote *string) daily.Content {
	return daily.Content{Model: &model.LibraryItem{Name: "Inversion"}, Quote: quote}
}
