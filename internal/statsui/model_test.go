package statsui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/komorebi/internal/model"
)

func testConfig() model.AppConfig {
	return model.AppConfig{
		Levels: model.LevelThresholds{Elite: 200, Strong: 150, Survival: 100},
		MaxXP:  200,
		Protocols: []model.ProtocolSection{{
			Title: "Core",
			Cards: []model.ProtocolCard{{ID: "c1", Title: "Body", MaxXP: 200, Items: []model.ProtocolItem{
				{ID: "a", Label: "Walk", XP: 100},
				{ID: "b", Label: "Lift", XP: 100},
			}}},
		}},
	}
}

func testHistory() map[string]model.DayData {
	return map[string]model.DayData{
		"2024-05-09": model.NewDay("2024-05-09").Toggle("a"),
		"2024-05-10": model.NewDay("2024-05-10").Toggle("a").Toggle("b").SetNote("strong\nfinish"),
	}
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(testHistory(), testConfig(), model.StatsConfig{Window: 3}, "2024-05-10")
	require.Empty(t, m.errMsg)
	assert.Equal(t, 14, m.sc.Days)
	assert.Equal(t, "2024-05-10", m.sc.Until)
	assert.Equal(t, 2, m.report.Summary.Saved)

	rows := dayRows(m.report)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-05-10", rows[0][0])
	assert.Equal(t, "100%", rows[0][2])
	assert.Equal(t, "strong finish", rows[0][5])
}

func TestSpanAndPaging(t *testing.T) {
	m := NewModel(testHistory(), testConfig(), model.StatsConfig{Days: 7}, "2024-05-10")
	m.Update(keyMsg("="))
	assert.Equal(t, 14, m.sc.Days)
	m.Update(keyMsg("-"))
	m.Update(keyMsg("-"))
	assert.Equal(t, 7, m.sc.Days)

	m.Update(keyMsg("["))
	assert.Equal(t, "2024-05-03", m.sc.Until)
	assert.Zero(t, m.report.Summary.Saved)
	m.Update(keyMsg("]"))
	m.Update(keyMsg("]"))
	assert.Equal(t, "2024-05-10", m.sc.Until, "never pages past today")
}

func TestTabsWrap(t *testing.T) {
	m := NewModel(testHistory(), testConfig(), model.StatsConfig{}, "2024-05-10")
	m.Update(keyMsg("h"))
	assert.Equal(t, tabMissed, m.activeTab)
	m.Update(keyMsg("l"))
	assert.Equal(t, tabOverview, m.activeTab)
}

func TestViewFitsWindow(t *testing.T) {
	m := NewModel(testHistory(), testConfig(), model.StatsConfig{}, "2024-05-10")
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := m.View()
	assert.Len(t, strings.Split(out, "\n"), 30)
	assert.Contains(t, out, "Overview")
	assert.Contains(t, out, "Range: 2024-04-27 .. 2024-05-10")

	m.Update(keyMsg("l"))
	m.Update(keyMsg("l"))
	assert.Contains(t, m.View(), "Lift")
}

func TestSpanSteps(t *testing.T) {
	assert.Equal(t, 7, nextSpan(3))
	assert.Equal(t, 21, nextSpan(14))
	assert.Equal(t, 14, nextSpan(10))
	assert.Equal(t, 365, nextSpan(364))
	assert.Equal(t, 7, prevSpan(7))
	assert.Equal(t, 7, prevSpan(10))
	assert.Equal(t, 14, prevSpan(21))
}

func TestFitLines(t *testing.T) {
	out := fitLines("a\nb\nc", 3, 2)
	assert.Equal(t, "a  \nb  ", out)
	assert.Equal(t, "abcd...", truncateLine("abcdefghij", 7))
}
