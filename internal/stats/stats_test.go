package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/komorebi/internal/model"
)

func testConfig() model.AppConfig {
	return model.AppConfig{
		Levels: model.LevelThresholds{Elite: 300, Strong: 200, Survival: 100},
		MaxXP:  250,
		Protocols: []model.ProtocolSection{{
			Title:   "Core",
			Columns: 1,
			Cards: []model.ProtocolCard{{
				ID: "c1", Title: "Body", MaxXP: 400, ScoringType: model.ScoringSum,
				Items: []model.ProtocolItem{
					{ID: "a", Label: "Walk", XP: 100},
					{ID: "b", Label: "Lift", XP: 100},
					{ID: "c", Label: "Stretch", XP: 100},
				},
			}},
		}},
	}
}

func testHistory() map[string]model.DayData {
	return map[string]model.DayData{
		"2024-05-01": model.NewDay("2024-05-01").Toggle("a").SetNote("slow  start"),
		"2024-05-03": model.NewDay("2024-05-03").Toggle("a").Toggle("b"),
		"2024-05-04": model.NewDay("2024-05-04").Toggle("a").Toggle("b").Toggle("c"),
	}
}

func testReport(t *testing.T) Report {
	t.Helper()
	r, err := BuildReport(testHistory(), testConfig(), model.StatsConfig{Until: "2024-05-04", Days: 4}, "2030-01-01")
	require.NoError(t, err)
	return r
}

func TestBuildReport(t *testing.T) {
	r := testReport(t)
	require.Len(t, r.Points, 4)
	assert.Equal(t, "2024-05-01", r.Points[0].Date)
	assert.Equal(t, "2024-05-04", r.Points[3].Date)

	assert.Equal(t, 100, r.Points[0].XP)
	assert.Equal(t, model.LevelSurvival, r.Points[0].Level)
	assert.False(t, r.Points[1].Saved)
	assert.Equal(t, model.LevelRedZone, r.Points[1].Level)
	assert.Equal(t, 250, r.Points[3].XP, "clamped to maxXP")
	assert.Equal(t, model.LevelStrong, r.Points[3].Level)
	assert.Equal(t, 3, r.Points[3].Checked)

	assert.Equal(t, 3, r.Summary.Saved)
	assert.InDelta(t, 183.33, r.Summary.Average, 0.01)
	assert.Equal(t, 250, r.Summary.Best)
	assert.Equal(t, "2024-05-04", r.Summary.BestDate)
	assert.Equal(t, 2, r.Summary.Streak)
}

func TestBuildReportDefaults(t *testing.T) {
	r, err := BuildReport(nil, testConfig(), model.StatsConfig{}, "2024-05-20")
	require.NoError(t, err)
	assert.Len(t, r.Points, DefaultDays)
	assert.Equal(t, "2024-05-20", r.Points[DefaultDays-1].Date)
	assert.Zero(t, r.Summary.Saved)
	assert.Zero(t, r.Summary.Streak)

	_, err = BuildReport(nil, testConfig(), model.StatsConfig{Until: "May 4"}, "2024-05-20")
	assert.Error(t, err)
}

func TestBuildReportNoClampWithoutMaxXP(t *testing.T) {
	cfg := testConfig()
	cfg.MaxXP = 0
	r, err := BuildReport(testHistory(), cfg, model.StatsConfig{Until: "2024-05-04", Days: 1}, "")
	require.NoError(t, err)
	assert.Equal(t, 300, r.Points[0].XP)
	assert.Equal(t, model.LevelElite, r.Points[0].Level)
}

func TestMostMissed(t *testing.T) {
	misses := MostMissed(testHistory(), testConfig(), testReport(t), 5)
	assert.Equal(t, []ItemMiss{
		{CardTitle: "Body", Label: "Stretch", Missed: 2, Saved: 3},
		{CardTitle: "Body", Label: "Lift", Missed: 1, Saved: 3},
	}, misses)
	assert.Len(t, MostMissed(testHistory(), testConfig(), testReport(t), 1), 1)
	assert.Nil(t, MostMissed(nil, testConfig(), testReport(t), 3))
}

func TestMovingAverage(t *testing.T) {
	assert.Equal(t, []float64{2, 3, 5}, MovingAverage([]float64{2, 4, 6}, 2))
	assert.Equal(t, []float64{1, 2}, MovingAverage([]float64{1, 2}, 1))
	assert.Empty(t, MovingAverage(nil, 3))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, " @", Sparkline([]float64{0, 10}))
	assert.Equal(t, "+++", Sparkline([]float64{5, 5, 5}))
	assert.Equal(t, "", Sparkline(nil))
}

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Date", "XP", "Level"}
	rows := [][]string{
		{"2024-05-01", "100", "SURVIVAL"},
		{"2024-05-02", "4500", "Red Zone"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	require.Len(t, lines, 3)
	assert.Equal(t, "Date         XP Level", lines[0])
	assert.Equal(t, "2024-05-01  100 SURVIVAL", lines[1])
	assert.Equal(t, "2024-05-02 4500 Red Zone", lines[2])
}

func TestRenderers(t *testing.T) {
	r := testReport(t)
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, r))
	require.NoError(t, RenderTable(&buf, r))
	require.NoError(t, RenderTrend(&buf, r, 2))
	out := buf.String()
	assert.Contains(t, out, "Days: 4 (3 saved)")
	assert.Contains(t, out, "Best XP: 250 (2024-05-04)")
	assert.Contains(t, out, "Streak: 2 day(s)")
	assert.Contains(t, out, "Next: ELITE in 50 XP")
	assert.Contains(t, out, "slow start")
	assert.Contains(t, out, "Trend (2-day avg)")

	buf.Reset()
	require.NoError(t, RenderSummary(&buf, Report{Summary: Summary{Days: 7}}))
	assert.Equal(t, "No saved days in the last 7 days.\n", buf.String())
}

func TestRenderBars(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderBars(&buf, testReport(t), 10, false))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Daily XP", lines[0])
	assert.Equal(t, "2024-05-01 │ ████░░░░░░ 100 SURVIVAL", lines[1])
	assert.Equal(t, "2024-05-02 │ ░░░░░░░░░░ -", lines[2])
	assert.Equal(t, "2024-05-04 │ ██████████ 250 STRONG", lines[4])
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestBarWidthFor(t *testing.T) {
	assert.Equal(t, minBarWidth, BarWidthFor(0))
	assert.Equal(t, minBarWidth, BarWidthFor(20))
	assert.Equal(t, 80-10-3-15, BarWidthFor(80))
}
