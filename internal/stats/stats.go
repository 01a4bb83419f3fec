package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/komorebi/internal/model"
	"github.com/verte-zerg/komorebi/internal/scoring"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the aggregate totals of a report.
func RenderSummary(w io.Writer, r Report) error {
	s := r.Summary
	if s.Saved == 0 {
		_, err := fmt.Fprintf(w, "No saved days in the last %d days.\n", s.Days)
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Days: %d (%d saved)", s.Days, s.Saved),
		fmt.Sprintf("Avg XP: %.0f", s.Average),
		fmt.Sprintf("Best XP: %d (%s)", s.Best, s.BestDate),
		fmt.Sprintf("Streak: %d day(s) at %s or better", s.Streak, model.LevelSurvival),
	}
	if len(r.Points) > 0 {
		last := r.Points[len(r.Points)-1]
		if next, toGo, ok := scoring.NextLevel(last.XP, r.Levels); ok {
			lines = append(lines, fmt.Sprintf("Next: %s in %d XP", next, toGo))
		}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTable prints one row per day.
func RenderTable(w io.Writer, r Report) error {
	headers := []string{"Date", "XP", "Progress", "Level", "Checked", "Note"}
	rows := make([][]string, 0, len(r.Points))
	for _, p := range r.Points {
		if !p.Saved {
			rows = append(rows, []string{p.Date, "-", "-", "-", "-", ""})
			continue
		}
		rows = append(rows, []string{
			p.Date,
			fmt.Sprintf("%d", p.XP),
			fmt.Sprintf("%d%%", scoring.ProgressPercent(p.XP, r.MaxXP)),
			string(p.Level),
			fmt.Sprintf("%d", p.Checked),
			truncateNote(p.Note, 32),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrend prints the moving average of daily XP as a sparkline.
func RenderTrend(w io.Writer, r Report, window int) error {
	if len(r.Points) == 0 {
		return nil
	}
	avg := MovingAverage(XPValues(r.Points), window)
	_, err := fmt.Fprintf(w, "Trend (%d-day avg): [%s] %.0f XP\n", max(window, 1), Sparkline(avg), avg[len(avg)-1])
	return err
}

func truncateNote(note string, limit int) string {
	note = strings.Join(strings.Fields(note), " ")
	runes := []rune(note)
	if len(runes) <= limit {
		return note
	}
	return string(runes[:limit-1]) + "…"
}
