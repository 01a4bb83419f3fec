// Package stats contains history calculations and reporting.
package stats

import (
	"fmt"

	"github.com/verte-zerg/komorebi/internal/daily"
	"github.com/verte-zerg/komorebi/internal/model"
	"github.com/verte-zerg/komorebi/internal/scoring"
)

// DefaultDays is the history span when StatsConfig.Days is unset.
const DefaultDays = 14

// Summary aggregates the saved days of a report.
type Summary struct {
	Days     int
	Saved    int
	Average  float64
	Best     int
	BestDate string
	Streak   int
}

// Report contains precomputed data for history rendering.
type Report struct {
	Points  []model.DayPoint
	Summary Summary
	MaxXP   int
	Levels  model.LevelThresholds
}

// BuildReport scores each day in the span ending at cfg.Until (or today) with
// the current configuration. Unsaved days are zero points.
func BuildReport(history map[string]model.DayData, cfg model.AppConfig, sc model.StatsConfig, today string) (Report, error) {
	until := sc.Until
	if until == "" {
		until = today
	}
	if !daily.ValidDate(until) {
		return Report{}, fmt.Errorf("invalid date %q", until)
	}
	days := sc.Days
	if days <= 0 {
		days = DefaultDays
	}

	points := make([]model.DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := daily.Shift(until, -i)
		point := model.DayPoint{Date: date, Level: scoring.ClassifyLevel(0, cfg.Levels)}
		if rec, ok := history[date]; ok {
			xp := scoring.TotalXP(cfg, rec)
			if cfg.MaxXP > 0 && xp > cfg.MaxXP {
				xp = cfg.MaxXP
			}
			point.Saved = true
			point.XP = xp
			point.Level = scoring.ClassifyLevel(xp, cfg.Levels)
			point.Checked = rec.CheckedCount()
			point.Note = rec.Note
		}
		points = append(points, point)
	}

	return Report{
		Points:  points,
		Summary: summarize(points, cfg.Levels),
		MaxXP:   cfg.MaxXP,
		Levels:  cfg.Levels,
	}, nil
}

func summarize(points []model.DayPoint, levels model.LevelThresholds) Summary {
	s := Summary{Days: len(points)}
	total := 0
	for _, p := range points {
		if !p.Saved {
			continue
		}
		s.Saved++
		total += p.XP
		if s.BestDate == "" || p.XP > s.Best {
			s.Best = p.XP
			s.BestDate = p.Date
		}
	}
	if s.Saved > 0 {
		s.Average = float64(total) / float64(s.Saved)
	}
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		if !p.Saved || p.XP < levels.Survival {
			break
		}
		s.Streak++
	}
	return s
}

// XPValues returns the XP series of the points.
func XPValues(points []model.DayPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = float64(p.XP)
	}
	return out
}
