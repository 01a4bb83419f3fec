// Package daily selects the day's inspirational content and workout.
package daily

import (
	"time"
	"unicode/utf16"

	"github.com/verte-zerg/komorebi/internal/model"
)

// DateLayout is the ISO calendar date format used for day keys.
const DateLayout = "2006-01-02"

// Content is one pick per library category. A nil field means the category is empty.
type Content struct {
	Model        *model.LibraryItem
	Productivity *model.LibraryItem
	Quote        *string
	Investor     *model.LibraryItem
}

// Select picks content for a date seed. The same seed and library always yield the same picks.
func Select(dateSeed string, lib model.Library) Content {
	seed := SeedHash(dateSeed)
	week := WeekNumber(dateSeed)

	var out Content
	if idx, ok := pick(seed, len(lib.MentalModels)); ok {
		item := lib.MentalModels[idx]
		out.Model = &item
	}
	if idx, ok := pick(seed*2, len(lib.Productivity)); ok {
		item := lib.Productivity[idx]
		out.Productivity = &item
	}
	if idx, ok := pick(seed*3, len(lib.Quotes)); ok {
		q := lib.Quotes[idx]
		out.Quote = &q
	}
	if idx, ok := pick(int64(week), len(lib.Investors)); ok {
		item := lib.Investors[idx]
		out.Investor = &item
	}
	return out
}

func pick(v int64, n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	idx := v % int64(n)
	if idx < 0 {
		idx += int64(n)
	}
	return int(idx), true
}

// SeedHash is the 31-multiplier string hash over UTF-16 code units, truncated to a
// signed 32-bit integer, then made non-negative.
func SeedHash(s string) int64 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// WeekNumber computes ceil((daysSinceJan1 + weekday(Jan1) + 1) / 7) for an ISO date.
// Unparseable dates yield 0.
func WeekNumber(date string) int {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0
	}
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := t.YearDay() - 1
	x := days + int(jan1.Weekday()) + 1
	return (x + 6) / 7
}

// RestDay is used when no workout is configured for a weekday.
var RestDay = model.Workout{Title: "Rest", Desc: "Recovery"}

// WorkoutFor returns the workout for the date's weekday.
func WorkoutFor(date string, workouts []model.Workout) model.Workout {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return RestDay
	}
	idx := int(t.Weekday())
	if idx >= len(workouts) {
		return RestDay
	}
	w := workouts[idx]
	if w.Title == "" && w.Desc == "" {
		return RestDay
	}
	return w
}

// Today returns the local calendar date as an ISO string.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ValidDate reports whether s is an ISO calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Shift moves an ISO date by n days. Invalid input is returned unchanged.
func Shift(date string, n int) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}
