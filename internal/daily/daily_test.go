package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/komorebi/internal/model"
)

func sampleLibrary() model.Library {
	return model.Library{
		MentalModels: []model.LibraryItem{{Name: "Inversion"}, {Name: "Second-order"}, {Name: "Circle of Competence"}},
		Productivity: []model.LibraryItem{{Name: "Deep Work"}, {Name: "Eat the Frog"}},
		Investors:    []model.LibraryItem{{Name: "Graham"}, {Name: "Munger"}, {Name: "Lynch"}, {Name: "Fisher"}},
		Quotes:       []string{"one", "two", "three", "four", "five"},
	}
}

func TestSeedHashKnownValues(t *testing.T) {
	assert.Equal(t, int64(0), SeedHash(""))
	assert.Equal(t, int64(97), SeedHash("a"))
	assert.Equal(t, int64(3105), SeedHash("ab"))
	// 32-bit overflow wraps before the absolute value is taken.
	assert.Equal(t, SeedHash("2024-03-15"), SeedHash("2024-03-15"))
	assert.GreaterOrEqual(t, SeedHash("2024-03-15"), int64(0))
}

func TestSelectIsDeterministic(t *testing.T) {
	lib := sampleLibrary()
	first := Select("2024-03-15", lib)
	second := Select("2024-03-15", lib)
	assert.Equal(t, first, second)
	require.NotNil(t, first.Model)
	require.NotNil(t, first.Quote)
}

func TestSelectIndices(t *testing.T) {
	lib := sampleLibrary()
	date := "2024-03-15"
	seed := SeedHash(date)
	got := Select(date, lib)

	assert.Equal(t, lib.MentalModels[seed%3].Name, got.Model.Name)
	assert.Equal(t, lib.Productivity[(seed*2)%2].Name, got.Productivity.Name)
	assert.Equal(t, lib.Quotes[(seed*3)%5], *got.Quote)
	assert.Equal(t, lib.Investors[WeekNumber(date)%4].Name, got.Investor.Name)
}

func TestSelectEmptyCollections(t *testing.T) {
	got := Select("2024-03-15", model.Library{})
	assert.Nil(t, got.Model)
	assert.Nil(t, got.Productivity)
	assert.Nil(t, got.Quote)
	assert.Nil(t, got.Investor)
}

func TestSelectSingleItem(t *testing.T) {
	lib := model.Library{Quotes: []string{"only"}}
	for _, d := range []string{"2024-01-01", "2025-12-31", "not-a-date"} {
		got := Select(d, lib)
		require.NotNil(t, got.Quote)
		assert.Equal(t, "only", *got.Quote)
	}
}

func TestSelectReturnsCopies(t *testing.T) {
	lib := sampleLibrary()
	got := Select("2024-03-15", lib)
	got.Model.Name = "mutated"
	for _, m := range lib.MentalModels {
		assert.NotEqual(t, "mutated", m.Name)
	}
}

func TestWeekNumber(t *testing.T) {
	// Jan 1 2024 is a Monday (weekday 1): (0+1+1+6)/7 = 1.
	assert.Equal(t, 1, WeekNumber("2024-01-01"))
	// Jan 6 2024 is the first Saturday: (5+1+1+6)/7 = 1.
	assert.Equal(t, 1, WeekNumber("2024-01-06"))
	// Jan 7 2024 starts the second row.
	assert.Equal(t, 2, WeekNumber("2024-01-07"))
	assert.Equal(t, 0, WeekNumber("garbage"))
}

func TestWeekNumberStableWithinWeek(t *testing.T) {
	// Sunday through Saturday share the same investor.
	w := WeekNumber("2024-03-10")
	for i := 1; i < 7; i++ {
		assert.Equal(t, w, WeekNumber(Shift("2024-03-10", i)))
	}
	assert.Equal(t, w+1, WeekNumber("2024-03-17"))
}

func TestWorkoutFor(t *testing.T) {
	workouts := make([]model.Workout, model.WorkoutDays)
	workouts[5] = model.Workout{Title: "Pull", Desc: "Rows"}
	// 2024-03-15 is a Friday.
	assert.Equal(t, model.Workout{Title: "Pull", Desc: "Rows"}, WorkoutFor("2024-03-15", workouts))
	assert.Equal(t, RestDay, WorkoutFor("2024-03-16", workouts))
	assert.Equal(t, RestDay, WorkoutFor("2024-03-15", nil))
	assert.Equal(t, RestDay, WorkoutFor("bad", workouts))
}

func TestDateHelpers(t *testing.T) {
	now := time.Date(2024, 2, 28, 23, 0, 0, 0, time.Local)
	assert.Equal(t, "2024-02-28", Today(now))
	assert.Equal(t, "2024-03-01", Shift("2024-02-28", 2))
	assert.Equal(t, "bad", Shift("bad", 1))
	assert.True(t, ValidDate("2024-02-29"))
	assert.False(t, ValidDate("2023-02-29"))
}
