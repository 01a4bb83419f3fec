package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsDeep(t *testing.T) {
	orig := AppConfig{
		Library: Library{Quotes: []string{"a"}, MentalModels: []LibraryItem{{Name: "m"}}},
		Workouts: []Workout{{Title: "Sunday"}},
		Protocols: []ProtocolSection{{
			Title: "S",
			Cards: []ProtocolCard{{ID: "c", Items: []ProtocolItem{{ID: "i", Label: "x"}}}},
		}},
	}
	clone := orig.Clone()
	clone.Protocols[0].Cards[0].Items[0].Label = "changed"
	clone.Protocols[0].Cards[0].Title = "changed"
	clone.Library.Quotes[0] = "changed"
	clone.Library.MentalModels[0].Name = "changed"
	clone.Workouts[0].Title = "changed"

	assert.Equal(t, "x", orig.Protocols[0].Cards[0].Items[0].Label)
	assert.Equal(t, "", orig.Protocols[0].Cards[0].Title)
	assert.Equal(t, "a", orig.Library.Quotes[0])
	assert.Equal(t, "m", orig.Library.MentalModels[0].Name)
	assert.Equal(t, "Sunday", orig.Workouts[0].Title)
}

func TestToggleCopiesAndRemoves(t *testing.T) {
	day := NewDay("2024-01-01")
	on := day.Toggle("s1")
	assert.True(t, on.IsChecked("s1"))
	assert.False(t, day.IsChecked("s1"))

	off := on.Toggle("s1")
	_, present := off.CheckedItems["s1"]
	assert.False(t, present)
	assert.True(t, on.IsChecked("s1"))
	assert.Equal(t, 0, off.CheckedCount())
}

func TestSetNoteLeavesOriginal(t *testing.T) {
	day := NewDay("2024-01-01").Toggle("a")
	noted := day.SetNote("felt strong")
	assert.Equal(t, "", day.Note)
	assert.Equal(t, "felt strong", noted.Note)
	assert.True(t, noted.IsChecked("a"))
}

func TestParseCategory(t *testing.T) {
	cat, err := ParseCategory("mentalModels")
	require.NoError(t, err)
	assert.Equal(t, CategoryMentalModels, cat)

	cat, err = ParseCategory("quote")
	require.NoError(t, err)
	assert.Equal(t, CategoryQuotes, cat)

	_, err = ParseCategory("recipes")
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestLibraryLen(t *testing.T) {
	lib := Library{Investors: []LibraryItem{{}, {}}, Quotes: []string{"q"}}
	assert.Equal(t, 2, lib.Len(CategoryInvestors))
	assert.Equal(t, 1, lib.Len(CategoryQuotes))
	assert.Equal(t, 0, lib.Len(Category("nope")))
}
