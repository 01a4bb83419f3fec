package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/komorebi/internal/model"
)

func TestLoadQuotes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Memento mori.\n\n\tFestina lente. \n"), 0o644))
	quotes, err := LoadQuotes(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Memento mori.", "Festina lente."}, quotes)
}

func TestLoadQuotesEmptyAndMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  \n"), 0o644))
	_, err := LoadQuotes(path)
	assert.Error(t, err)

	_, err = LoadQuotes(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestKeywords(t *testing.T) {
	assert.Equal(t, []string{"should", "think", "about", "deep", "work?"}, Keywords("How should I think about Deep work?"))
	assert.Empty(t, Keywords("a an the"))
	assert.Empty(t, Keywords(""))
}

func TestFilterItemsAndQuotes(t *testing.T) {
	items := []model.LibraryItem{
		{Name: "Deep Work", Desc: "Distraction-free blocks."},
		{Name: "Inversion", Desc: "Think backward."},
		{Name: "Pareto Principle", Desc: "80/20."},
	}
	match := Matcher(Keywords("how do I think about deep focus"))
	got := FilterItems(items, match)
	require.Len(t, got, 2)
	assert.Equal(t, "Deep Work", got[0].Name)
	assert.Equal(t, "Inversion", got[1].Name)

	quotes := []string{"Discipline equals freedom.", "Slow is smooth, smooth is fast."}
	assert.Equal(t, []string{"Discipline equals freedom."}, FilterQuotes(quotes, Matcher(Keywords("DISCIPLINE matters"))))
	assert.Empty(t, FilterQuotes(quotes, Matcher(nil)))
}
