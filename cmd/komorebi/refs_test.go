package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/komorebi/internal/protocol"
)

func TestParseRef(t *testing.T) {
	r, err := parseRef("2.3", 2)
	require.NoError(t, err)
	assert.Equal(t, ref{section: 1, card: 2, item: -1}, r)
	assert.Equal(t, "2.3", r.String())

	r, err = parseRef(" 1.1.4 ", 3)
	require.NoError(t, err)
	assert.Equal(t, ref{section: 0, card: 0, item: 3}, r)
	assert.Equal(t, "1.1.4", r.String())

	for _, bad := range []string{"1", "1.2.3", "0.1", "a.b", "1.-1"} {
		_, err := parseRef(bad, 2)
		assert.Error(t, err, bad)
	}
}

func TestResolveItem(t *testing.T) {
	cfg := protocol.Default()

	item, err := resolveItem(cfg, "s1")
	require.NoError(t, err)
	assert.Equal(t, "7+ Hours Sleep", item.Label)

	item, err = resolveItem(cfg, "1.1.2")
	require.NoError(t, err)
	assert.Equal(t, "s2", item.ID)

	_, err = resolveItem(cfg, "9.9.9")
	assert.ErrorContains(t, err, "no item at 9.9.9")
	_, err = resolveItem(cfg, "nope")
	assert.ErrorContains(t, err, "unknown item")
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]int{"0": 0, "6": 6, "mon": 1, "Friday": 5, " sat ": 6}
	for in, want := range cases {
		got, err := parseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"7", "-1", "someday"} {
		_, err := parseWeekday(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "yaml", formatFromPath("backup.YML"))
	assert.Equal(t, "yaml", formatFromPath("b.yaml"))
	assert.Equal(t, "json", formatFromPath("b.json"))
	assert.Equal(t, "json", formatFromPath("-"))
}

func TestParseLibraryTarget(t *testing.T) {
	cat, idx, err := parseLibraryTarget("quotes", "3")
	require.NoError(t, err)
	assert.Equal(t, "quotes", string(cat))
	assert.Equal(t, 2, idx)

	_, _, err = parseLibraryTarget("quotes", "0")
	assert.Error(t, err)
	_, _, err = parseLibraryTarget("poems", "1")
	assert.Error(t, err)
}
