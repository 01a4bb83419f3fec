package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapTextBreaksOnWords(t *testing.T) {
	assert.Equal(t, []string{"The sun", "rises.", "Define", "your", "intent."}, wrapText("The sun rises. Define your intent.", 7))
	assert.Equal(t, []string{"a b c"}, wrapText("a  b\tc", 10))
}

func TestWrapTextSplitsLongWords(t *testing.T) {
	assert.Equal(t, []string{"ab", "abcd", "ef"}, wrapText("ab abcdef", 4))
}

func TestWrapTextWideRunes(t *testing.T) {
	assert.Equal(t, []string{"木漏", "れ日"}, wrapText("木漏れ日", 4))
	assert.Equal(t, []string{"木", "漏"}, wrapText("木漏", 1))
}

func TestWrapTextKeepsParagraphs(t *testing.T) {
	assert.Equal(t, []string{"one", "", "two"}, wrapText("one\n\ntwo", 10))
	assert.Equal(t, []string{"raw text"}, wrapText("raw text", 0))
}

func TestClipLines(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4"}
	assert.Equal(t, lines, clipLines(lines, 4, 0))
	assert.Equal(t, []string{"0", "1"}, clipLines(lines, 1, 2))
	assert.Equal(t, []string{"2", "3"}, clipLines(lines, 3, 2))
	assert.Equal(t, []string{"3", "4"}, clipLines(lines, 9, 2))
}
