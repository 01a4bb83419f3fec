package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// wrapText breaks text into lines no wider than width display cells. Words
// wider than a line are split.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := ""
		lineWidth := 0
		for _, word := range words {
			for runewidth.StringWidth(word) > width {
				if line != "" {
					lines = append(lines, line)
					line, lineWidth = "", 0
				}
				head := runewidth.Truncate(word, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(word)
					head = word[:size]
				}
				lines = append(lines, head)
				word = word[len(head):]
			}
			if word == "" {
				continue
			}
			wordWidth := runewidth.StringWidth(word)
			switch {
			case line == "":
				line, lineWidth = word, wordWidth
			case lineWidth+1+wordWidth <= width:
				line += " " + word
				lineWidth += 1 + wordWidth
			default:
				lines = append(lines, line)
				line, lineWidth = word, wordWidth
			}
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// clipLines keeps at most height lines, scrolled so that focus stays visible.
func clipLines(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := 0
	if focus >= height {
		start = focus - height + 1
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}
