package library

import (
	"strings"

	"github.com/verte-zerg/komorebi/internal/model"
)

// MinKeywordLen is the shortest token, exclusive, that counts as a keyword.
const MinKeywordLen = 3

// Keywords splits a query on whitespace and keeps lowercased tokens longer
// than MinKeywordLen characters.
func Keywords(query string) []string {
	var out []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		if len([]rune(tok)) > MinKeywordLen {
			out = append(out, tok)
		}
	}
	return out
}

// MatchFunc reports whether text contains any keyword.
type MatchFunc func(string) bool

// Matcher returns a case-insensitive substring matcher over keywords.
func Matcher(keywords []string) MatchFunc {
	return func(text string) bool {
		if len(keywords) == 0 || text == "" {
			return false
		}
		lower := strings.ToLower(text)
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				return true
			}
		}
		return false
	}
}

// FilterItems keeps entries whose name or description contains a keyword.
func FilterItems(items []model.LibraryItem, match MatchFunc) []model.LibraryItem {
	var out []model.LibraryItem
	for _, it := range items {
		if match(it.Name) || match(it.Desc) {
			out = append(out, it)
		}
	}
	return out
}

// FilterQuotes keeps quotes that contain a keyword.
func FilterQuotes(quotes []string, match MatchFunc) []string {
	var out []string
	for _, q := range quotes {
		if match(q) {
			out = append(out, q)
		}
	}
	return out
}
