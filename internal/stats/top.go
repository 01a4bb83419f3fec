package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/komorebi/internal/model"
)

// ItemMiss counts how often an item was left unchecked on saved days.
type ItemMiss struct {
	CardTitle string
	Label     string
	Missed    int
	Saved     int
}

// MostMissed returns the top n items by missed count across the saved days of r.
// Ties are broken by card then label.
func MostMissed(history map[string]model.DayData, cfg model.AppConfig, r Report, n int) []ItemMiss {
	if n <= 0 {
		return nil
	}
	var saved []model.DayData
	for _, p := range r.Points {
		if rec, ok := history[p.Date]; ok && p.Saved {
			saved = append(saved, rec)
		}
	}
	if len(saved) == 0 {
		return nil
	}

	var items []ItemMiss
	for _, section := range cfg.Protocols {
		for _, card := range section.Cards {
			for _, item := range card.Items {
				miss := ItemMiss{CardTitle: card.Title, Label: item.Label, Saved: len(saved)}
				for _, rec := range saved {
					if !rec.IsChecked(item.ID) {
						miss.Missed++
					}
				}
				if miss.Missed > 0 {
					items = append(items, miss)
				}
			}
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Missed != items[j].Missed {
			return items[i].Missed > items[j].Missed
		}
		if items[i].CardTitle != items[j].CardTitle {
			return items[i].CardTitle < items[j].CardTitle
		}
		return items[i].Label < items[j].Label
	})
	if n < len(items) {
		items = items[:n]
	}
	return items
}

// RenderMissed prints the most missed items.
func RenderMissed(w io.Writer, misses []ItemMiss) error {
	if len(misses) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Most Missed"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(misses))
	for _, m := range misses {
		rows = append(rows, []string{m.CardTitle, m.Label, fmt.Sprintf("%d/%d", m.Missed, m.Saved)})
	}
	for _, line := range formatTable([]string{"Card", "Item", "Missed"}, rows, map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
