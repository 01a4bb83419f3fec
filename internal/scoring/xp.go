// Package scoring turns a day's checked items into XP and level tiers.
package scoring

import "github.com/verte-zerg/komorebi/internal/model"

// CardXP computes the clamped XP a card yields for the checked set.
// Stale ids in checked that no longer match an item are ignored.
func CardXP(card model.ProtocolCard, checked map[string]bool) int {
	checkedCount := 0
	sum := 0
	for _, item := range card.Items {
		if !checked[item.ID] {
			continue
		}
		checkedCount++
		sum += item.XP
	}

	var xp int
	switch card.ScoringType {
	case model.ScoringCountMultiplier:
		// Full completion pays the whole budget regardless of perItemXP.
		if checkedCount == len(card.Items) {
			xp = card.MaxXP
		} else {
			xp = checkedCount * card.PerItemXP
		}
	default:
		xp = sum
	}

	if xp > card.MaxXP {
		xp = card.MaxXP
	}
	if xp < 0 {
		xp = 0
	}
	return xp
}

// TotalXP sums CardXP over every card of every section. There is no cap beyond each card's own.
func TotalXP(cfg model.AppConfig, day model.DayData) int {
	total := 0
	for _, section := range cfg.Protocols {
		for _, card := range section.Cards {
			total += CardXP(card, day.CheckedItems)
		}
	}
	return total
}

// CardScore is one card's contribution to the day.
type CardScore struct {
	SectionIdx int
	CardIdx    int
	CardID     string
	Title      string
	XP         int
	MaxXP      int
	Checked    int
	Items      int
}

// Breakdown returns per-card scores in configuration order.
func Breakdown(cfg model.AppConfig, day model.DayData) []CardScore {
	var out []CardScore
	for si, section := range cfg.Protocols {
		for ci, card := range section.Cards {
			checked := 0
			for _, item := range card.Items {
				if day.CheckedItems[item.ID] {
					checked++
				}
			}
			out = append(out, CardScore{
				SectionIdx: si,
				CardIdx:    ci,
				CardID:     card.ID,
				Title:      card.Title,
				XP:         CardXP(card, day.CheckedItems),
				MaxXP:      card.MaxXP,
				Checked:    checked,
				Items:      len(card.Items),
			})
		}
	}
	return out
}

// PossibleXP is the sum of every card's maxXP.
func PossibleXP(cfg model.AppConfig) int {
	total := 0
	for _, section := range cfg.Protocols {
		for _, card := range section.Cards {
			total += card.MaxXP
		}
	}
	return total
}

// ProgressPercent returns current/max as a percentage in [0, 100].
// A zero or negative max yields 0.
func ProgressPercent(current, max int) int {
	if max <= 0 || current <= 0 {
		return 0
	}
	pct := current * 100 / max
	if pct > 100 {
		pct = 100
	}
	return pct
}
