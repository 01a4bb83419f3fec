package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/komorebi/internal/model"
)

// ref addresses a card (S.C) or an item (S.C.I) with 1-based indices.
type ref struct {
	section int
	card    int
	item    int
}

func parseRef(s string, parts int) (ref, error) {
	fields := strings.Split(strings.TrimSpace(s), ".")
	if len(fields) != parts {
		if parts == 2 {
			return ref{}, fmt.Errorf("expected SECTION.CARD (e.g. 1.2), got %q", s)
		}
		return ref{}, fmt.Errorf("expected SECTION.CARD.ITEM (e.g. 1.2.3), got %q", s)
	}
	idx := make([]int, parts)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 {
			return ref{}, fmt.Errorf("invalid index %q in %q", f, s)
		}
		idx[i] = n - 1
	}
	r := ref{section: idx[0], card: idx[1], item: -1}
	if parts == 3 {
		r.item = idx[2]
	}
	return r, nil
}

func (r ref) String() string {
	if r.item < 0 {
		return fmt.Sprintf("%d.%d", r.section+1, r.card+1)
	}
	return fmt.Sprintf("%d.%d.%d", r.section+1, r.card+1, r.item+1)
}

// resolveItem accepts an item id or an S.C.I path.
func resolveItem(cfg model.AppConfig, arg string) (model.ProtocolItem, error) {
	for _, section := range cfg.Protocols {
		for _, card := range section.Cards {
			for _, item := range card.Items {
				if item.ID == arg {
					return item, nil
				}
			}
		}
	}
	r, err := parseRef(arg, 3)
	if err != nil {
		return model.ProtocolItem{}, fmt.Errorf("unknown item %q (use an item id or SECTION.CARD.ITEM)", arg)
	}
	if r.section >= len(cfg.Protocols) ||
		r.card >= len(cfg.Protocols[r.section].Cards) ||
		r.item >= len(cfg.Protocols[r.section].Cards[r.card].Items) {
		return model.ProtocolItem{}, fmt.Errorf("no item at %s", r)
	}
	return cfg.Protocols[r.section].Cards[r.card].Items[r.item], nil
}

var weekdays = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// parseWeekday accepts 0-6 (0=Sunday) or a weekday name.
func parseWeekday(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n >= model.WorkoutDays {
			return 0, fmt.Errorf("weekday must be 0-6, got %d", n)
		}
		return n, nil
	}
	for i, name := range weekdays {
		if strings.HasPrefix(s, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
