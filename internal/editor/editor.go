// Package editor implements copy-on-write mutations of the configuration.
//
// Every operation takes a configuration by value and returns a new one. The
// input is never modified, so holders of the previous configuration do not
// observe the change.
package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/verte-zerg/komorebi/internal/model"
	"github.com/verte-zerg/komorebi/internal/protocol"
)

var (
	// ErrIndexOutOfRange is returned when a section, card, item, day or
	// library index does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnknownField is returned for a field name the target does not have.
	ErrUnknownField = errors.New("unknown field")
)

const (
	// DefaultItemLabel is the label of a newly added item.
	DefaultItemLabel = "New Habit"
	// DefaultItemXP is the xp of a newly added item.
	DefaultItemXP = 100
)

// NewItemID returns a fresh item id. ids are random so repeated adds never collide.
func NewItemID() string {
	return "custom_" + uuid.NewString()
}

// ParseXP reads a leading integer the way a lenient form field would:
// surrounding spaces are ignored, trailing garbage is dropped and anything
// unparseable or negative becomes 0.
func ParseXP(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func card(cfg *model.AppConfig, sectionIdx, cardIdx int) (*model.ProtocolCard, error) {
	if sectionIdx < 0 || sectionIdx >= len(cfg.Protocols) {
		return nil, fmt.Errorf("%w: section %d", ErrIndexOutOfRange, sectionIdx)
	}
	cards := cfg.Protocols[sectionIdx].Cards
	if cardIdx < 0 || cardIdx >= len(cards) {
		return nil, fmt.Errorf("%w: card %d in section %d", ErrIndexOutOfRange, cardIdx, sectionIdx)
	}
	return &cards[cardIdx], nil
}

func item(cfg *model.AppConfig, sectionIdx, cardIdx, itemIdx int) (*model.ProtocolItem, error) {
	c, err := card(cfg, sectionIdx, cardIdx)
	if err != nil {
		return nil, err
	}
	if itemIdx < 0 || itemIdx >= len(c.Items) {
		return nil, fmt.Errorf("%w: item %d in card %q", ErrIndexOutOfRange, itemIdx, c.ID)
	}
	return &c.Items[itemIdx], nil
}

// RenameCard sets a card title.
func RenameCard(cfg model.AppConfig, sectionIdx, cardIdx int, title string) (model.AppConfig, error) {
	next := cfg.Clone()
	c, err := card(&next, sectionIdx, cardIdx)
	if err != nil {
		return cfg, err
	}
	c.Title = title
	return next, nil
}

// SetCardMaxXP sets a card's cap from user input.
func SetCardMaxXP(cfg model.AppConfig, sectionIdx, cardIdx int, value string) (model.AppConfig, error) {
	next := cfg.Clone()
	c, err := card(&next, sectionIdx, cardIdx)
	if err != nil {
		return cfg, err
	}
	c.MaxXP = ParseXP(value)
	return next, nil
}

// SetItemLabel sets an item label.
func SetItemLabel(cfg model.AppConfig, sectionIdx, cardIdx, itemIdx int, label string) (model.AppConfig, error) {
	next := cfg.Clone()
	it, err := item(&next, sectionIdx, cardIdx, itemIdx)
	if err != nil {
		return cfg, err
	}
	it.Label = label
	return next, nil
}

// SetItemXP sets an item's xp from user input.
func SetItemXP(cfg model.AppConfig, sectionIdx, cardIdx, itemIdx int, value string) (model.AppConfig, error) {
	next := cfg.Clone()
	it, err := item(&next, sectionIdx, cardIdx, itemIdx)
	if err != nil {
		return cfg, err
	}
	it.XP = ParseXP(value)
	return next, nil
}

// AddItem appends a default item with a fresh id and returns it too.
func AddItem(cfg model.AppConfig, sectionIdx, cardIdx int) (model.AppConfig, model.ProtocolItem, error) {
	next := cfg.Clone()
	c, err := card(&next, sectionIdx, cardIdx)
	if err != nil {
		return cfg, model.ProtocolItem{}, err
	}
	added := model.ProtocolItem{ID: NewItemID(), Label: DefaultItemLabel, XP: DefaultItemXP}
	c.Items = append(c.Items, added)
	return next, added, nil
}

// RemoveItem deletes an item. Later items shift down and keep their ids.
func RemoveItem(cfg model.AppConfig, sectionIdx, cardIdx, itemIdx int) (model.AppConfig, error) {
	next := cfg.Clone()
	if _, err := item(&next, sectionIdx, cardIdx, itemIdx); err != nil {
		return cfg, err
	}
	c, _ := card(&next, sectionIdx, cardIdx)
	c.Items = append(c.Items[:itemIdx], c.Items[itemIdx+1:]...)
	return next, nil
}

// SetWorkout sets the title (t) or description (d) of a weekday's workout.
func SetWorkout(cfg model.AppConfig, dayIdx int, field model.WorkoutField, value string) (model.AppConfig, error) {
	if dayIdx < 0 || dayIdx >= model.WorkoutDays {
		return cfg, fmt.Errorf("%w: day %d", ErrIndexOutOfRange, dayIdx)
	}
	next := cfg.Clone()
	for len(next.Workouts) < model.WorkoutDays {
		next.Workouts = append(next.Workouts, model.Workout{})
	}
	w := &next.Workouts[dayIdx]
	switch field {
	case model.WorkoutTitle:
		w.Title = value
	case model.WorkoutDesc:
		w.Desc = value
	default:
		return cfg, fmt.Errorf("%w: workout field %q", ErrUnknownField, field)
	}
	return next, nil
}

// SetPersonaField updates one persona attribute. Empty attributes fall back
// to the default persona first.
func SetPersonaField(cfg model.AppConfig, field model.PersonaField, value string) (model.AppConfig, error) {
	next := cfg.Clone()
	p := next.Persona
	if p.Anima == "" && p.Archetype == "" && p.Symbol == "" {
		p = protocol.DefaultPersona
	}
	switch field {
	case model.PersonaAnima:
		p.Anima = value
	case model.PersonaArchetype:
		p.Archetype = value
	case model.PersonaSymbol:
		p.Symbol = value
	default:
		return cfg, fmt.Errorf("%w: persona field %q", ErrUnknownField, field)
	}
	next.Persona = p
	return next, nil
}

// SetLevels replaces the thresholds, rejecting values out of order.
func SetLevels(cfg model.AppConfig, levels model.LevelThresholds) (model.AppConfig, error) {
	if err := protocol.ValidateLevels(levels); err != nil {
		return cfg, err
	}
	next := cfg.Clone()
	next.Levels = levels
	return next, nil
}
