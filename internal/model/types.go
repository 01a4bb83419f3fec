// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ScoringType selects how a card aggregates checked items into XP.
type ScoringType string

const (
	// ScoringSum adds the xp of every checked item.
	ScoringSum ScoringType = "sum"
	// ScoringCountMultiplier pays perItemXP per checked item, or maxXP when all are checked.
	ScoringCountMultiplier ScoringType = "count_multiplier"
)

// LibraryItem is a unit of reference content.
type LibraryItem struct {
	Name     string `json:"name" yaml:"name"`
	Desc     string `json:"desc,omitempty" yaml:"desc,omitempty"`
	Resource string `json:"resource,omitempty" yaml:"resource,omitempty"`
	Years    string `json:"years,omitempty" yaml:"years,omitempty"`
}

// ProtocolItem is a single checklist entry. ID is the join key against DayData.CheckedItems.
type ProtocolItem struct {
	ID    string `json:"id" yaml:"id" validate:"required"`
	Label string `json:"label" yaml:"label"`
	XP    int    `json:"xp" yaml:"xp" validate:"gte=0"`
}

// ProtocolCard groups items under one capped XP budget.
type ProtocolCard struct {
	ID          string         `json:"id" yaml:"id" validate:"required"`
	Title       string         `json:"title" yaml:"title"`
	MaxXP       int            `json:"maxXP" yaml:"maxXP" validate:"gte=0"`
	ScoringType ScoringType    `json:"scoringType,omitempty" yaml:"scoringType,omitempty" validate:"omitempty,oneof=sum count_multiplier"`
	PerItemXP   int            `json:"perItemXP,omitempty" yaml:"perItemXP,omitempty" validate:"gte=0"`
	Items       []ProtocolItem `json:"items" yaml:"items" validate:"dive"`
	Details     []string       `json:"details,omitempty" yaml:"details,omitempty"`
}

// ProtocolSection is a display grouping of cards.
type ProtocolSection struct {
	Title   string         `json:"title" yaml:"title"`
	Columns int            `json:"columns" yaml:"columns" validate:"min=1,max=3"`
	Cards   []ProtocolCard `json:"cards" yaml:"cards" validate:"dive"`
}

// Workout is the training plan for one weekday.
type Workout struct {
	Title string `json:"t" yaml:"t"`
	Desc  string `json:"d" yaml:"d"`
}

// PersonaConfig describes the assistant's identity.
type PersonaConfig struct {
	Anima     string `json:"anima" yaml:"anima"`
	Archetype string `json:"archetype" yaml:"archetype"`
	Symbol    string `json:"symbol" yaml:"symbol"`
}

// LevelThresholds are the minimum totals for each tier, highest first.
type LevelThresholds struct {
	Elite    int `json:"elite" yaml:"elite" validate:"gtfield=Strong"`
	Strong   int `json:"strong" yaml:"strong" validate:"gtfield=Survival"`
	Survival int `json:"survival" yaml:"survival" validate:"gte=0"`
}

// Library holds the reference collections.
type Library struct {
	MentalModels []LibraryItem `json:"mentalModels" yaml:"mentalModels"`
	Productivity []LibraryItem `json:"productivity" yaml:"productivity"`
	Investors    []LibraryItem `json:"investors" yaml:"investors"`
	Quotes       []string      `json:"quotes" yaml:"quotes"`
}

// Len returns the number of entries in a category.
func (l Library) Len(cat Category) int {
	switch cat {
	case CategoryMentalModels:
		return len(l.MentalModels)
	case CategoryProductivity:
		return len(l.Productivity)
	case CategoryInvestors:
		return len(l.Investors)
	case CategoryQuotes:
		return len(l.Quotes)
	default:
		return 0
	}
}

// WorkoutDays is the number of workout slots, indexed by weekday (0=Sunday).
const WorkoutDays = 7

// AppConfig is the root configuration aggregate.
type AppConfig struct {
	Levels    LevelThresholds   `json:"levels" yaml:"levels"`
	MaxXP     int               `json:"maxXP" yaml:"maxXP" validate:"gte=0"`
	Persona   PersonaConfig     `json:"persona" yaml:"persona"`
	Library   Library           `json:"library" yaml:"library"`
	Workouts  []Workout         `json:"workouts" yaml:"workouts" validate:"len=7"`
	Protocols []ProtocolSection `json:"protocols" yaml:"protocols" validate:"dive"`
}

// Clone returns a deep copy so edits never reach other holders of the original.
func (c AppConfig) Clone() AppConfig {
	out := c
	out.Library = Library{
		MentalModels: append([]LibraryItem(nil), c.Library.MentalModels...),
		Productivity: append([]LibraryItem(nil), c.Library.Productivity...),
		Investors:    append([]LibraryItem(nil), c.Library.Investors...),
		Quotes:       append([]string(nil), c.Library.Quotes...),
	}
	out.Workouts = append([]Workout(nil), c.Workouts...)
	out.Protocols = make([]ProtocolSection, len(c.Protocols))
	for si, section := range c.Protocols {
		cards := make([]ProtocolCard, len(section.Cards))
		for ci, card := range section.Cards {
			card.Items = append([]ProtocolItem{}, card.Items...)
			if card.Details != nil {
				card.Details = append([]string(nil), card.Details...)
			}
			cards[ci] = card
		}
		section.Cards = cards
		out.Protocols[si] = section
	}
	return out
}

// DayData is the record for one calendar date.
type DayData struct {
	Date         string          `json:"date" yaml:"date"`
	CheckedItems map[string]bool `json:"checkedItems" yaml:"checkedItems"`
	Note         string          `json:"note" yaml:"note"`
}

// NewDay returns an empty record for date.
func NewDay(date string) DayData {
	return DayData{Date: date, CheckedItems: map[string]bool{}}
}

// IsChecked reports whether the item id is checked.
func (d DayData) IsChecked(id string) bool {
	return d.CheckedItems[id]
}

// Toggle returns a copy with id flipped. Unchecking removes the key.
func (d DayData) Toggle(id string) DayData {
	checked := make(map[string]bool, len(d.CheckedItems)+1)
	for k, v := range d.CheckedItems {
		if v {
			checked[k] = true
		}
	}
	if checked[id] {
		delete(checked, id)
	} else {
		checked[id] = true
	}
	d.CheckedItems = checked
	return d
}

// SetNote returns a copy with the journal note replaced.
func (d DayData) SetNote(note string) DayData {
	checked := make(map[string]bool, len(d.CheckedItems))
	for k, v := range d.CheckedItems {
		checked[k] = v
	}
	d.CheckedItems = checked
	d.Note = note
	return d
}

// CheckedCount returns the number of checked keys, including stale ones.
func (d DayData) CheckedCount() int {
	n := 0
	for _, v := range d.CheckedItems {
		if v {
			n++
		}
	}
	return n
}

// Category names one of the library collections.
type Category string

const (
	CategoryMentalModels Category = "mentalModels"
	CategoryProductivity Category = "productivity"
	CategoryInvestors    Category = "investors"
	CategoryQuotes       Category = "quotes"
)

// Categories lists every library category in display order.
var Categories = []Category{CategoryMentalModels, CategoryProductivity, CategoryInvestors, CategoryQuotes}

// ErrUnknownCategory is returned for a category name that is not a library collection.
var ErrUnknownCategory = errors.New("unknown library category")

// ParseCategory accepts the stored names plus short CLI aliases.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mentalmodels", "mental-models", "models", "model":
		return CategoryMentalModels, nil
	case "productivity", "prod":
		return CategoryProductivity, nil
	case "investors", "investor":
		return CategoryInvestors, nil
	case "quotes", "quote":
		return CategoryQuotes, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// LibraryField names an editable field of a library entry.
type LibraryField string

const (
	FieldName     LibraryField = "name"
	FieldDesc     LibraryField = "desc"
	FieldResource LibraryField = "resource"
	FieldYears    LibraryField = "years"
	FieldQuote    LibraryField = "quote"
)

// PersonaField names a persona attribute.
type PersonaField string

const (
	PersonaAnima     PersonaField = "anima"
	PersonaArchetype PersonaField = "archetype"
	PersonaSymbol    PersonaField = "symbol"
)

// WorkoutField names a workout attribute.
type WorkoutField string

const (
	WorkoutTitle WorkoutField = "t"
	WorkoutDesc  WorkoutField = "d"
)

// Level is the tier label for a day's total XP.
type Level string

const (
	LevelElite    Level = "ELITE"
	LevelStrong   Level = "STRONG"
	LevelSurvival Level = "SURVIVAL"
	LevelRedZone  Level = "Red Zone"
)

// StatsConfig defines filters and options for history output.
type StatsConfig struct {
	Until  string
	Days   int
	Window int
}

// DayPoint summarizes one day in the history view.
type DayPoint struct {
	Date    string
	Saved   bool
	XP      int
	Level   Level
	Checked int
	Note    string
}
