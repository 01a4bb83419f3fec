package editor

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/komorebi/internal/model"
)

// Placeholder entries prepended by AddLibraryItem.
var (
	DefaultQuote    = "New quote..."
	DefaultInvestor = model.LibraryItem{Name: "Name", Resource: "Source", Years: "Era"}
	DefaultEntry    = model.LibraryItem{Name: "New Item", Desc: "Description"}
)

// AddLibraryItem prepends the category's placeholder.
func AddLibraryItem(cfg model.AppConfig, cat model.Category) (model.AppConfig, error) {
	next := cfg.Clone()
	lib := &next.Library
	switch cat {
	case model.CategoryQuotes:
		lib.Quotes = append([]string{DefaultQuote}, lib.Quotes...)
	case model.CategoryInvestors:
		lib.Investors = append([]model.LibraryItem{DefaultInvestor}, lib.Investors...)
	case model.CategoryMentalModels:
		lib.MentalModels = append([]model.LibraryItem{DefaultEntry}, lib.MentalModels...)
	case model.CategoryProductivity:
		lib.Productivity = append([]model.LibraryItem{DefaultEntry}, lib.Productivity...)
	default:
		return cfg, fmt.Errorf("%w: %q", model.ErrUnknownCategory, cat)
	}
	return next, nil
}

// RemoveLibraryItem deletes an entry by index.
func RemoveLibraryItem(cfg model.AppConfig, cat model.Category, index int) (model.AppConfig, error) {
	if err := checkIndex(cfg.Library, cat, index); err != nil {
		return cfg, err
	}
	next := cfg.Clone()
	lib := &next.Library
	switch cat {
	case model.CategoryQuotes:
		lib.Quotes = append(lib.Quotes[:index], lib.Quotes[index+1:]...)
	case model.CategoryInvestors:
		lib.Investors = removeEntry(lib.Investors, index)
	case model.CategoryMentalModels:
		lib.MentalModels = removeEntry(lib.MentalModels, index)
	case model.CategoryProductivity:
		lib.Productivity = removeEntry(lib.Productivity, index)
	}
	return next, nil
}

func removeEntry(items []model.LibraryItem, index int) []model.LibraryItem {
	return append(items[:index], items[index+1:]...)
}

// UpdateLibraryItem edits one field of an entry. Each category accepts its own fields:
// quotes take quote, investors take name, resource and years, and mental models and
// productivity take name, desc and resource.
func UpdateLibraryItem(cfg model.AppConfig, cat model.Category, index int, field model.LibraryField, value string) (model.AppConfig, error) {
	if err := checkIndex(cfg.Library, cat, index); err != nil {
		return cfg, err
	}
	next := cfg.Clone()
	lib := &next.Library
	var err error
	switch cat {
	case model.CategoryQuotes:
		if field != model.FieldQuote {
			return cfg, fmt.Errorf("%w: quotes have no field %q", ErrUnknownField, field)
		}
		lib.Quotes[index] = value
	case model.CategoryInvestors:
		err = setInvestorField(&lib.Investors[index], field, value)
	case model.CategoryMentalModels:
		err = setEntryField(&lib.MentalModels[index], field, value)
	case model.CategoryProductivity:
		err = setEntryField(&lib.Productivity[index], field, value)
	}
	if err != nil {
		return cfg, err
	}
	return next, nil
}

func setInvestorField(it *model.LibraryItem, field model.LibraryField, value string) error {
	switch field {
	case model.FieldName:
		it.Name = value
	case model.FieldResource:
		it.Resource = value
	case model.FieldYears:
		it.Years = value
	default:
		return fmt.Errorf("%w: investors have no field %q", ErrUnknownField, field)
	}
	return nil
}

func setEntryField(it *model.LibraryItem, field model.LibraryField, value string) error {
	switch field {
	case model.FieldName:
		it.Name = value
	case model.FieldDesc:
		it.Desc = value
	case model.FieldResource:
		it.Resource = value
	default:
		return fmt.Errorf("%w: entries have no field %q", ErrUnknownField, field)
	}
	return nil
}

func checkIndex(lib model.Library, cat model.Category, index int) error {
	switch cat {
	case model.CategoryQuotes, model.CategoryInvestors, model.CategoryMentalModels, model.CategoryProductivity:
	default:
		return fmt.Errorf("%w: %q", model.ErrUnknownCategory, cat)
	}
	if index < 0 || index >= lib.Len(cat) {
		return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, cat, index)
	}
	return nil
}

// ImportQuotes appends quotes not already present, trimming each and
// skipping blanks. It returns the number added.
func ImportQuotes(cfg model.AppConfig, quotes []string) (model.AppConfig, int) {
	next := cfg.Clone()
	seen := make(map[string]bool, len(next.Library.Quotes))
	for _, q := range next.Library.Quotes {
		seen[q] = true
	}
	added := 0
	for _, q := range quotes {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		next.Library.Quotes = append(next.Library.Quotes, q)
		added++
	}
	return next, added
}
