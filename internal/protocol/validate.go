package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/komorebi/internal/model"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct constraints, threshold ordering and id uniqueness.
func Validate(cfg model.AppConfig) error {
	var problems []string
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	cardIDs := map[string]bool{}
	for si, section := range cfg.Protocols {
		for ci, card := range section.Cards {
			if card.ID != "" && cardIDs[card.ID] {
				problems = append(problems, fmt.Sprintf("protocols[%d].cards[%d]: duplicate card id %q", si, ci, card.ID))
			}
			cardIDs[card.ID] = true
			itemIDs := map[string]bool{}
			for ii, item := range card.Items {
				if item.ID != "" && itemIDs[item.ID] {
					problems = append(problems, fmt.Sprintf("protocols[%d].cards[%d].items[%d]: duplicate item id %q", si, ci, ii, item.ID))
				}
				itemIDs[item.ID] = true
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

// ValidateLevels checks elite > strong > survival >= 0.
func ValidateLevels(levels model.LevelThresholds) error {
	if err := validate.Struct(levels); err != nil {
		return fmt.Errorf("%w: levels must satisfy elite > strong > survival >= 0 (got %d/%d/%d)",
			ErrInvalidConfig, levels.Elite, levels.Strong, levels.Survival)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	switch fe.Tag() {
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", ns, fe.Param())
	case "len":
		return fmt.Sprintf("%s must have exactly %s entries", ns, fe.Param())
	case "required":
		return fmt.Sprintf("%s is required", ns)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", ns, fe.Param())
	default:
		return fmt.Sprintf("%s fails %s=%s", ns, fe.Tag(), fe.Param())
	}
}
