package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/verte-zerg/komorebi/internal/model"
)

// persisted mirrors AppConfig with optional top-level fields so absent keys
// can be told apart from zero values.
type persisted struct {
	Levels    *model.LevelThresholds  `json:"levels"`
	MaxXP     *int                    `json:"maxXP"`
	Persona   *model.PersonaConfig    `json:"persona"`
	Library   *model.Library          `json:"library"`
	Workouts  []model.Workout         `json:"workouts"`
	Protocols []model.ProtocolSection `json:"protocols"`
}

// Merge decodes a stored configuration and fills every absent part from the
// defaults. Top-level fields present in raw replace the default wholesale.
// Fractional numbers are rounded to the nearest integer, since every numeric
// field is an integer.
func Merge(raw []byte) (model.AppConfig, error) {
	raw, err := roundNumbers(raw)
	if err != nil {
		return Default(), fmt.Errorf("decode config: %w", err)
	}
	var p persisted
	if err := json.Unmarshal(raw, &p); err != nil {
		return Default(), fmt.Errorf("decode config: %w", err)
	}
	return mergePersisted(p), nil
}

// roundNumbers rewrites every non-integer JSON number in raw as an integer.
func roundNumbers(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after config object")
	}
	changed := false
	doc = roundValue(doc, &changed)
	if !changed {
		return raw, nil
	}
	return json.Marshal(doc)
}

func roundValue(v any, changed *bool) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = roundValue(e, changed)
		}
	case []any:
		for i, e := range t {
			t[i] = roundValue(e, changed)
		}
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return t
		}
		f, err := t.Float64()
		if err != nil {
			return t
		}
		*changed = true
		return json.Number(fmt.Sprintf("%.0f", math.Round(f)))
	}
	return v
}

func mergePersisted(p persisted) model.AppConfig {
	cfg := Default()
	if p.Levels != nil {
		cfg.Levels = *p.Levels
	}
	if p.MaxXP != nil {
		cfg.MaxXP = *p.MaxXP
	}
	if p.Persona != nil {
		cfg.Persona = WithPersonaDefaults(*p.Persona)
	}
	if p.Library != nil {
		cfg.Library = *p.Library
	}
	if p.Workouts != nil {
		cfg.Workouts = p.Workouts
	}
	if p.Protocols != nil {
		cfg.Protocols = p.Protocols
	}
	return Normalize(cfg)
}

// Normalize makes a configuration structurally complete: nil collections
// become empty, workouts are padded or trimmed to one per weekday and cards
// without a scoring type score as sums.
func Normalize(cfg model.AppConfig) model.AppConfig {
	cfg.Persona = WithPersonaDefaults(cfg.Persona)
	if cfg.Library.MentalModels == nil {
		cfg.Library.MentalModels = []model.LibraryItem{}
	}
	if cfg.Library.Productivity == nil {
		cfg.Library.Productivity = []model.LibraryItem{}
	}
	if cfg.Library.Investors == nil {
		cfg.Library.Investors = []model.LibraryItem{}
	}
	if cfg.Library.Quotes == nil {
		cfg.Library.Quotes = []string{}
	}

	workouts := make([]model.Workout, model.WorkoutDays)
	copy(workouts, cfg.Workouts)
	cfg.Workouts = workouts

	if cfg.Protocols == nil {
		cfg.Protocols = []model.ProtocolSection{}
	}
	for si := range cfg.Protocols {
		section := &cfg.Protocols[si]
		if section.Columns < 1 {
			section.Columns = 1
		}
		if section.Columns > 3 {
			section.Columns = 3
		}
		if section.Cards == nil {
			section.Cards = []model.ProtocolCard{}
		}
		for ci := range section.Cards {
			card := &section.Cards[ci]
			if card.ScoringType == "" {
				card.ScoringType = model.ScoringSum
			}
			if card.Items == nil {
				card.Items = []model.ProtocolItem{}
			}
		}
	}
	return cfg
}

// WithPersonaDefaults fills empty persona fields from DefaultPersona.
func WithPersonaDefaults(p model.PersonaConfig) model.PersonaConfig {
	if p.Anima == "" {
		p.Anima = DefaultPersona.Anima
	}
	if p.Archetype == "" {
		p.Archetype = DefaultPersona.Archetype
	}
	if p.Symbol == "" {
		p.Symbol = DefaultPersona.Symbol
	}
	return p
}
