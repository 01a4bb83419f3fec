// Package day persists per-date checklist records and builds the history index.
package day

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/komorebi/internal/model"
	"github.com/verte-zerg/komorebi/internal/store"
)

// Repo is the day record store over a KV port.
type Repo struct {
	kv  store.KV
	ns  store.Namespace
	log *zap.Logger
}

// NewRepo builds a repo. A nil logger discards output.
func NewRepo(kv store.KV, ns store.Namespace, log *zap.Logger) *Repo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repo{kv: kv, ns: ns, log: log}
}

// Load returns the record for date. saved reports whether a record was
// stored; missing or malformed records come back empty.
func (r *Repo) Load(ctx context.Context, date string) (rec model.DayData, saved bool, err error) {
	key := r.ns.Day(date)
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return model.DayData{}, false, fmt.Errorf("read day %s: %w", date, err)
	}
	if !ok {
		return model.NewDay(date), false, nil
	}
	rec, err = decode(raw, date)
	if err != nil {
		r.log.Warn("stored day record is malformed, starting empty", zap.String("key", key), zap.Error(err))
		return model.NewDay(date), false, nil
	}
	return rec, true, nil
}

// Save persists the record under its date. Saving the same record twice is a no-op.
func (r *Repo) Save(ctx context.Context, rec model.DayData) error {
	if rec.Date == "" {
		return fmt.Errorf("day record has no date")
	}
	data, err := json.Marshal(encodable(rec))
	if err != nil {
		return fmt.Errorf("encode day %s: %w", rec.Date, err)
	}
	if err := r.kv.Set(ctx, r.ns.Day(rec.Date), string(data)); err != nil {
		return fmt.Errorf("write day %s: %w", rec.Date, err)
	}
	return nil
}

// encodable drops false entries so absence is the only unchecked state on disk.
func encodable(rec model.DayData) model.DayData {
	checked := make(map[string]bool, len(rec.CheckedItems))
	for k, v := range rec.CheckedItems {
		if v {
			checked[k] = true
		}
	}
	rec.CheckedItems = checked
	return rec
}

func decode(raw, date string) (model.DayData, error) {
	var rec model.DayData
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return model.DayData{}, err
	}
	if rec.Date == "" {
		rec.Date = date
	}
	if rec.CheckedItems == nil {
		rec.CheckedItems = map[string]bool{}
	}
	return rec, nil
}

// BuildHistory scans every day key in the namespace and returns a fresh
// date to record map. Malformed records are skipped.
func BuildHistory(ctx context.Context, kv store.KV, ns store.Namespace, log *zap.Logger) (map[string]model.DayData, error) {
	if log == nil {
		log = zap.NewNop()
	}
	keys, err := store.KeysWithPrefix(ctx, kv, ns.DayPrefix())
	if err != nil {
		return nil, fmt.Errorf("list day keys: %w", err)
	}
	history := make(map[string]model.DayData, len(keys))
	for _, key := range keys {
		date, ok := ns.DateFromKey(key)
		if !ok {
			continue
		}
		raw, ok, err := kv.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		rec, err := decode(raw, date)
		if err != nil {
			log.Warn("skipping malformed day record", zap.String("key", key), zap.Error(err))
			continue
		}
		history[date] = rec
	}
	return history, nil
}
