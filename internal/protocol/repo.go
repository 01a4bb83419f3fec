package protocol

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/verte-zerg/komorebi/internal/model"
	"github.com/verte-zerg/komorebi/internal/store"
)

// Repo is the configuration store over a KV port.
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

// Load returns the stored configuration merged with defaults. A missing or
// malformed record yields the defaults; only storage failures are errors.
func (r *Repo) Load(ctx context.Context) (model.AppConfig, error) {
	key := r.ns.Config()
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("read config: %w", err)
	}
	if !ok {
		return Default(), nil
	}
	cfg, err := Merge([]byte(raw))
	if err != nil {
		r.log.Warn("stored config is malformed, using defaults", zap.String("key", key), zap.Error(err))
		return Default(), nil
	}
	if err := Validate(cfg); err != nil {
		r.log.Warn("stored config has problems", zap.String("key", key), zap.Error(err))
	}
	return cfg, nil
}

// Save persists the configuration in full.
func (r *Repo) Save(ctx context.Context, cfg model.AppConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := r.kv.Set(ctx, r.ns.Config(), string(data)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Update loads, applies fn and persists the result. Nothing is written when fn fails.
func (r *Repo) Update(ctx context.Context, fn func(model.AppConfig) (model.AppConfig, error)) (model.AppConfig, error) {
	cfg, err := r.Load(ctx)
	if err != nil {
		return model.AppConfig{}, err
	}
	next, err := fn(cfg)
	if err != nil {
		return cfg, err
	}
	if err := r.Save(ctx, next); err != nil {
		return cfg, err
	}
	r.log.Debug("config updated", zap.String("key", r.ns.Config()))
	return next, nil
}
