// Package store provides the key-value persistence port and its backends.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// KV is a string key-value store. Values are opaque strings.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys enumerates every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Backend names a KV implementation.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendBadger Backend = "badger"
	BackendMemory Backend = "memory"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// ParseBackend validates a backend name. Empty means sqlite.
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendSQLite:
		return BackendSQLite, nil
	case BackendBadger:
		return BackendBadger, nil
	case BackendMemory:
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Open opens the named backend. path is a database file for sqlite and a
// directory for badger; it is ignored for memory.
func Open(backend Backend, path string, log *zap.Logger) (KV, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var (
		kv  KV
		err error
	)
	switch backend {
	case BackendSQLite, "":
		kv, err = OpenSQLite(path)
	case BackendBadger:
		kv, err = OpenBadger(path, log)
	case BackendMemory:
		kv = NewMemory()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	log.Debug("store opened", zap.String("backend", string(backend)), zap.String("path", path))
	return kv, nil
}

// KeysWithPrefix filters the enumerated keys by prefix.
func KeysWithPrefix(ctx context.Context, kv KV, prefix string) ([]string, error) {
	keys, err := kv.Keys(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

// BatchSetter is implemented by backends that can write several keys atomically.
type BatchSetter interface {
	SetMany(ctx context.Context, pairs map[string]string) error
}

// SetAll writes every pair, in one transaction when the backend supports it.
func SetAll(ctx context.Context, kv KV, pairs map[string]string) error {
	if b, ok := kv.(BatchSetter); ok {
		return b.SetMany(ctx, pairs)
	}
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := kv.Set(ctx, k, pairs[k]); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return nil
}
