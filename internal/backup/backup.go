// Package backup exports and imports the persisted state of a namespace.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/komorebi/internal/store"
)

// ErrInvalidBackup is returned when backup data cannot be parsed. Nothing is
// written in that case.
var ErrInvalidBackup = errors.New("invalid backup")

// Format selects the backup encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown backup format %q", s)
	}
}

// Snapshot maps each namespaced key to its decoded JSON value, or to the raw
// string when the stored value is not JSON.
type Snapshot map[string]any

// Collect reads every key with the namespace prefix.
func Collect(ctx context.Context, kv store.KV, ns store.Namespace) (Snapshot, map[string]string, error) {
	keys, err := store.KeysWithPrefix(ctx, kv, ns.Prefix())
	if err != nil {
		return nil, nil, fmt.Errorf("list keys: %w", err)
	}
	snap := make(Snapshot, len(keys))
	raw := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok, err := kv.Get(ctx, k)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", k, err)
		}
		if !ok {
			continue
		}
		raw[k] = v
		if isCompactJSON(v) {
			snap[k] = json.RawMessage(v)
		} else {
			snap[k] = v
		}
	}
	return snap, raw, nil
}

// isCompactJSON reports whether v is a compact, non-string JSON document, so
// that exporting it as a value and compacting it on import yields v again.
func isCompactJSON(v string) bool {
	if v == "" || v[0] == '"' {
		return false
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(v)); err != nil {
		return false
	}
	return buf.String() == v
}

// Export encodes the namespace's state.
func Export(ctx context.Context, kv store.KV, ns store.Namespace, format Format) ([]byte, error) {
	snap, raw, err := Collect(ctx, kv, ns)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return nil, fmt.Errorf("encode backup: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return exportYAML(raw)
	default:
		return nil, fmt.Errorf("unknown backup format %q", format)
	}
}

func exportYAML(raw map[string]string) ([]byte, error) {
	doc := make(map[string]any, len(raw))
	for k, v := range raw {
		var decoded any
		if isCompactJSON(v) && json.Unmarshal([]byte(v), &decoded) == nil {
			doc[k] = decoded
		} else {
			doc[k] = v
		}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses backup data into the key/value pairs to write. String values
// are written verbatim; any other value is written as compact JSON.
func Decode(data []byte, format Format) (map[string]string, error) {
	switch format {
	case FormatJSON, "":
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unknown backup format %q", format)
	}
}

func decodeJSON(data []byte) (map[string]string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: backup must be an object", ErrInvalidBackup)
	}
	pairs := make(map[string]string, len(doc))
	for k, v := range doc {
		// json.Unmarshal leaves a string untouched on null.
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			pairs[k] = "null"
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			pairs[k] = s
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return nil, fmt.Errorf("%w: key %s: %v", ErrInvalidBackup, k, err)
		}
		pairs[k] = buf.String()
	}
	return pairs, nil
}

func decodeYAML(data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: backup must be a mapping", ErrInvalidBackup)
	}
	pairs := make(map[string]string, len(doc))
	for k, v := range doc {
		if s, ok := v.(string); ok {
			pairs[k] = s
			continue
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: key %s: %v", ErrInvalidBackup, k, err)
		}
		pairs[k] = string(encoded)
	}
	return pairs, nil
}

// Import parses data completely, then writes every key. Invalid data writes nothing.
func Import(ctx context.Context, kv store.KV, data []byte, format Format) (int, error) {
	pairs, err := Decode(data, format)
	if err != nil {
		return 0, err
	}
	if err := store.SetAll(ctx, kv, pairs); err != nil {
		return 0, fmt.Errorf("write backup: %w", err)
	}
	return len(pairs), nil
}
