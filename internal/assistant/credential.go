package assistant

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/komorebi/internal/store"
)

// APIKeyEnv overrides the stored credential when set.
const APIKeyEnv = "GEMINI_API_KEY"

// ResolveAPIKey returns the credential from the environment or the store.
func ResolveAPIKey(ctx context.Context, kv store.KV, ns store.Namespace) (string, error) {
	if v := strings.TrimSpace(os.Getenv(APIKeyEnv)); v != "" {
		return v, nil
	}
	v, ok, err := kv.Get(ctx, ns.APIKey())
	if err != nil {
		return "", fmt.Errorf("read api key: %w", err)
	}
	if !ok || strings.TrimSpace(v) == "" {
		return "", ErrMissingAPIKey
	}
	return v, nil
}

// SaveAPIKey stores the credential as an opaque string.
func SaveAPIKey(ctx context.Context, kv store.KV, ns store.Namespace, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("api key is empty")
	}
	return kv.Set(ctx, ns.APIKey(), key)
}

// ClearAPIKey removes the stored credential.
func ClearAPIKey(ctx context.Context, kv store.KV, ns store.Namespace) error {
	return kv.Delete(ctx, ns.APIKey())
}
