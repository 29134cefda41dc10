package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/wedevbytes/nyaya/internal/interfaces"
)

// ResolveAPIKey resolves an API key with KV-first priority: the operator
// can rotate keys at runtime through the KV store without a restart, and
// the config/env value is the fallback.
func ResolveAPIKey(ctx context.Context, kv interfaces.KeyValueStorage, key, fallback string) (string, error) {
	if kv != nil {
		if value, err := kv.Get(ctx, key); err == nil && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), nil
		}
	}

	if strings.TrimSpace(fallback) != "" {
		return strings.TrimSpace(fallback), nil
	}

	return "", fmt.Errorf("no API key found for %s", key)
}
