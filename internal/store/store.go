package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pillpal/internal/platform/logger"
	"pillpal/internal/ports/kv"
)

const (
	KeyMedications            = "medications"
	KeyDoseHistory            = "doseHistory"
	KeyNotificationPermission = "notification_permission"
)

// Read lee key y la decodifica como T.
// Ausente, vacía o corrupta => def sin error (la corrupción se loguea).
// Solo una falla del backend devuelve error: quien escribe no debe pisar datos que no pudo leer.
func Read[T any](ctx context.Context, s kv.Store, log logger.Logger, key string, def T) (T, error) {
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("store: read %s: %w", key, err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return def, nil
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Error("parsing error on stored value, using default", map[string]any{"key": key, "error": err})
		return def, nil
	}
	return out, nil
}

// Load es Read sin error: una falla del backend se loguea y devuelve def.
func Load[T any](ctx context.Context, s kv.Store, log logger.Logger, key string, def T) T {
	out, err := Read(ctx, s, log, key, def)
	if err != nil {
		log.Warn("store read failed, using default", map[string]any{"key": key, "error": err})
		return def
	}
	return out
}

// Save serializa v y lo escribe de inmediato (sin batching).
func Save[T any](ctx context.Context, s kv.Store, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}
