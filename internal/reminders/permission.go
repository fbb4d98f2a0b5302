package reminders

import (
	"context"
	"sync"

	"pillpal/internal/platform/logger"
	"pillpal/internal/ports/notify"
)

// PermissionStore guarda el resultado de la única solicitud de permiso.
type PermissionStore interface {
	LoadPermission(ctx context.Context) (notify.Permission, bool)
	SavePermission(ctx context.Context, p notify.Permission) error
}

// permissionGate pide permiso como mucho una vez en la vida del store.
type permissionGate struct {
	notifier notify.Notifier
	store    PermissionStore
	log      logger.Logger

	mu       sync.Mutex
	recorded notify.Permission
}

// Ensure: si no hay resultado registrado y el canal está en default, pide una vez y guarda la respuesta.
// Solo se registra lo que devolvió una solicitud real; un denied registrado nunca se vuelve a preguntar.
func (g *permissionGate) Ensure(ctx context.Context) notify.Permission {
	g.mu.Lock()
	defer g.mu.Unlock()

	if p, ok := g.store.LoadPermission(ctx); ok {
		g.recorded = p
		return g.effectiveLocked(ctx)
	}

	current := g.notifier.Permission(ctx)
	if current != notify.PermissionDefault {
		g.log.Info("notification permission", map[string]any{"permission": string(current)})
		return current
	}

	p, err := g.notifier.RequestPermission(ctx)
	if err != nil {
		g.log.Warn("notification permission request failed", map[string]any{"error": err})
		return current
	}
	if p != notify.PermissionDefault {
		if err := g.store.SavePermission(ctx, p); err != nil {
			g.log.Warn("could not persist notification permission", map[string]any{"error": err})
		}
		g.recorded = p
	}
	g.log.Info("notification permission", map[string]any{"permission": string(p)})
	return p
}

// Effective es el estado actual del canal; si el canal no guarda estado (default)
// vale lo registrado.
func (g *permissionGate) Effective(ctx context.Context) notify.Permission {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.effectiveLocked(ctx)
}

func (g *permissionGate) effectiveLocked(ctx context.Context) notify.Permission {
	current := g.notifier.Permission(ctx)
	if current == notify.PermissionDefault && g.recorded != "" {
		return g.recorded
	}
	return current
}
