package lognotify

import (
	"context"

	"pillpal/internal/platform/logger"
	"pillpal/internal/ports/notify"
)

// Notifier escribe las notificaciones en el log. Es el canal por defecto
// cuando no hay URLs configuradas (desarrollo).
type Notifier struct {
	log logger.Logger
}

func New(log logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{log: log.With(map[string]any{"component": "notify"})}
}

func (n *Notifier) Permission(context.Context) notify.Permission {
	return notify.PermissionDefault
}

func (n *Notifier) RequestPermission(context.Context) (notify.Permission, error) {
	return notify.PermissionGranted, nil
}

func (n *Notifier) Send(_ context.Context, msg notify.Notification) error {
	n.log.Info(msg.Title, map[string]any{
		"body": msg.Body,
		"icon": msg.Icon,
		"tag":  msg.Tag,
	})
	return nil
}
