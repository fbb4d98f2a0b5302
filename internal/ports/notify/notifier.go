package notify

import "context"

// Permission replica los estados de permiso de notificaciones de una plataforma.
type Permission string

const (
	PermissionDefault Permission = "default" // aún no se preguntó
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

func ParsePermission(s string) (Permission, bool) {
	switch Permission(s) {
	case PermissionDefault, PermissionGranted, PermissionDenied:
		return Permission(s), true
	}
	return "", false
}

// Notification es lo que se entrega al canal. Tag agrupa repetidos (id de la medicación).
type Notification struct {
	Title string
	Body  string
	Icon  string
	Tag   string
}

// Notifier entrega notificaciones y expone el estado de permiso del canal.
type Notifier interface {
	Permission(ctx context.Context) Permission
	RequestPermission(ctx context.Context) (Permission, error)
	Send(ctx context.Context, n Notification) error
}
