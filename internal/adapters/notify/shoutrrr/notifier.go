package shoutrrr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"slices"
	"time"

	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	router "github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"

	"pillpal/internal/ports/notify"
)

var ErrNoURLs = errors.New("shoutrrr: at least one URL is required")

// Notifier entrega por cualquier servicio shoutrrr (ntfy, telegram, pushover, ...).
// No tiene estado de permiso propio: reporta default y concede al pedirlo.
type Notifier struct {
	urls   []string
	sender *router.ServiceRouter
}

func New(urls []string, timeout time.Duration) (*Notifier, error) {
	if len(urls) == 0 {
		return nil, ErrNoURLs
	}
	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		return nil, fmt.Errorf("shoutrrr: invalid service url: %w", err)
	}
	if timeout > 0 {
		sender.Timeout = timeout
	}
	sender.SetLogger(log.New(io.Discard, "", 0))

	return &Notifier{urls: slices.Clone(urls), sender: sender}, nil
}

func (n *Notifier) Permission(context.Context) notify.Permission {
	return notify.PermissionDefault
}

func (n *Notifier) RequestPermission(context.Context) (notify.Permission, error) {
	return notify.PermissionGranted, nil
}

// Send manda a todas las URLs; el router maneja sus propios timeouts.
// Icon y Tag no tienen equivalente genérico en shoutrrr.
func (n *Notifier) Send(_ context.Context, msg notify.Notification) error {
	params := stypes.Params{}
	if msg.Title != "" {
		params.SetTitle(msg.Title)
	}

	var errs []error
	for _, err := range n.sender.Send(msg.Body, &params) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("shoutrrr send: %w", errors.Join(errs...))
	}
	return nil
}
