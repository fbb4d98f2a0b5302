package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const confirmedKey ctxKey = "confirmed"

const ConfirmHeader = "X-Confirm"

// Confirm marca en el contexto si el request trae X-Confirm: yes.
// No corta nada: cada handler decide si la acción exige confirmación (428).
func Confirm(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v := strings.TrimSpace(r.Header.Get(ConfirmHeader))
		if !strings.EqualFold(v, "yes") && !strings.EqualFold(v, "true") {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), confirmedKey, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func Confirmed(ctx context.Context) bool {
	v, ok := ctx.Value(confirmedKey).(bool)
	return ok && v
}

// WithConfirmation la usan CLI y tests para invocar handlers ya confirmados.
func WithConfirmation(ctx context.Context) context.Context {
	return context.WithValue(ctx, confirmedKey, true)
}
