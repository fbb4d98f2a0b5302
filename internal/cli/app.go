package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pillpal/internal/adapters/medinfo/gemini"
	"pillpal/internal/adapters/storage"
	"pillpal/internal/domain/medications"
	"pillpal/internal/domain/medinfo"
	"pillpal/internal/domain/tracker"
	"pillpal/internal/ports/kv"
	"pillpal/internal/store"
)

// app agrupa lo que necesita cualquier comando: store abierto y servicios cargados.
type app struct {
	kv      kv.Store
	repo    *store.Repository
	tracker *tracker.Service
	medinfo *medinfo.Service
}

func (st *state) openApp(ctx context.Context) (*app, error) {
	s, err := storage.Open(ctx, st.settings.Storage, st.log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	repo := store.NewRepository(s, st.log)
	svc := tracker.NewService(repo)
	if err := svc.Load(ctx); err != nil {
		st.log.Warn("initial load failed, starting empty", map[string]any{"error": err})
	}

	gem, err := gemini.NewClient(gemini.Config{
		BaseURL: st.settings.Gemini.BaseURL,
		APIKey:  st.settings.Gemini.APIKey,
		Model:   st.settings.Gemini.Model,
		Timeout: st.settings.Gemini.Timeout,
	})
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	return &app{
		kv:      s,
		repo:    repo,
		tracker: svc,
		medinfo: medinfo.NewService(gem, st.log),
	}, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}

var errAmbiguous = errors.New("more than one medication matches")

// resolve acepta ID exacto, prefijo único de ID o nombre exacto (sin distinguir mayúsculas).
func (a *app) resolve(ctx context.Context, ref string) (medications.Medication, error) {
	ref = strings.TrimSpace(ref)
	if m, err := a.tracker.Medication(ctx, ref); err == nil {
		return m, nil
	}

	all := a.tracker.Medications(ctx, medications.FilterAll)
	for _, match := range []func(medications.Medication) bool{
		func(m medications.Medication) bool { return ref != "" && strings.HasPrefix(m.ID, ref) },
		func(m medications.Medication) bool { return strings.EqualFold(m.Name, ref) },
	} {
		var found []medications.Medication
		for _, m := range all {
			if match(m) {
				found = append(found, m)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		default:
			return medications.Medication{}, fmt.Errorf("%w: %q", errAmbiguous, ref)
		}
	}
	return medications.Medication{}, fmt.Errorf("%w: %q", tracker.ErrNotFound, ref)
}
