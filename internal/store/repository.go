package store

import (
	"context"
	"strings"

	"pillpal/internal/domain/doses"
	"pillpal/internal/domain/medications"
	"pillpal/internal/platform/logger"
	"pillpal/internal/ports/kv"
	"pillpal/internal/ports/notify"
)

// Repository persiste colecciones y el permiso de notificaciones sobre un kv.Store.
type Repository struct {
	kv  kv.Store
	log logger.Logger
}

func NewRepository(s kv.Store, log logger.Logger) *Repository {
	if log == nil {
		log = logger.Nop()
	}
	return &Repository{kv: s, log: log.With(map[string]any{"component": "store"})}
}

// LoadMedications devuelve error solo si el backend falla; datos corruptos => vacío.
func (r *Repository) LoadMedications(ctx context.Context) ([]medications.Medication, error) {
	recs, err := Read(ctx, r.kv, r.log, KeyMedications, []medicationRecord{})
	if err != nil {
		return nil, err
	}
	out := make([]medications.Medication, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *Repository) SaveMedications(ctx context.Context, meds []medications.Medication) error {
	recs := make([]medicationRecord, 0, len(meds))
	for _, m := range meds {
		recs = append(recs, fromMedication(m))
	}
	return Save(ctx, r.kv, KeyMedications, recs)
}

func (r *Repository) LoadHistory(ctx context.Context) ([]doses.Dose, error) {
	recs, err := Read(ctx, r.kv, r.log, KeyDoseHistory, []doseRecord{})
	if err != nil {
		return nil, err
	}
	out := make([]doses.Dose, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

func (r *Repository) SaveHistory(ctx context.Context, history []doses.Dose) error {
	recs := make([]doseRecord, 0, len(history))
	for _, d := range history {
		recs = append(recs, fromDose(d))
	}
	return Save(ctx, r.kv, KeyDoseHistory, recs)
}

// LoadPermission devuelve el resultado registrado de la única solicitud de permiso.
// El valor se guarda en crudo ("granted"), no como JSON.
func (r *Repository) LoadPermission(ctx context.Context) (notify.Permission, bool) {
	raw, found, err := r.kv.Get(ctx, KeyNotificationPermission)
	if err != nil {
		r.log.Warn("store read failed", map[string]any{"key": KeyNotificationPermission, "error": err})
		return "", false
	}
	if !found {
		return "", false
	}
	p, ok := notify.ParsePermission(strings.Trim(strings.TrimSpace(raw), `"`))
	if !ok || p == notify.PermissionDefault {
		return "", false
	}
	return p, true
}

func (r *Repository) SavePermission(ctx context.Context, p notify.Permission) error {
	return r.kv.Set(ctx, KeyNotificationPermission, string(p))
}
