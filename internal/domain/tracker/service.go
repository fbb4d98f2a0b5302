package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pillpal/internal/domain/doses"
	"pillpal/internal/domain/medications"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	ErrNotFound = errors.New("medication not found")
)

// Service es el dueño de medicaciones e historial dentro del proceso.
// El store es la fuente de verdad: otro proceso (la CLI) puede escribir el mismo archivo,
// así que cada lectura y cada mutación relee antes de operar.
// Cada mutación persiste antes de confirmarse en memoria.
type Service struct {
	repo Repository
	now  func() time.Time

	mu      sync.Mutex
	meds    []medications.Medication
	history []doses.Dose // más reciente primero
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Load hidrata el estado desde el repositorio.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh(ctx)
}

// requiere lock tomado. Si el backend falla se conserva el último estado conocido.
func (s *Service) refresh(ctx context.Context) error {
	meds, err := s.repo.LoadMedications(ctx)
	if err != nil {
		return fmt.Errorf("load medications: %w", err)
	}
	history, err := s.repo.LoadHistory(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	s.meds = meds
	s.history = history
	return nil
}

func (s *Service) AddMedication(ctx context.Context, in medications.Input) (medications.Medication, error) {
	n, err := in.Normalize()
	if err != nil {
		return medications.Medication{}, err
	}

	m := medications.Medication{
		ID:           uuid.NewString(),
		Name:         n.Name,
		Dosage:       n.Dosage,
		Schedule:     n.Schedule(),
		ReminderTime: n.ReminderTime,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(ctx); err != nil {
		return medications.Medication{}, err
	}

	next := append(cloneMeds(s.meds), m)
	if err := s.repo.SaveMedications(ctx, next); err != nil {
		return medications.Medication{}, fmt.Errorf("save medications: %w", err)
	}
	s.meds = next
	return m.Clone(), nil
}

// UpdateMedication reemplaza los campos editables conservando el ID.
// Las dosis ya registradas no se tocan.
func (s *Service) UpdateMedication(ctx context.Context, id string, in medications.Input) (medications.Medication, error) {
	n, err := in.Normalize()
	if err != nil {
		return medications.Medication{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(ctx); err != nil {
		return medications.Medication{}, err
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return medications.Medication{}, ErrNotFound
	}

	updated := medications.Medication{
		ID:           id,
		Name:         n.Name,
		Dosage:       n.Dosage,
		Schedule:     n.Schedule(),
		ReminderTime: n.ReminderTime,
	}

	next := cloneMeds(s.meds)
	next[idx] = updated
	if err := s.repo.SaveMedications(ctx, next); err != nil {
		return medications.Medication{}, fmt.Errorf("save medications: %w", err)
	}
	s.meds = next
	return updated.Clone(), nil
}

// DeleteMedication borra la medicación y en cascada sus dosis.
// La confirmación del usuario la resuelve quien llama.
func (s *Service) DeleteMedication(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(ctx); err != nil {
		return err
	}

	if s.indexOf(id) < 0 {
		return ErrNotFound
	}

	nextMeds := lo.Reject(s.meds, func(m medications.Medication, _ int) bool { return m.ID == id })
	nextHistory := lo.Reject(s.history, func(d doses.Dose, _ int) bool { return d.MedicationID == id })

	if err := s.repo.SaveMedications(ctx, nextMeds); err != nil {
		return fmt.Errorf("save medications: %w", err)
	}
	if err := s.repo.SaveHistory(ctx, nextHistory); err != nil {
		// medicaciones ya escritas; se restauran para no dejar el store a medias
		if rerr := s.repo.SaveMedications(ctx, s.meds); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return fmt.Errorf("save history: %w", err)
	}

	s.meds = nextMeds
	s.history = nextHistory
	return nil
}

// RecordDose registra una toma con snapshot de nombre y dosis.
func (s *Service) RecordDose(ctx context.Context, medicationID string) (doses.Dose, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(ctx); err != nil {
		return doses.Dose{}, err
	}

	idx := s.indexOf(medicationID)
	if idx < 0 {
		return doses.Dose{}, ErrNotFound
	}
	m := s.meds[idx]

	d := doses.Dose{
		ID:             uuid.NewString(),
		MedicationID:   m.ID,
		MedicationName: m.Name,
		Dosage:         m.Dosage,
		Timestamp:      s.now(),
	}

	next := make([]doses.Dose, 0, len(s.history)+1)
	next = append(next, d)
	next = append(next, s.history...)
	if err := s.repo.SaveHistory(ctx, next); err != nil {
		return doses.Dose{}, fmt.Errorf("save history: %w", err)
	}
	s.history = next
	return d, nil
}

// Medications devuelve una copia filtrada, en orden de alta.
func (s *Service) Medications(ctx context.Context, filter medications.Filter) []medications.Medication {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.refresh(ctx)
	return filter.Apply(cloneMeds(s.meds))
}

func (s *Service) Medication(ctx context.Context, id string) (medications.Medication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.refresh(ctx)

	idx := s.indexOf(id)
	if idx < 0 {
		return medications.Medication{}, ErrNotFound
	}
	return s.meds[idx].Clone(), nil
}

func (s *Service) History(ctx context.Context, order doses.Order) []doses.Dose {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.refresh(ctx)
	return doses.Sorted(s.history, order)
}

// Snapshot relee el store y copia ambas colecciones de forma consistente.
// Lo usa el scheduler en cada tick, así ve las dosis que registró la CLI.
func (s *Service) Snapshot(ctx context.Context) ([]medications.Medication, []doses.Dose) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.refresh(ctx)
	return cloneMeds(s.meds), append([]doses.Dose(nil), s.history...)
}

// requiere lock tomado
func (s *Service) indexOf(id string) int {
	_, idx, ok := lo.FindIndexOf(s.meds, func(m medications.Medication) bool { return m.ID == id })
	if !ok {
		return -1
	}
	return idx
}

func cloneMeds(in []medications.Medication) []medications.Medication {
	out := make([]medications.Medication, 0, len(in)+1)
	for _, m := range in {
		out = append(out, m.Clone())
	}
	return out
}
