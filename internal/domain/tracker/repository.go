package tracker

import (
	"context"

	"pillpal/internal/domain/doses"
	"pillpal/internal/domain/medications"
)

// Repository persiste las dos colecciones.
// Load* devuelve vacío ante datos ausentes o corruptos; error solo si el backend no responde.
type Repository interface {
	LoadMedications(ctx context.Context) ([]medications.Medication, error)
	SaveMedications(ctx context.Context, meds []medications.Medication) error

	LoadHistory(ctx context.Context) ([]doses.Dose, error)
	SaveHistory(ctx context.Context, history []doses.Dose) error
}
