package doses

import "time"

// Dose registra una toma. Es inmutable: nunca se edita ni se borra individualmente.
// MedicationName y Dosage son snapshots del momento de la toma.
type Dose struct {
	ID           string
	MedicationID string

	MedicationName string
	Dosage         string

	Timestamp time.Time
}
