package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"pillpal/internal/domain/doses"
	"pillpal/internal/domain/medications"
)

// Formato persistido: mismo JSON que guardaba el cliente original (camelCase).

type scheduleKind int

const (
	scheduleStructured scheduleKind = iota
	scheduleLegacy                  // "schedule": "Twice daily"
)

// scheduleRecord es la unión {string | objeto} del campo schedule.
type scheduleRecord struct {
	kind       scheduleKind
	legacy     string
	Frequency  string   `json:"frequency"`
	TimesOfDay []string `json:"timesOfDay"`
}

func (s *scheduleRecord) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var legacy string
		if err := json.Unmarshal(b, &legacy); err != nil {
			return err
		}
		*s = scheduleRecord{kind: scheduleLegacy, legacy: legacy}
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*s = scheduleRecord{kind: scheduleStructured}
		return nil
	}

	type plain scheduleRecord
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	*s = scheduleRecord(p)
	s.kind = scheduleStructured
	return nil
}

func (s scheduleRecord) MarshalJSON() ([]byte, error) {
	u := s.Upgrade()
	times := u.TimesOfDay
	if times == nil {
		times = []string{}
	}
	return json.Marshal(struct {
		Frequency  string   `json:"frequency"`
		TimesOfDay []string `json:"timesOfDay"`
	}{u.Frequency, times})
}

// Upgrade convierte la forma legacy a estructurada. Idempotente.
func (s scheduleRecord) Upgrade() scheduleRecord {
	if s.kind == scheduleLegacy {
		return scheduleRecord{kind: scheduleStructured, Frequency: s.legacy, TimesOfDay: []string{}}
	}
	if s.TimesOfDay == nil {
		s.TimesOfDay = []string{}
	}
	return s
}

type medicationRecord struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Dosage       string         `json:"dosage"`
	Schedule     scheduleRecord `json:"schedule"`
	ReminderTime *string        `json:"reminderTime"`
}

type doseRecord struct {
	ID             string    `json:"id"`
	MedicationID   string    `json:"medicationId"`
	MedicationName string    `json:"medicationName"`
	Dosage         string    `json:"dosage"`
	Timestamp      time.Time `json:"timestamp"`
}

func (r medicationRecord) toDomain() medications.Medication {
	sch := r.Schedule.Upgrade()
	times := make([]medications.TimeOfDay, 0, len(sch.TimesOfDay))
	for _, t := range sch.TimesOfDay {
		times = append(times, medications.TimeOfDay(t))
	}
	m := medications.Medication{
		ID:     r.ID,
		Name:   r.Name,
		Dosage: r.Dosage,
		Schedule: medications.Schedule{
			Frequency:  sch.Frequency,
			TimesOfDay: times,
		},
	}
	if r.ReminderTime != nil && *r.ReminderTime != "" {
		rt := *r.ReminderTime
		m.ReminderTime = &rt
	}
	return m
}

func fromMedication(m medications.Medication) medicationRecord {
	times := make([]string, 0, len(m.Schedule.TimesOfDay))
	for _, t := range m.Schedule.TimesOfDay {
		times = append(times, string(t))
	}
	var rt *string
	if m.ReminderTime != nil {
		v := *m.ReminderTime
		rt = &v
	}
	return medicationRecord{
		ID:     m.ID,
		Name:   m.Name,
		Dosage: m.Dosage,
		Schedule: scheduleRecord{
			kind:       scheduleStructured,
			Frequency:  m.Schedule.Frequency,
			TimesOfDay: times,
		},
		ReminderTime: rt,
	}
}

func (r doseRecord) toDomain() doses.Dose {
	return doses.Dose{
		ID:             r.ID,
		MedicationID:   r.MedicationID,
		MedicationName: r.MedicationName,
		Dosage:         r.Dosage,
		Timestamp:      r.Timestamp,
	}
}

func fromDose(d doses.Dose) doseRecord {
	return doseRecord{
		ID:             d.ID,
		MedicationID:   d.MedicationID,
		MedicationName: d.MedicationName,
		Dosage:         d.Dosage,
		Timestamp:      d.Timestamp,
	}
}
