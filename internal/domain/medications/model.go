package medications

import "strings"

// TimeOfDay es la franja del día en la que se toma una dosis.
type TimeOfDay string

const (
	Morning   TimeOfDay = "Morning"
	Afternoon TimeOfDay = "Afternoon"
	Evening   TimeOfDay = "Evening"
)

// TimesOfDay en el orden en que se muestran.
var TimesOfDay = []TimeOfDay{Morning, Afternoon, Evening}

func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	for _, t := range TimesOfDay {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// Schedule: frecuencia + franjas del día.
type Schedule struct {
	Frequency  string
	TimesOfDay []TimeOfDay
}

// Medication representa un tratamiento registrado por el usuario.
type Medication struct {
	ID     string
	Name   string
	Dosage string

	Schedule Schedule

	// "HH:MM" 24h; nil = sin recordatorio
	ReminderTime *string
}

// Clone devuelve una copia que no comparte slices ni punteros.
func (m Medication) Clone() Medication {
	out := m
	out.Schedule.TimesOfDay = append([]TimeOfDay(nil), m.Schedule.TimesOfDay...)
	if m.ReminderTime != nil {
		rt := *m.ReminderTime
		out.ReminderTime = &rt
	}
	return out
}

// HasTime indica si el schedule incluye la franja t.
func (s Schedule) HasTime(t TimeOfDay) bool {
	for _, v := range s.TimesOfDay {
		if v == t {
			return true
		}
	}
	return false
}

// String formatea el schedule como "Twice daily (Morning, Evening)".
func (s Schedule) String() string {
	if strings.TrimSpace(s.Frequency) == "" {
		return "Not specified"
	}
	if len(s.TimesOfDay) == 0 {
		return s.Frequency
	}
	parts := make([]string, 0, len(s.TimesOfDay))
	for _, t := range s.TimesOfDay {
		parts = append(parts, string(t))
	}
	return s.Frequency + " (" + strings.Join(parts, ", ") + ")"
}
