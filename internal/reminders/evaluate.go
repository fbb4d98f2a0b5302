package reminders

import (
	"time"

	"pillpal/internal/domain/doses"
	"pillpal/internal/domain/medications"
	"pillpal/internal/ports/notify"
)

const (
	Title       = "Time for your medication!"
	DefaultIcon = "assets/icon-192.svg"

	// ventana hacia atrás desde la hora programada en la que una toma suprime el aviso
	suppressionWindow = 24 * time.Hour
)

// Decision es el resultado de evaluar una medicación cuya hora de recordatorio es "ahora".
type Decision struct {
	Medication medications.Medication
	Scheduled  time.Time
	Taken      bool // hubo una toma dentro de la ventana => no se notifica
}

// Evaluate devuelve una Decision por cada medicación con recordatorio en el minuto de now.
// Hora local; el minuto se compara como "HH:MM".
func Evaluate(meds []medications.Medication, history []doses.Dose, now time.Time) []Decision {
	current := now.Format("15:04")

	var out []Decision
	for _, m := range meds {
		if m.ReminderTime == nil || *m.ReminderTime != current {
			continue
		}
		h, mm, err := medications.ParseReminderTime(*m.ReminderTime)
		if err != nil {
			continue
		}

		scheduled := time.Date(now.Year(), now.Month(), now.Day(), h, mm, 0, 0, now.Location())
		windowStart := scheduled.Add(-suppressionWindow)

		out = append(out, Decision{
			Medication: m,
			Scheduled:  scheduled,
			Taken:      doses.TakenSince(history, m.ID, windowStart),
		})
	}
	return out
}

// NotificationFor arma el aviso de una medicación. Tag = ID para agrupar repetidos.
func NotificationFor(m medications.Medication, icon string) notify.Notification {
	if icon == "" {
		icon = DefaultIcon
	}
	return notify.Notification{
		Title: Title,
		Body:  "It's time to take your " + m.Name + " (" + m.Dosage + ").",
		Icon:  icon,
		Tag:   m.ID,
	}
}
