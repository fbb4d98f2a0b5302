package medications

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Filter es el filtro por franja; FilterAll deja pasar todo.
type Filter string

const FilterAll Filter = "All"

func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(FilterAll)) {
		return FilterAll, nil
	}
	t, ok := ParseTimeOfDay(s)
	if !ok {
		return "", fmt.Errorf("unknown filter %q", s)
	}
	return Filter(t), nil
}

// Matches aplica el filtro a una medicación.
// Sin franjas cae al bucket de la hora del recordatorio:
// <12 Morning, 12-16 Afternoon, >=17 Evening.
func (f Filter) Matches(m Medication) bool {
	if f == FilterAll || f == "" {
		return true
	}
	want := TimeOfDay(f)

	if len(m.Schedule.TimesOfDay) > 0 {
		return m.Schedule.HasTime(want)
	}

	if m.ReminderTime == nil {
		return false
	}
	h, ok := reminderHour(*m.ReminderTime)
	if !ok {
		return false
	}
	return bucket(h) == want
}

func bucket(hour int) TimeOfDay {
	switch {
	case hour < 12:
		return Morning
	case hour < 17:
		return Afternoon
	default:
		return Evening
	}
}

// Apply filtra preservando el orden original.
func (f Filter) Apply(meds []Medication) []Medication {
	return lo.Filter(meds, func(m Medication, _ int) bool { return f.Matches(m) })
}
