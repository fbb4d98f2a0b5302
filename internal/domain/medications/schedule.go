package medications

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Frequency define una opción de frecuencia y cuántas franjas admite.
type Frequency struct {
	Label    string
	MaxTimes int
}

const (
	FrequencyAsNeeded        = "As needed"
	FrequencyOnceDaily       = "Once daily"
	FrequencyTwiceDaily      = "Twice daily"
	FrequencyThreeTimesDaily = "Three times daily"
	FrequencyFourTimesDaily  = "Four times daily"
	FrequencyEveryOtherDay   = "Every other day"
	FrequencyOnceAWeek       = "Once a week"
)

var Frequencies = []Frequency{
	{Label: FrequencyAsNeeded, MaxTimes: 0},
	{Label: FrequencyOnceDaily, MaxTimes: 1},
	{Label: FrequencyTwiceDaily, MaxTimes: 2},
	{Label: FrequencyThreeTimesDaily, MaxTimes: 3},
	{Label: FrequencyFourTimesDaily, MaxTimes: 4},
	{Label: FrequencyEveryOtherDay, MaxTimes: 1},
	{Label: FrequencyOnceAWeek, MaxTimes: 1},
}

func LookupFrequency(label string) (Frequency, bool) {
	label = strings.TrimSpace(label)
	for _, f := range Frequencies {
		if strings.EqualFold(f.Label, label) {
			return f, true
		}
	}
	return Frequency{}, false
}

// MaxTimes devuelve el máximo de franjas para la frecuencia.
// Frecuencias desconocidas (registros legacy) no admiten franjas.
func MaxTimes(frequency string) int {
	f, ok := LookupFrequency(frequency)
	if !ok {
		return 0
	}
	return f.MaxTimes
}

// ParseReminderTime valida "HH:MM" 24h con ceros a la izquierda.
func ParseReminderTime(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("15:04", s)
	if err != nil || t.Format("15:04") != s {
		return 0, 0, fmt.Errorf("reminder time %q must be HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

// reminderHour extrae la hora sin validar estrictamente (fallback del filtro).
func reminderHour(s string) (int, bool) {
	head, _, _ := strings.Cut(strings.TrimSpace(s), ":")
	h, err := strconv.Atoi(head)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}
