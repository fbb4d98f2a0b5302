package medications

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Input es lo que llega de un formulario (alta o edición).
type Input struct {
	Name         string
	Dosage       string
	Frequency    string
	TimesOfDay   []TimeOfDay
	ReminderTime *string
}

// Normalize valida el input y devuelve el schedule normalizado.
// Errores envuelven ErrInvalidInput.
func (in Input) Normalize() (Input, error) {
	out := Input{
		Name:   strings.TrimSpace(in.Name),
		Dosage: strings.TrimSpace(in.Dosage),
	}
	if out.Name == "" {
		return Input{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if out.Dosage == "" {
		return Input{}, fmt.Errorf("%w: dosage is required", ErrInvalidInput)
	}

	freq, ok := LookupFrequency(in.Frequency)
	if !ok {
		return Input{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, in.Frequency)
	}
	out.Frequency = freq.Label

	for _, t := range in.TimesOfDay {
		if _, ok := ParseTimeOfDay(string(t)); !ok {
			return Input{}, fmt.Errorf("%w: unknown time of day %q", ErrInvalidInput, t)
		}
	}
	out.TimesOfDay = lo.Uniq(lo.Map(in.TimesOfDay, func(t TimeOfDay, _ int) TimeOfDay {
		v, _ := ParseTimeOfDay(string(t))
		return v
	}))
	if len(out.TimesOfDay) > freq.MaxTimes {
		return Input{}, fmt.Errorf("%w: %q allows at most %d times of day, got %d",
			ErrInvalidInput, freq.Label, freq.MaxTimes, len(out.TimesOfDay))
	}

	if in.ReminderTime != nil {
		rt := strings.TrimSpace(*in.ReminderTime)
		if _, _, err := ParseReminderTime(rt); err != nil {
			return Input{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		out.ReminderTime = &rt
	}

	return out, nil
}

// Schedule construye el schedule del input ya normalizado.
func (in Input) Schedule() Schedule {
	return Schedule{
		Frequency:  in.Frequency,
		TimesOfDay: append([]TimeOfDay{}, in.TimesOfDay...),
	}
}

// InputFrom arma un Input a partir de una medicación existente (base para editar).
func InputFrom(m Medication) Input {
	c := m.Clone()
	return Input{
		Name:         c.Name,
		Dosage:       c.Dosage,
		Frequency:    c.Schedule.Frequency,
		TimesOfDay:   c.Schedule.TimesOfDay,
		ReminderTime: c.ReminderTime,
	}
}
