package doses

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Order del historial.
type Order string

const (
	NewestFirst Order = "desc"
	OldestFirst Order = "asc"
)

func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "newest":
		return NewestFirst, nil
	case "asc", "oldest":
		return OldestFirst, nil
	default:
		return "", fmt.Errorf("unknown order %q", s)
	}
}

// Sorted devuelve una copia ordenada por timestamp; no toca el slice original.
func Sorted(history []Dose, order Order) []Dose {
	out := append([]Dose(nil), history...)
	sort.SliceStable(out, func(i, j int) bool {
		if order == OldestFirst {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// TakenSince indica si hay alguna dosis de medicationID estrictamente posterior a since.
func TakenSince(history []Dose, medicationID string, since time.Time) bool {
	for _, d := range history {
		if d.MedicationID == medicationID && d.Timestamp.After(since) {
			return true
		}
	}
	return false
}

// FormatTimestamp: "January 2, 2006 at 15:04" en hora local.
func FormatTimestamp(t time.Time) string {
	lt := t.Local()
	return lt.Format("January 2, 2006") + " at " + lt.Format("15:04")
}
