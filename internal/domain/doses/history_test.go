package doses

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSorted(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	history := []Dose{
		{ID: "b", Timestamp: base.Add(time.Hour)},
		{ID: "a", Timestamp: base},
		{ID: "c", Timestamp: base.Add(2 * time.Hour)},
	}

	desc := Sorted(history, NewestFirst)
	assert.Equal(t, []string{"c", "b", "a"}, ids(desc))

	asc := Sorted(history, OldestFirst)
	assert.Equal(t, []string{"a", "b", "c"}, ids(asc))

	// el original queda intacto
	assert.Equal(t, []string{"b", "a", "c"}, ids(history))
}

func TestTakenSince_IsStrict(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	history := []Dose{{MedicationID: "m1", Timestamp: at}}

	assert.False(t, TakenSince(history, "m1", at))
	assert.True(t, TakenSince(history, "m1", at.Add(-time.Nanosecond)))
	assert.False(t, TakenSince(history, "m2", at.Add(-time.Hour)))
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, NewestFirst, o)

	o, err = ParseOrder("ASC")
	require.NoError(t, err)
	assert.Equal(t, OldestFirst, o)

	_, err = ParseOrder("sideways")
	require.Error(t, err)
}

func ids(ds []Dose) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}
