package medications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestFilter_TimesOfDay(t *testing.T) {
	evening := Medication{ID: "m1", Schedule: Schedule{Frequency: FrequencyOnceDaily, TimesOfDay: []TimeOfDay{Evening}}}

	assert.False(t, Filter(Morning).Matches(evening))
	assert.True(t, Filter(Evening).Matches(evening))
	assert.True(t, FilterAll.Matches(evening))
}

func TestFilter_FallsBackToReminderHour(t *testing.T) {
	cases := []struct {
		reminder string
		want     TimeOfDay
	}{
		{"00:00", Morning},
		{"11:59", Morning},
		{"12:00", Afternoon},
		{"16:59", Afternoon},
		{"17:00", Evening},
		{"23:30", Evening},
	}
	for _, tc := range cases {
		t.Run(tc.reminder, func(t *testing.T) {
			m := Medication{Schedule: Schedule{Frequency: "legacy"}, ReminderTime: strPtr(tc.reminder)}
			for _, tod := range TimesOfDay {
				assert.Equal(t, tod == tc.want, Filter(tod).Matches(m), "filter %s", tod)
			}
		})
	}
}

func TestFilter_NoTimesNoReminderOnlyAll(t *testing.T) {
	m := Medication{Schedule: Schedule{Frequency: FrequencyAsNeeded}}

	assert.True(t, FilterAll.Matches(m))
	for _, tod := range TimesOfDay {
		assert.False(t, Filter(tod).Matches(m))
	}
}

func TestFilter_ApplyKeepsOrder(t *testing.T) {
	meds := []Medication{
		{ID: "a", Schedule: Schedule{TimesOfDay: []TimeOfDay{Morning, Evening}}},
		{ID: "b", Schedule: Schedule{TimesOfDay: []TimeOfDay{Afternoon}}},
		{ID: "c", ReminderTime: strPtr("08:15")},
	}

	got := Filter(Morning).Apply(meds)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	assert.Len(t, FilterAll.Apply(meds), 3)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseFilter("evening")
	require.NoError(t, err)
	assert.Equal(t, Filter(Evening), f)

	_, err = ParseFilter("Night")
	require.Error(t, err)
}
