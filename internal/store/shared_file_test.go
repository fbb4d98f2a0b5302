package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"pillpal/internal/adapters/storage/sqlite"
	"pillpal/internal/domain/doses"
	"pillpal/internal/domain/medications"
	"pillpal/internal/domain/tracker"
	"pillpal/internal/platform/logger"
	"pillpal/internal/reminders"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve y la CLI abren el mismo archivo SQLite en procesos distintos.
func openShared(t *testing.T, path string) *tracker.Service {
	t.Helper()
	s, err := sqlite.Open(path, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	svc := tracker.NewService(NewRepository(s, nil))
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestSharedFile_ServeSeesDosesTakenFromCLI(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pillpal.db")

	at := time.Now().Add(time.Minute)
	reminder := at.Format("15:04")

	serve := openShared(t, path)
	m, err := serve.AddMedication(ctx, medications.Input{
		Name:         "Ibuprofen",
		Dosage:       "200mg",
		Frequency:    medications.FrequencyOnceDaily,
		TimesOfDay:   []medications.TimeOfDay{medications.Morning},
		ReminderTime: &reminder,
	})
	require.NoError(t, err)

	cli := openShared(t, path)
	cliDose, err := cli.RecordDose(ctx, m.ID)
	require.NoError(t, err)

	// el tick siguiente ve la toma y suprime el aviso
	meds, history := serve.Snapshot(ctx)
	decisions := reminders.Evaluate(meds, history, at)
	require.Len(t, decisions, 1)
	assert.True(t, decisions[0].Taken)

	// una escritura de serve conserva la dosis de la CLI
	serveDose, err := serve.RecordDose(ctx, m.ID)
	require.NoError(t, err)

	persisted := openShared(t, path).History(ctx, doses.NewestFirst)
	ids := make([]string, 0, len(persisted))
	for _, d := range persisted {
		ids = append(ids, d.ID)
	}
	assert.ElementsMatch(t, []string{cliDose.ID, serveDose.ID}, ids)
}

func TestSharedFile_DeleteFromCLIVisibleToServe(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pillpal.db")

	serve := openShared(t, path)
	m, err := serve.AddMedication(ctx, medications.Input{Name: "Vitamin D", Dosage: "1000 IU", Frequency: medications.FrequencyAsNeeded})
	require.NoError(t, err)

	cli := openShared(t, path)
	require.NoError(t, cli.DeleteMedication(ctx, m.ID))

	_, err = serve.Medication(ctx, m.ID)
	require.ErrorIs(t, err, tracker.ErrNotFound)
	_, err = serve.RecordDose(ctx, m.ID)
	require.ErrorIs(t, err, tracker.ErrNotFound)
}
