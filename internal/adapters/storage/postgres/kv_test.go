package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requiere un Postgres real: PILLPAL_TEST_POSTGRES_DSN=postgres://...
func TestKV_Postgres(t *testing.T) {
	dsn := os.Getenv("PILLPAL_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PILLPAL_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	db, err := Open(dsn)
	require.NoError(t, err)

	s, err := NewKV(ctx, db)
	require.NoError(t, err)
	defer s.Close()

	const key = "pillpal_test_medications"
	require.NoError(t, s.Set(ctx, key, "[]"))
	require.NoError(t, s.Set(ctx, key, `[{"id":"m1"}]`))

	v, found, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"m1"}]`, v)

	_, found, err = s.Get(ctx, "pillpal_test_missing")
	require.NoError(t, err)
	assert.False(t, found)
}
