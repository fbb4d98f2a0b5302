package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKV_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewKV()

	_, found, err := s.Get(ctx, "medications")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "medications", "[]"))
	require.NoError(t, s.Set(ctx, "medications", `[{"id":"1"}]`))

	v, found, err := s.Get(ctx, "medications")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"1"}]`, v)

	assert.ErrorIs(t, s.Set(ctx, " ", "x"), ErrEmptyKey)
	require.NoError(t, s.Close())
}
