package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	in := Landing{BodyID: 1, Kind: "rocket", Time: 83, X: 0, Y: 0, VX: 0, VY: -17.4}
	saved, err := s.Insert(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.ID)

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = s.Insert(ctx, Landing{BodyID: 2, Kind: "particle", Time: 2})
	require.NoError(t, err)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "rocket", all[0].Kind)
	assert.Equal(t, "particle", all[1].Kind)
}

func TestStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	_, err := s.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 42), ErrNotFound)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	saved, err := s.Insert(ctx, Landing{BodyID: 7, Kind: "particle", Time: 2})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, saved.ID))

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
