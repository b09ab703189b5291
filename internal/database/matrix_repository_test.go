package database

import (
	"context"
	"testing"

	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMatrixRepository(openTestDB(t))

	empty, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	m := sr.NewMatrix(
		sr.MatrixEntry{Repetition: 1, EaseFactor: 2.6, OptimalFactor: 4.2},
		sr.MatrixEntry{Repetition: 2, EaseFactor: 2.36, OptimalFactor: 2.418},
	)
	require.NoError(t, repo.Save(ctx, m))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, m.Equal(got))

	// Save replaces, it does not merge.
	smaller := sr.NewMatrix(sr.MatrixEntry{Repetition: 3, EaseFactor: 1.3, OptimalFactor: 1.2})
	require.NoError(t, repo.Save(ctx, smaller))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, smaller.Equal(got))

	require.NoError(t, repo.Save(ctx, sr.Matrix{}))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}
