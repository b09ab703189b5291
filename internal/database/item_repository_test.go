package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/example/drillbot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestItemRepository(t, openTestDB(t))

	item := models.NewItem("capitals", "France?", "Paris")
	require.NoError(t, repo.Create(ctx, item))
	assert.NotZero(t, item.ID)

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "capitals", got.Deck)
	assert.Equal(t, "Paris", got.Answer)
	assert.Equal(t, -1.0, got.LastInterval)
	assert.Nil(t, got.EaseFactor)
	assert.Nil(t, got.MeanQuality)
	assert.Nil(t, got.DueAt)
	assert.True(t, testNow.Equal(got.CreatedAt))
}

func TestItemRepositoryGetMissing(t *testing.T) {
	repo := newTestItemRepository(t, openTestDB(t))

	_, err := repo.GetByID(context.Background(), 42)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestItemRepositoryUpdateSchedule(t *testing.T) {
	ctx := context.Background()
	repo := newTestItemRepository(t, openTestDB(t))
	item := models.NewItem("capitals", "Spain?", "Madrid")
	require.NoError(t, repo.Create(ctx, item))

	ef, mq, q := 2.6, 5.0, 5
	due := testNow.AddDate(0, 0, 4)
	item.LastInterval, item.Repetitions, item.EaseFactor = 4, 2, &ef
	item.MeanQuality, item.TotalRepeats, item.LastQuality = &mq, 1, &q
	item.DueAt, item.LastReviewedAt = &due, &testNow
	require.NoError(t, repo.UpdateSchedule(ctx, item))

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.State(), got.State())
	require.NotNil(t, got.DueAt)
	assert.True(t, due.Equal(*got.DueAt))
	assert.Equal(t, 5, *got.LastQuality)

	missing := models.NewItem("capitals", "Italy?", "Rome")
	missing.ID = 999
	assert.True(t, errors.Is(repo.UpdateSchedule(ctx, missing), ErrNotFound))
}

func TestItemRepositoryUpsertKeepsSchedule(t *testing.T) {
	ctx := context.Background()
	repo := newTestItemRepository(t, openTestDB(t))
	item := models.NewItem("verbs", "to be", "sein")
	require.NoError(t, repo.Upsert(ctx, item))

	item.TotalRepeats, item.LastInterval = 3, 6
	require.NoError(t, repo.UpdateSchedule(ctx, item))

	again := models.NewItem("verbs", "to be", "sein (irregular)")
	require.NoError(t, repo.Upsert(ctx, again))
	assert.Equal(t, item.ID, again.ID)

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "sein (irregular)", got.Answer)
	assert.Equal(t, 3, got.TotalRepeats)
	assert.Equal(t, 6.0, got.LastInterval)
}

func TestItemRepositoryQueries(t *testing.T) {
	ctx := context.Background()
	repo := newTestItemRepository(t, openTestDB(t))

	past, future := testNow.Add(-time.Hour), testNow.AddDate(0, 0, 3)
	seed := []struct {
		deck, q string
		due     *time.Time
		repeats int
	}{
		{"b-deck", "one", nil, 0},
		{"a-deck", "two", &past, 2},
		{"a-deck", "three", &future, 5},
	}
	for _, s := range seed {
		item := models.NewItem(s.deck, s.q, "x")
		item.DueAt, item.TotalRepeats = s.due, s.repeats
		require.NoError(t, repo.Create(ctx, item))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a-deck", all[0].Deck)

	deck, err := repo.ListByDeck(ctx, "a-deck")
	require.NoError(t, err)
	assert.Len(t, deck, 2)

	due, err := repo.CountDue(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, due)

	decks, err := repo.Decks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-deck", "b-deck"}, decks)

	stats, err := repo.Statistics(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, []models.DeckStatistics{
		{Deck: "a-deck", Items: 2, Due: 1, Unseen: 0, TotalRepeats: 7},
		{Deck: "b-deck", Items: 1, Due: 1, Unseen: 1, TotalRepeats: 0},
	}, stats)
}

func TestItemRepositoryCountDueByCalendarDay(t *testing.T) {
	ctx := context.Background()
	repo := newTestItemRepository(t, openTestDB(t))
	cfg := sr.DefaultConfig()

	laterToday := testNow.Add(5 * time.Hour)
	justAfterMidnight := time.Date(2025, 6, 16, 0, 30, 0, 0, time.UTC)
	for i, due := range []time.Time{laterToday, justAfterMidnight} {
		item := models.NewItem("clock", fmt.Sprintf("q%d", i), "a")
		item.DueAt, item.LastInterval, item.TotalRepeats = &due, 6, 3
		require.NoError(t, repo.Create(ctx, item))
	}

	due, err := repo.CountDue(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, due)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	classified := 0
	for i := range items {
		if cfg.Classify(items[i].State(), items[i].DueAt, testNow).Due {
			classified++
		}
	}
	assert.Equal(t, due, classified)

	stats, err := repo.Statistics(ctx, testNow)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Due)
}
