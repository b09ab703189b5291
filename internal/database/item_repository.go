package database

import (
	"context"
	"database/sql"
	"time"

	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/example/drillbot/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const itemColumns = `id, deck, question, answer, last_interval, repetitions, ease_factor,
	failures, mean_quality, total_repeats, last_quality, due_at, last_reviewed_at,
	created_at, updated_at`

// ItemRepository handles database operations for items
type ItemRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewItemRepository creates a new repository instance
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db, now: time.Now}
}

// Create inserts a new item and fills in its ID and timestamps
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	now := r.now().UTC()
	item.CreatedAt, item.UpdatedAt = now, now
	query := r.db.Rebind(`
		INSERT INTO items (deck, question, answer, last_interval, repetitions, ease_factor,
			failures, mean_quality, total_repeats, last_quality, due_at, last_reviewed_at,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	err := r.db.QueryRowxContext(ctx, query,
		item.Deck, item.Question, item.Answer,
		item.LastInterval, item.Repetitions, item.EaseFactor,
		item.Failures, item.MeanQuality, item.TotalRepeats, item.LastQuality,
		utc(item.DueAt), utc(item.LastReviewedAt),
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return errors.Wrap(err, "create item")
	}
	return nil
}

// Upsert inserts an item, or updates the answer of the existing item with
// the same deck and question. Scheduling state of existing items is kept.
func (r *ItemRepository) Upsert(ctx context.Context, item *models.Item) error {
	now := r.now().UTC()
	query := r.db.Rebind(`
		INSERT INTO items (deck, question, answer, last_interval, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (deck, question) DO UPDATE SET answer = excluded.answer, updated_at = excluded.updated_at
		RETURNING id`)
	err := r.db.QueryRowxContext(ctx, query,
		item.Deck, item.Question, item.Answer, item.LastInterval, now, now,
	).Scan(&item.ID)
	if err != nil {
		return errors.Wrapf(err, "upsert item %q", item.Question)
	}
	return nil
}

// GetByID returns an item by ID
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	err := r.db.GetContext(ctx, &item, r.db.Rebind("SELECT "+itemColumns+" FROM items WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "item %d", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get item %d", id)
	}
	return &item, nil
}

// List returns every item ordered by deck and ID
func (r *ItemRepository) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.SelectContext(ctx, &items, "SELECT "+itemColumns+" FROM items ORDER BY deck, id"); err != nil {
		return nil, errors.Wrap(err, "list items")
	}
	return items, nil
}

// ListByDeck returns the items of one deck
func (r *ItemRepository) ListByDeck(ctx context.Context, deck string) ([]models.Item, error) {
	var items []models.Item
	query := r.db.Rebind("SELECT " + itemColumns + " FROM items WHERE deck = ? ORDER BY id")
	if err := r.db.SelectContext(ctx, &items, query, deck); err != nil {
		return nil, errors.Wrapf(err, "list deck %q", deck)
	}
	return items, nil
}

// UpdateSchedule writes the scheduling columns of an existing item
func (r *ItemRepository) UpdateSchedule(ctx context.Context, item *models.Item) error {
	item.UpdatedAt = r.now().UTC()
	query := r.db.Rebind(`
		UPDATE items SET
			last_interval = ?,
			repetitions = ?,
			ease_factor = ?,
			failures = ?,
			mean_quality = ?,
			total_repeats = ?,
			last_quality = ?,
			due_at = ?,
			last_reviewed_at = ?,
			updated_at = ?
		WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query,
		item.LastInterval, item.Repetitions, item.EaseFactor,
		item.Failures, item.MeanQuality, item.TotalRepeats, item.LastQuality,
		utc(item.DueAt), utc(item.LastReviewedAt), item.UpdatedAt,
		item.ID,
	)
	if err != nil {
		return errors.Wrapf(err, "update item %d", item.ID)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "get rows affected")
	}
	if rows == 0 {
		return errors.Wrapf(ErrNotFound, "item %d", item.ID)
	}
	return nil
}

// CountDue counts items never scheduled or due on or before now's UTC day,
// the same rule the drill queue classifies by
func (r *ItemRepository) CountDue(ctx context.Context, now time.Time) (int, error) {
	var count int
	query := r.db.Rebind("SELECT COUNT(*) FROM items WHERE due_at IS NULL OR due_at < ?")
	if err := r.db.GetContext(ctx, &count, query, sr.EndOfDay(now)); err != nil {
		return 0, errors.Wrap(err, "count due items")
	}
	return count, nil
}

// Decks returns the distinct deck names
func (r *ItemRepository) Decks(ctx context.Context) ([]string, error) {
	var decks []string
	if err := r.db.SelectContext(ctx, &decks, "SELECT DISTINCT deck FROM items ORDER BY deck"); err != nil {
		return nil, errors.Wrap(err, "list decks")
	}
	return decks, nil
}

// Statistics summarises every deck at the given time
func (r *ItemRepository) Statistics(ctx context.Context, now time.Time) ([]models.DeckStatistics, error) {
	var stats []models.DeckStatistics
	query := r.db.Rebind(`
		SELECT deck,
			COUNT(*) AS items,
			SUM(CASE WHEN due_at IS NULL OR due_at < ? THEN 1 ELSE 0 END) AS due,
			SUM(CASE WHEN total_repeats = 0 THEN 1 ELSE 0 END) AS unseen,
			SUM(total_repeats) AS total_repeats
		FROM items
		GROUP BY deck
		ORDER BY deck`)
	if err := r.db.SelectContext(ctx, &stats, query, sr.EndOfDay(now)); err != nil {
		return nil, errors.Wrap(err, "get deck statistics")
	}
	return stats, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
