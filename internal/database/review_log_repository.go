package database

import (
	"context"

	"github.com/example/drillbot/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// ReviewLogRepository stores the review history
type ReviewLogRepository struct {
	db *sqlx.DB
}

// NewReviewLogRepository creates a new repository instance
func NewReviewLogRepository(db *sqlx.DB) *ReviewLogRepository {
	return &ReviewLogRepository{db: db}
}

// Create inserts a review log and fills in its ID
func (r *ReviewLogRepository) Create(ctx context.Context, log *models.ReviewLog) error {
	log.ReviewedAt = log.ReviewedAt.UTC()
	query := r.db.Rebind(`
		INSERT INTO review_logs (item_id, algorithm, quality, delta_days,
			interval_before, interval_after, ease_factor, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)
	err := r.db.QueryRowxContext(ctx, query,
		log.ItemID, log.Algorithm, log.Quality, log.DeltaDays,
		log.IntervalBefore, log.IntervalAfter, log.EaseFactor, log.ReviewedAt,
	).Scan(&log.ID)
	if err != nil {
		return errors.Wrapf(err, "create review log for item %d", log.ItemID)
	}
	return nil
}

// ListByItem returns the reviews of one item, oldest first
func (r *ReviewLogRepository) ListByItem(ctx context.Context, itemID int64) ([]models.ReviewLog, error) {
	var logs []models.ReviewLog
	query := r.db.Rebind(`
		SELECT id, item_id, algorithm, quality, delta_days, interval_before,
			interval_after, ease_factor, reviewed_at
		FROM review_logs WHERE item_id = ? ORDER BY reviewed_at, id`)
	if err := r.db.SelectContext(ctx, &logs, query, itemID); err != nil {
		return nil, errors.Wrapf(err, "list review logs for item %d", itemID)
	}
	return logs, nil
}
