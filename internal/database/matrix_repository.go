package database

import (
	"context"

	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// MatrixRepository persists the SM5 optimal-factor matrix
type MatrixRepository struct {
	db *sqlx.DB
}

// NewMatrixRepository creates a new repository instance
func NewMatrixRepository(db *sqlx.DB) *MatrixRepository {
	return &MatrixRepository{db: db}
}

// Load reads the stored matrix. An empty table yields an empty matrix.
func (r *MatrixRepository) Load(ctx context.Context) (sr.Matrix, error) {
	var entries []sr.MatrixEntry
	err := r.db.SelectContext(ctx, &entries,
		"SELECT repetition, ease_factor, optimal_factor FROM of_matrix ORDER BY repetition, ease_factor")
	if err != nil {
		return sr.Matrix{}, errors.Wrap(err, "load matrix")
	}
	return sr.NewMatrix(entries...), nil
}

// Save replaces the stored matrix with m in a single transaction.
func (r *MatrixRepository) Save(ctx context.Context, m sr.Matrix) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin matrix transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM of_matrix"); err != nil {
		return errors.Wrap(err, "clear matrix")
	}
	if entries := m.Entries(); len(entries) > 0 {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO of_matrix (repetition, ease_factor, optimal_factor)
			VALUES (:repetition, :ease_factor, :optimal_factor)`, entries)
		if err != nil {
			return errors.Wrap(err, "insert matrix entries")
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit matrix")
	}
	return nil
}
