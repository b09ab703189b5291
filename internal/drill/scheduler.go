// Package drill runs review sessions: it feeds graded reviews through the
// interval calculator, persists the results and keeps the SM5 matrix.
package drill

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/example/drillbot/pkg/models"
	"github.com/sirupsen/logrus"
)

// ItemStore is the item persistence used by the scheduler.
type ItemStore interface {
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	UpdateSchedule(ctx context.Context, item *models.Item) error
}

// MatrixStore persists the optimal-factor matrix.
type MatrixStore interface {
	Load(ctx context.Context) (sr.Matrix, error)
	Save(ctx context.Context, m sr.Matrix) error
}

// ReviewLogStore records review history.
type ReviewLogStore interface {
	Create(ctx context.Context, log *models.ReviewLog) error
}

// Scheduler owns the canonical matrix and serialises every review through
// it. All methods are safe for concurrent use.
type Scheduler struct {
	calc     *sr.Calculator
	alg      sr.Algorithm
	items    ItemStore
	matrices MatrixStore
	logs     ReviewLogStore
	log      *logrus.Entry

	mu     sync.Mutex
	matrix sr.Matrix
	dirty  bool
}

// NewScheduler wires a scheduler. Call Load before the first review.
func NewScheduler(calc *sr.Calculator, alg sr.Algorithm, items ItemStore, matrices MatrixStore, logs ReviewLogStore, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		calc:     calc,
		alg:      alg,
		items:    items,
		matrices: matrices,
		logs:     logs,
		log:      logger.WithField("component", "drill"),
	}
}

// Algorithm returns the algorithm reviews are scheduled with.
func (s *Scheduler) Algorithm() sr.Algorithm {
	return s.alg
}

// Config returns the scheduling configuration.
func (s *Scheduler) Config() sr.Config {
	return s.calc.Config()
}

// Load replaces the in-memory matrix with the persisted one.
func (s *Scheduler) Load(ctx context.Context) error {
	m, err := s.matrices.Load(ctx)
	if err != nil {
		return fmt.Errorf("load matrix: %w", err)
	}
	s.mu.Lock()
	s.matrix, s.dirty = m, false
	s.mu.Unlock()
	s.log.WithField("entries", m.Len()).Debug("matrix loaded")
	return nil
}

// Result describes one applied review.
type Result struct {
	Item      *models.Item
	Before    sr.State
	DeltaDays float64
	Leech     bool
}

// Review grades item itemID at now and persists the new schedule.
func (s *Scheduler) Review(ctx context.Context, itemID int64, q sr.QualityResponse, now time.Time) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	before := item.State()
	delta := DeltaDays(item.DueAt, now)

	next, matrix, err := s.calc.Next(s.alg, before, sr.Review{Quality: q, DeltaDays: delta}, s.matrix)
	if err != nil {
		return nil, fmt.Errorf("schedule item %d: %w", itemID, err)
	}

	quality := int(q)
	item.ApplyState(next)
	item.LastQuality = &quality
	item.LastReviewedAt = &now
	due := DueDate(now, next.LastInterval)
	item.DueAt = &due
	if err := s.items.UpdateSchedule(ctx, item); err != nil {
		return nil, fmt.Errorf("save item %d: %w", itemID, err)
	}
	// The matrix only advances once the item that produced it is stored.
	if s.alg == sr.SM5 {
		s.matrix, s.dirty = matrix, true
	}

	entry := &models.ReviewLog{
		ItemID:         item.ID,
		Algorithm:      s.alg.String(),
		Quality:        quality,
		DeltaDays:      delta,
		IntervalBefore: before.LastInterval,
		IntervalAfter:  next.LastInterval,
		EaseFactor:     next.EaseFactor,
		ReviewedAt:     now,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("log review of item %d: %w", itemID, err)
	}

	leech := s.calc.Config().IsLeech(next)
	fields := logrus.Fields{"item": item.ID, "quality": quality, "interval": next.LastInterval}
	if leech {
		s.log.WithFields(fields).Warn("item is a leech")
	} else {
		s.log.WithFields(fields).Debug("item reviewed")
	}
	return &Result{Item: item, Before: before, DeltaDays: delta, Leech: leech}, nil
}

// Preview returns the state each grade would produce for item, without
// touching the matrix or the store.
func (s *Scheduler) Preview(item *models.Item, now time.Time) (map[sr.QualityResponse]sr.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delta := DeltaDays(item.DueAt, now)
	out := make(map[sr.QualityResponse]sr.State, 6)
	for q := sr.QualityBlackout; q <= sr.QualityPerfect; q++ {
		next, _, err := s.calc.Next(s.alg, item.State(), sr.Review{Quality: q, DeltaDays: delta}, s.matrix)
		if err != nil {
			return nil, err
		}
		out[q] = next
	}
	return out, nil
}

// Flush persists the matrix if reviews changed it since the last flush.
func (s *Scheduler) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	if err := s.matrices.Save(ctx, s.matrix); err != nil {
		return fmt.Errorf("save matrix: %w", err)
	}
	s.dirty = false
	s.log.WithField("entries", s.matrix.Len()).Info("matrix checkpoint saved")
	return nil
}

// Matrix returns the current matrix snapshot.
func (s *Scheduler) Matrix() sr.Matrix {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matrix
}

// DeltaDays is how many calendar days late (positive) or early (negative)
// a review at now is. Unscheduled items are never late.
func DeltaDays(due *time.Time, now time.Time) float64 {
	if due == nil {
		return 0
	}
	return float64(sr.DaysBetween(*due, now))
}

// DueDate schedules the next review interval days after now. Failed items
// (interval <= 0) are due immediately.
func DueDate(now time.Time, interval float64) time.Time {
	if interval <= 0 {
		return now
	}
	return now.AddDate(0, 0, int(math.Round(interval)))
}
