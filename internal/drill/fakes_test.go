package drill

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/example/drillbot/pkg/models"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

var (
	errNotFound = errors.New("not found")
	now         = time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
)

type fakeStore struct {
	items     map[int64]models.Item
	matrix    sr.Matrix
	saves     int
	logs      []models.ReviewLog
	updateErr error
}

func newFakeStore(items ...*models.Item) *fakeStore {
	s := &fakeStore{items: make(map[int64]models.Item)}
	for i, item := range items {
		if item.ID == 0 {
			item.ID = int64(i + 1)
		}
		s.items[item.ID] = *item
	}
	return s
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*models.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, errNotFound
	}
	return &item, nil
}

func (s *fakeStore) List(context.Context) ([]models.Item, error) {
	out := make([]models.Item, 0, len(s.items))
	for id := int64(1); len(out) < len(s.items); id++ {
		if item, ok := s.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateSchedule(_ context.Context, item *models.Item) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.items[item.ID] = *item
	return nil
}

func (s *fakeStore) Load(context.Context) (sr.Matrix, error) { return s.matrix, nil }

func (s *fakeStore) Save(_ context.Context, m sr.Matrix) error {
	s.matrix = m
	s.saves++
	return nil
}

func (s *fakeStore) Create(_ context.Context, log *models.ReviewLog) error {
	log.ID = int64(len(s.logs) + 1)
	s.logs = append(s.logs, *log)
	return nil
}

func newTestCalculator(t *testing.T) *sr.Calculator {
	t.Helper()
	calc, err := sr.NewCalculator(sr.DefaultConfig(), sr.WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	return calc
}

func newTestScheduler(t *testing.T, alg sr.Algorithm, store *fakeStore) (*Scheduler, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewScheduler(newTestCalculator(t), alg, store, store, store, logger), hook
}
