package drill

import (
	"context"
	"fmt"
	"sort"
	"time"

	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/example/drillbot/pkg/models"
	"github.com/samber/lo"
)

// Entry is a classified item.
type Entry struct {
	Item  models.Item
	Class sr.Classification
}

// Queue holds the due items of a session, grouped in presentation order.
type Queue struct {
	Failed  []Entry
	Overdue []Entry // most overdue first
	Young   []Entry
	Old     []Entry
	New     []Entry
	// Skipped holds due leeches left out by the skip leech method.
	Skipped []Entry
}

// Items returns up to limit entries: failed, overdue, young, old, then new.
// A limit of zero or less returns everything.
func (q *Queue) Items(limit int) []Entry {
	all := lo.Flatten([][]Entry{q.Failed, q.Overdue, q.Young, q.Old, q.New})
	if limit > 0 && len(all) > limit {
		return all[:limit]
	}
	return all
}

// Len counts the entries that would be presented.
func (q *Queue) Len() int {
	return len(q.Failed) + len(q.Overdue) + len(q.Young) + len(q.Old) + len(q.New)
}

// Queue classifies every stored item at now and groups the due ones.
func (s *Scheduler) Queue(ctx context.Context, now time.Time) (*Queue, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return BuildQueue(s.calc.Config(), items, now), nil
}

// BuildQueue groups the due items under cfg. Each item lands in exactly one
// group; failure and overdue take precedence over maturity.
func BuildQueue(cfg sr.Config, items []models.Item, now time.Time) *Queue {
	entries := lo.FilterMap(items, func(item models.Item, _ int) (Entry, bool) {
		class := cfg.Classify(item.State(), item.DueAt, now)
		return Entry{Item: item, Class: class}, class.Due
	})

	q := &Queue{}
	if cfg.LeechMethod == sr.LeechSkip {
		q.Skipped = lo.Filter(entries, func(e Entry, _ int) bool { return e.Class.Leech })
		entries = lo.Reject(entries, func(e Entry, _ int) bool { return e.Class.Leech })
	}
	for _, e := range entries {
		switch {
		case e.Class.Failed:
			q.Failed = append(q.Failed, e)
		case e.Class.Overdue:
			q.Overdue = append(q.Overdue, e)
		case e.Class.Maturity == sr.MaturityNew:
			q.New = append(q.New, e)
		case e.Class.Maturity == sr.MaturityYoung:
			q.Young = append(q.Young, e)
		default:
			q.Old = append(q.Old, e)
		}
	}
	sort.SliceStable(q.Overdue, func(i, j int) bool {
		return q.Overdue[i].Class.DaysOverdue > q.Overdue[j].Class.DaysOverdue
	})
	return q
}
