package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/example/drillbot/internal/config"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// Notifier sends review reminders
type Notifier interface {
	SendReminder(ctx context.Context, due int) error
}

// DueCounter counts the items waiting for review
type DueCounter interface {
	CountDue(ctx context.Context, now time.Time) (int, error)
}

// Checkpointer persists in-memory scheduling state
type Checkpointer interface {
	Flush(ctx context.Context) error
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	cfg       config.SchedulerConfig
	loc       *time.Location
	notifier  Notifier
	items     DueCounter
	drill     Checkpointer
	log       *logrus.Entry
	now       func() time.Time
}

// New creates a new scheduler instance
func New(cfg config.SchedulerConfig, notifier Notifier, items DueCounter, drill Checkpointer, logger *logrus.Logger) (*Scheduler, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if cfg.NotificationStartHour < 0 || cfg.NotificationEndHour > 23 || cfg.NotificationStartHour > cfg.NotificationEndHour {
		return nil, fmt.Errorf("invalid notification hours %d-%d", cfg.NotificationStartHour, cfg.NotificationEndHour)
	}
	if cfg.CheckpointInterval <= 0 {
		return nil, fmt.Errorf("checkpoint interval must be positive, got %s", cfg.CheckpointInterval)
	}
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		cfg:       cfg,
		loc:       loc,
		notifier:  notifier,
		items:     items,
		drill:     drill,
		log:       logger.WithField("component", "scheduler"),
		now:       time.Now,
	}, nil
}

// Start registers the jobs and runs them in the background until Stop.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.scheduler.Every(1).Hour().Do(func() {
		if err := s.CheckReminders(ctx); err != nil {
			s.log.WithError(err).Error("reminder check failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	if _, err := s.scheduler.Every(s.cfg.CheckpointInterval).WaitForSchedule().Do(func() {
		if err := s.Checkpoint(ctx); err != nil {
			s.log.WithError(err).Error("matrix checkpoint failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule checkpoint: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks and writes a final checkpoint.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.scheduler.Stop()
	return s.Checkpoint(ctx)
}

// CheckReminders sends a reminder when items are due and the current hour
// lies within the notification window.
func (s *Scheduler) CheckReminders(ctx context.Context) error {
	now := s.now().In(s.loc)
	if hour := now.Hour(); hour < s.cfg.NotificationStartHour || hour > s.cfg.NotificationEndHour {
		s.log.Debugf("Current hour %d is outside notification hours (%d-%d), skipping reminders",
			hour, s.cfg.NotificationStartHour, s.cfg.NotificationEndHour)
		return nil
	}

	due, err := s.items.CountDue(ctx, now)
	if err != nil {
		return fmt.Errorf("count due items: %w", err)
	}
	if due == 0 {
		return nil
	}
	if err := s.notifier.SendReminder(ctx, due); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}
	s.log.WithField("due", due).Info("reminder sent")
	return nil
}

// Checkpoint flushes the drill state.
func (s *Scheduler) Checkpoint(ctx context.Context) error {
	return s.drill.Flush(ctx)
}
