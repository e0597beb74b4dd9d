// Package scheduler runs the in-season jobs: periodic rating recomputes and
// bet grading sweeps.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/service"
)

// Scheduler manages recurring model maintenance jobs
type Scheduler struct {
	cron      *cron.Cron
	svc       *service.ModelService
	logger    *logrus.Logger
	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler
func NewScheduler(svc *service.ModelService, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		svc:    svc,
		logger: logger,
		jobIDs: make([]cron.EntryID, 0),
	}
}

// ScheduleFromConfig registers the configured jobs for one season
func (s *Scheduler) ScheduleFromConfig(cfg config.SchedulerConfig, season int) error {
	if err := s.ScheduleRatingRecompute(cfg.RatingsCron, season); err != nil {
		return err
	}
	return s.ScheduleBetGrading(cfg.GradingCron)
}

// ScheduleRatingRecompute schedules the full-season rating recompute.
// Weekly during the season is the expected cadence: ratings only move when
// new stat rows land.
func (s *Scheduler) ScheduleRatingRecompute(cronExpression string, season int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		ratings, err := s.svc.ComputeRatings(ctx, season)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled rating recompute failed")
			return
		}
		s.logger.WithFields(logrus.Fields{
			"season": season,
			"teams":  len(ratings),
		}).Info("Scheduled rating recompute complete")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add rating recompute job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled rating recompute")

	return nil
}

// ScheduleBetGrading schedules the pending-bet grading sweep
func (s *Scheduler) ScheduleBetGrading(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		graded, err := s.svc.GradePendingBets(ctx)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled bet grading failed")
			return
		}
		if graded > 0 {
			s.logger.WithField("graded", graded).Info("Scheduled bet grading complete")
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add bet grading job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled bet grading")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the time of the next scheduled job run
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}

	return nextRun
}
