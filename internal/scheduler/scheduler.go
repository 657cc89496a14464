package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the update job on a cron schedule.
type Scheduler struct {
	Cron *cron.Cron
	Job  func()
}

// NewScheduler creates a scheduler around the given update job.
func NewScheduler(job func()) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		Job:  job,
	}
}

// Register registers the update job under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.Job); err != nil {
		return fmt.Errorf("register update task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the update job immediately (for RUN_ON_START / RUN_ONCE).
func (s *Scheduler) RunNow() {
	s.Job()
}
