// Package scheduler wires periodic jobs. Currently the only job is summary
// snapshot materialization.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/mheijden/portfolio-tracker/internal/service"
)

// Scheduler runs background jobs on cron schedules.
type Scheduler struct {
	cron *cron.Cron
}

// New creates a Scheduler that captures summary snapshots for all portfolios
// on the given cron spec (standard 5-field format).
func New(cronSpec string, snapshots *service.SnapshotService) (*Scheduler, error) {
	c := cron.New()

	_, err := c.AddFunc(cronSpec, func() {
		if err := snapshots.CaptureAll(context.Background()); err != nil {
			log.Printf("scheduled snapshot run failed: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot cron spec %q: %w", cronSpec, err)
	}

	return &Scheduler{cron: c}, nil
}

// Start begins running scheduled jobs in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
