package cron

import (
	"log"

	"liga-api/packages/core/services"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron      *cron.Cron
	lifecycle *services.LifecycleService
}

func NewScheduler(lifecycle *services.LifecycleService) *Scheduler {
	// Create cron with seconds precision and logging
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.VerbosePrintfLogger(log.Default())))

	return &Scheduler{
		cron:      c,
		lifecycle: lifecycle,
	}
}

// Start initializes and starts all scheduled jobs
func (s *Scheduler) Start() error {
	log.Println("Starting cron scheduler...")

	// Sweep expired matches every hour. Reads already close lazily; this is
	// the backstop for quiet leagues nobody is reading.
	_, err := s.cron.AddFunc("0 0 * * * *", s.runCloseSweep)
	if err != nil {
		log.Printf("Error scheduling close sweep job: %v", err)
		return err
	}

	s.cron.Start()
	log.Println("Cron scheduler started successfully")

	return nil
}

// Stop gracefully shuts down the scheduler
func (s *Scheduler) Stop() {
	log.Println("Stopping cron scheduler...")
	s.cron.Stop()
	log.Println("Cron scheduler stopped")
}

// runCloseSweep closes every finished match whose voting window has lapsed,
// across all leagues.
func (s *Scheduler) runCloseSweep() {
	log.Println("Running close sweep job...")

	closed, err := s.lifecycle.CloseExpired(0)
	if err != nil {
		log.Printf("Error during close sweep: %v", err)
		return
	}

	if closed == 0 {
		log.Println("No expired matches to close")
		return
	}

	log.Printf("Close sweep completed: %d matches closed", closed)
}

// RunNow manually triggers the close sweep (useful for testing)
func (s *Scheduler) RunNow() {
	log.Println("Manually triggering close sweep job...")
	s.runCloseSweep()
}
