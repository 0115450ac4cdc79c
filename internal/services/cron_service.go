package services

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// CronService manages scheduled background jobs
type CronService struct {
	cron          *cron.Cron
	expirationSvc *ExpirationService
	sweepSpec     string
}

// NewCronService creates a new CronService
func NewCronService(expirationSvc *ExpirationService, sweepSpec string) *CronService {
	// Cron with seconds precision, format: second minute hour day month weekday
	c := cron.New(cron.WithSeconds())

	return &CronService{
		cron:          c,
		expirationSvc: expirationSvc,
		sweepSpec:     sweepSpec,
	}
}

// Start starts all cron jobs
func (s *CronService) Start() error {
	log.Println("Starting cron service...")

	_, err := s.cron.AddFunc(s.sweepSpec, s.expirationSvc.Sweep)
	if err != nil {
		return fmt.Errorf("failed to schedule pending-payment expiration job: %w", err)
	}
	log.Printf("✓ Scheduled: pending-payment expiration sweep (%s)", s.sweepSpec)

	s.cron.Start()
	log.Println("✓ Cron service started successfully")

	return nil
}

// Stop stops all cron jobs and waits for running jobs to finish
func (s *CronService) Stop() {
	log.Println("Stopping cron service...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("✓ Cron service stopped")
}
