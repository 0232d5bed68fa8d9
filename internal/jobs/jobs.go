package jobs

import (
	"context"
	"fmt"
	"time"

	"spacy/config"
	"spacy/infras/scheduler"
	reservationService "spacy/internal/domains/reservation/service"
	"spacy/shared/timezone"

	"github.com/rs/zerolog/log"
)

const JobCompleteElapsed = "complete-elapsed-reservations"

type Jobs struct {
	scheduler      scheduler.Scheduler
	reservationSvc reservationService.Reservation
	config         *config.Config
}

func New(scheduler scheduler.Scheduler, reservationSvc reservationService.Reservation, config *config.Config) *Jobs {
	return &Jobs{
		scheduler:      scheduler,
		reservationSvc: reservationSvc,
		config:         config,
	}
}

// Start registers the housekeeping jobs and starts the scheduler.
// It does nothing when the scheduler is disabled.
func (j *Jobs) Start() error {
	if !j.config.Scheduler.Enable {
		log.Info().Msg("Scheduler disabled")

		return nil
	}

	interval := time.Duration(j.config.Scheduler.CompleteIntervalSeconds) * time.Second

	if err := j.scheduler.Every(JobCompleteElapsed, interval, j.CompleteElapsed); err != nil {
		return fmt.Errorf("failed to start jobs: %w", err)
	}

	j.scheduler.Start()

	return nil
}

func (j *Jobs) Stop() {
	if !j.config.Scheduler.Enable {
		return
	}

	if err := j.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("failed to stop scheduler")
	}
}

// CompleteElapsed moves confirmed reservations whose end time has passed to completed.
func (j *Jobs) CompleteElapsed(ctx context.Context) error {
	completed, err := j.reservationSvc.CompleteElapsed(ctx, timezone.Now())
	if err != nil {
		return fmt.Errorf("failed to complete elapsed reservations: %w", err)
	}

	if completed > 0 {
		log.Info().Int64("count", completed).Msg("Completed elapsed reservations")
	}

	return nil
}
