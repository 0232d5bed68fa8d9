package scheduler

//go:generate go run go.uber.org/mock/mockgen -source=./scheduler.go -destination=./mocks/scheduler_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"spacy/infras/otel"
	"spacy/shared/constant"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

type Task func(ctx context.Context) error

type Scheduler interface {
	// Every registers task to run on a fixed interval. Overlapping runs are skipped.
	Every(name string, interval time.Duration, task Task) error
	Start()
	Shutdown() error
}

type schedulerImpl struct {
	inner gocron.Scheduler
	otel  otel.Otel
}

func New(otel otel.Otel) (Scheduler, error) {
	inner, err := gocron.NewScheduler()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize scheduler")

		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	return &schedulerImpl{inner: inner, otel: otel}, nil
}

func (s *schedulerImpl) Every(name string, interval time.Duration, task Task) error {
	job, err := s.inner.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run, name, task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Error().Err(err).Str("job", name).Msg("failed to register job")

		return fmt.Errorf("failed to register job %s: %w", name, err)
	}

	log.Info().Str("job", name).Str("id", job.ID().String()).Dur("interval", interval).Msg("Registered job")

	return nil
}

func (s *schedulerImpl) Start() {
	s.inner.Start()

	log.Info().Int("jobs", len(s.inner.Jobs())).Msg("Scheduler started")
}

func (s *schedulerImpl) Shutdown() error {
	if err := s.inner.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown scheduler: %w", err)
	}

	return nil
}

func (s *schedulerImpl) run(name string, task Task) {
	ctx, scope := s.otel.NewScope(context.Background(), constant.OtelSchedulerScopeName, constant.OtelSchedulerScopeName+"."+name)
	defer scope.End()

	if err := task(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("job", name).Msg("job failed")
	}
}
