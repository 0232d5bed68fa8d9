package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"spacy/infras/otel/mocks"
	"spacy/infras/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_Every(t *testing.T) {
	s, err := scheduler.New(mocks.NewOtel())
	require.NoError(t, err)

	var ok, failed atomic.Int32

	require.NoError(t, s.Every("tick", 20*time.Millisecond, func(ctx context.Context) error {
		assert.NotNil(t, ctx)
		ok.Add(1)

		return nil
	}))
	require.NoError(t, s.Every("broken", 20*time.Millisecond, func(context.Context) error {
		failed.Add(1)

		return errors.New("boom")
	}))

	s.Start()

	assert.Eventually(t, func() bool { return ok.Load() >= 2 && failed.Load() >= 2 }, time.Second, 10*time.Millisecond)
	assert.NoError(t, s.Shutdown())
}

func TestScheduler_EveryInvalidInterval(t *testing.T) {
	s, err := scheduler.New(mocks.NewOtel())
	require.NoError(t, err)

	err = s.Every("never", 0, func(context.Context) error { return nil })

	assert.Error(t, err)

	s.Start()
	assert.NoError(t, s.Shutdown())
}
