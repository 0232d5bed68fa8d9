package model_test

import (
	"testing"
	"time"

	"spacy/internal/domains/reservation/model"

	"github.com/stretchr/testify/assert"
)

var base = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from model.Status
		to   model.Status
		want bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCheckedIn, false},
		{model.StatusPending, model.StatusCheckedOut, false},
		{model.StatusConfirmed, model.StatusCheckedIn, true},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusCompleted, true},
		{model.StatusConfirmed, model.StatusCheckedOut, false},
		{model.StatusCheckedIn, model.StatusCheckedOut, true},
		{model.StatusCheckedIn, model.StatusCancelled, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
		{model.StatusCheckedOut, model.StatusCheckedIn, false},
		{model.StatusCompleted, model.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, model.StatusCancelled.Terminal())
	assert.True(t, model.StatusCheckedOut.Terminal())
	assert.True(t, model.StatusCompleted.Terminal())
	assert.False(t, model.StatusPending.Terminal())
	assert.False(t, model.StatusConfirmed.Terminal())
	assert.False(t, model.StatusCheckedIn.Terminal())
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		s2, e2 time.Time
		want   bool
	}{
		{name: "partial overlap", s2: base.Add(30 * time.Minute), e2: base.Add(90 * time.Minute), want: true},
		{name: "contained", s2: base.Add(10 * time.Minute), e2: base.Add(20 * time.Minute), want: true},
		{name: "touching end is free", s2: base.Add(time.Hour), e2: base.Add(2 * time.Hour), want: false},
		{name: "touching start is free", s2: base.Add(-time.Hour), e2: base, want: false},
		{name: "disjoint", s2: base.Add(3 * time.Hour), e2: base.Add(4 * time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Overlaps(base, base.Add(time.Hour), tt.s2, tt.e2))
			assert.Equal(t, tt.want, model.Overlaps(tt.s2, tt.e2, base, base.Add(time.Hour)))
		})
	}
}

func TestCalculateAmount(t *testing.T) {
	nine := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(200), model.CalculateAmount(100, nine, nine.Add(2*time.Hour)))
	assert.Equal(t, int64(150), model.CalculateAmount(100, nine, nine.Add(90*time.Minute)))
	assert.Equal(t, int64(42), model.CalculateAmount(125, nine, nine.Add(20*time.Minute)))
}

func TestReservation_CheckCancel(t *testing.T) {
	tests := []struct {
		name    string
		status  model.Status
		now     time.Time
		wantErr string
	}{
		{name: "2h01m before start", status: model.StatusConfirmed, now: base.Add(-2*time.Hour - time.Minute)},
		{name: "exactly 2h before start", status: model.StatusPending, now: base.Add(-2 * time.Hour)},
		{name: "1h59m before start", status: model.StatusConfirmed, now: base.Add(-time.Hour - 59*time.Minute), wantErr: "Reservation can only be cancelled at least 2 hours before start time"},
		{name: "checked in", status: model.StatusCheckedIn, now: base.Add(-24 * time.Hour), wantErr: "This reservation cannot be cancelled"},
		{name: "already cancelled", status: model.StatusCancelled, now: base.Add(-24 * time.Hour), wantErr: "This reservation cannot be cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.Reservation{Status: tt.status, StartTime: base}.CheckCancel(tt.now)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestReservation_CheckCheckIn(t *testing.T) {
	tests := []struct {
		name    string
		status  model.Status
		now     time.Time
		wantErr string
	}{
		{name: "15 minutes early", status: model.StatusConfirmed, now: base.Add(-15 * time.Minute)},
		{name: "after start", status: model.StatusConfirmed, now: base.Add(30 * time.Minute)},
		{name: "16 minutes early", status: model.StatusConfirmed, now: base.Add(-16 * time.Minute), wantErr: "Check-in is only allowed 15 minutes before the reservation time"},
		{name: "pending", status: model.StatusPending, now: base, wantErr: "Only confirmed reservations can be checked in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.Reservation{Status: tt.status, StartTime: base}.CheckCheckIn(tt.now)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestReservation_CheckCheckOut(t *testing.T) {
	assert.NoError(t, model.Reservation{Status: model.StatusCheckedIn}.CheckCheckOut())
	assert.EqualError(t, model.Reservation{Status: model.StatusConfirmed}.CheckCheckOut(), "Only checked-in reservations can be checked out")
}
