package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"spacy/config"
	"spacy/infras/mailer"
	mailerMocks "spacy/infras/mailer/mocks"
	"spacy/infras/otel/mocks"
	"spacy/internal/domains/notification/service"
	"spacy/internal/domains/reservation/model"
	"spacy/internal/domains/reservation/model/dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newEvent(eventType dto.EventType) dto.ReservationEvent {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	return dto.ReservationEvent{
		Type:          eventType,
		ReservationID: "res-1",
		SpaceName:     "Sunny Loft",
		UserName:      "Dana",
		UserEmail:     "dana@example.com",
		StartTime:     start,
		EndTime:       start.Add(2 * time.Hour),
		TotalAmount:   200,
		Status:        model.StatusConfirmed,
	}
}

func TestNotificationService_Notify(t *testing.T) {
	tests := []struct {
		name      string
		event     dto.ReservationEvent
		setupMock func(m *mailerMocks.MockMailer)
		wantErr   string
	}{
		{
			name:  "confirmed",
			event: newEvent(dto.EventConfirmed),
			setupMock: func(m *mailerMocks.MockMailer) {
				m.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, content mailer.Mail) error {
					assert.Equal(t, []string{"dana@example.com"}, content.To)
					assert.Equal(t, "Your reservation at Sunny Loft is confirmed", content.Subject)
					assert.Contains(t, content.Body, "Hi Dana,")
					assert.Contains(t, content.Body, "Total: 200 INR")
					assert.Contains(t, content.Body, "Reservation: res-1")

					return nil
				})
			},
		},
		{
			name:  "cancelled",
			event: newEvent(dto.EventCancelled),
			setupMock: func(m *mailerMocks.MockMailer) {
				m.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, content mailer.Mail) error {
					assert.Equal(t, "Your reservation at Sunny Loft was cancelled", content.Subject)

					return nil
				})
			},
		},
		{
			name:  "checked in",
			event: newEvent(dto.EventCheckedIn),
			setupMock: func(m *mailerMocks.MockMailer) {
				m.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:  "checked out",
			event: newEvent(dto.EventCheckedOut),
			setupMock: func(m *mailerMocks.MockMailer) {
				m.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "created is ignored",
			event:     newEvent(dto.EventCreated),
			setupMock: func(m *mailerMocks.MockMailer) {},
		},
		{
			name:      "payment failed is ignored",
			event:     newEvent(dto.EventPaymentFailed),
			setupMock: func(m *mailerMocks.MockMailer) {},
		},
		{
			name: "missing recipient",
			event: func() dto.ReservationEvent {
				e := newEvent(dto.EventConfirmed)
				e.UserEmail = ""

				return e
			}(),
			setupMock: func(m *mailerMocks.MockMailer) {},
		},
		{
			name:  "mailer failure",
			event: newEvent(dto.EventConfirmed),
			setupMock: func(m *mailerMocks.MockMailer) {
				m.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
			},
			wantErr: "failed to send notification: smtp down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := mailerMocks.NewMockMailer(ctrl)
			tt.setupMock(m)

			cfg := &config.Config{}
			cfg.Payment.Currency = "INR"
			cfg.App.Name = "Spacy"

			err := service.New(m, cfg, mocks.NewOtel()).Notify(context.Background(), tt.event)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}
