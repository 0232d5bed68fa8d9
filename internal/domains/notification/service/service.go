package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"spacy/config"
	"spacy/infras/mailer"
	"spacy/infras/otel"
	"spacy/internal/domains/reservation/model/dto"
	"spacy/shared/constant"
	"spacy/shared/timezone"

	"github.com/rs/zerolog/log"
)

const dateTimeLayout = "Mon, 02 Jan 2006 15:04"

type template struct {
	subject string
	intro   string
}

var templates = map[dto.EventType]template{
	dto.EventConfirmed: {
		subject: "Your reservation at %s is confirmed",
		intro:   "Your payment was received and your reservation is confirmed.",
	},
	dto.EventCancelled: {
		subject: "Your reservation at %s was cancelled",
		intro:   "Your reservation has been cancelled. Any refund is returned to the original payment method.",
	},
	dto.EventCheckedIn: {
		subject: "Welcome to %s",
		intro:   "You have been checked in. Enjoy your time.",
	},
	dto.EventCheckedOut: {
		subject: "Thanks for visiting %s",
		intro:   "You have been checked out. We hope to see you again.",
	},
}

type Notification interface {
	// Notify mails the reservation holder about event. Events without a template are ignored.
	Notify(ctx context.Context, event dto.ReservationEvent) error
}

type serviceImpl struct {
	mailer mailer.Mailer
	config *config.Config
	otel   otel.Otel
}

func New(mailer mailer.Mailer, config *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		mailer: mailer,
		config: config,
		otel:   otel,
	}
}

func (s *serviceImpl) Notify(ctx context.Context, event dto.ReservationEvent) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notify")
	defer scope.End()
	defer scope.TraceIfError(&err)

	tmpl, ok := templates[event.Type]
	if !ok {
		return nil
	}

	if event.UserEmail == constant.Empty {
		log.Warn().Str("reservationID", event.ReservationID).Msg("skipping notification without recipient")

		return nil
	}

	scope.SetAttributes(map[string]any{
		"reservation_id": event.ReservationID,
		"event":          string(event.Type),
	})

	err = s.mailer.Send(ctx, mailer.Mail{
		To:      []string{event.UserEmail},
		Subject: fmt.Sprintf(tmpl.subject, event.SpaceName),
		Body:    s.body(tmpl, event),
	})
	if err != nil {
		log.Error().Err(err).Str("reservationID", event.ReservationID).Msg("failed to send notification")

		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}

func (s *serviceImpl) body(tmpl template, event dto.ReservationEvent) string {
	name := event.UserName
	if name == constant.Empty {
		name = "there"
	}

	return fmt.Sprintf(
		"Hi %s,\n\n%s\n\nSpace: %s\nFrom: %s\nTo: %s\nTotal: %d %s\nReservation: %s\n\n%s\n",
		name,
		tmpl.intro,
		event.SpaceName,
		timezone.Format(event.StartTime, dateTimeLayout),
		timezone.Format(event.EndTime, dateTimeLayout),
		event.TotalAmount,
		s.config.Payment.Currency,
		event.ReservationID,
		s.config.App.Name,
	)
}
