package event

import (
	"context"
	"time"

	"spacy/config"
	"spacy/infras/kafka"
	"spacy/infras/otel"
	notificationService "spacy/internal/domains/notification/service"
	"spacy/internal/domains/reservation/model/dto"
	"spacy/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const flushTimeout = 5 * time.Second

type Handler struct {
	kafka        kafka.Client
	notification notificationService.Notification
	config       *config.Config
	otel         otel.Otel
}

func New(kafka kafka.Client, notification notificationService.Notification, config *config.Config, otel otel.Otel) *Handler {
	return &Handler{
		kafka:        kafka,
		notification: notification,
		config:       config,
		otel:         otel,
	}
}

// Listen consumes reservation events until ctx is done.
func (h *Handler) Listen(ctx context.Context) {
	topic := h.config.Kafka.Topics.Reservation

	log.Info().Str("topic", topic).Str("group", h.config.Kafka.ConsumerGroup).Msg("Listening for reservation events")

	h.kafka.Consume(ctx, h.config.Kafka.ConsumerGroup, topic, h.HandleReservationEvent)

	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()

	if err := h.otel.Shutdown(flushCtx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}
}

func (h *Handler) HandleReservationEvent(ctx context.Context, message kafkaGo.Message) {
	ctx, scope := h.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleReservationEvent")
	defer scope.End()

	event, err := kafka.Decode[dto.ReservationEvent](message)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", string(message.Key)).Msg("dropping malformed reservation event")

		return
	}

	scope.SetAttributes(map[string]any{
		"reservation_id": event.ReservationID,
		"event":          string(event.Type),
	})

	if err = h.notification.Notify(ctx, event); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reservationID", event.ReservationID).Msg("failed to handle reservation event")
	}
}
