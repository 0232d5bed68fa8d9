package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"spacy/config"
	"spacy/infras/kafka"
	"spacy/infras/otel"
	"spacy/internal/domains/reservation/model"
	"spacy/internal/domains/reservation/model/dto"
	"spacy/internal/domains/reservation/repository"
	spaceModel "spacy/internal/domains/space/model"
	spaceRepo "spacy/internal/domains/space/repository"
	"spacy/permissions"
	"spacy/shared"
	"spacy/shared/constant"
	gDto "spacy/shared/dto"
	"spacy/shared/failure"
	"spacy/shared/qrcode"
	"spacy/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"

	systemActor   = "system"
	passURIFormat = "spacy://reservations/%s/checkin"

	sortNewest = model.TableName + "." + model.FieldCreatedAt
	sortStart  = model.TableName + "." + model.FieldStartTime
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	AttachOrder(ctx context.Context, id, orderID string) error
	Release(ctx context.Context, id string) error
	FindAll(ctx context.Context) (dto.GetReservationsResponse, error)
	FindOne(ctx context.Context, id string) (dto.ReservationResponse, error)
	UpdatePaymentStatus(ctx context.Context, orderID, paymentID, status string) (dto.ReservationResponse, error)
	ApplyPayment(ctx context.Context, orderID, paymentID string, amount int64) (dto.ReservationResponse, error)
	Refundable(ctx context.Context, id, paymentID string) (dto.ReservationResponse, error)
	MarkRefunded(ctx context.Context, id, refundID string) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string) (dto.ReservationResponse, error)
	CheckIn(ctx context.Context, id string) (dto.ReservationResponse, error)
	CheckOut(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetToday(ctx context.Context) (dto.GetReservationsResponse, error)
	Pass(ctx context.Context, id string) ([]byte, error)
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	spaceRepo spaceRepo.Space
	cfg       *config.Config
	kafka     kafka.Client
	otel      otel.Otel
}

func New(
	repo repository.Reservation,
	spaceRepo spaceRepo.Space,
	cfg *config.Config,
	kafka kafka.Client,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:      repo,
		spaceRepo: spaceRepo,
		cfg:       cfg,
		kafka:     kafka,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !req.IsComplete() {
		return res, failure.BadRequestFromString("Space ID, start time, and end time are required") // nolint:wrapcheck
	}

	start, startErr := timezone.ParseInstant(strings.TrimSpace(req.StartTime))
	end, endErr := timezone.ParseInstant(strings.TrimSpace(req.EndTime))

	if startErr != nil || endErr != nil {
		return res, failure.BadRequestFromString("Invalid date format") // nolint:wrapcheck
	}

	if !start.Before(end) {
		return res, failure.BadRequestFromString("End time must be after start time") // nolint:wrapcheck
	}

	if start.Before(timezone.Now()) {
		return res, failure.BadRequestFromString("Start time cannot be in the past") // nolint:wrapcheck
	}

	space, err := s.getSpace(ctx, strings.TrimSpace(req.SpaceID))
	if err != nil {
		return res, err
	}

	if !space.IsActive {
		return res, failure.BadRequestFromString("This space is not available for booking") // nolint:wrapcheck
	}

	amount := req.TotalAmount
	if amount <= 0 {
		amount = model.CalculateAmount(space.PricingRules.HourlyRate(), start, end)
	}

	actor := permissions.ActorFromContext(ctx)
	reservation := req.ToModel(actor.UserID, start, end, amount)

	err = s.repo.InsertIfAvailable(ctx, reservation)
	if errors.Is(err, repository.ErrSlotTaken) {
		return res, failure.BadRequestFromString("This space is already booked for the selected time slot") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	created, err := s.getModel(ctx, reservation.ID)
	if err != nil {
		return res, err
	}

	s.publish(ctx, dto.EventCreated, created)

	res.FromModel(created)

	return res, nil
}

func (s *serviceImpl) getSpace(ctx context.Context, id string) (space spaceModel.Space, err error) {
	if uuid.Validate(id) != nil {
		return space, failure.NotFound("Space not found") // nolint:wrapcheck
	}

	space, err = s.spaceRepo.Get(ctx, shared.FilterByID(id, spaceModel.FieldID, spaceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get space")

		return space, fmt.Errorf("failed to get space: %w", err)
	}

	if space.ID == constant.Empty {
		return space, failure.NotFound("Space not found") // nolint:wrapcheck
	}

	return space, nil
}

func (s *serviceImpl) AttachOrder(ctx context.Context, id, orderID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AttachOrder")
	defer scope.End()
	defer scope.TraceIfError(&err)

	fields := shared.TransformFields(dto.PaymentUpdate{GatewayOrderID: orderID}, s.actorName(ctx))

	affected, err := s.repo.UpdateCount(ctx, fields, repository.FilterByIDAndStatus(id, model.StatusPending))
	if err != nil {
		log.Error().Err(err).Msg("failed to attach payment order")

		return fmt.Errorf("failed to attach payment order: %w", err)
	}

	if affected == 0 {
		return failure.BadRequestFromString("Only pending reservations can be linked to a payment order") // nolint:wrapcheck
	}

	return nil
}

// Release cancels a pending reservation whose payment order could not be opened, freeing its slot.
func (s *serviceImpl) Release(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Release")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.getModel(ctx, id)
	if err != nil {
		return err
	}

	if reservation.Status != model.StatusPending {
		return failure.BadRequestFromString("Only pending reservations can be released") // nolint:wrapcheck
	}

	_, err = s.transition(ctx, reservation, model.StatusCancelled, dto.PaymentUpdate{}, dto.EventPaymentFailed)

	return err
}

func (s *serviceImpl) FindAll(ctx context.Context) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	actor := permissions.ActorFromContext(ctx)

	var filter gDto.FilterGroup

	switch actor.Role {
	case permissions.RoleConsumer:
		filter = shared.FilterByID(actor.UserID, model.FieldUserID, model.TableName)
	case permissions.RoleBrandOwner:
		filter = shared.FilterByID(actor.UserID, spaceModel.FieldOwnerID, spaceModel.TableName)
	case permissions.RoleStaff:
		filter = filterToday()
	default:
		return res, failure.ForbiddenError // nolint:wrapcheck
	}

	return s.list(ctx, gDto.QueryParams{SortBy: sortNewest, SortDir: gDto.SortDirDesc}, filter)
}

func (s *serviceImpl) GetToday(ctx context.Context) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetToday")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.list(ctx, gDto.QueryParams{SortBy: sortStart, SortDir: gDto.SortDirAsc}, filterToday())
}

// filterToday matches booked reservations starting within the current local day.
func filterToday() gDto.FilterGroup {
	start, end := timezone.DayBounds(timezone.Now())

	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Value:    model.BookedStatuses,
				Operator: gDto.FilterOperatorIn,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStartTime,
				ArgName:  "day_start",
				Value:    start,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStartTime,
				ArgName:  "day_end",
				Value:    end,
				Operator: gDto.FilterOperatorLess,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(reservations)

	return res, nil
}

func (s *serviceImpl) FindOne(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindOne")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.getViewable(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) getModel(ctx context.Context, id string) (reservation model.Reservation, err error) {
	if uuid.Validate(id) != nil {
		return reservation, failure.NotFound("Reservation not found") // nolint:wrapcheck
	}

	return s.getBy(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (s *serviceImpl) getByOrder(ctx context.Context, orderID string) (model.Reservation, error) {
	if strings.TrimSpace(orderID) == constant.Empty {
		return model.Reservation{}, failure.NotFound("Reservation not found") // nolint:wrapcheck
	}

	return s.getBy(ctx, shared.FilterByID(orderID, model.FieldGatewayOrderID, model.TableName))
}

func (s *serviceImpl) getBy(ctx context.Context, filter gDto.FilterGroup) (reservation model.Reservation, err error) {
	reservation, err = s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("Reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

// getViewable loads a reservation the caller may see: its consumer, the owner of its space, or staff.
func (s *serviceImpl) getViewable(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.getModel(ctx, id)
	if err != nil {
		return reservation, err
	}

	actor := permissions.ActorFromContext(ctx)

	switch actor.Role {
	case permissions.RoleStaff:
		return reservation, nil
	case permissions.RoleConsumer:
		if !permissions.CanManage(actor, reservation.UserID) {
			return reservation, failure.Unauthorized("You can only view your own reservations") // nolint:wrapcheck
		}
	case permissions.RoleBrandOwner:
		if !permissions.CanManage(actor, reservation.OwnerOfSpace()) {
			return reservation, failure.Unauthorized("You can only view reservations for your spaces") // nolint:wrapcheck
		}
	default:
		return reservation, failure.Unauthorized("You can only view your own reservations") // nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) UpdatePaymentStatus(ctx context.Context, orderID, paymentID, status string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePaymentStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.getByOrder(ctx, orderID)
	if err != nil {
		return res, err
	}

	next, event := model.StatusCancelled, dto.EventPaymentFailed
	if status == PaymentStatusSuccess {
		next, event = model.StatusConfirmed, dto.EventConfirmed
	} else if reservation.Status != model.StatusPending {
		return res, failure.BadRequestFromString("Only pending reservations can be marked as payment failed") // nolint:wrapcheck
	}

	update := dto.PaymentUpdate{PaymentID: paymentID}
	if reservation.PaymentID != nil && *reservation.PaymentID != constant.Empty {
		update.PaymentID = constant.Empty
	}

	return s.transition(ctx, reservation, next, update, event)
}

func (s *serviceImpl) ApplyPayment(ctx context.Context, orderID, paymentID string, amount int64) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApplyPayment")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.getByOrder(ctx, orderID)
	if err != nil {
		return res, err
	}

	if reservation.Status == model.StatusConfirmed && reservation.PaymentID != nil && *reservation.PaymentID == paymentID {
		res.FromModel(reservation)

		return res, nil
	}

	paid := amount
	if paid <= 0 {
		paid = reservation.TotalAmount
	}

	return s.transition(ctx, reservation, model.StatusConfirmed, dto.PaymentUpdate{PaymentID: paymentID, PaidAmount: &paid}, dto.EventConfirmed)
}

func (s *serviceImpl) Refundable(ctx context.Context, id, paymentID string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refundable")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.getModel(ctx, id)
	if err != nil {
		return res, err
	}

	actor := permissions.ActorFromContext(ctx)
	if !actor.Is(permissions.RoleStaff) && !(actor.Is(permissions.RoleBrandOwner) && permissions.CanManage(actor, reservation.OwnerOfSpace())) {
		return res, failure.Unauthorized("You can only refund reservations for your spaces") // nolint:wrapcheck
	}

	if reservation.PaymentID == nil || *reservation.PaymentID != paymentID {
		return res, failure.BadRequestFromString("Payment does not belong to this reservation") // nolint:wrapcheck
	}

	if reservation.Status != model.StatusConfirmed {
		return res, failure.BadRequestFromString("Only confirmed reservations can be refunded") // nolint:wrapcheck
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) MarkRefunded(ctx context.Context, id, refundID string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRefunded")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.getModel(ctx, id)
	if err != nil {
		return res, err
	}

	return s.transition(ctx, reservation, model.StatusCancelled, dto.PaymentUpdate{RefundID: refundID}, dto.EventCancelled)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.getModel(ctx, id)
	if err != nil {
		return res, err
	}

	if !permissions.CanManage(permissions.ActorFromContext(ctx), reservation.UserID) {
		return res, failure.Unauthorized("You can only cancel your own reservations") // nolint:wrapcheck
	}

	if err = reservation.CheckCancel(timezone.Now()); err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.transition(ctx, reservation, model.StatusCancelled, dto.PaymentUpdate{}, dto.EventCancelled)
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.getModel(ctx, id)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	if err = reservation.CheckCheckIn(now); err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.transition(ctx, reservation, model.StatusCheckedIn, dto.PaymentUpdate{CheckInTime: &now}, dto.EventCheckedIn)
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.getModel(ctx, id)
	if err != nil {
		return res, err
	}

	if err = reservation.CheckCheckOut(); err != nil {
		return res, err //nolint:wrapcheck
	}

	now := timezone.Now()

	return s.transition(ctx, reservation, model.StatusCheckedOut, dto.PaymentUpdate{CheckOutTime: &now}, dto.EventCheckedOut)
}

func (s *serviceImpl) Pass(ctx context.Context, id string) (img []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Pass")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.getViewable(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.Status != model.StatusConfirmed && reservation.Status != model.StatusCheckedIn {
		return nil, failure.BadRequestFromString("A check-in pass is only available for confirmed reservations") // nolint:wrapcheck
	}

	img, err = qrcode.Encode(fmt.Sprintf(passURIFormat, reservation.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to generate check-in pass")

		return nil, fmt.Errorf("failed to generate check-in pass: %w", err)
	}

	return img, nil
}

func (s *serviceImpl) CompleteElapsed(ctx context.Context, now time.Time) (completed int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CompleteElapsed")
	defer scope.End()
	defer scope.TraceIfError(&err)

	fields := map[string]any{
		model.FieldStatus:        model.StatusCompleted,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: systemActor,
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				ArgName:  "current_status",
				Value:    model.StatusConfirmed,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndTime,
				ArgName:  "elapsed_at",
				Value:    now,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
		},
	}

	completed, err = s.repo.UpdateCount(ctx, fields, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to complete elapsed reservations")

		return 0, fmt.Errorf("failed to complete elapsed reservations: %w", err)
	}

	if completed > 0 {
		log.Info().Int64("count", completed).Msg("completed elapsed reservations")
	}

	return completed, nil
}

// transition moves reservation to next only if its status is unchanged since it was read.
func (s *serviceImpl) transition(
	ctx context.Context,
	reservation model.Reservation,
	next model.Status,
	update dto.PaymentUpdate,
	event dto.EventType,
) (res dto.ReservationResponse, err error) {
	if !reservation.Status.CanTransitionTo(next) {
		return res, failure.BadRequestFromString(fmt.Sprintf("Cannot change reservation status from %s to %s", reservation.Status, next)) // nolint:wrapcheck
	}

	update.Status = next
	fields := shared.TransformFields(update, s.actorName(ctx))

	affected, err := s.repo.UpdateCount(ctx, fields, repository.FilterByIDAndStatus(reservation.ID, reservation.Status))
	if err != nil {
		log.Error().Err(err).Str("status", next.String()).Msg("failed to update reservation status")

		return res, fmt.Errorf("failed to update reservation status: %w", err)
	}

	if affected == 0 {
		return res, failure.BadRequestFromString("Reservation status has already changed") // nolint:wrapcheck
	}

	updated, err := s.getModel(ctx, reservation.ID)
	if err != nil {
		return res, err
	}

	s.publish(ctx, event, updated)

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) actorName(ctx context.Context) string {
	if actor := permissions.ActorFromContext(ctx); actor.UserID != constant.Empty {
		return actor.UserID
	}

	return systemActor
}

func (s *serviceImpl) publish(ctx context.Context, eventType dto.EventType, reservation model.Reservation) {
	go func() {
		c := context.WithoutCancel(ctx)

		var event dto.ReservationEvent
		event.FromModel(eventType, reservation)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Reservation, kafka.Message{
			Key:     reservation.ID,
			Value:   event,
			Headers: map[string]string{constant.KafkaHeaderEventType: string(eventType)},
		})
		if err != nil {
			log.Error().Err(err).Str("type", string(eventType)).Str("reservationID", reservation.ID).Msg("failed to publish reservation event")
		}
	}()
}
