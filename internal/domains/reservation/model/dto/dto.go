package dto

import (
	"strings"
	"time"

	"spacy/infras/payment"
	"spacy/internal/domains/reservation/model"
	"spacy/shared/constant"
	gDto "spacy/shared/dto"
	gModel "spacy/shared/model"
	"spacy/shared/timezone"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated       EventType = "reservation.created"
	EventConfirmed     EventType = "reservation.confirmed"
	EventCancelled     EventType = "reservation.cancelled"
	EventCheckedIn     EventType = "reservation.checked_in"
	EventCheckedOut    EventType = "reservation.checked_out"
	EventPaymentFailed EventType = "reservation.payment_failed"
)

type CreateReservationRequest struct {
	SpaceID     string `json:"space_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TotalAmount int64  `json:"total_amount" validate:"omitempty,gte=0"`
}

// IsComplete reports whether space, start and end were all supplied.
func (c *CreateReservationRequest) IsComplete() bool {
	return strings.TrimSpace(c.SpaceID) != "" && strings.TrimSpace(c.StartTime) != "" && strings.TrimSpace(c.EndTime) != ""
}

func (c *CreateReservationRequest) ToModel(userID string, start, end time.Time, amount int64) model.Reservation {
	now := timezone.Now()

	return model.Reservation{
		ID:          uuid.NewString(),
		UserID:      userID,
		SpaceID:     strings.TrimSpace(c.SpaceID),
		StartTime:   start,
		EndTime:     end,
		TotalAmount: amount,
		Status:      model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

// PaymentUpdate is the column set written by a payment outcome or lifecycle transition.
type PaymentUpdate struct {
	Status         model.Status `db:"status"`
	GatewayOrderID string       `db:"gateway_order_id"`
	PaymentID      string       `db:"payment_id"`
	PaidAmount     *int64       `db:"paid_amount"`
	RefundID       string       `db:"refund_id"`
	CheckInTime    *time.Time   `db:"check_in_time"`
	CheckOutTime   *time.Time   `db:"check_out_time"`
}

type SpaceSummary struct {
	ID      string  `json:"id"`
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

type UserSummary struct {
	ID    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type ReservationResponse struct {
	ID             string       `json:"id"`
	StartTime      string       `json:"start_time"`
	EndTime        string       `json:"end_time"`
	TotalAmount    int64        `json:"total_amount"`
	Status         model.Status `json:"status"`
	GatewayOrderID *string      `json:"gateway_order_id,omitempty"`
	PaymentID      *string      `json:"payment_id,omitempty"`
	PaidAmount     *int64       `json:"paid_amount,omitempty"`
	RefundID       *string      `json:"refund_id,omitempty"`
	CheckInTime    *string      `json:"check_in_time,omitempty"`
	CheckOutTime   *string      `json:"check_out_time,omitempty"`
	Space          SpaceSummary `json:"space"`
	User           UserSummary  `json:"user"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(reservation model.Reservation) {
	r.ID = reservation.ID
	r.StartTime = timezone.Format(reservation.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(reservation.EndTime, constant.DateFormat)
	r.TotalAmount = reservation.TotalAmount
	r.Status = reservation.Status
	r.GatewayOrderID = reservation.GatewayOrderID
	r.PaymentID = reservation.PaymentID
	r.PaidAmount = reservation.PaidAmount
	r.RefundID = reservation.RefundID
	r.CheckInTime = formatOptional(reservation.CheckInTime)
	r.CheckOutTime = formatOptional(reservation.CheckOutTime)
	r.Space = SpaceSummary{
		ID:      reservation.SpaceID,
		Name:    reservation.SpaceName,
		Address: reservation.SpaceAddress,
	}
	r.User = UserSummary{
		ID:    reservation.UserID,
		Name:  reservation.UserName,
		Email: reservation.UserEmail,
	}
	r.Metadata.FromModel(reservation.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation) {
	r.TotalData = len(models)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type CreateReservationResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Order       payment.Order       `json:"order"`
}

// ReservationEvent is published on every lifecycle transition.
type ReservationEvent struct {
	Type          EventType    `json:"type"`
	ReservationID string       `json:"reservation_id"`
	SpaceID       string       `json:"space_id"`
	SpaceName     string       `json:"space_name"`
	UserName      string       `json:"user_name"`
	UserEmail     string       `json:"user_email"`
	StartTime     time.Time    `json:"start_time"`
	EndTime       time.Time    `json:"end_time"`
	TotalAmount   int64        `json:"total_amount"`
	Status        model.Status `json:"status"`
	OccurredAt    time.Time    `json:"occurred_at"`
}

func (e *ReservationEvent) FromModel(eventType EventType, reservation model.Reservation) {
	e.Type = eventType
	e.ReservationID = reservation.ID
	e.SpaceID = reservation.SpaceID
	e.SpaceName = deref(reservation.SpaceName)
	e.UserName = deref(reservation.UserName)
	e.UserEmail = deref(reservation.UserEmail)
	e.StartTime = reservation.StartTime
	e.EndTime = reservation.EndTime
	e.TotalAmount = reservation.TotalAmount
	e.Status = reservation.Status
	e.OccurredAt = timezone.Now()
}

func formatOptional(value *time.Time) *string {
	if value == nil {
		return nil
	}

	formatted := timezone.Format(*value, constant.DateFormat)

	return &formatted
}

func deref(value *string) string {
	if value == nil {
		return constant.Empty
	}

	return *value
}
