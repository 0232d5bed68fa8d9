package model

import (
	"math"
	"slices"
	"time"

	"spacy/shared/failure"
	"spacy/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID             = "id"
	FieldUserID         = "user_id"
	FieldSpaceID        = "space_id"
	FieldStartTime      = "start_time"
	FieldEndTime        = "end_time"
	FieldTotalAmount    = "total_amount"
	FieldStatus         = "status"
	FieldGatewayOrderID = "gateway_order_id"
	FieldPaymentID      = "payment_id"
	FieldPaidAmount     = "paid_amount"
	FieldRefundID       = "refund_id"
	FieldCheckInTime    = "check_in_time"
	FieldCheckOutTime   = "check_out_time"
	FieldCreatedAt      = "created_at"

	// Columns read from the joined tables.
	FieldSpaceOwnerID = "owner_id"

	CancelNotice = 2 * time.Hour
	CheckInLead  = 15 * time.Minute
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusCancelled  Status = "cancelled"
	StatusCompleted  Status = "completed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled, StatusCompleted},
	StatusCheckedIn: {StatusCheckedOut},
}

// HoldingStatuses occupy a slot for overlap checks on creation.
var HoldingStatuses = []Status{StatusPending, StatusConfirmed, StatusCheckedIn}

// BookedStatuses are paid-for reservations: they hide a space from search and make up the staff day view.
var BookedStatuses = []Status{StatusConfirmed, StatusCheckedIn}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) String() string {
	return string(s)
}

type Reservation struct {
	ID             string     `db:"id"`
	UserID         string     `db:"user_id"`
	SpaceID        string     `db:"space_id"`
	StartTime      time.Time  `db:"start_time"`
	EndTime        time.Time  `db:"end_time"`
	TotalAmount    int64      `db:"total_amount"`
	Status         Status     `db:"status"`
	GatewayOrderID *string    `db:"gateway_order_id"`
	PaymentID      *string    `db:"payment_id"`
	PaidAmount     *int64     `db:"paid_amount"`
	RefundID       *string    `db:"refund_id"`
	CheckInTime    *time.Time `db:"check_in_time"`
	CheckOutTime   *time.Time `db:"check_out_time"`
	SpaceName      *string    `db:"space_name"     table:"spaces" column:"name"`
	SpaceAddress   *string    `db:"space_address"  table:"spaces" column:"address"`
	SpaceOwnerID   *string    `db:"space_owner_id" table:"spaces" column:"owner_id"`
	UserName       *string    `db:"user_name"      table:"users"  column:"name"`
	UserEmail      *string    `db:"user_email"     table:"users"  column:"email"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "LEFT JOIN spaces ON spaces.id = reservations.space_id LEFT JOIN users ON users.id = reservations.user_id"
}

// OwnerOfSpace returns the owner of the reserved space, or empty when the join was not loaded.
func (r Reservation) OwnerOfSpace() string {
	if r.SpaceOwnerID == nil {
		return ""
	}

	return *r.SpaceOwnerID
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// CalculateAmount prices a booking at round(rate × hours).
func CalculateAmount(hourlyRate float64, start, end time.Time) int64 {
	hours := end.Sub(start).Hours()

	return int64(math.Round(hourlyRate * hours))
}

// CheckCancel allows cancelling a pending or confirmed reservation up to CancelNotice before it starts.
func (r Reservation) CheckCancel(now time.Time) error {
	if r.Status != StatusPending && r.Status != StatusConfirmed {
		return failure.BadRequestFromString("This reservation cannot be cancelled") // nolint:wrapcheck
	}

	if now.After(r.StartTime.Add(-CancelNotice)) {
		return failure.BadRequestFromString("Reservation can only be cancelled at least 2 hours before start time") // nolint:wrapcheck
	}

	return nil
}

// CheckCheckIn allows checking in a confirmed reservation from CheckInLead before it starts.
func (r Reservation) CheckCheckIn(now time.Time) error {
	if r.Status != StatusConfirmed {
		return failure.BadRequestFromString("Only confirmed reservations can be checked in") // nolint:wrapcheck
	}

	if now.Before(r.StartTime.Add(-CheckInLead)) {
		return failure.BadRequestFromString("Check-in is only allowed 15 minutes before the reservation time") // nolint:wrapcheck
	}

	return nil
}

func (r Reservation) CheckCheckOut() error {
	if r.Status != StatusCheckedIn {
		return failure.BadRequestFromString("Only checked-in reservations can be checked out") // nolint:wrapcheck
	}

	return nil
}
