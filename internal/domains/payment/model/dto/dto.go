package dto

import (
	"spacy/infras/payment"
	reservationDto "spacy/internal/domains/reservation/model/dto"
)

const (
	StatusSuccess = "success"
)

type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id"   validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature"  validate:"required"`
	Amount    int64  `json:"amount"     validate:"omitempty,gte=0"`
}

type RefundRequest struct {
	PaymentID     string  `json:"payment_id"     validate:"required"`
	Amount        float64 `json:"amount"         validate:"required,gt=0"`
	ReservationID string  `json:"reservation_id" validate:"omitempty,uuid"`
}

type VerifyPaymentResponse struct {
	Status      string                             `json:"status"`
	Message     string                             `json:"message"`
	Reservation reservationDto.ReservationResponse `json:"reservation"`
}

type RefundResponse struct {
	Status      string                              `json:"status"`
	Message     string                              `json:"message"`
	Refund      payment.Refund                      `json:"refund"`
	Reservation *reservationDto.ReservationResponse `json:"reservation,omitempty"`
}
