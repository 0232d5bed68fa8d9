package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"

	"spacy/config"
	"spacy/infras/otel"
	"spacy/infras/payment"
	"spacy/internal/domains/payment/model/dto"
	reservationDto "spacy/internal/domains/reservation/model/dto"
	reservationService "spacy/internal/domains/reservation/service"
	"spacy/permissions"
	"spacy/shared/constant"
	"spacy/shared/failure"
	"spacy/shared/signature"

	"github.com/rs/zerolog/log"
)

const receiptPrefix = "receipt_"

var errInvalidSignature = failure.BadRequestFromString("Invalid payment signature")

type Payment interface {
	// CreateOrder opens a gateway order for a reservation in the configured currency.
	CreateOrder(ctx context.Context, reservationID string, amount int64) (payment.Order, error)
	VerifySignature(orderID, paymentID, sig string) bool
	// VerifyReservationPayment applies a verified payment, leaving the reservation pending on a bad signature.
	VerifyReservationPayment(ctx context.Context, req dto.VerifyPaymentRequest) (reservationDto.ReservationResponse, error)
	// Verify applies a verified payment, cancelling the reservation on a bad signature.
	Verify(ctx context.Context, req dto.VerifyPaymentRequest) (dto.VerifyPaymentResponse, error)
	Refund(ctx context.Context, req dto.RefundRequest) (dto.RefundResponse, error)
}

type serviceImpl struct {
	gateway        payment.Gateway
	reservationSvc reservationService.Reservation
	cfg            *config.Config
	otel           otel.Otel
}

func New(gateway payment.Gateway, reservationSvc reservationService.Reservation, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		gateway:        gateway,
		reservationSvc: reservationSvc,
		cfg:            cfg,
		otel:           otel,
	}
}

func (s *serviceImpl) CreateOrder(ctx context.Context, reservationID string, amount int64) (order payment.Order, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.gateway.CreateOrder(ctx, amount, s.cfg.Payment.Currency, receiptPrefix+reservationID) //nolint:wrapcheck
}

func (s *serviceImpl) VerifySignature(orderID, paymentID, sig string) bool {
	return signature.Verify(s.cfg.Payment.SignatureSecret, orderID, paymentID, sig)
}

func (s *serviceImpl) VerifyReservationPayment(ctx context.Context, req dto.VerifyPaymentRequest) (res reservationDto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyReservationPayment")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !s.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		log.Warn().Str("orderID", req.OrderID).Msg("rejected payment with invalid signature")

		return res, errInvalidSignature
	}

	return s.reservationSvc.ApplyPayment(ctx, req.OrderID, req.PaymentID, req.Amount) //nolint:wrapcheck
}

func (s *serviceImpl) Verify(ctx context.Context, req dto.VerifyPaymentRequest) (res dto.VerifyPaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !s.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		log.Warn().Str("orderID", req.OrderID).Msg("rejected payment with invalid signature")

		if _, err := s.reservationSvc.UpdatePaymentStatus(ctx, req.OrderID, req.PaymentID, reservationService.PaymentStatusFailed); err != nil {
			log.Error().Err(err).Str("orderID", req.OrderID).Msg("failed to mark payment as failed")
		}

		return res, errInvalidSignature
	}

	reservation, err := s.reservationSvc.ApplyPayment(ctx, req.OrderID, req.PaymentID, req.Amount)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.Status = dto.StatusSuccess
	res.Message = "Payment verified successfully"
	res.Reservation = reservation

	return res, nil
}

func (s *serviceImpl) Refund(ctx context.Context, req dto.RefundRequest) (res dto.RefundResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Refund")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.ReservationID == constant.Empty {
		if !permissions.ActorFromContext(ctx).Is(permissions.RoleStaff) {
			return res, failure.BadRequestFromString("Reservation ID is required") // nolint:wrapcheck
		}
	} else if _, err = s.reservationSvc.Refundable(ctx, req.ReservationID, req.PaymentID); err != nil {
		return res, err //nolint:wrapcheck
	}

	refund, err := s.gateway.Refund(ctx, req.PaymentID, req.Amount)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.Status = dto.StatusSuccess
	res.Message = "Refund processed successfully"
	res.Refund = refund

	if req.ReservationID == constant.Empty {
		return res, nil
	}

	reservation, err := s.reservationSvc.MarkRefunded(ctx, req.ReservationID, refund.ID)
	if err != nil {
		log.Error().Err(err).Str("refundID", refund.ID).Msg("refund issued but reservation was not updated")

		return res, err //nolint:wrapcheck
	}

	res.Reservation = &reservation

	return res, nil
}
