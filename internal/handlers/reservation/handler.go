package reservation

import (
	"fmt"
	"net/http"

	"spacy/infras/otel"
	paymentDto "spacy/internal/domains/payment/model/dto"
	paymentService "spacy/internal/domains/payment/service"
	"spacy/internal/domains/reservation/model/dto"
	"spacy/internal/domains/reservation/service"
	"spacy/shared/constant"
	"spacy/shared/logger"
	"spacy/shared/validator"
	"spacy/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const headerContentDisposition = "Content-Disposition"

type Handler struct {
	service        service.Reservation
	paymentService paymentService.Payment
	otel           otel.Otel
}

func New(service service.Reservation, paymentService paymentService.Payment, otel otel.Otel) Handler {
	return Handler{
		service:        service,
		paymentService: paymentService,
		otel:           otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Post("/verify-payment", handler.VerifyPayment)
		routerGroup.Get("/today", handler.GetTodayReservations)
		routerGroup.Get("/{id}", handler.GetReservation)
		routerGroup.Get("/{id}/pass", handler.GetPass)
		routerGroup.Patch("/{id}/cancel", handler.CancelReservation)
		routerGroup.Patch("/{id}/checkin", handler.CheckIn)
		routerGroup.Patch("/{id}/checkout", handler.CheckOut)
	})
}

// CreateReservation books a space and opens a payment order for it.
// @Summary Create a reservation
// @Description Creates a pending reservation and a gateway order for its total amount.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} dto.CreateReservationResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	order, err := handler.paymentService.CreateOrder(ctx, reservation.ID, reservation.TotalAmount)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reservationID", reservation.ID).Msg("failed to create payment order")

		if releaseErr := handler.service.Release(ctx, reservation.ID); releaseErr != nil {
			log.Error().Err(releaseErr).Str("reservationID", reservation.ID).Msg("failed to release unpaid reservation")
		}

		response.WithError(w, err)

		return
	}

	if err = handler.service.AttachOrder(ctx, reservation.ID, order.ID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("reservationID", reservation.ID).Msg("failed to attach payment order")

		response.WithError(w, err)

		return
	}

	reservation.GatewayOrderID = &order.ID

	scope.AddEvent("Reservation created " + reservation.ID)

	response.WithCreated(w, dto.CreateReservationResponse{
		Reservation: reservation,
		Order:       order,
	})
}

// VerifyPayment confirms a reservation after a signed gateway callback.
// @Summary Verify a reservation payment
// @Description A bad signature is rejected and the reservation stays pending.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body paymentDto.VerifyPaymentRequest true "Verify Payment Request"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservations/verify-payment [post]
// @Security BearerAuth
func (handler *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyPayment")
	defer scope.End()

	req := paymentDto.VerifyPaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.paymentService.VerifyReservationPayment(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify reservation payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReservations lists the reservations visible to the caller.
// @Summary List reservations
// @Description Consumers see their own, brand owners those on their spaces and staff today's bookings.
// @Tags Reservation
// @Produce json
// @Success 200 {object} dto.GetReservationsResponse
// @Failure 403 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	res, err := handler.service.FindAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetTodayReservations lists today's confirmed and checked in bookings.
// @Summary Today's reservations
// @Tags Reservation
// @Produce json
// @Success 200 {object} dto.GetReservationsResponse
// @Failure 403 {object} response.Error
// @Router /v1/reservations/today [get]
// @Security BearerAuth
func (handler *Handler) GetTodayReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodayReservations")
	defer scope.End()

	res, err := handler.service.GetToday(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get today's reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReservation returns one reservation.
// @Summary Get a reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservation")
	defer scope.End()

	res, err := handler.service.FindOne(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetPass renders the check-in QR code of a confirmed reservation.
// @Summary Check-in pass
// @Tags Reservation
// @Produce jpeg
// @Param id path string true "Reservation ID"
// @Success 200 {file} binary
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservations/{id}/pass [get]
// @Security BearerAuth
func (handler *Handler) GetPass(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPass")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	image, err := handler.service.Pass(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render reservation pass")

		response.WithError(w, err)

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJPEG)
	w.Header().Set(headerContentDisposition, fmt.Sprintf("inline; filename=%q", "pass-"+id+".jpg"))
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(image); err != nil {
		logger.ErrorWithStack(err)
	}
}

// CancelReservation cancels the caller's reservation.
// @Summary Cancel a reservation
// @Description Allowed for pending or confirmed reservations up to two hours before start.
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservations/{id}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	res, err := handler.service.Cancel(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CheckIn checks a guest in.
// @Summary Check in
// @Description Allowed for confirmed reservations from fifteen minutes before start.
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservations/{id}/checkin [patch]
// @Security BearerAuth
func (handler *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckIn")
	defer scope.End()

	res, err := handler.service.CheckIn(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check in")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CheckOut checks a guest out.
// @Summary Check out
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/reservations/{id}/checkout [patch]
// @Security BearerAuth
func (handler *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckOut")
	defer scope.End()

	res, err := handler.service.CheckOut(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check out")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
