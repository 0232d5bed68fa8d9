package payment

import (
	"net/http"

	"spacy/infras/otel"
	"spacy/internal/domains/payment/model/dto"
	"spacy/internal/domains/payment/service"
	"spacy/shared/constant"
	"spacy/shared/validator"
	"spacy/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/verify", handler.Verify)
		routerGroup.Post("/refund", handler.Refund)
	})
}

// Verify applies a signed gateway payment to its reservation.
// @Summary Verify a payment
// @Description A bad signature cancels the pending reservation.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.VerifyPaymentRequest true "Verify Payment Request"
// @Success 200 {object} dto.VerifyPaymentResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/payments/verify [post]
// @Security BearerAuth
func (handler *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Verify")
	defer scope.End()

	req := dto.VerifyPaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Verify(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Refund returns money for a captured payment.
// @Summary Refund a payment
// @Description With reservation_id the reservation must be confirmed, paid by payment_id and owned by the caller. It is cancelled afterwards.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.RefundRequest true "Refund Request"
// @Success 200 {object} dto.RefundResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/payments/refund [post]
// @Security BearerAuth
func (handler *Handler) Refund(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Refund")
	defer scope.End()

	req := dto.RefundRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Refund(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refund payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Refund issued " + res.Refund.ID)

	response.WithJSON(w, http.StatusOK, res)
}
