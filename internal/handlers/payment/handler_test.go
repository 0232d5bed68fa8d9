package payment_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"spacy/infras/otel/mocks"
	"spacy/infras/payment"
	"spacy/internal/domains/payment/model/dto"
	serviceMocks "spacy/internal/domains/payment/service/mocks"
	"spacy/internal/domains/reservation/model"
	reservationDto "spacy/internal/domains/reservation/model/dto"
	paymentHandler "spacy/internal/handlers/payment"
	"spacy/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const reservationID = "0b7d4c8e-5f1a-4a55-b7f4-9a3c2d1e0f11"

func newServer(t *testing.T) (http.Handler, *serviceMocks.MockPayment) {
	t.Helper()

	svc := serviceMocks.NewMockPayment(gomock.NewController(t))
	handler := paymentHandler.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		body      string
		setupMock func(svc *serviceMocks.MockPayment)
		wantCode  int
		wantBody  string
	}{
		{
			name: "verify confirms",
			path: "/payments/verify",
			body: `{"order_id":"order_1","payment_id":"pay_1","signature":"abc","amount":200}`,
			setupMock: func(svc *serviceMocks.MockPayment) {
				svc.EXPECT().
					Verify(gomock.Any(), dto.VerifyPaymentRequest{OrderID: "order_1", PaymentID: "pay_1", Signature: "abc", Amount: 200}).
					Return(dto.VerifyPaymentResponse{
						Status:      dto.StatusSuccess,
						Message:     "Payment verified successfully",
						Reservation: reservationDto.ReservationResponse{ID: reservationID, Status: model.StatusConfirmed},
					}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"status":"confirmed"`,
		},
		{
			name: "verify with bad signature",
			path: "/payments/verify",
			body: `{"order_id":"order_1","payment_id":"pay_1","signature":"forged"}`,
			setupMock: func(svc *serviceMocks.MockPayment) {
				svc.EXPECT().Verify(gomock.Any(), gomock.Any()).
					Return(dto.VerifyPaymentResponse{}, failure.BadRequestFromString("Invalid payment signature"))
			},
			wantCode: http.StatusBadRequest,
			wantBody: `"error":"Invalid payment signature"`,
		},
		{
			name:      "verify needs an order",
			path:      "/payments/verify",
			body:      `{"payment_id":"pay_1","signature":"abc"}`,
			setupMock: func(*serviceMocks.MockPayment) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "refund",
			path: "/payments/refund",
			body: `{"payment_id":"pay_1","amount":200,"reservation_id":"` + reservationID + `"}`,
			setupMock: func(svc *serviceMocks.MockPayment) {
				svc.EXPECT().
					Refund(gomock.Any(), dto.RefundRequest{PaymentID: "pay_1", Amount: 200, ReservationID: reservationID}).
					Return(dto.RefundResponse{
						Status:  dto.StatusSuccess,
						Message: "Refund processed successfully",
						Refund:  payment.Refund{ID: "rfnd_1", PaymentID: "pay_1", Amount: 20000, Status: "processed"},
					}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"id":"rfnd_1"`,
		},
		{
			name:      "refund rejects malformed reservation id",
			path:      "/payments/refund",
			body:      `{"payment_id":"pay_1","amount":200,"reservation_id":"r-1"}`,
			setupMock: func(*serviceMocks.MockPayment) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "refund needs a positive amount",
			path:      "/payments/refund",
			body:      `{"payment_id":"pay_1","amount":0}`,
			setupMock: func(*serviceMocks.MockPayment) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "gateway failure",
			path: "/payments/refund",
			body: `{"payment_id":"pay_1","amount":200}`,
			setupMock: func(svc *serviceMocks.MockPayment) {
				svc.EXPECT().Refund(gomock.Any(), gomock.Any()).
					Return(dto.RefundResponse{}, failure.Upstream("razorpay", errors.New("payment already refunded")))
			},
			wantCode: http.StatusBadGateway,
			wantBody: `"error":"razorpay: payment already refunded"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, svc := newServer(t)
			tt.setupMock(svc)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantBody != "" {
				assert.Contains(t, recorder.Body.String(), tt.wantBody)
			}
		})
	}
}
