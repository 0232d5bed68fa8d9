package payment

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"spacy/config"
	"spacy/infras/otel/mocks"
	"spacy/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

type fakeRazorpayOrders struct {
	got  map[string]interface{}
	body map[string]interface{}
	err  error
}

func (f *fakeRazorpayOrders) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	f.got = data

	return f.body, f.err
}

type fakeRazorpayPayments struct {
	paymentID string
	amount    int
	body      map[string]interface{}
	err       error
}

func (f *fakeRazorpayPayments) Refund(paymentID string, amount int, _ map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	f.paymentID = paymentID
	f.amount = amount

	return f.body, f.err
}

type fakeStripeIntents struct {
	got *stripe.PaymentIntentCreateParams
	err error
}

func (f *fakeStripeIntents) Create(_ context.Context, params *stripe.PaymentIntentCreateParams) (*stripe.PaymentIntent, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}

	return &stripe.PaymentIntent{
		ID:           "pi_123",
		Amount:       *params.Amount,
		Currency:     stripe.Currency(*params.Currency),
		Status:       stripe.PaymentIntentStatusRequiresPaymentMethod,
		ClientSecret: "pi_123_secret",
	}, nil
}

type fakeStripeRefunds struct {
	got *stripe.RefundCreateParams
	err error
}

func (f *fakeStripeRefunds) Create(_ context.Context, params *stripe.RefundCreateParams) (*stripe.Refund, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}

	return &stripe.Refund{
		ID:       "re_123",
		Amount:   *params.Amount,
		Currency: stripe.CurrencyINR,
		Status:   stripe.RefundStatusSucceeded,
	}, nil
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(20000), ToMinorUnits(200))
	assert.Equal(t, int64(0), ToMinorUnits(0))

	assert.Equal(t, int64(15050), RefundMinorUnits(150.5))
	assert.Equal(t, int64(1000), RefundMinorUnits(9.999))
	assert.Equal(t, int64(1), RefundMinorUnits(0.005))
}

func TestNew(t *testing.T) {
	cfg := &config.Config{}

	cfg.Payment.Provider = "STRIPE"
	assert.IsType(t, &stripeImpl{}, New(cfg, mocks.NewOtel()))

	cfg.Payment.Provider = "razorpay"
	assert.IsType(t, &razorpayImpl{}, New(cfg, mocks.NewOtel()))

	cfg.Payment.Provider = ""
	assert.IsType(t, &razorpayImpl{}, New(cfg, mocks.NewOtel()))
}

func TestRazorpay_CreateOrder(t *testing.T) {
	tests := []struct {
		name     string
		orders   *fakeRazorpayOrders
		wantErr  bool
		expected Order
	}{
		{
			name: "success",
			orders: &fakeRazorpayOrders{body: map[string]interface{}{
				"id":       "order_abc",
				"amount":   float64(20000),
				"currency": "INR",
				"receipt":  "receipt_r1",
				"status":   "created",
			}},
			expected: Order{ID: "order_abc", Amount: 20000, Currency: "INR", Receipt: "receipt_r1", Status: "created"},
		},
		{
			name:    "gateway error",
			orders:  &fakeRazorpayOrders{err: errors.New("BAD_REQUEST_ERROR")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &razorpayImpl{orders: tt.orders, otel: mocks.NewOtel()}

			order, err := gateway.CreateOrder(context.Background(), 200, "INR", "receipt_r1")

			assert.Equal(t, int64(20000), tt.orders.got["amount"])
			assert.Equal(t, "receipt_r1", tt.orders.got["receipt"])

			if tt.wantErr {
				assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, order)
		})
	}
}

func TestRazorpay_Refund(t *testing.T) {
	payments := &fakeRazorpayPayments{body: map[string]interface{}{
		"id":       "rfnd_1",
		"amount":   float64(15050),
		"currency": "INR",
		"status":   "processed",
	}}
	gateway := &razorpayImpl{payments: payments, otel: mocks.NewOtel()}

	refund, err := gateway.Refund(context.Background(), "pay_1", 150.5)

	require.NoError(t, err)
	assert.Equal(t, "pay_1", payments.paymentID)
	assert.Equal(t, 15050, payments.amount)
	assert.Equal(t, Refund{ID: "rfnd_1", PaymentID: "pay_1", Amount: 15050, Currency: "INR", Status: "processed"}, refund)

	payments.err = errors.New("payment already refunded")

	_, err = gateway.Refund(context.Background(), "pay_1", 150.5)

	assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	assert.Contains(t, err.Error(), "razorpay")
}

func TestStripe_CreateOrder(t *testing.T) {
	intents := &fakeStripeIntents{}
	gateway := &stripeImpl{intents: intents, otel: mocks.NewOtel()}

	order, err := gateway.CreateOrder(context.Background(), 150, "INR", "receipt_r2")

	require.NoError(t, err)
	assert.Equal(t, int64(15000), *intents.got.Amount)
	assert.Equal(t, "inr", *intents.got.Currency)
	assert.Equal(t, "receipt_r2", intents.got.Metadata["receipt"])
	assert.Equal(t, Order{
		ID:           "pi_123",
		Amount:       15000,
		Currency:     "INR",
		Receipt:      "receipt_r2",
		Status:       "requires_payment_method",
		ClientSecret: "pi_123_secret",
	}, order)

	intents.err = errors.New("card_declined")

	_, err = gateway.CreateOrder(context.Background(), 150, "INR", "receipt_r2")

	assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
}

func TestStripe_Refund(t *testing.T) {
	refunds := &fakeStripeRefunds{}
	gateway := &stripeImpl{refunds: refunds, otel: mocks.NewOtel()}

	refund, err := gateway.Refund(context.Background(), "pi_123", 99.99)

	require.NoError(t, err)
	assert.Equal(t, "pi_123", *refunds.got.PaymentIntent)
	assert.Equal(t, int64(9999), *refunds.got.Amount)
	assert.Equal(t, "succeeded", refund.Status)

	refunds.err = errors.New("charge_already_refunded")

	_, err = gateway.Refund(context.Background(), "pi_123", 99.99)

	assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
}
