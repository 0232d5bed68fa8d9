package payment

import (
	"context"
	"fmt"

	"spacy/config"
	"spacy/infras/otel"
	"spacy/shared/constant"
	"spacy/shared/failure"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog/log"
)

type razorpayOrders interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type razorpayPayments interface {
	Refund(paymentID string, amount int, data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type razorpayImpl struct {
	orders   razorpayOrders
	payments razorpayPayments
	otel     otel.Otel
}

func NewRazorpay(cfg *config.Config, otel otel.Otel) Gateway {
	client := razorpay.NewClient(cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret)

	return &razorpayImpl{
		orders:   client.Order,
		payments: client.Payment,
		otel:     otel,
	}
}

func (g *razorpayImpl) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (order Order, err error) {
	_, scope := g.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".razorpay.CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(&err)

	minor := ToMinorUnits(amount)

	scope.SetAttributes(map[string]any{
		otelAttrProvider: ProviderRazorpay,
		otelAttrReceipt:  receipt,
		otelAttrAmount:   minor,
	})

	body, err := g.orders.Create(map[string]interface{}{
		"amount":   minor,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		log.Error().Err(err).Str(otelAttrReceipt, receipt).Msg("failed to create razorpay order")

		return order, failure.Upstream(ProviderRazorpay, fmt.Errorf("failed to create order: %w", err)) // nolint:wrapcheck
	}

	return Order{
		ID:       stringField(body, "id"),
		Amount:   intField(body, "amount", minor),
		Currency: stringField(body, "currency"),
		Receipt:  stringField(body, "receipt"),
		Status:   stringField(body, "status"),
	}, nil
}

func (g *razorpayImpl) Refund(ctx context.Context, paymentID string, amount float64) (refund Refund, err error) {
	_, scope := g.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".razorpay.Refund")
	defer scope.End()
	defer scope.TraceIfError(&err)

	minor := RefundMinorUnits(amount)

	scope.SetAttributes(map[string]any{
		otelAttrProvider: ProviderRazorpay,
		otelAttrAmount:   minor,
	})

	body, err := g.payments.Refund(paymentID, int(minor), nil, nil)
	if err != nil {
		log.Error().Err(err).Str("paymentID", paymentID).Msg("failed to refund razorpay payment")

		return refund, failure.Upstream(ProviderRazorpay, fmt.Errorf("failed to process refund: %w", err)) // nolint:wrapcheck
	}

	return Refund{
		ID:        stringField(body, "id"),
		PaymentID: paymentID,
		Amount:    intField(body, "amount", minor),
		Currency:  stringField(body, "currency"),
		Status:    stringField(body, "status"),
	}, nil
}

func stringField(body map[string]interface{}, key string) string {
	value, _ := body[key].(string)

	return value
}

// intField reads a JSON number, falling back when the gateway omits it.
func intField(body map[string]interface{}, key string, fallback int64) int64 {
	switch value := body[key].(type) {
	case float64:
		return int64(value)
	case int64:
		return value
	case int:
		return int64(value)
	default:
		return fallback
	}
}
