package payment

import (
	"context"
	"fmt"
	"strings"

	"spacy/config"
	"spacy/infras/otel"
	"spacy/shared/constant"
	"spacy/shared/failure"

	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v82"
)

const stripeMetadataReceipt = "receipt"

type stripeIntents interface {
	Create(ctx context.Context, params *stripe.PaymentIntentCreateParams) (*stripe.PaymentIntent, error)
}

type stripeRefunds interface {
	Create(ctx context.Context, params *stripe.RefundCreateParams) (*stripe.Refund, error)
}

type stripeImpl struct {
	intents stripeIntents
	refunds stripeRefunds
	otel    otel.Otel
}

func NewStripe(cfg *config.Config, otel otel.Otel) Gateway {
	sc := stripe.NewClient(cfg.Payment.Stripe.SecretKey)

	return &stripeImpl{
		intents: sc.V1PaymentIntents,
		refunds: sc.V1Refunds,
		otel:    otel,
	}
}

// CreateOrder opens a PaymentIntent. Its id serves as the order id.
func (g *stripeImpl) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (order Order, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".stripe.CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(&err)

	minor := ToMinorUnits(amount)

	scope.SetAttributes(map[string]any{
		otelAttrProvider: ProviderStripe,
		otelAttrReceipt:  receipt,
		otelAttrAmount:   minor,
	})

	intent, err := g.intents.Create(ctx, &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(minor),
		Currency: stripe.String(strings.ToLower(currency)),
		Metadata: map[string]string{stripeMetadataReceipt: receipt},
	})
	if err != nil {
		log.Error().Err(err).Str(otelAttrReceipt, receipt).Msg("failed to create stripe payment intent")

		return order, failure.Upstream(ProviderStripe, fmt.Errorf("failed to create order: %w", err)) // nolint:wrapcheck
	}

	return Order{
		ID:           intent.ID,
		Amount:       intent.Amount,
		Currency:     strings.ToUpper(string(intent.Currency)),
		Receipt:      receipt,
		Status:       string(intent.Status),
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (g *stripeImpl) Refund(ctx context.Context, paymentID string, amount float64) (refund Refund, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".stripe.Refund")
	defer scope.End()
	defer scope.TraceIfError(&err)

	minor := RefundMinorUnits(amount)

	scope.SetAttributes(map[string]any{
		otelAttrProvider: ProviderStripe,
		otelAttrAmount:   minor,
	})

	res, err := g.refunds.Create(ctx, &stripe.RefundCreateParams{
		PaymentIntent: stripe.String(paymentID),
		Amount:        stripe.Int64(minor),
	})
	if err != nil {
		log.Error().Err(err).Str("paymentID", paymentID).Msg("failed to refund stripe payment")

		return refund, failure.Upstream(ProviderStripe, fmt.Errorf("failed to process refund: %w", err)) // nolint:wrapcheck
	}

	return Refund{
		ID:        res.ID,
		PaymentID: paymentID,
		Amount:    res.Amount,
		Currency:  strings.ToUpper(string(res.Currency)),
		Status:    string(res.Status),
	}, nil
}
