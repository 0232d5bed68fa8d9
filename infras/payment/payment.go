package payment

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=./mocks/payment_mock.go -package=mocks

import (
	"context"
	"math"
	"strings"

	"spacy/config"
	"spacy/infras/otel"

	"github.com/rs/zerolog/log"
)

const (
	ProviderRazorpay = "razorpay"
	ProviderStripe   = "stripe"

	minorUnitFactor = 100

	otelAttrProvider = "provider"
	otelAttrReceipt  = "receipt"
	otelAttrAmount   = "amount"
)

// Order is the gateway-side handle the client completes payment against.
// Amount is in minor units.
type Order struct {
	ID           string `json:"id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Receipt      string `json:"receipt"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret,omitempty"`
}

type Refund struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency,omitempty"`
	Status    string `json:"status"`
}

type Gateway interface {
	// CreateOrder opens an order for amount major units.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (Order, error)
	// Refund returns amount major units of paymentID.
	Refund(ctx context.Context, paymentID string, amount float64) (Refund, error)
}

func New(cfg *config.Config, otel otel.Otel) Gateway {
	switch strings.ToLower(cfg.Payment.Provider) {
	case ProviderStripe:
		log.Info().Str(otelAttrProvider, ProviderStripe).Msg("payment gateway initialized")

		return NewStripe(cfg, otel)
	default:
		log.Info().Str(otelAttrProvider, ProviderRazorpay).Msg("payment gateway initialized")

		return NewRazorpay(cfg, otel)
	}
}

// ToMinorUnits converts whole currency units to the gateway's smallest unit.
func ToMinorUnits(amount int64) int64 {
	return amount * minorUnitFactor
}

// RefundMinorUnits converts a possibly fractional amount, rounding to the nearest minor unit.
func RefundMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * minorUnitFactor))
}
