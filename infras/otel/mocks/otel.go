package mocks

import (
	"context"

	"spacy/infras/otel"
)

type otelImpl struct{}

// NewOtel returns a tracer whose scopes discard everything.
func NewOtel() otel.Otel {
	return &otelImpl{}
}

func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (o *otelImpl) Shutdown(context.Context) error {
	return nil
}
