package mailer

import (
	"context"
	"errors"
	"testing"

	"spacy/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type fakeSender struct {
	sent []*mail.Msg
	err  error
}

func (f *fakeSender) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	if f.err != nil {
		return f.err
	}

	f.sent = append(f.sent, messages...)

	return nil
}

func TestMailer_Send(t *testing.T) {
	content := Mail{
		To:      []string{"guest@example.com"},
		Subject: "Reservation confirmed",
		Body:    "See you soon",
	}

	t.Run("success", func(t *testing.T) {
		sender := &fakeSender{}
		m := &mailerImpl{client: sender, from: "noreply@spacy.io", otel: mocks.NewOtel()}

		require.NoError(t, m.Send(context.Background(), content))
		require.Len(t, sender.sent, 1)
		require.Len(t, sender.sent[0].GetTo(), 1)
		assert.Equal(t, "guest@example.com", sender.sent[0].GetTo()[0].Address)
		assert.Equal(t, []string{"Reservation confirmed"}, sender.sent[0].GetGenHeader(mail.HeaderSubject))
	})

	t.Run("smtp failure", func(t *testing.T) {
		m := &mailerImpl{client: &fakeSender{err: errors.New("connection refused")}, from: "noreply@spacy.io", otel: mocks.NewOtel()}

		err := m.Send(context.Background(), content)

		assert.EqualError(t, err, "failed to send mail: connection refused")
	})

	t.Run("invalid recipient", func(t *testing.T) {
		sender := &fakeSender{}
		m := &mailerImpl{client: sender, from: "noreply@spacy.io", otel: mocks.NewOtel()}

		err := m.Send(context.Background(), Mail{To: []string{"not an address"}, Subject: "x"})

		require.Error(t, err)
		assert.Empty(t, sender.sent)
	})
}
