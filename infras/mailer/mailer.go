package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"

	"spacy/config"
	"spacy/infras/otel"
	"spacy/shared/constant"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

type Mail struct {
	To      []string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, content Mail) error
}

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type mailerImpl struct {
	client sender
	from   string
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) Mailer {
	options := []mail.Option{
		mail.WithPort(config.SMTP.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}

	if config.SMTP.Username != constant.Empty {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(config.SMTP.Username),
			mail.WithPassword(config.SMTP.Password),
		)
	}

	client, err := mail.NewClient(config.SMTP.Host, options...)
	if err != nil {
		log.Fatal().Err(err).Str("host", config.SMTP.Host).Msg("Failed to initialize SMTP client")
	}

	return &mailerImpl{
		client: client,
		from:   config.SMTP.From,
		otel:   otel,
	}
}

func (m *mailerImpl) Send(ctx context.Context, content Mail) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute("subject", content.Subject)

	msg, err := newMessage(m.from, content)
	if err != nil {
		return err
	}

	if err = m.client.DialAndSendWithContext(ctx, msg); err != nil {
		log.Error().Err(err).Strs("to", content.To).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

func newMessage(from string, content Mail) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}

	if err := msg.To(content.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(content.Subject)
	msg.SetBodyString(mail.TypeTextPlain, content.Body)

	return msg, nil
}
