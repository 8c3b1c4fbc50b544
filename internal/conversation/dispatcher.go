package conversation

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=./mocks/dispatcher_mock.go -package=mocks

import (
	"concierge/config"
	"concierge/infras/otel"
	"concierge/infras/whatsapp"
	"concierge/shared/constant"
	"context"

	"github.com/rs/zerolog/log"
)

// Dispatcher unwraps the webhook envelope and routes each inbound message to
// the guest or admin side of the conversation. The admin split happens on the
// sender phone before any guest lookup runs.
type Dispatcher interface {
	HandleWebhook(ctx context.Context, payload whatsapp.WebhookPayload) error
}

type dispatcherImpl struct {
	guest GuestRouter
	admin AdminRouter
	cfg   *config.Config
	otel  otel.Otel
}

func NewDispatcher(guest GuestRouter, admin AdminRouter, cfg *config.Config, otl otel.Otel) Dispatcher {
	return &dispatcherImpl{
		guest: guest,
		admin: admin,
		cfg:   cfg,
		otel:  otl,
	}
}

// HandleWebhook walks every message in the envelope. A failing message does
// not stop the rest of the batch; routers already reply with an apology, so
// the error here is only logged.
func (d *dispatcherImpl) HandleWebhook(ctx context.Context, payload whatsapp.WebhookPayload) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelConversationScope, constant.OtelConversationScope+".dispatcher.HandleWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}

			value := change.Value
			if value.Metadata.PhoneNumberID != d.cfg.WhatsApp.PhoneNumberID {
				log.Warn().Str("phoneNumberID", value.Metadata.PhoneNumberID).Msg("webhook for unknown phone number id, skipping")

				continue
			}

			for _, message := range value.Messages {
				d.route(ctx, value, message)
			}
		}
	}

	return nil
}

func (d *dispatcherImpl) route(ctx context.Context, value whatsapp.Value, message whatsapp.InboundMessage) {
	cmd := Parse(message)
	from := message.From

	if from == d.cfg.Hotel.AdminPhone {
		if err := d.admin.Handle(ctx, from, cmd); err != nil {
			log.Error().Err(err).Str("from", from).Msg("admin message handling failed")
		}

		return
	}

	if err := d.guest.Handle(ctx, from, value.SenderName(from), cmd); err != nil {
		log.Error().Err(err).Str("from", from).Msg("guest message handling failed")
	}
}
