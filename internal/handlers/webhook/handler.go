package webhook

import (
	"concierge/config"
	"concierge/infras/otel"
	"concierge/infras/whatsapp"
	"concierge/internal/conversation"
	"concierge/shared/constant"
	"concierge/shared/failure"
	"concierge/transport/http/response"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	paramHubMode        = "hub.mode"
	paramHubVerifyToken = "hub.verify_token"
	paramHubChallenge   = "hub.challenge"

	hubModeSubscribe = "subscribe"
)

// Handler terminates the Cloud API webhook: the GET verification handshake
// and the POST message deliveries.
type Handler struct {
	dispatcher conversation.Dispatcher
	cfg        *config.Config
	otel       otel.Otel
}

func New(dispatcher conversation.Dispatcher, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		dispatcher: dispatcher,
		cfg:        cfg,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/webhook", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.Verify)
		routerGroup.Post("/", handler.Receive)
	})
}

// Verify answers the subscription handshake. The challenge must be echoed
// back verbatim as plain text, otherwise the platform rejects the webhook.
func (handler *Handler) Verify(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".webhook.Verify")
	defer scope.End()

	query := request.URL.Query()

	mode := query.Get(paramHubMode)
	token := query.Get(paramHubVerifyToken)
	challenge := query.Get(paramHubChallenge)

	if mode != hubModeSubscribe || token != handler.cfg.WhatsApp.VerifyToken {
		err := failure.Forbidden("webhook verification failed")
		scope.TraceError(err)
		log.Warn().Str("mode", mode).Msg("webhook verification rejected")

		response.WithError(writer, err)

		return
	}

	response.WithPlainText(writer, http.StatusOK, challenge)
}

// Receive accepts a message delivery. The envelope is acknowledged as soon as
// it parses; routing failures are handled inside the conversation layer and
// must not make the platform retry the delivery.
func (handler *Handler) Receive(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".webhook.Receive")
	defer scope.End()

	payload := whatsapp.WebhookPayload{}
	if err := json.NewDecoder(request.Body).Decode(&payload); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode webhook payload")

		response.WithError(writer, failure.BadRequestFromString("invalid webhook payload"))

		return
	}

	if err := handler.dispatcher.HandleWebhook(ctx, payload); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle webhook payload")
	}

	response.WithMessage(writer, http.StatusOK, "EVENT_RECEIVED")
}
