package webhook_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"concierge/config"
	"concierge/infras/otel/mocks"
	convMocks "concierge/internal/conversation/mocks"
	"concierge/internal/handlers/webhook"
)

func newWebhookServer(t *testing.T, dispatcher *convMocks.MockDispatcher) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.WhatsApp.VerifyToken = "verify-secret"

	handler := webhook.New(dispatcher, cfg, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func TestWebhookHandler_Verify(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid handshake echoes the challenge verbatim",
			query:      "hub.mode=subscribe&hub.verify_token=verify-secret&hub.challenge=12345",
			wantStatus: http.StatusOK,
			wantBody:   "12345",
		},
		{
			name:       "wrong token is forbidden",
			query:      "hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "wrong mode is forbidden",
			query:      "hub.mode=unsubscribe&hub.verify_token=verify-secret&hub.challenge=12345",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing parameters are forbidden",
			query:      "",
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			server := newWebhookServer(t, convMocks.NewMockDispatcher(ctrl))

			request := httptest.NewRequest(http.MethodGet, "/webhook/?"+tt.query, nil)
			recorder := httptest.NewRecorder()

			server.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestWebhookHandler_Receive(t *testing.T) {
	validPayload := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "entry-1",
			"changes": [{
				"field": "messages",
				"value": {
					"metadata": {"phone_number_id": "pnid-1"},
					"messages": [{"from": "628111", "type": "text", "text": {"body": "hi"}}]
				}
			}]
		}]
	}`

	t.Run("parsed envelope is acknowledged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		dispatcher := convMocks.NewMockDispatcher(ctrl)
		dispatcher.EXPECT().HandleWebhook(gomock.Any(), gomock.Any()).Return(nil)

		server := newWebhookServer(t, dispatcher)

		request := httptest.NewRequest(http.MethodPost, "/webhook/", strings.NewReader(validPayload))
		recorder := httptest.NewRecorder()

		server.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "EVENT_RECEIVED")
	})

	t.Run("dispatch failure still acknowledges so the platform does not retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		dispatcher := convMocks.NewMockDispatcher(ctrl)
		dispatcher.EXPECT().HandleWebhook(gomock.Any(), gomock.Any()).Return(assert.AnError)

		server := newWebhookServer(t, dispatcher)

		request := httptest.NewRequest(http.MethodPost, "/webhook/", strings.NewReader(validPayload))
		recorder := httptest.NewRecorder()

		server.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "EVENT_RECEIVED")
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		server := newWebhookServer(t, convMocks.NewMockDispatcher(ctrl))

		request := httptest.NewRequest(http.MethodPost, "/webhook/", strings.NewReader("{not-json"))
		recorder := httptest.NewRecorder()

		server.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
