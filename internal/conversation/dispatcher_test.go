package conversation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"concierge/config"
	"concierge/infras/otel/mocks"
	"concierge/infras/whatsapp"
	"concierge/internal/conversation"
	convMocks "concierge/internal/conversation/mocks"
)

const (
	guestPhone = "628111111111"
	adminPhone = "628999999999"
	numberID   = "pnid-1"
)

func dispatcherConfig() *config.Config {
	cfg := &config.Config{}
	cfg.WhatsApp.PhoneNumberID = numberID
	cfg.Hotel.AdminPhone = adminPhone

	return cfg
}

func envelope(from, body string) whatsapp.WebhookPayload {
	return whatsapp.WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []whatsapp.Entry{
			{
				ID: "entry-1",
				Changes: []whatsapp.Change{
					{
						Field: "messages",
						Value: whatsapp.Value{
							Metadata: whatsapp.ValueMetadata{PhoneNumberID: numberID},
							Contacts: []whatsapp.Contact{
								{
									WaID:    from,
									Profile: whatsapp.ContactProfile{Name: "Asha"},
								},
							},
							Messages: []whatsapp.InboundMessage{
								{
									From: from,
									Type: "text",
									Text: &whatsapp.Text{Body: body},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestDispatcher_GuestMessagesGoToTheGuestRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guest := convMocks.NewMockGuestRouter(ctrl)
	admin := convMocks.NewMockAdminRouter(ctrl)

	dispatcher := conversation.NewDispatcher(guest, admin, dispatcherConfig(), mocks.NewOtel())

	guest.EXPECT().
		Handle(gomock.Any(), guestPhone, "Asha", conversation.Command{
			Kind: conversation.KindText,
			Text: "hi",
		}).
		Return(nil)

	err := dispatcher.HandleWebhook(context.Background(), envelope(guestPhone, "Hi"))

	assert.NoError(t, err)
}

func TestDispatcher_AdminMessagesGoToTheAdminRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guest := convMocks.NewMockGuestRouter(ctrl)
	admin := convMocks.NewMockAdminRouter(ctrl)

	dispatcher := conversation.NewDispatcher(guest, admin, dispatcherConfig(), mocks.NewOtel())

	admin.EXPECT().
		Handle(gomock.Any(), adminPhone, conversation.Command{
			Kind: conversation.KindText,
			Text: "menu",
		}).
		Return(nil)

	err := dispatcher.HandleWebhook(context.Background(), envelope(adminPhone, "menu"))

	assert.NoError(t, err)
}

func TestDispatcher_UnknownPhoneNumberIDIsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guest := convMocks.NewMockGuestRouter(ctrl)
	admin := convMocks.NewMockAdminRouter(ctrl)

	dispatcher := conversation.NewDispatcher(guest, admin, dispatcherConfig(), mocks.NewOtel())

	payload := envelope(guestPhone, "hi")
	payload.Entry[0].Changes[0].Value.Metadata.PhoneNumberID = "someone-elses-number"

	err := dispatcher.HandleWebhook(context.Background(), payload)

	assert.NoError(t, err)
}

func TestDispatcher_NonMessageChangesAreSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guest := convMocks.NewMockGuestRouter(ctrl)
	admin := convMocks.NewMockAdminRouter(ctrl)

	dispatcher := conversation.NewDispatcher(guest, admin, dispatcherConfig(), mocks.NewOtel())

	payload := envelope(guestPhone, "hi")
	payload.Entry[0].Changes[0].Field = "statuses"

	err := dispatcher.HandleWebhook(context.Background(), payload)

	assert.NoError(t, err)
}

func TestDispatcher_RouterErrorsDoNotFailTheBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guest := convMocks.NewMockGuestRouter(ctrl)
	admin := convMocks.NewMockAdminRouter(ctrl)

	dispatcher := conversation.NewDispatcher(guest, admin, dispatcherConfig(), mocks.NewOtel())

	payload := envelope(guestPhone, "hi")
	payload.Entry[0].Changes[0].Value.Messages = append(
		payload.Entry[0].Changes[0].Value.Messages,
		whatsapp.InboundMessage{
			From: guestPhone,
			Type: "text",
			Text: &whatsapp.Text{Body: "second"},
		},
	)

	guest.EXPECT().
		Handle(gomock.Any(), guestPhone, "Asha", gomock.Any()).
		Return(errors.New("downstream failed"))
	guest.EXPECT().
		Handle(gomock.Any(), guestPhone, "Asha", conversation.Command{
			Kind: conversation.KindText,
			Text: "second",
		}).
		Return(nil)

	err := dispatcher.HandleWebhook(context.Background(), payload)

	assert.NoError(t, err)
}

func TestDispatcher_MissingContactFallsBackToThePhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guest := convMocks.NewMockGuestRouter(ctrl)
	admin := convMocks.NewMockAdminRouter(ctrl)

	dispatcher := conversation.NewDispatcher(guest, admin, dispatcherConfig(), mocks.NewOtel())

	payload := envelope(guestPhone, "hi")
	payload.Entry[0].Changes[0].Value.Contacts = nil

	guest.EXPECT().
		Handle(gomock.Any(), guestPhone, guestPhone, gomock.Any()).
		Return(nil)

	err := dispatcher.HandleWebhook(context.Background(), payload)

	assert.NoError(t, err)
}
