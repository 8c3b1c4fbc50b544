package whatsapp

// Webhook payload shapes as delivered by the Cloud API. Only the fields the
// router consumes are mapped.

type WebhookPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

type Value struct {
	MessagingProduct string           `json:"messaging_product"`
	Metadata         ValueMetadata    `json:"metadata"`
	Contacts         []Contact        `json:"contacts"`
	Messages         []InboundMessage `json:"messages"`
}

type ValueMetadata struct {
	DisplayPhoneNumber string `json:"display_phone_number"`
	PhoneNumberID      string `json:"phone_number_id"`
}

type Contact struct {
	WaID    string         `json:"wa_id"`
	Profile ContactProfile `json:"profile"`
}

type ContactProfile struct {
	Name string `json:"name"`
}

type InboundMessage struct {
	From        string       `json:"from"`
	ID          string       `json:"id"`
	Timestamp   string       `json:"timestamp"`
	Type        string       `json:"type"`
	Text        *Text        `json:"text,omitempty"`
	Image       *Image       `json:"image,omitempty"`
	Interactive *Interactive `json:"interactive,omitempty"`
}

type Text struct {
	Body string `json:"body"`
}

type Image struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	Caption  string `json:"caption,omitempty"`
}

type Interactive struct {
	Type        string       `json:"type"`
	ButtonReply *ReplyOption `json:"button_reply,omitempty"`
	ListReply   *ReplyOption `json:"list_reply,omitempty"`
}

type ReplyOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SelectionID returns the id of whichever interactive reply is present.
func (m *InboundMessage) SelectionID() string {
	if m.Interactive == nil {
		return ""
	}

	if m.Interactive.ButtonReply != nil {
		return m.Interactive.ButtonReply.ID
	}

	if m.Interactive.ListReply != nil {
		return m.Interactive.ListReply.ID
	}

	return ""
}

// SenderName returns the profile name for the sender, falling back to the
// phone number when the contact block is missing.
func (v *Value) SenderName(from string) string {
	for _, contact := range v.Contacts {
		if contact.WaID == from && contact.Profile.Name != "" {
			return contact.Profile.Name
		}
	}

	return from
}
