package conversation

import (
	"concierge/infras/whatsapp"
	"strings"
)

// Kind discriminates the parsed command union. Every inbound message maps to
// exactly one kind; anything unrecognized becomes KindUnknown and is answered
// with the fallback menu rather than dropped.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindSelection
	KindIDTypeSelection
	KindServiceRequest
	KindAdminServiceDecision
	KindImage
)

// Command is the single parse result the routers dispatch on. Raw payload
// shapes never travel past this boundary.
type Command struct {
	Kind      Kind
	Text      string
	Selection string
	IDType    string
	ServiceID string
	BookingID string
	Approve   bool
	MediaID   string
}

const (
	selectionPrefixIDType         = "select_"
	selectionPrefixService        = "service_"
	selectionPrefixConfirmService = "confirm_service_"
	selectionPrefixDeclineService = "decline_service_"
)

// Parse maps a gateway message to a Command. It is total: unparseable input
// yields KindUnknown, never an error.
func Parse(message whatsapp.InboundMessage) Command {
	switch message.Type {
	case "text":
		if message.Text == nil {
			return Command{Kind: KindUnknown}
		}

		return Command{
			Kind: KindText,
			Text: strings.ToLower(strings.TrimSpace(message.Text.Body)),
		}
	case "image":
		if message.Image == nil {
			return Command{Kind: KindUnknown}
		}

		return Command{
			Kind:    KindImage,
			MediaID: message.Image.ID,
		}
	case "interactive":
		return parseSelection(message.SelectionID())
	default:
		return Command{Kind: KindUnknown}
	}
}

func parseSelection(id string) Command {
	if id == "" {
		return Command{Kind: KindUnknown}
	}

	switch {
	case strings.HasPrefix(id, selectionPrefixConfirmService):
		return parseServiceDecision(strings.TrimPrefix(id, selectionPrefixConfirmService), true)
	case strings.HasPrefix(id, selectionPrefixDeclineService):
		return parseServiceDecision(strings.TrimPrefix(id, selectionPrefixDeclineService), false)
	case strings.HasPrefix(id, selectionPrefixIDType):
		return Command{
			Kind:   KindIDTypeSelection,
			IDType: strings.TrimPrefix(id, selectionPrefixIDType),
		}
	case strings.HasPrefix(id, selectionPrefixService):
		return Command{
			Kind:      KindServiceRequest,
			ServiceID: strings.TrimPrefix(id, selectionPrefixService),
		}
	default:
		return Command{
			Kind:      KindSelection,
			Selection: id,
		}
	}
}

// parseServiceDecision splits "<serviceID>_<bookingID>". IDs are UUIDs, so
// the last underscore-separated segment cannot be ambiguous; still, a missing
// separator degrades to KindUnknown.
func parseServiceDecision(rest string, approve bool) Command {
	idx := strings.LastIndex(rest, "_")
	if idx <= 0 || idx == len(rest)-1 {
		return Command{Kind: KindUnknown}
	}

	return Command{
		Kind:      KindAdminServiceDecision,
		ServiceID: rest[:idx],
		BookingID: rest[idx+1:],
		Approve:   approve,
	}
}
