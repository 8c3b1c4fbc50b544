package conversation

//go:generate go run go.uber.org/mock/mockgen -source=./guest.go -destination=./mocks/guest_mock.go -package=mocks

import (
	"concierge/config"
	"concierge/infras/otel"
	"concierge/infras/whatsapp"
	bookingModel "concierge/internal/domains/booking/model"
	bookingService "concierge/internal/domains/booking/service"
	catalogModel "concierge/internal/domains/catalog/model"
	catalogRepo "concierge/internal/domains/catalog/repository"
	roomRepo "concierge/internal/domains/room/repository"
	verificationService "concierge/internal/domains/verification/service"
	"concierge/internal/links"
	"concierge/internal/scheduler"
	"concierge/shared/constant"
	gDto "concierge/shared/dto"
	"concierge/shared/failure"
	gModel "concierge/shared/model"
	"concierge/shared/timezone"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	followUpKeyPrefix = "followup:"
	followUpDelay     = 5 * time.Minute
)

// GuestRouter drives the guest side of the conversation. Handle is a
// boundary: every turn ends in a reply, and internal failures degrade to an
// apology instead of silence.
type GuestRouter interface {
	Handle(ctx context.Context, from, name string, cmd Command) error
}

type guestRouter struct {
	bookings     bookingService.Booking
	verification verificationService.Verification
	links        links.Service
	catalog      catalogRepo.Catalog
	rooms        roomRepo.Room
	gateway      whatsapp.Client
	scheduler    scheduler.Scheduler
	cfg          *config.Config
	otel         otel.Otel
}

func NewGuestRouter(
	bookings bookingService.Booking,
	verification verificationService.Verification,
	linkService links.Service,
	catalog catalogRepo.Catalog,
	rooms roomRepo.Room,
	gateway whatsapp.Client,
	sched scheduler.Scheduler,
	cfg *config.Config,
	otl otel.Otel,
) GuestRouter {
	return &guestRouter{
		bookings:     bookings,
		verification: verification,
		links:        linkService,
		catalog:      catalog,
		rooms:        rooms,
		gateway:      gateway,
		scheduler:    sched,
		cfg:          cfg,
		otel:         otl,
	}
}

func (r *guestRouter) Handle(ctx context.Context, from, name string, cmd Command) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelConversationScope, constant.OtelConversationScope+".guest.Handle")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.dispatch(ctx, from, name, cmd)
	if err == nil {
		return nil
	}

	log.Error().Err(err).Str("from", from).Msg("guest conversation turn failed")

	// Guest-caused rejections carry a human-readable message; everything
	// else collapses to the generic apology.
	reply := msgApology
	if failure.GetCode(err) != http.StatusInternalServerError {
		reply = err.Error()
	}

	if sendErr := r.gateway.SendText(ctx, from, reply); sendErr != nil {
		log.Error().Err(sendErr).Str("from", from).Msg("failed to send apology")
	}

	return err
}

func (r *guestRouter) dispatch(ctx context.Context, from, name string, cmd Command) error {
	switch cmd.Kind {
	case KindText:
		return r.handleText(ctx, from, name, cmd.Text)
	case KindSelection:
		return r.handleSelection(ctx, from, name, cmd.Selection)
	case KindIDTypeSelection:
		return r.handleIDTypeSelection(ctx, from, cmd.IDType)
	case KindServiceRequest:
		return r.handleServiceRequest(ctx, from, cmd.ServiceID)
	case KindImage:
		return r.handleImage(ctx, from, cmd.MediaID)
	case KindAdminServiceDecision, KindUnknown:
		return r.sendFallback(ctx, from)
	default:
		return r.sendFallback(ctx, from)
	}
}

func (r *guestRouter) handleText(ctx context.Context, from, name, text string) error {
	switch text {
	case "hi", "hello", "hey", "menu", "start":
		return r.sendGreeting(ctx, from, name)
	case "checkin", "check in", "check-in":
		return r.startCheckIn(ctx, from)
	case "services", "service":
		return r.sendServiceCategories(ctx, from)
	default:
		return r.sendFallback(ctx, from)
	}
}

//nolint:cyclop // flat dispatch over the closed selection set
func (r *guestRouter) handleSelection(ctx context.Context, from, name, selection string) error {
	switch selection {
	case SelectionBookRoom:
		return r.handleBookRoom(ctx, from)
	case SelectionViewBookings:
		return r.sendActiveBooking(ctx, from)
	case SelectionModifyBooking:
		return r.sendModifyLink(ctx, from)
	case SelectionCancelBooking:
		return r.gateway.SendButtons(ctx, from, msgCancelConfirm, []whatsapp.Button{
			{ID: SelectionConfirmCancel, Title: "Yes, cancel"},
			{ID: SelectionKeepBooking, Title: "Keep booking"},
		})
	case SelectionConfirmCancel:
		return r.cancelActiveBooking(ctx, from)
	case SelectionKeepBooking:
		return r.gateway.SendText(ctx, from, msgKeepBooking)
	case SelectionContactUs:
		return r.gateway.SendText(ctx, from, contactCard(r.cfg))
	case SelectionLocation:
		return r.gateway.SendLocation(ctx, from, r.cfg.Hotel.Latitude, r.cfg.Hotel.Longitude, r.cfg.Hotel.Name, r.cfg.Hotel.Address)
	case SelectionOurServices:
		return r.sendHotelInfoList(ctx, from)
	case SelectionRoomsGallery:
		return r.sendRoomsGallery(ctx, from)
	case SelectionCheckAvailability:
		return r.sendModifyLink(ctx, from)
	case SelectionDining:
		return r.gateway.SendText(ctx, from, diningCard(r.cfg))
	case SelectionSpa:
		if r.cfg.Hotel.SpaImageURL != constant.Empty {
			return r.gateway.SendMedia(ctx, from, r.cfg.Hotel.SpaImageURL, spaCard(r.cfg))
		}

		return r.gateway.SendText(ctx, from, spaCard(r.cfg))
	case SelectionRoomService, SelectionServices:
		return r.sendServiceCategories(ctx, from)
	case SelectionFoodMenu:
		return r.sendCategoryMenu(ctx, from, catalogModel.CategoryFood, "🍽️ Food & Beverages")
	case SelectionHousekeepingMenu:
		return r.sendCategoryMenu(ctx, from, catalogModel.CategoryHousekeeping, "🧹 Housekeeping")
	case SelectionAmenitiesMenu:
		return r.sendCategoryMenu(ctx, from, catalogModel.CategoryAmenities, "🛁 Amenities")
	case SelectionMaintenanceMenu:
		return r.sendCategoryMenu(ctx, from, catalogModel.CategoryMaintenance, "🔧 Maintenance")
	case SelectionStartCheckin:
		return r.startCheckIn(ctx, from)
	case SelectionVerifyCorrect:
		return r.handleVerifyCorrect(ctx, from, name)
	case SelectionVerifyIncorrect:
		return r.handleVerifyIncorrect(ctx, from)
	default:
		return r.sendFallback(ctx, from)
	}
}

// sendGreeting opens the conversation. The welcome image is fire-and-continue:
// a media failure never blocks the menu.
func (r *guestRouter) sendGreeting(ctx context.Context, from, name string) error {
	booking, err := r.bookings.ActiveByPhone(ctx, from)
	if err != nil {
		return err
	}

	hasBooking := booking.ID != constant.Empty

	if r.cfg.Hotel.WelcomeImageURL != constant.Empty {
		if mediaErr := r.gateway.SendMedia(ctx, from, r.cfg.Hotel.WelcomeImageURL, constant.Empty); mediaErr != nil {
			log.Error().Err(mediaErr).Str("from", from).Msg("failed to send welcome image")
		}
	}

	firstButton := whatsapp.Button{ID: SelectionBookRoom, Title: "Book a room"}
	if hasBooking {
		firstButton = whatsapp.Button{ID: SelectionViewBookings, Title: "My booking"}
	}

	return r.gateway.SendButtons(ctx, from, greetingBody(name, hasBooking, r.cfg), []whatsapp.Button{
		firstButton,
		{ID: SelectionOurServices, Title: "Our services"},
		{ID: SelectionContactUs, Title: "Contact us"},
	})
}

func (r *guestRouter) sendFallback(ctx context.Context, from string) error {
	return r.gateway.SendButtons(ctx, from, msgFallback, []whatsapp.Button{
		{ID: SelectionBookRoom, Title: "Book a room"},
		{ID: SelectionOurServices, Title: "Our services"},
		{ID: SelectionContactUs, Title: "Contact us"},
	})
}

// handleBookRoom hands out the booking form link and arms a one-shot follow-up
// nudge. The follow-up re-checks at fire time and stays silent when the guest
// completed the form in the meantime.
func (r *guestRouter) handleBookRoom(ctx context.Context, from string) error {
	active, err := r.bookings.ActiveByPhone(ctx, from)
	if err != nil {
		return err
	}

	if active.ID != constant.Empty {
		return r.gateway.SendButtons(ctx, from,
			"You already have an active booking. Would you like to view or change it?",
			[]whatsapp.Button{
				{ID: SelectionViewBookings, Title: "View booking"},
				{ID: SelectionModifyBooking, Title: "Modify"},
				{ID: SelectionCancelBooking, Title: "Cancel booking"},
			})
	}

	url, err := r.links.IssueBookingLink(ctx, from)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Great choice! 🏨 Please fill in your booking details here:\n\n%s\n\nThe link is valid for %d minutes and can be used once.", url, r.cfg.JWT.LinkExpireMin)
	if err = r.gateway.SendText(ctx, from, message); err != nil {
		return err
	}

	r.scheduler.Schedule(followUpKeyPrefix+from, timezone.Now().Add(followUpDelay), func(taskCtx context.Context) {
		booked, followErr := r.bookings.ActiveByPhone(taskCtx, from)
		if followErr != nil {
			log.Error().Err(followErr).Str("from", from).Msg("booking follow-up check failed")

			return
		}

		if booked.ID != constant.Empty {
			return
		}

		nudge := "Still thinking it over? 🤔 Your booking link is waiting — reply *book* anytime and we'll send a fresh one."
		if sendErr := r.gateway.SendText(taskCtx, from, nudge); sendErr != nil {
			log.Error().Err(sendErr).Str("from", from).Msg("failed to send booking follow-up")
		}
	})

	return nil
}

func (r *guestRouter) activeBooking(ctx context.Context, from string) (bookingModel.BookingWithGuest, error) {
	booking, err := r.bookings.ActiveByPhone(ctx, from)
	if err != nil {
		return booking, err
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(msgNoBooking) //nolint:wrapcheck
	}

	return booking, nil
}

func (r *guestRouter) sendActiveBooking(ctx context.Context, from string) error {
	booking, err := r.bookings.ActiveByPhone(ctx, from)
	if err != nil {
		return err
	}

	if booking.ID == constant.Empty {
		return r.gateway.SendButtons(ctx, from, msgNoBooking, []whatsapp.Button{
			{ID: SelectionBookRoom, Title: "Book a room"},
		})
	}

	buttons := []whatsapp.Button{
		{ID: SelectionModifyBooking, Title: "Modify"},
		{ID: SelectionCancelBooking, Title: "Cancel booking"},
	}

	if booking.CheckinStatus != bookingModel.CheckinStatusCheckedIn {
		buttons = append(buttons, whatsapp.Button{ID: SelectionStartCheckin, Title: "Check in now"})
	}

	return r.gateway.SendButtons(ctx, from, bookingDetails(booking), buttons)
}

func (r *guestRouter) sendModifyLink(ctx context.Context, from string) error {
	url, err := r.links.IssueBookingLink(ctx, from)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("You can review availability and update your stay here:\n\n%s\n\nThe link is valid for %d minutes.", url, r.cfg.JWT.LinkExpireMin)

	return r.gateway.SendText(ctx, from, message)
}

func (r *guestRouter) cancelActiveBooking(ctx context.Context, from string) error {
	booking, err := r.activeBooking(ctx, from)
	if err != nil {
		return err
	}

	if err = r.bookings.Cancel(ctx, booking.ID); err != nil {
		return err
	}

	return r.gateway.SendText(ctx, from, msgCancelDone)
}

func (r *guestRouter) sendHotelInfoList(ctx context.Context, from string) error {
	sections := []whatsapp.Section{
		{
			Title: "Explore " + r.cfg.Hotel.Name,
			Rows: []whatsapp.Row{
				{ID: SelectionRoomsGallery, Title: "Rooms & rates", Description: "Photos and prices for every room type"},
				{ID: SelectionDining, Title: "Dining", Description: "Restaurant hours and room service"},
				{ID: SelectionSpa, Title: "Spa & wellness", Description: "Treatments and opening hours"},
				{ID: SelectionLocation, Title: "How to find us", Description: "Pin with directions"},
				{ID: SelectionCheckAvailability, Title: "Check availability", Description: "See open dates and book"},
			},
		},
	}

	return r.gateway.SendList(ctx, from, "Here is what we offer. What would you like to see?", "Explore", sections)
}

// sendRoomsGallery walks the room types and pushes one photo message per
// room. Rooms without photos degrade to a text card.
func (r *guestRouter) sendRoomsGallery(ctx context.Context, from string) error {
	rooms, err := r.rooms.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		return err
	}

	if len(rooms) == 0 {
		return r.gateway.SendText(ctx, from, "Our room catalogue is being refreshed right now. Please check back soon!")
	}

	for _, room := range rooms {
		caption := fmt.Sprintf("*%s* — $%.2f per night", strings.Title(room.Type), room.Price) //nolint:staticcheck

		photos, photoErr := r.rooms.GetPhotos(ctx, room.ID)
		if photoErr != nil {
			log.Error().Err(photoErr).Str("roomID", room.ID).Msg("failed to get room photos")
		}

		if len(photos) == 0 {
			if err = r.gateway.SendText(ctx, from, caption); err != nil {
				return err
			}

			continue
		}

		if err = r.gateway.SendMedia(ctx, from, photos[0].PhotoURL, caption); err != nil {
			return err
		}
	}

	return r.gateway.SendButtons(ctx, from, "Like what you see?", []whatsapp.Button{
		{ID: SelectionBookRoom, Title: "Book a room"},
		{ID: SelectionCheckAvailability, Title: "Availability"},
	})
}

// sendServiceCategories gates in-room services on an active checked-in stay.
func (r *guestRouter) sendServiceCategories(ctx context.Context, from string) error {
	booking, err := r.bookings.ActiveByPhone(ctx, from)
	if err != nil {
		return err
	}

	if booking.ID == constant.Empty || booking.CheckinStatus != bookingModel.CheckinStatusCheckedIn {
		return r.gateway.SendText(ctx, from, msgServicesGate)
	}

	sections := []whatsapp.Section{
		{
			Title: "In-room services",
			Rows: []whatsapp.Row{
				{ID: SelectionFoodMenu, Title: "Food & beverages", Description: "Order from our room service menu"},
				{ID: SelectionHousekeepingMenu, Title: "Housekeeping", Description: "Cleaning, towels, turndown"},
				{ID: SelectionAmenitiesMenu, Title: "Amenities", Description: "Extra pillows, toiletries and more"},
				{ID: SelectionMaintenanceMenu, Title: "Maintenance", Description: "Report anything not working"},
			},
		},
	}

	return r.gateway.SendList(ctx, from, fmt.Sprintf("Room %s, at your service! 🛎️ What do you need?", booking.RoomNumber), "Services", sections)
}

func (r *guestRouter) sendCategoryMenu(ctx context.Context, from, category, title string) error {
	services, err := r.catalog.GetServices(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    catalogModel.ServiceFieldCategory,
				Value:    category,
				Operator: gDto.FilterOperatorEq,
				Table:    catalogModel.ServiceTableName,
			},
			gDto.Filter{
				ArgName:  "available",
				Field:    catalogModel.ServiceFieldAvailability,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    catalogModel.ServiceTableName,
			},
		},
	})
	if err != nil {
		return err
	}

	if len(services) == 0 {
		return r.gateway.SendText(ctx, from, "Nothing is available in this category right now. 🙏 Please check again later.")
	}

	rows := make([]whatsapp.Row, 0, len(services))
	for _, service := range services {
		description := service.Description
		if service.Price > 0 {
			description = fmt.Sprintf("$%.2f — %s", service.Price, service.Description)
		}

		rows = append(rows, whatsapp.Row{
			ID:          selectionPrefixService + service.ID,
			Title:       service.Name,
			Description: description,
		})
	}

	sections := []whatsapp.Section{{Title: title, Rows: rows}}

	return r.gateway.SendList(ctx, from, "Pick an item and we'll take care of the rest.", "Select", sections)
}

// handleServiceRequest records a pending request and puts the decision in
// front of the admin with confirm/decline buttons.
func (r *guestRouter) handleServiceRequest(ctx context.Context, from, serviceID string) error {
	booking, err := r.bookings.ActiveByPhone(ctx, from)
	if err != nil {
		return err
	}

	if booking.ID == constant.Empty || booking.CheckinStatus != bookingModel.CheckinStatusCheckedIn {
		return r.gateway.SendText(ctx, from, msgServicesGate)
	}

	service, err := r.catalog.GetService(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    catalogModel.ServiceFieldID,
				Value:    serviceID,
				Operator: gDto.FilterOperatorEq,
				Table:    catalogModel.ServiceTableName,
			},
		},
	})
	if err != nil {
		return err
	}

	if service.ID == constant.Empty {
		return failure.NotFound("that service is no longer offered") //nolint:wrapcheck
	}

	now := timezone.Now()
	request := catalogModel.ServiceRequest{
		ID:        uuid.New().String(),
		BookingID: booking.ID,
		ServiceID: service.ID,
		Status:    catalogModel.RequestStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}

	if err = r.catalog.InsertRequest(ctx, request); err != nil {
		return err
	}

	if err = r.gateway.SendText(ctx, from, serviceRequestReceived(service)); err != nil {
		return err
	}

	adminBody := fmt.Sprintf(
		"🛎️ *New service request*\n\nGuest: %s (room %s)\nService: %s (%s)\nPrice: $%.2f",
		booking.GuestName,
		booking.RoomNumber,
		service.Name,
		service.Category,
		service.Price,
	)

	adminErr := r.gateway.SendButtons(ctx, r.cfg.Hotel.AdminPhone, adminBody, []whatsapp.Button{
		{ID: selectionPrefixConfirmService + service.ID + "_" + booking.ID, Title: "Confirm"},
		{ID: selectionPrefixDeclineService + service.ID + "_" + booking.ID, Title: "Decline"},
	})
	if adminErr != nil {
		log.Error().Err(adminErr).Str("bookingID", booking.ID).Msg("failed to notify admin of service request")
	}

	return nil
}

func (r *guestRouter) startCheckIn(ctx context.Context, from string) error {
	booking, err := r.activeBooking(ctx, from)
	if err != nil {
		return err
	}

	if err = r.verification.BeginCheckIn(ctx, booking.ID); err != nil {
		return err
	}

	sections := []whatsapp.Section{
		{
			Title: "Accepted documents",
			Rows: []whatsapp.Row{
				{ID: selectionPrefixIDType + bookingModel.IDTypePassport, Title: "Passport"},
				{ID: selectionPrefixIDType + bookingModel.IDTypeAadhar, Title: "Aadhar Card"},
				{ID: selectionPrefixIDType + bookingModel.IDTypeVoter, Title: "Voter ID"},
				{ID: selectionPrefixIDType + bookingModel.IDTypeLicense, Title: "Driving License"},
			},
		},
	}

	return r.gateway.SendList(ctx, from, "Let's get you checked in! 🛎️ Which ID would you like to verify with?", "Choose ID", sections)
}

func (r *guestRouter) handleIDTypeSelection(ctx context.Context, from, idType string) error {
	booking, err := r.activeBooking(ctx, from)
	if err != nil {
		return err
	}

	if !bookingModel.ValidIDType(idType) {
		return failure.BadRequestFromString("please pick one of the listed document types") //nolint:wrapcheck
	}

	if err = r.verification.StartIDCollection(ctx, booking.ID, idType); err != nil {
		return err
	}

	return r.gateway.SendText(ctx, from, idUploadInstructions(idType, r.cfg.Verification.ExpiryMinutes))
}

// handleImage runs the uploaded document through verification and asks the
// guest to confirm the extracted fields. An image outside a verification flow
// gets a gentle redirect, not an error.
func (r *guestRouter) handleImage(ctx context.Context, from, mediaID string) error {
	booking, err := r.bookings.ActiveByPhone(ctx, from)
	if err != nil {
		return err
	}

	if booking.ID == constant.Empty || booking.Booking.State() != bookingModel.StateAwaitingImage {
		return r.gateway.SendText(ctx, from, msgUnexpectedImage)
	}

	result, err := r.verification.ProcessIDImage(ctx, booking, mediaID)
	if err != nil {
		return err
	}

	return r.gateway.SendButtons(ctx, from, extractedSummary(result.Name, result.IDNumber, result.DOB), []whatsapp.Button{
		{ID: SelectionVerifyCorrect, Title: "Yes, correct"},
		{ID: SelectionVerifyIncorrect, Title: "No, retry"},
	})
}

// handleVerifyCorrect approves the identity and either completes the check-in
// or detours to payment when the stay has not been paid yet.
func (r *guestRouter) handleVerifyCorrect(ctx context.Context, from, name string) error {
	booking, err := r.activeBooking(ctx, from)
	if err != nil {
		return err
	}

	// A repeat tap after the identity was already approved just replays the
	// outstanding payment step instead of tripping the state guard.
	if booking.Booking.State() != bookingModel.StateAwaitingPayment {
		if err = r.verification.ConfirmIdentity(ctx, booking.ID); err != nil {
			return err
		}
	}

	if booking.PaidStatus != bookingModel.PaidStatusPaid {
		url, linkErr := r.links.IssuePaymentLink(ctx, from, booking.ID)
		if linkErr != nil {
			return linkErr
		}

		message := fmt.Sprintf(
			"Identity verified! ✅\n\nOne last step: please settle the balance of $%.2f here:\n\n%s\n\nYour room will be assigned right after payment.",
			booking.TotalPrice,
			url,
		)

		return r.gateway.SendText(ctx, from, message)
	}

	checkedIn, err := r.bookings.CompleteCheckIn(ctx, booking.ID)
	if err != nil {
		return err
	}

	return r.sendCheckInWelcome(ctx, from, name, checkedIn)
}

// sendCheckInWelcome greets the freshly checked-in guest and surfaces any
// service window that is open right now.
func (r *guestRouter) sendCheckInWelcome(ctx context.Context, from, name string, booking bookingModel.BookingWithGuest) error {
	welcome := checkInWelcome(name, booking.RoomNumber)

	schedules, err := r.catalog.GetActiveSchedules(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service schedules")

		schedules = nil
	}

	now := timezone.Now()

	open := make([]string, 0, len(schedules))
	for _, schedule := range schedules {
		if schedule.InWindow(now) {
			open = append(open, fmt.Sprintf("• %s (until %s)", schedule.ServiceName, schedule.EndTime))
		}
	}

	if len(open) > 0 {
		welcome += "\n\nHappening right now:\n" + strings.Join(open, "\n")
	}

	return r.gateway.SendText(ctx, from, welcome)
}

func (r *guestRouter) handleVerifyIncorrect(ctx context.Context, from string) error {
	booking, err := r.activeBooking(ctx, from)
	if err != nil {
		return err
	}

	if err = r.verification.RejectIdentity(ctx, booking.ID); err != nil {
		return err
	}

	return r.gateway.SendText(ctx, from, msgVerifyIncorrect)
}
