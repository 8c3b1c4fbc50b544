package conversation

import (
	"concierge/config"
	bookingModel "concierge/internal/domains/booking/model"
	catalogModel "concierge/internal/domains/catalog/model"
	"concierge/shared/constant"
	"concierge/shared/timezone"
	"fmt"
)

// Guest selection ids. The dispatch over these is closed: every id the bot
// ever puts on a button or list row appears here, and anything else falls
// through to the fallback reply.
const (
	SelectionBookRoom          = "book_room"
	SelectionViewBookings      = "view_bookings"
	SelectionModifyBooking     = "modify_booking"
	SelectionCancelBooking     = "cancel_booking"
	SelectionConfirmCancel     = "confirm_cancel"
	SelectionKeepBooking       = "keep_booking"
	SelectionContactUs         = "contact_us"
	SelectionLocation          = "location"
	SelectionOurServices       = "our_services"
	SelectionRoomsGallery      = "rooms_gallery"
	SelectionCheckAvailability = "check_availability"
	SelectionDining            = "dining"
	SelectionSpa               = "spa"
	SelectionRoomService       = "room_service"
	SelectionServices          = "services"
	SelectionFoodMenu          = "food_menu"
	SelectionHousekeepingMenu  = "housekeeping_menu"
	SelectionAmenitiesMenu     = "amenities_menu"
	SelectionMaintenanceMenu   = "maintenance_menu"
	SelectionStartCheckin      = "start_checkin"
	SelectionVerifyCorrect     = "verify_correct"
	SelectionVerifyIncorrect   = "verify_incorrect"
)

// Admin menu ids.
const (
	AdminDashboardSummary     = "dashboard_summary"
	AdminUrgentActions        = "urgent_actions"
	AdminViewAllBookings      = "view_all_bookings"
	AdminTodayCheckins        = "today_checkins"
	AdminTodayCheckouts       = "today_checkouts"
	AdminPendingVerifications = "pending_verifications"
	AdminRoomStatus           = "room_status"
	AdminUnpaidBookings       = "unpaid_bookings"
	AdminDailyRevenue         = "daily_revenue"
	AdminOccupancyReport      = "occupancy_report"
	AdminFeedbackSummary      = "feedback_summary"
)

const (
	msgApology = "Sorry, something went wrong on our side. 🙏 Please try again in a moment."

	msgFallback = "I didn't quite catch that. Here is what I can help you with:"

	msgKeepBooking = "Great, your booking stays as it is. 👍"

	msgCancelConfirm = "Are you sure you want to cancel your booking? This cannot be undone."

	msgCancelDone = "Your booking has been cancelled. We hope to welcome you another time! 👋"

	msgNoBooking = "You don't have an active booking yet. Would you like to book a room?"

	msgServicesGate = "In-room services are available to checked-in guests only. Once you have checked in, just type *services*. 🙂"

	msgUploadExpiredHint = "Please upload a clear photo of your document within %d minutes."

	msgUnexpectedImage = "Thanks for the photo! I wasn't expecting a document right now. If you want to check in, type *checkin*."

	msgVerifyIncorrect = "No problem, let's try again. Please upload a clearer photo of your document. 📷"
)

func greetingBody(guestName string, hasBooking bool, cfg *config.Config) string {
	if hasBooking {
		return fmt.Sprintf("Welcome back to %s, %s! 👋 How can we help you today?", cfg.Hotel.Name, guestName)
	}

	return fmt.Sprintf("Welcome to %s, %s! 👋 How can we help you today?", cfg.Hotel.Name, guestName)
}

func bookingDetails(booking bookingModel.BookingWithGuest) string {
	status := "Confirmed"
	if booking.CheckinStatus == bookingModel.CheckinStatusCheckedIn {
		status = fmt.Sprintf("Checked in — room %s", booking.RoomNumber)
	}

	return fmt.Sprintf(
		"📋 *Your booking*\n\nRoom: %s\nCheck-in: %s %s\nCheck-out: %s %s\nGuests: %d\nTotal: $%.2f (%s)\nStatus: %s",
		booking.RoomType,
		timezone.Format(booking.CheckInDate, constant.DateOnlyFormat),
		booking.CheckInTime,
		timezone.Format(booking.CheckOutDate, constant.DateOnlyFormat),
		booking.CheckOutTime,
		booking.GuestCount,
		booking.TotalPrice,
		booking.PaidStatus,
		status,
	)
}

func contactCard(cfg *config.Config) string {
	return fmt.Sprintf(
		"📞 *Contact %s*\n\nPhone: %s\nEmail: %s\nAddress: %s\n\nWe are happy to help around the clock!",
		cfg.Hotel.Name,
		cfg.Hotel.Phone,
		cfg.Hotel.Email,
		cfg.Hotel.Address,
	)
}

func diningCard(cfg *config.Config) string {
	return fmt.Sprintf(
		"🍽️ *Dining at %s*\n\nOur restaurant serves breakfast, lunch and dinner daily. Room service is available for checked-in guests — just type *services*.",
		cfg.Hotel.Name,
	)
}

func spaCard(cfg *config.Config) string {
	return fmt.Sprintf(
		"💆 *Spa & Wellness*\n\nRelax at the %s spa. Open daily — treatments can be arranged at the front desk or through room service once you are checked in.",
		cfg.Hotel.Name,
	)
}

func idUploadInstructions(idType string, expiryMinutes int) string {
	return fmt.Sprintf(
		"Please upload a clear photo of your *%s*. 🪪\n\nMake sure all corners are visible and the text is readable. "+msgUploadExpiredHint,
		idTypeLabel(idType),
		expiryMinutes,
	)
}

func idTypeLabel(idType string) string {
	switch idType {
	case bookingModel.IDTypePassport:
		return "Passport"
	case bookingModel.IDTypeAadhar:
		return "Aadhar Card"
	case bookingModel.IDTypeVoter:
		return "Voter ID"
	case bookingModel.IDTypeLicense:
		return "Driving License"
	default:
		return idType
	}
}

func extractedSummary(name, idNumber, dob string) string {
	return fmt.Sprintf(
		"Here is what we read from your document: 🔍\n\nName: %s\nID number: %s\nDate of birth: %s\n\nIs this correct?",
		name,
		idNumber,
		dob,
	)
}

func checkInWelcome(guestName, roomNumber string) string {
	return fmt.Sprintf(
		"You're all checked in, %s! 🎉\n\nYour room number is *%s*. Type *services* anytime to order room service or request housekeeping.\n\nEnjoy your stay!",
		guestName,
		roomNumber,
	)
}

func serviceRequestReceived(service catalogModel.HotelService) string {
	return fmt.Sprintf("Your request for *%s* has been received. ✅ We'll confirm it shortly.", service.Name)
}

func serviceDecisionMessage(category string, approved bool) string {
	if !approved {
		return "Unfortunately we cannot fulfil your service request right now. 🙏 Please contact the front desk for alternatives."
	}

	switch category {
	case catalogModel.CategoryFood:
		return "Your order is confirmed! 🍽️ Our kitchen is preparing it and it will reach your room shortly."
	case catalogModel.CategoryHousekeeping:
		return "Housekeeping is on the way! 🧹 They will be with you shortly."
	case catalogModel.CategoryMaintenance:
		return "Our maintenance team has been notified. 🔧 Someone will visit your room soon."
	default:
		return "Your request is confirmed! ✅ We'll take care of it right away."
	}
}
