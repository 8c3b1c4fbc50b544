package model

import (
	"concierge/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldUserID             = "user_id"
	FieldRoomType           = "room_type"
	FieldCheckInDate        = "check_in_date"
	FieldCheckInTime        = "check_in_time"
	FieldCheckOutDate       = "check_out_date"
	FieldCheckOutTime       = "check_out_time"
	FieldGuestCount         = "guest_count"
	FieldStatus             = "status"
	FieldTotalPrice         = "total_price"
	FieldPaidStatus         = "paid_status"
	FieldVerificationStatus = "verification_status"
	FieldSelectedIDType     = "selected_id_type"
	FieldRoomNumber         = "room_number"
	FieldCheckinStatus      = "checkin_status"
	FieldNotes              = "notes"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"

	PaidStatusUnpaid = "unpaid"
	PaidStatusPaid   = "paid"

	VerificationNone                 = "none"
	VerificationPending              = "pending"
	VerificationAwaitingConfirmation = "awaiting_confirmation"
	VerificationVerified             = "verified"
	VerificationExpired              = "expired"

	CheckinStatusNotCheckedIn = "not_checked_in"
	CheckinStatusCheckedIn    = "checked_in"
)

const (
	IDTypePassport = "passport"
	IDTypeAadhar   = "aadhar"
	IDTypeVoter    = "voter"
	IDTypeLicense  = "license"
)

type Booking struct {
	ID                 string    `db:"id"`
	UserID             string    `db:"user_id"`
	RoomType           string    `db:"room_type"`
	CheckInDate        time.Time `db:"check_in_date"`
	CheckInTime        string    `db:"check_in_time"`
	CheckOutDate       time.Time `db:"check_out_date"`
	CheckOutTime       string    `db:"check_out_time"`
	GuestCount         int       `db:"guest_count"`
	Status             string    `db:"status"`
	TotalPrice         float64   `db:"total_price"`
	PaidStatus         string    `db:"paid_status"`
	VerificationStatus string    `db:"verification_status"`
	SelectedIDType     string    `db:"selected_id_type"`
	RoomNumber         string    `db:"room_number"`
	CheckinStatus      string    `db:"checkin_status"`
	Notes              string    `db:"notes"`
	model.Metadata
}

// BookingWithGuest carries the joined guest identity for queries that need to
// message or display the guest. Not insertable.
type BookingWithGuest struct {
	Booking
	GuestName  string `db:"guest_name"`
	GuestPhone string `db:"guest_phone"`
}

// Nights is the whole-day difference between check-in and check-out dates,
// exclusive of the check-out day, never less than one.
func (b *Booking) Nights() int {
	nights := int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
	if nights < 1 {
		return 1
	}

	return nights
}

// TotalFor computes the stored total for a nightly rate.
func (b *Booking) TotalFor(pricePerNight float64) float64 {
	return pricePerNight * float64(b.Nights())
}

func ValidIDType(idType string) bool {
	switch idType {
	case IDTypePassport, IDTypeAadhar, IDTypeVoter, IDTypeLicense:
		return true
	default:
		return false
	}
}
