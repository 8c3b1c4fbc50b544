package dto

import (
	"concierge/internal/domains/booking/model"
	"concierge/shared"
	"concierge/shared/constant"
	gDto "concierge/shared/dto"
	gModel "concierge/shared/model"
	"concierge/shared/timezone"
	"fmt"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	Name         string `json:"name"           validate:"required"`
	Phone        string `json:"phone"          validate:"required,phone"`
	RoomType     string `json:"room_type"      validate:"required"`
	CheckInDate  string `json:"check_in_date"  validate:"required,datetime=2006-01-02"`
	CheckInTime  string `json:"check_in_time"  validate:"omitempty,datetime=15:04"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	CheckOutTime string `json:"check_out_time" validate:"omitempty,datetime=15:04"`
	GuestCount   int    `json:"guest_count"    validate:"required,gte=1"`
	Notes        string `json:"notes"          validate:"omitempty"`
}

func (req *CreateBookingRequest) ToModel(userID string, pricePerNight float64) (model.Booking, error) {
	checkIn, err := timezone.Parse(req.CheckInDate, constant.DateOnlyFormat)
	if err != nil {
		return model.Booking{}, fmt.Errorf("invalid check-in date: %w", err)
	}

	checkOut, err := timezone.Parse(req.CheckOutDate, constant.DateOnlyFormat)
	if err != nil {
		return model.Booking{}, fmt.Errorf("invalid check-out date: %w", err)
	}

	now := timezone.Now()

	booking := model.Booking{
		ID:                 uuid.New().String(),
		UserID:             userID,
		RoomType:           req.RoomType,
		CheckInDate:        checkIn,
		CheckInTime:        req.CheckInTime,
		CheckOutDate:       checkOut,
		CheckOutTime:       req.CheckOutTime,
		GuestCount:         req.GuestCount,
		Status:             model.StatusConfirmed,
		PaidStatus:         model.PaidStatusUnpaid,
		VerificationStatus: model.VerificationNone,
		CheckinStatus:      model.CheckinStatusNotCheckedIn,
		Notes:              req.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}

	booking.TotalPrice = booking.TotalFor(pricePerNight)

	return booking, nil
}

type UpdateBookingRequest struct {
	RoomType     string `db:"room_type"      json:"room_type"      validate:"omitempty"`
	CheckInDate  string `db:"check_in_date"  json:"check_in_date"  validate:"omitempty,datetime=2006-01-02"`
	CheckInTime  string `db:"check_in_time"  json:"check_in_time"  validate:"omitempty,datetime=15:04"`
	CheckOutDate string `db:"check_out_date" json:"check_out_date" validate:"omitempty,datetime=2006-01-02"`
	CheckOutTime string `db:"check_out_time" json:"check_out_time" validate:"omitempty,datetime=15:04"`
	GuestCount   int    `db:"guest_count"    json:"guest_count"    validate:"omitempty,gte=1"`
	Notes        string `db:"notes"          json:"notes"          validate:"omitempty"`
}

type BookingResponse struct {
	ID                 string  `json:"id"`
	GuestName          string  `json:"guest_name,omitempty"`
	GuestPhone         string  `json:"guest_phone,omitempty"`
	RoomType           string  `json:"room_type"`
	CheckInDate        string  `json:"check_in_date"`
	CheckInTime        string  `json:"check_in_time,omitempty"`
	CheckOutDate       string  `json:"check_out_date"`
	CheckOutTime       string  `json:"check_out_time,omitempty"`
	GuestCount         int     `json:"guest_count"`
	Nights             int     `json:"nights"`
	Status             string  `json:"status"`
	TotalPrice         float64 `json:"total_price"`
	PaidStatus         string  `json:"paid_status"`
	VerificationStatus string  `json:"verification_status"`
	RoomNumber         string  `json:"room_number,omitempty"`
	CheckinStatus      string  `json:"checkin_status"`
	Notes              string  `json:"notes,omitempty"`
	Metadata           gDto.Metadata
}

func (res *BookingResponse) FromModel(booking model.Booking) {
	res.ID = booking.ID
	res.RoomType = booking.RoomType
	res.CheckInDate = timezone.Format(booking.CheckInDate, constant.DateOnlyFormat)
	res.CheckInTime = booking.CheckInTime
	res.CheckOutDate = timezone.Format(booking.CheckOutDate, constant.DateOnlyFormat)
	res.CheckOutTime = booking.CheckOutTime
	res.GuestCount = booking.GuestCount
	res.Nights = booking.Nights()
	res.Status = booking.Status
	res.TotalPrice = booking.TotalPrice
	res.PaidStatus = booking.PaidStatus
	res.VerificationStatus = booking.VerificationStatus
	res.RoomNumber = booking.RoomNumber
	res.CheckinStatus = booking.CheckinStatus
	res.Notes = booking.Notes
	res.Metadata.FromModel(booking.Metadata)
}

func (res *BookingResponse) FromModelWithGuest(booking model.BookingWithGuest) {
	res.FromModel(booking.Booking)
	res.GuestName = booking.GuestName
	res.GuestPhone = booking.GuestPhone
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
	TotalPage int               `json:"total_page"`
}

func (res *GetBookingsResponse) FromModels(bookings []model.BookingWithGuest, total, limit int) {
	res.Bookings = make([]BookingResponse, 0, len(bookings))

	for _, booking := range bookings {
		response := BookingResponse{}
		response.FromModelWithGuest(booking)

		res.Bookings = append(res.Bookings, response)
	}

	res.TotalData = total
	res.TotalPage = shared.CalculateTotalPage(total, limit)
}

type AvailabilityRequest struct {
	RoomType     string `json:"room_type"      validate:"required"`
	CheckInDate  string `json:"check_in_date"  validate:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
}

type AvailabilityResponse struct {
	RoomType       string  `json:"room_type"`
	Available      int     `json:"available"`
	PricePerNight  float64 `json:"price_per_night"`
	Nights         int     `json:"nights"`
	EstimatedTotal float64 `json:"estimated_total"`
}

// BookingEvent is the kafka payload published on booking lifecycle changes.
type BookingEvent struct {
	Event      string  `json:"event"`
	BookingID  string  `json:"booking_id"`
	GuestPhone string  `json:"guest_phone"`
	RoomType   string  `json:"room_type"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
	OccurredAt string  `json:"occurred_at"`
}

const (
	EventBookingCreated   = "booking.created"
	EventBookingModified  = "booking.modified"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCheckedIn = "booking.checked_in"
)
