package model

import (
	"concierge/shared/model"
	"time"
)

const (
	ServiceTableName  = "hotel_services"
	ServiceEntityName = "hotel_service"

	ServiceFieldID           = "id"
	ServiceFieldName         = "name"
	ServiceFieldDescription  = "description"
	ServiceFieldPrice        = "price"
	ServiceFieldCategory     = "category"
	ServiceFieldAvailability = "availability"
)

const (
	CategoryFood         = "food"
	CategoryHousekeeping = "housekeeping"
	CategoryAmenities    = "amenities"
	CategoryMaintenance  = "maintenance"
)

type HotelService struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	Description  string  `db:"description"`
	Price        float64 `db:"price"`
	Category     string  `db:"category"`
	Availability bool    `db:"availability"`
	model.Metadata
}

const (
	ScheduleTableName  = "service_schedules"
	ScheduleEntityName = "service_schedule"

	ScheduleFieldID       = "id"
	ScheduleFieldActive   = "active"
	ScheduleFieldCategory = "service_category"
)

// ServiceSchedule is a recurring daily window during which a proactive
// reminder is pushed to checked-in guests (e.g. breakfast hours).
type ServiceSchedule struct {
	ID              string `db:"id"`
	ServiceName     string `db:"service_name"`
	ServiceCategory string `db:"service_category"`
	StartTime       string `db:"start_time"`
	EndTime         string `db:"end_time"`
	MessageTemplate string `db:"message_template"`
	Active          bool   `db:"active"`
	model.Metadata
}

// InWindow reports whether the clock time of now falls inside the schedule
// window. Times are stored as HH:MM in the hotel timezone.
func (s *ServiceSchedule) InWindow(now time.Time) bool {
	clock := now.Format("15:04")

	return clock >= s.StartTime && clock <= s.EndTime
}

const (
	ReminderSentTableName  = "service_reminders_sent"
	ReminderSentEntityName = "service_reminder_sent"
)

type ServiceReminderSent struct {
	ID         string    `db:"id"`
	BookingID  string    `db:"booking_id"`
	ScheduleID string    `db:"schedule_id"`
	SentDate   time.Time `db:"sent_date"`
	model.Metadata
}

const (
	RequestTableName  = "service_requests"
	RequestEntityName = "service_request"

	RequestFieldID        = "id"
	RequestFieldBookingID = "booking_id"
	RequestFieldStatus    = "status"

	RequestStatusPending   = "pending"
	RequestStatusConfirmed = "confirmed"
	RequestStatusDeclined  = "declined"
)

type ServiceRequest struct {
	ID          string     `db:"id"`
	BookingID   string     `db:"booking_id"`
	ServiceID   string     `db:"service_id"`
	Status      string     `db:"status"`
	CompletedAt *time.Time `db:"completed_at"`
	model.Metadata
}
