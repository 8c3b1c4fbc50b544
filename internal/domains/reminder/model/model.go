package model

import (
	"concierge/shared/model"
	"time"
)

const (
	TableName  = "reminders"
	EntityName = "reminder"

	FieldID           = "id"
	FieldBookingID    = "booking_id"
	FieldReminderTime = "reminder_time"
	FieldReminderType = "reminder_type"
)

const (
	TypeFollowUp = "followup"
	Type24Hr     = "24hr"
	Type1Hr      = "1hr"
)

type Reminder struct {
	ID           string    `db:"id"`
	BookingID    string    `db:"booking_id"`
	ReminderTime time.Time `db:"reminder_time"`
	ReminderType string    `db:"reminder_type"`
	model.Metadata
}
