package model

import (
	"concierge/shared/model"
	"time"
)

const (
	TableName  = "verified_ids"
	EntityName = "verified_id"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldStatus    = "verification_status"
)

const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

type VerifiedID struct {
	ID                 string     `db:"id"`
	BookingID          string     `db:"booking_id"`
	IDType             string     `db:"id_type"`
	IDNumber           string     `db:"id_number"`
	Name               string     `db:"name"`
	DOB                string     `db:"dob"`
	VerificationStatus string     `db:"verification_status"`
	OCRText            string     `db:"ocr_text"`
	VerifiedAt         *time.Time `db:"verified_at"`
	model.Metadata
}
