package model

import "concierge/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID           = "id"
	FieldType         = "type"
	FieldPrice        = "price"
	FieldAvailability = "availability"
)

const (
	PhotoTableName  = "room_photos"
	PhotoEntityName = "room_photo"

	PhotoFieldID       = "id"
	PhotoFieldRoomID   = "room_id"
	PhotoFieldPhotoURL = "photo_url"
)

// Room describes a bookable room type. Availability is the count of physical
// rooms of this type; how many remain for a date range is always computed
// against overlapping bookings at read time.
type Room struct {
	ID           string  `db:"id"`
	Type         string  `db:"type"`
	Price        float64 `db:"price"`
	Availability int     `db:"availability"`
	model.Metadata
}

type RoomPhoto struct {
	ID       string `db:"id"`
	RoomID   string `db:"room_id"`
	PhotoURL string `db:"photo_url"`
	model.Metadata
}
