package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingEvent is published to the booking-events topic on every
// lifecycle change.
type BookingEvent struct {
	EventID   uuid.UUID     `json:"eventId"`
	BookingID int64         `json:"bookingId"`
	ItemID    int64         `json:"itemId"`
	BookerID  int64         `json:"bookerId"`
	Status    BookingStatus `json:"status"`
	At        time.Time     `json:"at"`
}

func NewBookingEvent(b Booking) BookingEvent {
	return BookingEvent{
		EventID:   uuid.New(),
		BookingID: b.ID,
		ItemID:    b.ItemID,
		BookerID:  b.BookerID,
		Status:    b.Status,
		At:        time.Now().UTC(),
	}
}
