package contracts

import (
	"time"

	"hotelier/pkg/model"
)

// Reservation lifecycle event types, carried in the Kafka event-type header.
const (
	EventReservationCreated   = "reservation_created"
	EventReservationCancelled = "reservation_cancelled"
)

// ReservationEvent is the payload published on every reservation lifecycle
// change and consumed by the notifier.
type ReservationEvent struct {
	ReservationID string `json:"reservation_id"`
	HotelID       string `json:"hotel_id"`
	RoomID        string `json:"room_id"`
	UserID        string `json:"user_id"`
	Start         string `json:"start_date"`
	End           string `json:"end_date"`
	TotalCents    int64  `json:"total_cents"`
	Status        string `json:"status"`
}

func NewReservationEvent(res *model.Reservation) ReservationEvent {
	return ReservationEvent{
		ReservationID: res.ID,
		HotelID:       res.HotelID,
		RoomID:        res.RoomID,
		UserID:        res.UserID,
		Start:         res.Start.Format(time.DateOnly),
		End:           res.End.Format(time.DateOnly),
		TotalCents:    res.TotalCents,
		Status:        string(res.Status),
	}
}
