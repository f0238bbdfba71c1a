package model

import "time"

type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Reservation records one booking transaction. It references its hotel,
// room and user by identifier only; resolving those identifiers back to
// live entities is the caller's responsibility. The booking itself lives
// on the Room the reservation was created against.
//
// Lifecycle: confirmed -> cancelled (via Cancel) or confirmed -> completed
// (via Complete); both end states are terminal.
type Reservation struct {
	ID         string            `json:"id"`
	HotelID    string            `json:"hotel_id"`
	RoomID     string            `json:"room_id"`
	UserID     string            `json:"user_id"`
	Start      time.Time         `json:"start_date"`
	End        time.Time         `json:"end_date"`
	TotalCents int64             `json:"total_cents"`
	Status     ReservationStatus `json:"status"`
}

func NewReservation(id, hotelID, roomID, userID string, start, end time.Time, totalCents int64) (*Reservation, error) {
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}
	return &Reservation{
		ID:         id,
		HotelID:    hotelID,
		RoomID:     roomID,
		UserID:     userID,
		Start:      start,
		End:        end,
		TotalCents: totalCents,
		Status:     StatusConfirmed,
	}, nil
}

// Nights returns the whole-day length of the stay, the basis for the total
// price computed at creation.
func (r *Reservation) Nights() int {
	return int(r.End.Sub(r.Start) / (24 * time.Hour))
}

// Cancel flips a confirmed reservation to cancelled and removes its booking
// from the given room. The return value is the room's removal result: a
// confirmed reservation whose interval was already removed by other means
// still transitions to cancelled but reports false. Cancelling from any
// other status is a no-op returning false.
func (r *Reservation) Cancel(room *Room) bool {
	if r.Status != StatusConfirmed {
		return false
	}
	r.Status = StatusCancelled
	return room.RemoveBooking(r.Start, r.End)
}

// Complete marks a confirmed reservation as completed, e.g. after checkout.
// It reports whether the transition happened.
func (r *Reservation) Complete() bool {
	if r.Status != StatusConfirmed {
		return false
	}
	r.Status = StatusCompleted
	return true
}
