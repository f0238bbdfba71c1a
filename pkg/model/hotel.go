package model

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrInvalidRange reports a date range whose start is not strictly
	// before its end.
	ErrInvalidRange = errors.New("start date must be before end date")

	// ErrRoomUnavailable reports a booking attempt for a range that
	// overlaps an existing booking.
	ErrRoomUnavailable = errors.New("room is already booked for this date range")

	ErrDuplicateRoomID  = errors.New("room with this ID already exists in the hotel")
	ErrRatingOutOfRange = errors.New("star rating must be between 1 and 5")
	ErrNegativePrice    = errors.New("nightly price cannot be negative")
	ErrInvalidCapacity  = errors.New("capacity must be positive")
)

// DateRange is a half-open interval [Start, End): the start day is included,
// the end day is not. Two ranges overlap iff neither lies entirely before or
// after the other.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open ranges share any day. Ranges that
// merely touch (one ends exactly when the other begins) do not overlap.
func (d DateRange) Overlaps(other DateRange) bool {
	return d.Start.Before(other.End) && d.End.After(other.Start)
}

// Room is a bookable hotel room. It owns its list of booked date ranges and
// is the single authority on its own availability. Stored ranges never
// overlap and always satisfy Start < End; bookings are kept as discrete
// intervals with no coalescing of adjacent ranges.
type Room struct {
	ID          string      `json:"id"`
	Number      int         `json:"number"`
	Type        string      `json:"type"`
	PriceCents  int64       `json:"price_cents"`
	Capacity    int         `json:"capacity"`
	BookedDates []DateRange `json:"booked_dates"`
}

func NewRoom(id string, number int, roomType string, priceCents int64, capacity int) (*Room, error) {
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Room{
		ID:         id,
		Number:     number,
		Type:       roomType,
		PriceCents: priceCents,
		Capacity:   capacity,
	}, nil
}

// IsAvailable reports whether the room is free for the whole of [start, end).
// A range touching an existing booking at its boundary is still available.
func (r *Room) IsAvailable(start, end time.Time) (bool, error) {
	if !start.Before(end) {
		return false, ErrInvalidRange
	}
	requested := DateRange{Start: start, End: end}
	for _, booked := range r.BookedDates {
		if booked.Overlaps(requested) {
			return false, nil
		}
	}
	return true, nil
}

// AddBooking commits [start, end) to the booking list. It fails with
// ErrRoomUnavailable when the range overlaps an existing booking.
func (r *Room) AddBooking(start, end time.Time) error {
	available, err := r.IsAvailable(start, end)
	if err != nil {
		return err
	}
	if !available {
		return ErrRoomUnavailable
	}
	r.BookedDates = append(r.BookedDates, DateRange{Start: start, End: end})
	return nil
}

// RemoveBooking removes the first booking exactly equal to [start, end).
// Overlapping-but-unequal ranges are left untouched. It reports whether an
// exact match was found and removed.
func (r *Room) RemoveBooking(start, end time.Time) bool {
	for i, booked := range r.BookedDates {
		if booked.Start.Equal(start) && booked.End.Equal(end) {
			r.BookedDates = append(r.BookedDates[:i], r.BookedDates[i+1:]...)
			return true
		}
	}
	return false
}

// Hotel owns its rooms, keyed by room ID. Room iteration follows insertion
// order.
type Hotel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	StarRating int    `json:"star_rating"`

	rooms map[string]*Room
	order []string
}

func NewHotel(id, name, address string, starRating int) (*Hotel, error) {
	if starRating < 1 || starRating > 5 {
		return nil, ErrRatingOutOfRange
	}
	return &Hotel{
		ID:         id,
		Name:       name,
		Address:    address,
		StarRating: starRating,
		rooms:      make(map[string]*Room),
	}, nil
}

func (h *Hotel) AddRoom(room *Room) error {
	if _, exists := h.rooms[room.ID]; exists {
		return ErrDuplicateRoomID
	}
	h.rooms[room.ID] = room
	h.order = append(h.order, room.ID)
	return nil
}

// Room returns the room with the given ID, or nil when absent.
func (h *Hotel) Room(id string) *Room {
	return h.rooms[id]
}

// Rooms returns all rooms in insertion order.
func (h *Hotel) Rooms() []*Room {
	rooms := make([]*Room, 0, len(h.order))
	for _, id := range h.order {
		rooms = append(rooms, h.rooms[id])
	}
	return rooms
}

// AvailableRooms returns every room with at least minCapacity places that is
// free for the whole of [start, end), in insertion order.
func (h *Hotel) AvailableRooms(start, end time.Time, minCapacity int) ([]*Room, error) {
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}
	var available []*Room
	for _, id := range h.order {
		room := h.rooms[id]
		if room.Capacity < minCapacity {
			continue
		}
		if free, _ := room.IsAvailable(start, end); free {
			available = append(available, room)
		}
	}
	return available, nil
}

// BookRoom commits [start, end) to the identified room. Unknown room IDs and
// unavailable ranges are soft failures reported as false; only an invalid
// date range is an error.
func (h *Hotel) BookRoom(roomID string, start, end time.Time) (bool, error) {
	if !start.Before(end) {
		return false, ErrInvalidRange
	}
	room := h.rooms[roomID]
	if room == nil {
		return false, nil
	}
	available, err := room.IsAvailable(start, end)
	if err != nil || !available {
		return false, err
	}
	if err := room.AddBooking(start, end); err != nil {
		return false, nil
	}
	return true, nil
}

// MatchesLocation reports whether the hotel's address contains the given
// fragment, case-insensitively. An empty fragment matches every address.
func (h *Hotel) MatchesLocation(fragment string) bool {
	return strings.Contains(strings.ToLower(h.Address), strings.ToLower(fragment))
}
