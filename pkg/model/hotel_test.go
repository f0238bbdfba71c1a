package model

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	room, err := NewRoom("R1", 101, "standard", 20000, 2)
	if err != nil {
		t.Fatalf("NewRoom() unexpected error: %v", err)
	}
	return room
}

func TestNewRoom_Validation(t *testing.T) {
	tests := []struct {
		name       string
		priceCents int64
		capacity   int
		wantErr    error
	}{
		{"valid", 20000, 2, nil},
		{"zero price is allowed", 0, 1, nil},
		{"negative price", -1, 2, ErrNegativePrice},
		{"zero capacity", 20000, 0, ErrInvalidCapacity},
		{"negative capacity", 20000, -3, ErrInvalidCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoom("R1", 101, "standard", tt.priceCents, tt.capacity)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewRoom() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRoom_IsAvailable_NoBookings(t *testing.T) {
	room := newTestRoom(t)

	available, err := room.IsAvailable(date(2026, time.June, 1), date(2026, time.June, 5))
	if err != nil {
		t.Fatalf("IsAvailable() unexpected error: %v", err)
	}
	if !available {
		t.Error("a room with no bookings should be available for any valid range")
	}
}

func TestRoom_IsAvailable_InvalidRange(t *testing.T) {
	room := newTestRoom(t)

	tests := []struct {
		name       string
		start, end time.Time
	}{
		{"start after end", date(2026, time.June, 5), date(2026, time.June, 1)},
		{"start equals end", date(2026, time.June, 1), date(2026, time.June, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := room.IsAvailable(tt.start, tt.end); !errors.Is(err, ErrInvalidRange) {
				t.Errorf("IsAvailable() error = %v, want ErrInvalidRange", err)
			}
		})
	}
}

func TestRoom_IsAvailable_Overlap(t *testing.T) {
	room := newTestRoom(t)
	if err := room.AddBooking(date(2026, time.June, 10), date(2026, time.June, 15)); err != nil {
		t.Fatalf("AddBooking() unexpected error: %v", err)
	}

	tests := []struct {
		name          string
		start, end    time.Time
		wantAvailable bool
	}{
		{"entirely before", date(2026, time.June, 1), date(2026, time.June, 5), true},
		{"entirely after", date(2026, time.June, 20), date(2026, time.June, 25), true},
		{"touching at booking start", date(2026, time.June, 5), date(2026, time.June, 10), true},
		{"touching at booking end", date(2026, time.June, 15), date(2026, time.June, 20), true},
		{"identical range", date(2026, time.June, 10), date(2026, time.June, 15), false},
		{"overlapping the start", date(2026, time.June, 8), date(2026, time.June, 12), false},
		{"overlapping the end", date(2026, time.June, 13), date(2026, time.June, 18), false},
		{"fully inside", date(2026, time.June, 11), date(2026, time.June, 14), false},
		{"fully covering", date(2026, time.June, 5), date(2026, time.June, 20), false},
		{"one night overlap at end", date(2026, time.June, 14), date(2026, time.June, 16), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			available, err := room.IsAvailable(tt.start, tt.end)
			if err != nil {
				t.Fatalf("IsAvailable() unexpected error: %v", err)
			}
			if available != tt.wantAvailable {
				t.Errorf("IsAvailable(%v, %v) = %v, want %v", tt.start, tt.end, available, tt.wantAvailable)
			}
		})
	}
}

func TestRoom_AddBooking(t *testing.T) {
	room := newTestRoom(t)
	start, end := date(2026, time.June, 1), date(2026, time.June, 5)

	if err := room.AddBooking(start, end); err != nil {
		t.Fatalf("AddBooking() unexpected error: %v", err)
	}
	if len(room.BookedDates) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(room.BookedDates))
	}
	if !room.BookedDates[0].Start.Equal(start) || !room.BookedDates[0].End.Equal(end) {
		t.Errorf("stored booking = %+v, want [%v, %v)", room.BookedDates[0], start, end)
	}

	if err := room.AddBooking(date(2026, time.June, 3), date(2026, time.June, 7)); !errors.Is(err, ErrRoomUnavailable) {
		t.Errorf("overlapping AddBooking() error = %v, want ErrRoomUnavailable", err)
	}
	if len(room.BookedDates) != 1 {
		t.Errorf("failed booking must not change state, got %d bookings", len(room.BookedDates))
	}

	if err := room.AddBooking(end, end); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("empty range AddBooking() error = %v, want ErrInvalidRange", err)
	}
}

func TestRoom_AddBooking_AdjacentRangesStayDiscrete(t *testing.T) {
	room := newTestRoom(t)

	if err := room.AddBooking(date(2026, time.June, 1), date(2026, time.June, 5)); err != nil {
		t.Fatalf("AddBooking() unexpected error: %v", err)
	}
	if err := room.AddBooking(date(2026, time.June, 5), date(2026, time.June, 9)); err != nil {
		t.Fatalf("adjacent AddBooking() unexpected error: %v", err)
	}

	// No coalescing: two touching bookings remain two discrete intervals.
	if len(room.BookedDates) != 2 {
		t.Errorf("expected 2 discrete bookings, got %d", len(room.BookedDates))
	}
}

func TestRoom_RemoveBooking(t *testing.T) {
	room := newTestRoom(t)
	start, end := date(2026, time.June, 1), date(2026, time.June, 5)
	if err := room.AddBooking(start, end); err != nil {
		t.Fatalf("AddBooking() unexpected error: %v", err)
	}

	if room.RemoveBooking(start, date(2026, time.June, 4)) {
		t.Error("RemoveBooking() must not remove a partial match")
	}
	if len(room.BookedDates) != 1 {
		t.Errorf("partial removal must leave state unchanged, got %d bookings", len(room.BookedDates))
	}

	if !room.RemoveBooking(start, end) {
		t.Error("RemoveBooking() should remove an exact match")
	}
	if len(room.BookedDates) != 0 {
		t.Errorf("expected no bookings after removal, got %d", len(room.BookedDates))
	}

	if room.RemoveBooking(start, end) {
		t.Error("removing an already-removed booking should report false")
	}
}

func newTestHotel(t *testing.T) *Hotel {
	t.Helper()
	hotel, err := NewHotel("H1", "Test Hotel", "Warszawa, ul. Testowa 1", 4)
	if err != nil {
		t.Fatalf("NewHotel() unexpected error: %v", err)
	}
	return hotel
}

func TestNewHotel_RatingBounds(t *testing.T) {
	for _, rating := range []int{0, -1, 6, 10} {
		if _, err := NewHotel("H1", "Bad Hotel", "Nowhere", rating); !errors.Is(err, ErrRatingOutOfRange) {
			t.Errorf("NewHotel(rating=%d) error = %v, want ErrRatingOutOfRange", rating, err)
		}
	}
	for rating := 1; rating <= 5; rating++ {
		if _, err := NewHotel("H1", "Good Hotel", "Somewhere", rating); err != nil {
			t.Errorf("NewHotel(rating=%d) unexpected error: %v", rating, err)
		}
	}
}

func TestHotel_AddRoom(t *testing.T) {
	hotel := newTestHotel(t)
	room := newTestRoom(t)

	if err := hotel.AddRoom(room); err != nil {
		t.Fatalf("AddRoom() unexpected error: %v", err)
	}
	if got := hotel.Room("R1"); got != room {
		t.Errorf("Room(R1) = %v, want the added room", got)
	}

	duplicate, _ := NewRoom("R1", 102, "deluxe", 30000, 4)
	if err := hotel.AddRoom(duplicate); !errors.Is(err, ErrDuplicateRoomID) {
		t.Errorf("duplicate AddRoom() error = %v, want ErrDuplicateRoomID", err)
	}
	if got := hotel.Room("R1"); got != room {
		t.Error("duplicate AddRoom() must leave the first room intact")
	}
}

func TestHotel_Room_Absent(t *testing.T) {
	hotel := newTestHotel(t)
	if got := hotel.Room("missing"); got != nil {
		t.Errorf("Room(missing) = %v, want nil", got)
	}
}

func TestHotel_AvailableRooms(t *testing.T) {
	hotel := newTestHotel(t)
	room1, _ := NewRoom("R1", 101, "standard", 20000, 2)
	room2, _ := NewRoom("R2", 102, "suite", 30000, 4)
	if err := hotel.AddRoom(room1); err != nil {
		t.Fatal(err)
	}
	if err := hotel.AddRoom(room2); err != nil {
		t.Fatal(err)
	}

	start, end := date(2026, time.June, 1), date(2026, time.June, 4)

	available, err := hotel.AvailableRooms(start, end, 1)
	if err != nil {
		t.Fatalf("AvailableRooms() unexpected error: %v", err)
	}
	if len(available) != 2 || available[0] != room1 || available[1] != room2 {
		t.Errorf("expected both rooms in insertion order, got %v", available)
	}

	// Capacity filter excludes R1 even though it is free.
	available, err = hotel.AvailableRooms(start, end, 3)
	if err != nil {
		t.Fatalf("AvailableRooms() unexpected error: %v", err)
	}
	if len(available) != 1 || available[0] != room2 {
		t.Errorf("expected only R2 for capacity 3, got %v", available)
	}

	// Booking R1 excludes it for the overlapping range.
	if err := room1.AddBooking(start, end); err != nil {
		t.Fatal(err)
	}
	available, err = hotel.AvailableRooms(start, end, 1)
	if err != nil {
		t.Fatalf("AvailableRooms() unexpected error: %v", err)
	}
	if len(available) != 1 || available[0] != room2 {
		t.Errorf("expected only R2 after booking R1, got %v", available)
	}

	if _, err := hotel.AvailableRooms(end, start, 1); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("AvailableRooms() with reversed range error = %v, want ErrInvalidRange", err)
	}
}

func TestHotel_BookRoom(t *testing.T) {
	hotel := newTestHotel(t)
	room := newTestRoom(t)
	if err := hotel.AddRoom(room); err != nil {
		t.Fatal(err)
	}
	start, end := date(2026, time.June, 1), date(2026, time.June, 4)

	booked, err := hotel.BookRoom("R1", start, end)
	if err != nil {
		t.Fatalf("BookRoom() unexpected error: %v", err)
	}
	if !booked {
		t.Error("BookRoom() should succeed for a free room")
	}
	if free, _ := room.IsAvailable(start, end); free {
		t.Error("room should be unavailable after BookRoom()")
	}

	booked, err = hotel.BookRoom("R1", start, end)
	if err != nil || booked {
		t.Errorf("BookRoom() on a taken range = (%v, %v), want (false, nil)", booked, err)
	}

	booked, err = hotel.BookRoom("missing", start, end)
	if err != nil || booked {
		t.Errorf("BookRoom() on unknown room = (%v, %v), want (false, nil)", booked, err)
	}

	if _, err := hotel.BookRoom("R1", end, start); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("BookRoom() with reversed range error = %v, want ErrInvalidRange", err)
	}
}

func TestHotel_MatchesLocation(t *testing.T) {
	hotel := newTestHotel(t)

	tests := []struct {
		fragment string
		want     bool
	}{
		{"warszawa", true},
		{"WARSZAWA", true},
		{"Testowa", true},
		{"", true},
		{"Kraków", false},
	}

	for _, tt := range tests {
		if got := hotel.MatchesLocation(tt.fragment); got != tt.want {
			t.Errorf("MatchesLocation(%q) = %v, want %v", tt.fragment, got, tt.want)
		}
	}
}
