package registry

import (
	"sync"

	reservationerrors "hotelier/internal/reservations/errors"
	"hotelier/pkg/model"
)

// ReservationBook is the in-memory reservation ledger. Reservations are never
// removed; cancellation only flips their status. Per-user and per-hotel
// listings follow insertion order.
type ReservationBook interface {
	Add(res *model.Reservation) error
	Get(id string) (*model.Reservation, error)
	ByUser(userID string) []*model.Reservation
	ByHotel(hotelID string) []*model.Reservation
	Count() int
}

type reservationBook struct {
	mu           sync.RWMutex
	reservations map[string]*model.Reservation
	order        []string
}

func NewReservationBook() ReservationBook {
	return &reservationBook{
		reservations: make(map[string]*model.Reservation),
	}
}

func (b *reservationBook) Add(res *model.Reservation) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.reservations[res.ID]; exists {
		return reservationerrors.ErrDuplicateID
	}
	b.reservations[res.ID] = res
	b.order = append(b.order, res.ID)
	return nil
}

func (b *reservationBook) Get(id string) (*model.Reservation, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	res, exists := b.reservations[id]
	if !exists {
		return nil, reservationerrors.ErrNotFound
	}
	return res, nil
}

func (b *reservationBook) ByUser(userID string) []*model.Reservation {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*model.Reservation
	for _, id := range b.order {
		if res := b.reservations[id]; res.UserID == userID {
			out = append(out, res)
		}
	}
	return out
}

func (b *reservationBook) ByHotel(hotelID string) []*model.Reservation {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*model.Reservation
	for _, id := range b.order {
		if res := b.reservations[id]; res.HotelID == hotelID {
			out = append(out, res)
		}
	}
	return out
}

func (b *reservationBook) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.reservations)
}
