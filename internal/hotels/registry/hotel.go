package registry

import (
	"sync"

	hotelerrors "hotelier/internal/hotels/errors"
	"hotelier/pkg/model"
)

// HotelRegistry is the in-memory hotel catalogue. Iteration and search
// results follow insertion order.
type HotelRegistry interface {
	Add(hotel *model.Hotel) error
	Get(id string) (*model.Hotel, error)
	All() []*model.Hotel
	Search(location string, minRating int) ([]*model.Hotel, error)
	Count() int
}

type hotelRegistry struct {
	mu     sync.RWMutex
	hotels map[string]*model.Hotel
	order  []string
}

func NewHotelRegistry() HotelRegistry {
	return &hotelRegistry{
		hotels: make(map[string]*model.Hotel),
	}
}

func (r *hotelRegistry) Add(hotel *model.Hotel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.hotels[hotel.ID]; exists {
		return hotelerrors.ErrDuplicateID
	}
	r.hotels[hotel.ID] = hotel
	r.order = append(r.order, hotel.ID)
	return nil
}

func (r *hotelRegistry) Get(id string) (*model.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hotel, exists := r.hotels[id]
	if !exists {
		return nil, hotelerrors.ErrNotFound
	}
	return hotel, nil
}

func (r *hotelRegistry) All() []*model.Hotel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hotels := make([]*model.Hotel, 0, len(r.order))
	for _, id := range r.order {
		hotels = append(hotels, r.hotels[id])
	}
	return hotels
}

// Search filters the catalogue by address fragment (case-insensitive
// substring, empty matches everything) and minimum star rating. A minRating
// of zero disables the rating filter; any other value outside the model's
// 1-5 scale is rejected with model.ErrRatingOutOfRange.
func (r *hotelRegistry) Search(location string, minRating int) ([]*model.Hotel, error) {
	if minRating != 0 && (minRating < 1 || minRating > 5) {
		return nil, model.ErrRatingOutOfRange
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*model.Hotel
	for _, id := range r.order {
		hotel := r.hotels[id]
		if !hotel.MatchesLocation(location) {
			continue
		}
		if minRating != 0 && hotel.StarRating < minRating {
			continue
		}
		matches = append(matches, hotel)
	}
	return matches, nil
}

func (r *hotelRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hotels)
}
