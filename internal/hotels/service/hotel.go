package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	hotelerrors "hotelier/internal/hotels/errors"
	"hotelier/internal/hotels/registry"
	"hotelier/internal/hotels/validator"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/model"
)

type HotelService interface {
	Create(ctx context.Context, in *model.HotelInput) (*model.Hotel, error)
	AddRoom(ctx context.Context, hotelID string, in *model.RoomInput) (*model.Room, error)
	GetByID(ctx context.Context, id string) (*model.Hotel, error)
	GetAll(ctx context.Context) ([]*model.Hotel, error)
	AvailableRooms(ctx context.Context, hotelID string, start, end time.Time, minCapacity int) ([]*model.Room, error)
	Book(ctx context.Context, hotelID, roomID string, start, end time.Time) (bool, error)
	Search(ctx context.Context, location string, minRating int) ([]*model.Hotel, error)
}

type hotelService struct {
	registry  registry.HotelRegistry
	validator *validator.HotelValidator
	cfg       *config.Config

	// bookingMu serializes every availability check-then-commit across the
	// whole process. It is shared with the reservation service so that two
	// concurrent bookings of the same room cannot both pass the check.
	bookingMu *sync.Mutex

	newID func() string
}

func NewHotelService(
	reg registry.HotelRegistry,
	v *validator.HotelValidator,
	cfg *config.Config,
	bookingMu *sync.Mutex,
) HotelService {
	return &hotelService{
		registry:  reg,
		validator: v,
		cfg:       cfg,
		bookingMu: bookingMu,
		newID:     uuid.NewString,
	}
}

func (s *hotelService) Create(ctx context.Context, in *model.HotelInput) (*model.Hotel, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)

	if err := s.validator.ValidateHotel(in); err != nil {
		s.cfg.Log.Warn("Hotel validation failed",
			"name", in.Name,
			"error", err,
		)
		return nil, apperrors.Validation("Hotel validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if in.ID == "" {
		in.ID = s.newID()
	}

	hotel, err := model.NewHotel(in.ID, in.Name, in.Address, in.StarRating)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	if err := s.registry.Add(hotel); err != nil {
		if errors.Is(err, hotelerrors.ErrDuplicateID) {
			return nil, apperrors.Conflict(fmt.Sprintf("Hotel with ID %s already exists", hotel.ID))
		}
		s.cfg.Log.Error("Failed to register hotel", "id", hotel.ID, "error", err)
		return nil, apperrors.Internal("Failed to register hotel", err)
	}

	s.cfg.Log.Info("Hotel created successfully",
		"id", hotel.ID,
		"name", hotel.Name,
		"star_rating", hotel.StarRating,
	)

	return hotel, nil
}

func (s *hotelService) AddRoom(ctx context.Context, hotelID string, in *model.RoomInput) (*model.Room, error) {
	if hotelID == "" {
		return nil, apperrors.InvalidInput("Hotel ID cannot be empty")
	}

	hotel, err := s.registry.Get(hotelID)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Hotel", hotelID)
	}

	in.Type = strings.TrimSpace(in.Type)

	if err := s.validator.ValidateRoom(in); err != nil {
		s.cfg.Log.Warn("Room validation failed",
			"hotel_id", hotelID,
			"room_number", in.Number,
			"error", err,
		)
		return nil, apperrors.Validation("Room validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	if in.ID == "" {
		in.ID = s.newID()
	}

	room, err := model.NewRoom(in.ID, in.Number, in.Type, in.PriceCents, in.Capacity)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	s.bookingMu.Lock()
	err = hotel.AddRoom(room)
	s.bookingMu.Unlock()
	if err != nil {
		return nil, apperrors.Conflict(fmt.Sprintf("Room with ID %s already exists in hotel %s", room.ID, hotelID))
	}

	s.cfg.Log.Info("Room added successfully",
		"hotel_id", hotelID,
		"room_id", room.ID,
		"room_number", room.Number,
	)

	return room, nil
}

func (s *hotelService) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Hotel ID cannot be empty")
	}
	hotel, err := s.registry.Get(id)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Hotel", id)
	}
	return hotel, nil
}

func (s *hotelService) GetAll(ctx context.Context) ([]*model.Hotel, error) {
	return s.registry.All(), nil
}

func (s *hotelService) AvailableRooms(ctx context.Context, hotelID string, start, end time.Time, minCapacity int) ([]*model.Room, error) {
	if hotelID == "" {
		return nil, apperrors.InvalidInput("Hotel ID cannot be empty")
	}
	if minCapacity < 0 {
		return nil, apperrors.InvalidInput("Minimum capacity cannot be negative")
	}

	hotel, err := s.registry.Get(hotelID)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Hotel", hotelID)
	}

	s.bookingMu.Lock()
	rooms, err := hotel.AvailableRooms(start, end, minCapacity)
	s.bookingMu.Unlock()
	if err != nil {
		return nil, apperrors.InvalidRange(err.Error())
	}
	return rooms, nil
}

// Book commits the date range to the identified room. Unknown hotels and
// rooms, and ranges already taken, are soft failures reported as false with
// a nil error. Only a malformed date range is an error.
func (s *hotelService) Book(ctx context.Context, hotelID, roomID string, start, end time.Time) (bool, error) {
	if !start.Before(end) {
		return false, apperrors.InvalidRange("Start date must be before end date")
	}

	hotel, err := s.registry.Get(hotelID)
	if err != nil {
		s.cfg.Log.Debug("Booking attempt for unknown hotel", "hotel_id", hotelID)
		return false, nil
	}

	s.bookingMu.Lock()
	booked, err := hotel.BookRoom(roomID, start, end)
	s.bookingMu.Unlock()
	if err != nil {
		return false, apperrors.InvalidRange(err.Error())
	}

	if booked {
		s.cfg.Log.Info("Room booked",
			"hotel_id", hotelID,
			"room_id", roomID,
			"start", start.Format(time.DateOnly),
			"end", end.Format(time.DateOnly),
		)
	}
	return booked, nil
}

func (s *hotelService) Search(ctx context.Context, location string, minRating int) ([]*model.Hotel, error) {
	if minRating != 0 && (minRating < s.cfg.MinStarRating || minRating > s.cfg.MaxStarRating) {
		return nil, apperrors.InvalidInput(fmt.Sprintf(
			"Minimum rating must be between %d and %d", s.cfg.MinStarRating, s.cfg.MaxStarRating))
	}

	hotels, err := s.registry.Search(strings.TrimSpace(location), minRating)
	if err != nil {
		if errors.Is(err, model.ErrRatingOutOfRange) {
			return nil, apperrors.InvalidInput("Minimum rating must be between 1 and 5")
		}
		s.cfg.Log.Error("Hotel search failed", "location", location, "min_rating", minRating, "error", err)
		return nil, apperrors.Internal("Failed to search hotels", err)
	}

	s.cfg.Log.Debug("Hotel search completed",
		"location", location,
		"min_rating", minRating,
		"results_count", len(hotels),
	)
	return hotels, nil
}
