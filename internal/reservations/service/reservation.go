package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"hotelier/internal/reservations/archive"
	reservationerrors "hotelier/internal/reservations/errors"
	"hotelier/internal/reservations/registry"
	"hotelier/internal/reservations/validator"
	"hotelier/pkg/config"
	"hotelier/pkg/contracts"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/kafka"
	"hotelier/pkg/model"
)

type ReservationService interface {
	Create(ctx context.Context, in *model.ReservationInput) (*model.Reservation, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	List(ctx context.Context, userID, hotelID string) ([]*model.Reservation, error)
	Cancel(ctx context.Context, id, hotelID, roomID string) (*model.Reservation, error)
	Complete(ctx context.Context, id string) (*model.Reservation, error)
}

// HotelLookup resolves hotel IDs against the hotel catalogue.
type HotelLookup interface {
	Get(id string) (*model.Hotel, error)
}

// UserLookup resolves user IDs against the user directory.
type UserLookup interface {
	GetByID(id string) (*model.User, error)
}

// EventPublisher is satisfied by kafka.Producer. A nil publisher disables
// event publishing.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type reservationService struct {
	book      registry.ReservationBook
	hotels    HotelLookup
	users     UserLookup
	validator *validator.ReservationValidator
	cfg       *config.Config

	// bookingMu is shared with the hotel service so that reserving and
	// direct booking never race on the same room.
	bookingMu *sync.Mutex

	publisher EventPublisher
	archive   archive.ReservationArchive

	newID func() string
}

func NewReservationService(
	book registry.ReservationBook,
	hotels HotelLookup,
	users UserLookup,
	v *validator.ReservationValidator,
	cfg *config.Config,
	bookingMu *sync.Mutex,
	publisher EventPublisher,
	arch archive.ReservationArchive,
) ReservationService {
	return &reservationService{
		book:      book,
		hotels:    hotels,
		users:     users,
		validator: v,
		cfg:       cfg,
		bookingMu: bookingMu,
		publisher: publisher,
		archive:   arch,
		newID:     uuid.NewString,
	}
}

// Create reserves a room for the user. The room's availability check and the
// booking commit happen under the shared booking mutex, so two overlapping
// reservation attempts cannot both succeed. The total price is the number of
// nights times the room's nightly price, fixed at creation time.
func (s *reservationService) Create(ctx context.Context, in *model.ReservationInput) (*model.Reservation, error) {
	if err := s.validator.Validate(in); err != nil {
		s.cfg.Log.Warn("Reservation validation failed",
			"hotel_id", in.HotelID,
			"room_id", in.RoomID,
			"error", err,
		)
		return nil, apperrors.Validation("Reservation validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	start, err := time.Parse(time.DateOnly, in.Start)
	if err != nil {
		return nil, apperrors.InvalidInput("start_date must be a YYYY-MM-DD date")
	}
	end, err := time.Parse(time.DateOnly, in.End)
	if err != nil {
		return nil, apperrors.InvalidInput("end_date must be a YYYY-MM-DD date")
	}
	if !start.Before(end) {
		return nil, apperrors.InvalidRange("Start date must be before end date")
	}

	if _, err := s.users.GetByID(in.UserID); err != nil {
		return nil, apperrors.NotFoundWithID("User", in.UserID)
	}

	hotel, err := s.hotels.Get(in.HotelID)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Hotel", in.HotelID)
	}

	s.bookingMu.Lock()
	res, err := s.reserveLocked(hotel, in, start, end)
	s.bookingMu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := s.book.Add(res); err != nil {
		// The ID is freshly generated, so a collision points at a bug.
		if errors.Is(err, reservationerrors.ErrDuplicateID) {
			s.cfg.Log.Error("Generated reservation ID collided", "id", res.ID)
		}
		s.bookingMu.Lock()
		hotel.Room(res.RoomID).RemoveBooking(start, end)
		s.bookingMu.Unlock()
		return nil, apperrors.Internal("Failed to record reservation", err)
	}

	s.cfg.Log.Info("Reservation created",
		"id", res.ID,
		"hotel_id", res.HotelID,
		"room_id", res.RoomID,
		"user_id", res.UserID,
		"total_cents", res.TotalCents,
	)

	s.publishEvent(ctx, contracts.EventReservationCreated, res)
	s.archiveReservation(ctx, res)

	return res, nil
}

// reserveLocked performs the availability check-then-commit. Callers must
// hold bookingMu.
func (s *reservationService) reserveLocked(hotel *model.Hotel, in *model.ReservationInput, start, end time.Time) (*model.Reservation, error) {
	room := hotel.Room(in.RoomID)
	if room == nil {
		return nil, apperrors.NotFoundWithID("Room", in.RoomID)
	}

	available, err := room.IsAvailable(start, end)
	if err != nil {
		return nil, apperrors.InvalidRange(err.Error())
	}
	if !available {
		return nil, apperrors.Conflict("Room is not available for the requested dates")
	}

	if err := room.AddBooking(start, end); err != nil {
		return nil, apperrors.Conflict("Room is not available for the requested dates")
	}

	nights := int64(end.Sub(start) / (24 * time.Hour))
	total := nights * room.PriceCents

	res, err := model.NewReservation(s.newID(), in.HotelID, in.RoomID, in.UserID, start, end, total)
	if err != nil {
		room.RemoveBooking(start, end)
		return nil, apperrors.InvalidRange(err.Error())
	}
	return res, nil
}

func (s *reservationService) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}
	res, err := s.book.Get(id)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Reservation", id)
	}
	return res, nil
}

// List returns reservations filtered by user and/or hotel. At least one
// filter must be provided.
func (s *reservationService) List(ctx context.Context, userID, hotelID string) ([]*model.Reservation, error) {
	switch {
	case userID != "" && hotelID != "":
		var out []*model.Reservation
		for _, res := range s.book.ByUser(userID) {
			if res.HotelID == hotelID {
				out = append(out, res)
			}
		}
		return out, nil
	case userID != "":
		return s.book.ByUser(userID), nil
	case hotelID != "":
		return s.book.ByHotel(hotelID), nil
	default:
		return nil, apperrors.InvalidInput("Either user_id or hotel_id must be provided")
	}
}

// Cancel flips a confirmed reservation to cancelled and frees the room. The
// caller restates the hotel and room; identifiers that disagree with the
// reservation are rejected rather than silently corrected.
func (s *reservationService) Cancel(ctx context.Context, id, hotelID, roomID string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	res, err := s.book.Get(id)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Reservation", id)
	}

	if res.HotelID != hotelID || res.RoomID != roomID {
		s.cfg.Log.Warn("Cancellation identifiers do not match reservation",
			"reservation_id", id,
			"hotel_id", hotelID,
			"room_id", roomID,
		)
		return nil, apperrors.Mismatch("Hotel or room does not match the reservation")
	}

	hotel, err := s.hotels.Get(res.HotelID)
	if err != nil {
		return nil, apperrors.Internal("Reservation references an unknown hotel", err)
	}
	room := hotel.Room(res.RoomID)
	if room == nil {
		return nil, apperrors.Internal("Reservation references an unknown room", errors.New("room not found"))
	}

	if res.Status != model.StatusConfirmed {
		if res.Status == model.StatusCancelled {
			return nil, apperrors.Conflict("Reservation is already cancelled")
		}
		return nil, apperrors.Conflict("Reservation cannot be cancelled in its current state")
	}

	s.bookingMu.Lock()
	removed := res.Cancel(room)
	s.bookingMu.Unlock()
	if !removed {
		// The status still flipped; the interval was gone already.
		s.cfg.Log.Warn("Cancelled reservation had no matching booking on the room", "id", res.ID)
	}

	s.cfg.Log.Info("Reservation cancelled",
		"id", res.ID,
		"hotel_id", res.HotelID,
		"room_id", res.RoomID,
	)

	s.publishEvent(ctx, contracts.EventReservationCancelled, res)
	s.archiveReservation(ctx, res)

	return res, nil
}

func (s *reservationService) Complete(ctx context.Context, id string) (*model.Reservation, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Reservation ID cannot be empty")
	}

	res, err := s.book.Get(id)
	if err != nil {
		return nil, apperrors.NotFoundWithID("Reservation", id)
	}

	if !res.Complete() {
		return nil, apperrors.Conflict("Only confirmed reservations can be completed")
	}

	s.cfg.Log.Info("Reservation completed", "id", res.ID)
	s.archiveReservation(ctx, res)

	return res, nil
}

// publishEvent emits a lifecycle event when a publisher is wired. Failures
// are logged, not propagated: the reservation state is already committed.
func (s *reservationService) publishEvent(ctx context.Context, eventType string, res *model.Reservation) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(res.ID).
		WithValue(contracts.NewReservationEvent(res)).
		WithEventType(eventType).
		WithSource("hotelier").
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", res.ID,
			"error", err,
		)
	}
}

func (s *reservationService) archiveReservation(ctx context.Context, res *model.Reservation) {
	if s.archive == nil {
		return
	}
	if err := s.archive.Save(ctx, res); err != nil {
		s.cfg.Log.Error("Failed to archive reservation",
			"reservation_id", res.ID,
			"error", err,
		)
	}
}
