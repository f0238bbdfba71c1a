package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	hotelregistry "hotelier/internal/hotels/registry"
	"hotelier/internal/reservations/registry"
	"hotelier/internal/reservations/validator"
	userregistry "hotelier/internal/users/registry"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/kafka"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

type mockPublisher struct {
	mu        sync.Mutex
	published []kafka.Message
	failWith  error
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.published = append(m.published, msg)
	return nil
}

type mockArchive struct {
	mu    sync.Mutex
	saved []*model.Reservation
}

func (m *mockArchive) Save(ctx context.Context, res *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := *res
	m.saved = append(m.saved, &snapshot)
	return nil
}

func (m *mockArchive) Close(ctx context.Context) error {
	return nil
}

type fixture struct {
	svc       ReservationService
	hotels    hotelregistry.HotelRegistry
	users     userregistry.UserDirectory
	book      registry.ReservationBook
	publisher *mockPublisher
	archive   *mockArchive
	room      *model.Room
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.New(logger.Config{
		Level:  logger.ERROR,
		Format: logger.JSON,
		Output: io.Discard,
	})
	cfg := &config.Config{Log: log}

	hotels := hotelregistry.NewHotelRegistry()
	hotel, err := model.NewHotel("H1", "Grand", "Warszawa", 5)
	if err != nil {
		t.Fatalf("NewHotel() unexpected error: %v", err)
	}
	room, err := model.NewRoom("R1", 101, "standard", 20000, 2)
	if err != nil {
		t.Fatalf("NewRoom() unexpected error: %v", err)
	}
	if err := hotel.AddRoom(room); err != nil {
		t.Fatalf("AddRoom() unexpected error: %v", err)
	}
	if err := hotels.Add(hotel); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	users := userregistry.NewUserDirectory()
	if err := users.Add(&model.User{
		ID:    "U1",
		Email: "anna@example.com",
	}); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	book := registry.NewReservationBook()
	publisher := &mockPublisher{}
	arch := &mockArchive{}

	svc := NewReservationService(
		book, hotels, users,
		validator.NewReservationValidator(log),
		cfg, &sync.Mutex{}, publisher, arch,
	)

	return &fixture{
		svc:       svc,
		hotels:    hotels,
		users:     users,
		book:      book,
		publisher: publisher,
		archive:   arch,
		room:      room,
	}
}

func validInput() *model.ReservationInput {
	return &model.ReservationInput{
		HotelID: "H1",
		RoomID:  "R1",
		UserID:  "U1",
		Start:   "2026-06-01",
		End:     "2026-06-05",
	}
}

func wantAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != code {
		t.Errorf("error code = %s, want %s (error: %v)", appErr.Code, code, err)
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if res.Status != model.StatusConfirmed {
		t.Errorf("status = %q, want %q", res.Status, model.StatusConfirmed)
	}
	// 4 nights at 20000 cents.
	if res.TotalCents != 80000 {
		t.Errorf("TotalCents = %d, want 80000", res.TotalCents)
	}
	if res.ID == "" {
		t.Error("Create() should assign an ID")
	}

	if free, _ := f.room.IsAvailable(res.Start, res.End); free {
		t.Error("room should be booked after Create()")
	}
	if f.book.Count() != 1 {
		t.Errorf("reservation book holds %d entries, want 1", f.book.Count())
	}

	if len(f.publisher.published) != 1 {
		t.Fatalf("published %d events, want 1", len(f.publisher.published))
	}
	if got := f.publisher.published[0].GetEventType(); got != "reservation_created" {
		t.Errorf("event type = %q, want %q", got, "reservation_created")
	}
	if len(f.archive.saved) != 1 || f.archive.saved[0].Status != model.StatusConfirmed {
		t.Errorf("archive should hold one confirmed snapshot, got %v", f.archive.saved)
	}
}

func TestCreate_Failures(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*model.ReservationInput)
		wantCode string
	}{
		{"unknown user", func(in *model.ReservationInput) { in.UserID = "missing" }, apperrors.CodeNotFound},
		{"unknown hotel", func(in *model.ReservationInput) { in.HotelID = "missing" }, apperrors.CodeNotFound},
		{"unknown room", func(in *model.ReservationInput) { in.RoomID = "missing" }, apperrors.CodeNotFound},
		{"malformed date", func(in *model.ReservationInput) { in.Start = "June 1st" }, apperrors.CodeValidation},
		{"missing user", func(in *model.ReservationInput) { in.UserID = "" }, apperrors.CodeValidation},
		{"reversed range", func(in *model.ReservationInput) { in.Start, in.End = in.End, in.Start }, apperrors.CodeInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := validInput()
			tt.mutate(in)
			_, err := f.svc.Create(context.Background(), in)
			wantAppErrorCode(t, err, tt.wantCode)

			if f.book.Count() != 0 {
				t.Errorf("failed Create() must not record a reservation, book holds %d", f.book.Count())
			}
			if len(f.publisher.published) != 0 {
				t.Errorf("failed Create() must not publish events, got %d", len(f.publisher.published))
			}
		})
	}
}

func TestCreate_OverlappingDates(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	in := validInput()
	in.Start, in.End = "2026-06-03", "2026-06-07"
	_, err := f.svc.Create(context.Background(), in)
	wantAppErrorCode(t, err, apperrors.CodeConflict)

	// Touching range is fine.
	in = validInput()
	in.Start, in.End = "2026-06-05", "2026-06-08"
	if _, err := f.svc.Create(context.Background(), in); err != nil {
		t.Errorf("Create() for a touching range unexpected error: %v", err)
	}
}

func TestCreate_PublisherFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.publisher.failWith = errors.New("broker down")

	res, err := f.svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create() should succeed despite publish failure, got: %v", err)
	}
	if res.Status != model.StatusConfirmed {
		t.Errorf("status = %q, want %q", res.Status, model.StatusConfirmed)
	}
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	cancelled, err := f.svc.Cancel(context.Background(), res.ID, "H1", "R1")
	if err != nil {
		t.Fatalf("Cancel() unexpected error: %v", err)
	}
	if cancelled.Status != model.StatusCancelled {
		t.Errorf("status = %q, want %q", cancelled.Status, model.StatusCancelled)
	}
	if free, _ := f.room.IsAvailable(res.Start, res.End); !free {
		t.Error("room should be available again after Cancel()")
	}

	if len(f.publisher.published) != 2 {
		t.Fatalf("published %d events, want 2", len(f.publisher.published))
	}
	if got := f.publisher.published[1].GetEventType(); got != "reservation_cancelled" {
		t.Errorf("second event type = %q, want %q", got, "reservation_cancelled")
	}

	// Second cancellation is rejected.
	_, err = f.svc.Cancel(context.Background(), res.ID, "H1", "R1")
	wantAppErrorCode(t, err, apperrors.CodeConflict)
}

func TestCancel_Mismatch(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	_, err = f.svc.Cancel(context.Background(), res.ID, "H1", "other-room")
	wantAppErrorCode(t, err, apperrors.CodeMismatch)
	_, err = f.svc.Cancel(context.Background(), res.ID, "other-hotel", "R1")
	wantAppErrorCode(t, err, apperrors.CodeMismatch)

	// A failed mismatch must not have touched the reservation or the room.
	got, err := f.svc.GetByID(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if got.Status != model.StatusConfirmed {
		t.Errorf("status after mismatch = %q, want %q", got.Status, model.StatusConfirmed)
	}
	if free, _ := f.room.IsAvailable(res.Start, res.End); free {
		t.Error("room must stay booked after a mismatched cancellation")
	}
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Cancel(context.Background(), "missing", "H1", "R1")
	wantAppErrorCode(t, err, apperrors.CodeNotFound)
}

func TestComplete(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	completed, err := f.svc.Complete(context.Background(), res.ID)
	if err != nil {
		t.Fatalf("Complete() unexpected error: %v", err)
	}
	if completed.Status != model.StatusCompleted {
		t.Errorf("status = %q, want %q", completed.Status, model.StatusCompleted)
	}

	_, err = f.svc.Complete(context.Background(), res.ID)
	wantAppErrorCode(t, err, apperrors.CodeConflict)

	// Completed reservations cannot be cancelled either.
	_, err = f.svc.Cancel(context.Background(), res.ID, "H1", "R1")
	wantAppErrorCode(t, err, apperrors.CodeConflict)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	if err := f.users.Add(&model.User{ID: "U2", Email: "jan@example.com"}); err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	first, err := f.svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	second := validInput()
	second.UserID = "U2"
	second.Start, second.End = "2026-07-01", "2026-07-03"
	if _, err := f.svc.Create(context.Background(), second); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	byUser, err := f.svc.List(context.Background(), "U1", "")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(byUser) != 1 || byUser[0].ID != first.ID {
		t.Errorf("List(user) = %v, want just the first reservation", byUser)
	}

	byHotel, err := f.svc.List(context.Background(), "", "H1")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(byHotel) != 2 {
		t.Errorf("List(hotel) returned %d reservations, want 2", len(byHotel))
	}

	both, err := f.svc.List(context.Background(), "U2", "H1")
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(both) != 1 || both[0].UserID != "U2" {
		t.Errorf("List(user, hotel) = %v, want just U2's reservation", both)
	}

	_, err = f.svc.List(context.Background(), "", "")
	wantAppErrorCode(t, err, apperrors.CodeInvalidInput)
}

func TestCreate_ConcurrentSameRoom(t *testing.T) {
	f := newFixture(t)

	const attempts = 12
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Create(context.Background(), validInput())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Errorf("exactly one concurrent reservation should win, got %d", succeeded)
	}
	if f.book.Count() != 1 {
		t.Errorf("reservation book holds %d entries, want 1", f.book.Count())
	}
}
