package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

// Mock service for testing
type mockHotelService struct {
	createFunc func(ctx context.Context, in *model.HotelInput) (*model.Hotel, error)
	bookFunc   func(ctx context.Context, hotelID, roomID string, start, end time.Time) (bool, error)
	searchFunc func(ctx context.Context, location string, minRating int) ([]*model.Hotel, error)
}

func (m *mockHotelService) Create(ctx context.Context, in *model.HotelInput) (*model.Hotel, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return nil, nil
}

func (m *mockHotelService) AddRoom(ctx context.Context, hotelID string, in *model.RoomInput) (*model.Room, error) {
	return nil, nil
}

func (m *mockHotelService) GetByID(ctx context.Context, id string) (*model.Hotel, error) {
	return nil, apperrors.NotFoundWithID("Hotel", id)
}

func (m *mockHotelService) GetAll(ctx context.Context) ([]*model.Hotel, error) {
	return nil, nil
}

func (m *mockHotelService) AvailableRooms(ctx context.Context, hotelID string, start, end time.Time, minCapacity int) ([]*model.Room, error) {
	return nil, nil
}

func (m *mockHotelService) Book(ctx context.Context, hotelID, roomID string, start, end time.Time) (bool, error) {
	if m.bookFunc != nil {
		return m.bookFunc(ctx, hotelID, roomID, start, end)
	}
	return false, nil
}

func (m *mockHotelService) Search(ctx context.Context, location string, minRating int) ([]*model.Hotel, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, location, minRating)
	}
	return nil, nil
}

func newTestHandler(svc *mockHotelService) *HotelHandler {
	return NewHotelHandler(svc, logger.New(logger.Config{
		Level:  logger.ERROR,
		Format: logger.JSON,
		Output: io.Discard,
	}))
}

func TestBook_DateParsing(t *testing.T) {
	var receivedStart, receivedEnd time.Time
	handler := newTestHandler(&mockHotelService{
		bookFunc: func(ctx context.Context, hotelID, roomID string, start, end time.Time) (bool, error) {
			receivedStart, receivedEnd = start, end
			return true, nil
		},
	})

	router := httprouter.New()
	handler.RegisterRoutes(router)

	tests := []struct {
		name           string
		body           string
		expectHTTPCode int
	}{
		{"valid dates", `{"start_date":"2026-06-01","end_date":"2026-06-05"}`, http.StatusOK},
		{"malformed start", `{"start_date":"June 1st","end_date":"2026-06-05"}`, http.StatusBadRequest},
		{"missing end", `{"start_date":"2026-06-01"}`, http.StatusBadRequest},
		{"invalid body", `not json`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/hotels/id/H1/rooms/R1/book", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expectHTTPCode {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.expectHTTPCode, rec.Body.String())
			}
		})
	}

	want := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	if !receivedStart.Equal(want) {
		t.Errorf("service received start %v, want %v", receivedStart, want)
	}
	if !receivedEnd.Equal(want.AddDate(0, 0, 4)) {
		t.Errorf("service received end %v, want %v", receivedEnd, want.AddDate(0, 0, 4))
	}
}

func TestSearch_QueryParameters(t *testing.T) {
	var receivedLocation string
	var receivedRating int
	handler := newTestHandler(&mockHotelService{
		searchFunc: func(ctx context.Context, location string, minRating int) ([]*model.Hotel, error) {
			receivedLocation = location
			receivedRating = minRating
			return nil, nil
		},
	})

	router := httprouter.New()
	handler.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hotels/search?location=Warszawa&min_rating=4", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if receivedLocation != "Warszawa" || receivedRating != 4 {
		t.Errorf("service received (%q, %d), want (Warszawa, 4)", receivedLocation, receivedRating)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/hotels/search?min_rating=abc", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d for non-numeric min_rating", rec.Code, http.StatusBadRequest)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	handler := newTestHandler(&mockHotelService{})
	router := httprouter.New()
	handler.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hotels/id/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Error == "" {
		t.Error("error response should carry a message")
	}
}
