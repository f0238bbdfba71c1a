package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"hotelier/internal/hotels/service"
	apperrors "hotelier/pkg/errors"
	httputil "hotelier/pkg/http"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

type HotelHandler struct {
	service service.HotelService
	log     *logger.Logger
}

func NewHotelHandler(service service.HotelService, log *logger.Logger) *HotelHandler {
	return &HotelHandler{
		service: service,
		log:     log,
	}
}

type bookRequest struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

type bookResponse struct {
	Booked bool `json:"booked"`
}

func (h *HotelHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in model.HotelInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	hotel, err := h.service.Create(r.Context(), &in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, hotel)
}

func (h *HotelHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hotel, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, hotel)
}

func (h *HotelHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	hotels, err := h.service.GetAll(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, hotels)
}

func (h *HotelHandler) AddRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in model.RoomInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	room, err := h.service.AddRoom(r.Context(), ps.ByName("id"), &in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, room)
}

func (h *HotelHandler) AvailableRooms(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()

	start, err := parseDate(query.Get("start"), "start")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	end, err := parseDate(query.Get("end"), "end")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	minCapacity := 0
	if capStr := query.Get("min_capacity"); capStr != "" {
		minCapacity, err = strconv.Atoi(capStr)
		if err != nil {
			httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid min_capacity parameter: %s", capStr)))
			return
		}
	}

	rooms, err := h.service.AvailableRooms(r.Context(), ps.ByName("id"), start, end, minCapacity)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, rooms)
}

func (h *HotelHandler) Book(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	start, err := parseDate(req.Start, "start_date")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	end, err := parseDate(req.End, "end_date")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	booked, err := h.service.Book(r.Context(), ps.ByName("id"), ps.ByName("room_id"), start, end)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, bookResponse{Booked: booked})
}

func (h *HotelHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	location := strings.TrimSpace(query.Get("location"))

	minRating := 0
	if ratingStr := query.Get("min_rating"); ratingStr != "" {
		var err error
		minRating, err = strconv.Atoi(ratingStr)
		if err != nil {
			httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid min_rating parameter: %s", ratingStr)))
			return
		}
	}

	hotels, err := h.service.Search(r.Context(), location, minRating)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, hotels)
}

func (h *HotelHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/hotels", h.Create)
	router.GET("/api/v1/hotels", h.GetAll)
	router.GET("/api/v1/hotels/search", h.Search)
	router.GET("/api/v1/hotels/id/:id", h.GetByID)
	router.POST("/api/v1/hotels/id/:id/rooms", h.AddRoom)
	router.GET("/api/v1/hotels/id/:id/rooms/available", h.AvailableRooms)
	router.POST("/api/v1/hotels/id/:id/rooms/:room_id/book", h.Book)
}

func parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apperrors.InvalidInput(fmt.Sprintf("'%s' is required in YYYY-MM-DD format", field))
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput(fmt.Sprintf("'%s' must be a valid YYYY-MM-DD date", field))
	}
	return t, nil
}
