package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"hotelier/internal/reservations/service"
	httputil "hotelier/pkg/http"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

type cancelRequest struct {
	HotelID string `json:"hotel_id"`
	RoomID  string `json:"room_id"`
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in model.ReservationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	res, err := h.service.Create(r.Context(), &in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, res)
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, res)
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	userID := strings.TrimSpace(query.Get("user_id"))
	hotelID := strings.TrimSpace(query.Get("hotel_id"))

	reservations, err := h.service.List(r.Context(), userID, hotelID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, reservations)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	res, err := h.service.Cancel(r.Context(), ps.ByName("id"), req.HotelID, req.RoomID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, res)
}

func (h *ReservationHandler) Complete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := h.service.Complete(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, res)
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.Create)
	router.GET("/api/v1/reservations", h.List)
	router.GET("/api/v1/reservations/id/:id", h.GetByID)
	router.POST("/api/v1/reservations/id/:id/cancel", h.Cancel)
	router.POST("/api/v1/reservations/id/:id/complete", h.Complete)
}
