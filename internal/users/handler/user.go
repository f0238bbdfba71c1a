package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"hotelier/internal/users/service"
	httputil "hotelier/pkg/http"
	"hotelier/pkg/logger"
	"hotelier/pkg/model"
)

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in model.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	user, err := h.service.Register(r.Context(), &in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, user)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, user)
}

func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	user, err := h.service.GetByEmail(r.Context(), email)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, user)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	user, err := h.service.Authenticate(r.Context(), &creds)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var patch model.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	user, err := h.service.Update(r.Context(), ps.ByName("id"), &patch)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, user)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var change model.PasswordChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.ChangePassword(r.Context(), ps.ByName("id"), &change); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/users", h.Register)
	router.POST("/api/v1/users/login", h.Login)
	router.GET("/api/v1/users/lookup", h.GetByEmail)
	router.GET("/api/v1/users/id/:id", h.GetByID)
	router.PATCH("/api/v1/users/id/:id", h.Update)
	router.POST("/api/v1/users/id/:id/password", h.ChangePassword)
}
