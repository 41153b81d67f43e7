package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"travelhealth/internal/model"
	"travelhealth/internal/service"
	"travelhealth/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// ProfileHandler handles profile and vaccination endpoints
type ProfileHandler struct {
	profileSvc *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileSvc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// UpdateProfileRequest is the request body for profile updates
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	PhotoURL string `json:"photoUrl"`
}

// AddVaccinationRequest is the request body for recording a vaccination
type AddVaccinationRequest struct {
	Name           string `json:"name"`
	AdministeredAt string `json:"administeredAt"`
}

// Get handles GET /v1/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.profileSvc.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Update handles PUT /v1/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profileSvc.Update(r.Context(), userID, req.Name, req.Age, req.Gender, req.PhotoURL)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// ListVaccinations handles GET /v1/vaccinations
func (h *ProfileHandler) ListVaccinations(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	vaccinations, err := h.profileSvc.Vaccinations(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"vaccinations": vaccinations})
}

// AddVaccination handles POST /v1/vaccinations
func (h *ProfileHandler) AddVaccination(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AddVaccinationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	administeredAt, err := time.Parse("2006-01-02", req.AdministeredAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "administeredAt must be YYYY-MM-DD")
		return
	}

	v := &model.Vaccination{
		UserID:         userID,
		Name:           req.Name,
		AdministeredAt: administeredAt,
	}
	id, err := h.profileSvc.AddVaccination(r.Context(), v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// DeleteVaccination handles DELETE /v1/vaccinations/{id}
func (h *ProfileHandler) DeleteVaccination(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.profileSvc.DeleteVaccination(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
