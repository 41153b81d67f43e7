package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"travelhealth/internal/service"
	"travelhealth/internal/transport/rest/middleware"
)

// TripHandler handles trip analysis endpoints
type TripHandler struct {
	tripSvc *service.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripSvc *service.TripService) *TripHandler {
	return &TripHandler{tripSvc: tripSvc}
}

// Analyze handles POST /v1/trips
func (h *TripHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req service.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	departure, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "departureDate must be YYYY-MM-DD")
		return
	}
	ret, err := time.Parse("2006-01-02", req.ReturnDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "returnDate must be YYYY-MM-DD")
		return
	}

	result, err := h.tripSvc.Analyze(r.Context(), userID, &req, departure, ret)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncompleteTripRequest):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNoPriorSubmission):
			writeError(w, http.StatusPreconditionFailed, err.Error())
		case errors.Is(err, service.ErrUnsupportedCity):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// History handles GET /v1/trips
func (h *TripHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	trips, err := h.tripSvc.History(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"trips": trips})
}

// Cities handles GET /v1/trips/cities
func (h *TripHandler) Cities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.tripSvc.SupportedCities(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"cities": cities})
}
