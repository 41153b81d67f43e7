package handler

import (
	"encoding/json"
	"net/http"

	"travelhealth/internal/service"
)

// TranslateHandler handles ad hoc display translation
type TranslateHandler struct {
	translationSvc *service.TranslationService
}

// NewTranslateHandler creates a new translate handler
func NewTranslateHandler(translationSvc *service.TranslationService) *TranslateHandler {
	return &TranslateHandler{translationSvc: translationSvc}
}

// TranslateRequest is the request body for translation
type TranslateRequest struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Translate handles POST /v1/translate
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" || req.To == "" {
		writeError(w, http.StatusBadRequest, "text and to are required")
		return
	}

	translated, err := h.translationSvc.Translate(r.Context(), req.Text, req.From, req.To)
	if err != nil {
		writeError(w, http.StatusBadGateway, "translation unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"translatedText": translated})
}
