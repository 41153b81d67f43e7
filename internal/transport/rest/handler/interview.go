package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"travelhealth/internal/catalog"
	"travelhealth/internal/service"
	"travelhealth/internal/transport/rest/middleware"
)

// InterviewHandler handles the adaptive health interview endpoints
type InterviewHandler struct {
	interviewSvc  *service.InterviewService
	submissionSvc *service.SubmissionService
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(interviewSvc *service.InterviewService, submissionSvc *service.SubmissionService) *InterviewHandler {
	return &InterviewHandler{
		interviewSvc:  interviewSvc,
		submissionSvc: submissionSvc,
	}
}

// AnswerRequest is the request body for answering the current question
type AnswerRequest struct {
	Response string `json:"response"`
}

// Current handles GET /v1/interview/current
func (h *InterviewHandler) Current(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	question, progress, err := h.interviewSvc.Current(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"question": question,
		"progress": progress,
	})
}

// Answer handles POST /v1/interview/answers
func (h *InterviewHandler) Answer(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.interviewSvc.Answer(r.Context(), userID, req.Response)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidResponse):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSessionLocked), errors.Is(err, service.ErrInterviewComplete):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Resubmit handles POST /v1/interview/submission. It retries the submission
// pipeline for a completed interview whose earlier submission failed.
func (h *InterviewHandler) Resubmit(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.interviewSvc.Resubmit(r.Context(), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrInterviewIncomplete):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrSessionLocked):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "submitting"})
}

// Progress handles GET /v1/interview/progress
func (h *InterviewHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	_, progress, err := h.interviewSvc.Current(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

// Categories handles GET /v1/interview/categories
func (h *InterviewHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": catalog.Categories(),
	})
}

// LatestSubmission handles GET /v1/submissions/latest
func (h *InterviewHandler) LatestSubmission(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	record, summary, score, err := h.submissionSvc.Latest(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "no completed questionnaire")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"submission":  record,
		"summary":     summary,
		"healthScore": score,
	})
}
