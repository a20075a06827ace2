package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"ayurcare/internal/service"
	"ayurcare/internal/transport/rest/middleware"
)

// AssessmentHandler handles prakriti assessment endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// SubmitAnswerRequest is the request body for submitting one answer
type SubmitAnswerRequest struct {
	QuestionNumber int `json:"questionNumber"`
	OptionIndex    int `json:"optionIndex"`
}

// Start handles POST /v1/assessments
func (h *AssessmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetUserID(r.Context())
	if patientID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assessment, err := h.assessmentSvc.Start(r.Context(), patientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

// SubmitAnswer handles POST /v1/assessments/{assessmentId}/answers
func (h *AssessmentHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetUserID(r.Context())
	assessmentID := mux.Vars(r)["assessmentId"]

	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := h.assessmentSvc.SubmitAnswer(r.Context(), patientID, assessmentID, req.QuestionNumber, req.OptionIndex)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

// GetProgress handles GET /v1/assessments/{assessmentId}/progress
func (h *AssessmentHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetUserID(r.Context())
	assessmentID := mux.Vars(r)["assessmentId"]

	progress, err := h.assessmentSvc.GetProgress(r.Context(), patientID, assessmentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

// History handles GET /v1/assessments/history
func (h *AssessmentHandler) History(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetUserID(r.Context())

	history, err := h.assessmentSvc.History(r.Context(), patientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"assessments": history})
}
