package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ayurcare/internal/model"
	"ayurcare/internal/service"
	"ayurcare/internal/transport/rest/middleware"
)

// AppointmentHandler handles appointment endpoints
type AppointmentHandler struct {
	appointmentSvc *service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(appointmentSvc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentSvc: appointmentSvc}
}

// BookRequest is the request body for booking an appointment
type BookRequest struct {
	DoctorID string    `json:"doctorId"`
	Date     time.Time `json:"date"`
	Reason   string    `json:"reason,omitempty"`
}

// CompleteRequest is the request body for completing an appointment
type CompleteRequest struct {
	DietPlan *model.DietPlan `json:"dietPlan,omitempty"`
}

// Book handles POST /v1/appointments (patient)
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetUserID(r.Context())

	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appointment, err := h.appointmentSvc.Book(r.Context(), patientID, req.DoctorID, req.Date, req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, appointment)
}

// List handles GET /v1/appointments (patient)
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetUserID(r.Context())

	appointments, err := h.appointmentSvc.ListForPatient(r.Context(), patientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"appointments": appointments})
}

// Cancel handles POST /v1/appointments/{appointmentId}/cancel (patient)
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetUserID(r.Context())
	appointmentID := mux.Vars(r)["appointmentId"]

	appointment, err := h.appointmentSvc.Cancel(r.Context(), appointmentID, patientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, appointment)
}

// Complete handles POST /v1/appointments/{appointmentId}/complete (doctor)
func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	doctorID := middleware.GetUserID(r.Context())
	appointmentID := mux.Vars(r)["appointmentId"]

	var req CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appointment, err := h.appointmentSvc.Complete(r.Context(), appointmentID, doctorID, req.DietPlan)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, appointment)
}
