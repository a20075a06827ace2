package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"ayurcare/internal/model"
	"ayurcare/internal/service"
	"ayurcare/internal/transport/rest/middleware"
)

// PlanHandler handles plan resolution and mutation endpoints
type PlanHandler struct {
	planSvc *service.PlanService
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planSvc *service.PlanService) *PlanHandler {
	return &PlanHandler{planSvc: planSvc}
}

// GetCurrent handles GET /v1/plans/current (patient)
func (h *PlanHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetUserID(r.Context())

	plan, err := h.planSvc.ResolveCurrentPlan(r.Context(), patientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// SetAIPlan handles POST /v1/plans/ai (patient)
func (h *PlanHandler) SetAIPlan(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetUserID(r.Context())

	var payload model.AIPlan
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.planSvc.SetAIPlan(r.Context(), patientID, &payload); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Reset handles POST /v1/plans/reset (patient)
func (h *PlanHandler) Reset(w http.ResponseWriter, r *http.Request) {
	patientID := middleware.GetUserID(r.Context())

	if err := h.planSvc.ResetPlan(r.Context(), patientID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetCurrentForPatient handles GET /v1/patients/{patientId}/plans/current (doctor)
func (h *PlanHandler) GetCurrentForPatient(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	plan, err := h.planSvc.ResolveCurrentPlan(r.Context(), patientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// AssignDoctorPlan handles POST /v1/patients/{patientId}/plans/doctor (doctor)
func (h *PlanHandler) AssignDoctorPlan(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	var plan model.DietPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.planSvc.AssignDoctorPlan(r.Context(), patientID, &plan); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AssignMealPlan handles POST /v1/patients/{patientId}/plans/meal-plan (doctor)
func (h *PlanHandler) AssignMealPlan(w http.ResponseWriter, r *http.Request) {
	patientID := mux.Vars(r)["patientId"]

	var req struct {
		MealPlanID string `json:"mealPlanId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.planSvc.AssignMealPlan(r.Context(), patientID, req.MealPlanID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
