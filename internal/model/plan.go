package model

import "time"

// PlanType is the closed set of plan sources a patient can be shown.
type PlanType string

const (
	PlanTypeAI       PlanType = "ai"
	PlanTypeDoctor   PlanType = "doctor"
	PlanTypeMealPlan PlanType = "meal-plan"
	PlanTypeNone     PlanType = "none"
)

// PlanState is embedded in the patient record and mutated only by the plan
// service and the appointment-completion side effect, never by the patient.
// The AI payload is stored inline; meal plans are referenced by id; doctor
// plans assigned outside the appointment flow are stored inline as well.
type PlanState struct {
	Type       PlanType  `json:"type" bson:"type"`
	MealPlanID string    `json:"mealPlanId,omitempty" bson:"mealPlanId,omitempty"`
	Visible    bool      `json:"visible" bson:"visible"`
	AIPlan     *AIPlan   `json:"aiPlan,omitempty" bson:"aiPlan,omitempty"`
	DoctorPlan *DietPlan `json:"doctorPlan,omitempty" bson:"doctorPlan,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}

// AIPlan is a generated dietary plan payload stored inline on the patient.
type AIPlan struct {
	Summary         string   `json:"summary" bson:"summary"`
	Recommendations []string `json:"recommendations" bson:"recommendations"`
	Restrictions    []string `json:"restrictions,omitempty" bson:"restrictions,omitempty"`
	GeneratedBy     string   `json:"generatedBy,omitempty" bson:"generatedBy,omitempty"`
}

// DietPlan is a doctor-authored plan, either embedded in a completed
// appointment or assigned directly onto the patient's plan state.
type DietPlan struct {
	Visible         bool      `json:"visible" bson:"visible"`
	Notes           string    `json:"notes" bson:"notes"`
	Recommendations []string  `json:"recommendations" bson:"recommendations"`
	Restrictions    []string  `json:"restrictions,omitempty" bson:"restrictions,omitempty"`
	PrescribedAt    time.Time `json:"prescribedAt" bson:"prescribedAt"`
}

// MealEntry is one line of a structured meal plan.
type MealEntry struct {
	Time  string   `json:"time" bson:"time"`
	Items []string `json:"items" bson:"items"`
	Notes string   `json:"notes,omitempty" bson:"notes,omitempty"`
}

// MealPlan is a structured plan stored as its own document and referenced
// from the patient's plan state by id.
type MealPlan struct {
	ID        string      `json:"id" bson:"_id,omitempty"`
	PatientID string      `json:"patientId" bson:"patientId"`
	Title     string      `json:"title" bson:"title"`
	Meals     []MealEntry `json:"meals" bson:"meals"`
	CreatedBy string      `json:"createdBy" bson:"createdBy"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// CurrentPlan is the resolver's answer to "which plan does this patient see
// right now". Exactly one of the payload pointers is set, matching Type;
// none of them is set for PlanTypeNone.
type CurrentPlan struct {
	Type                    PlanType  `json:"type"`
	DoctorPlan              *DietPlan `json:"doctorPlan,omitempty"`
	AIPlan                  *AIPlan   `json:"aiPlan,omitempty"`
	MealPlan                *MealPlan `json:"mealPlan,omitempty"`
	HasCompletedAppointment bool      `json:"hasCompletedAppointment"`
	AssignedAt              time.Time `json:"assignedAt,omitempty"`
	UpdatedAt               time.Time `json:"updatedAt,omitempty"`
}
