package model

import (
	"time"

	"ayurcare/internal/prakriti"
)

// Role discriminates the user variants. Role-specific data lives in the
// matching profile payload; exactly one of Doctor/Patient is set for those
// roles, neither for admins.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// User is the common identity record shared by all roles.
type User struct {
	ID           string          `json:"id" bson:"_id,omitempty"`
	Name         string          `json:"name" bson:"name"`
	Email        string          `json:"email" bson:"email"`
	PasswordHash string          `json:"-" bson:"passwordHash"`
	Role         Role            `json:"role" bson:"role"`
	Doctor       *DoctorProfile  `json:"doctor,omitempty" bson:"doctor,omitempty"`
	Patient      *PatientProfile `json:"patient,omitempty" bson:"patient,omitempty"`
	CreatedAt    time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// DoctorProfile is the doctor-specific payload.
type DoctorProfile struct {
	Specialization string `json:"specialization" bson:"specialization"`
	RegistrationNo string `json:"registrationNo" bson:"registrationNo"`
}

// PatientProfile is the patient-specific payload. The constitutional
// classification and the plan state are embedded here so each is a single
// document field with atomic updates at the store layer.
type PatientProfile struct {
	Gender           string                   `json:"gender,omitempty" bson:"gender,omitempty"`
	DateOfBirth      *time.Time               `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Prakriti         *prakriti.Classification `json:"prakriti,omitempty" bson:"prakriti,omitempty"`
	PrakritiAssessed bool                     `json:"prakritiAssessed" bson:"prakritiAssessed"`
	PlanState        PlanState                `json:"planState" bson:"planState"`
}
