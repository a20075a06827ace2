package model

import "time"

// AppointmentStatus is the lifecycle state of an appointment. Completed is
// terminal and is the only state that may carry a doctor-authored diet plan.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment links a patient and a doctor for a dated visit. The embedded
// diet plan is populated only when the doctor completes the visit.
type Appointment struct {
	ID            string            `json:"id" bson:"_id,omitempty"`
	BookingNumber string            `json:"bookingNumber" bson:"bookingNumber"`
	PatientID     string            `json:"patientId" bson:"patientId"`
	DoctorID      string            `json:"doctorId" bson:"doctorId"`
	Date          time.Time         `json:"date" bson:"date"`
	Reason        string            `json:"reason,omitempty" bson:"reason,omitempty"`
	Status        AppointmentStatus `json:"status" bson:"status"`
	DietPlan      *DietPlan         `json:"dietPlan,omitempty" bson:"dietPlan,omitempty"`
	CreatedAt     time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt" bson:"updatedAt"`
}
