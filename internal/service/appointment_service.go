package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"ayurcare/internal/model"
	"ayurcare/internal/repository"
)

// AppointmentService handles booking and the doctor-side completion flow.
// Completing a visit is what triggers the plan-state invalidation in
// PlanService.
type AppointmentService struct {
	users        repository.UserRepo
	appointments repository.AppointmentRepo
	planSvc      *PlanService
	broadcaster  Broadcaster
	logger       zerolog.Logger
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	users repository.UserRepo,
	appointments repository.AppointmentRepo,
	planSvc *PlanService,
	logger zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		users:        users,
		appointments: appointments,
		planSvc:      planSvc,
		logger:       logger,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AppointmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Book schedules a visit between a patient and a doctor.
func (s *AppointmentService) Book(ctx context.Context, patientID, doctorID string, date time.Time, reason string) (*model.Appointment, error) {
	patient, err := s.users.GetByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	if patient == nil || patient.Role != model.RolePatient {
		return nil, fmt.Errorf("%w: patient %s", ErrNotFound, patientID)
	}

	doctor, err := s.users.GetByID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor: %w", err)
	}
	if doctor == nil || doctor.Role != model.RoleDoctor {
		return nil, fmt.Errorf("%w: doctor %s", ErrNotFound, doctorID)
	}

	if date.Before(time.Now()) {
		return nil, fmt.Errorf("%w: appointment date is in the past", ErrInvalidArgument)
	}

	appointment := &model.Appointment{
		BookingNumber: "apt_" + uuid.New().String()[:8],
		PatientID:     patientID,
		DoctorID:      doctorID,
		Date:          date,
		Reason:        reason,
		Status:        model.AppointmentScheduled,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.logger.Info().
		Str("bookingNumber", appointment.BookingNumber).
		Str("patientId", patientID).
		Str("doctorId", doctorID).
		Msg("appointment booked")

	return appointment, nil
}

// ListForPatient returns the patient's appointments, newest first.
func (s *AppointmentService) ListForPatient(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	return s.appointments.GetByPatientID(ctx, patientID)
}

// Complete marks a visit as done, embeds the doctor's diet plan if one was
// authored, and retires the patient's pre-existing plan state. Only the
// assigned doctor may complete a visit.
func (s *AppointmentService) Complete(ctx context.Context, appointmentID, doctorID string, dietPlan *model.DietPlan) (*model.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	if appointment == nil || appointment.DoctorID != doctorID {
		return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
	}

	switch appointment.Status {
	case model.AppointmentScheduled:
		// proceed
	case model.AppointmentCompleted:
		return nil, fmt.Errorf("%w: appointment %s is already completed", ErrInvalidState, appointmentID)
	case model.AppointmentCancelled:
		return nil, fmt.Errorf("%w: appointment %s was cancelled", ErrInvalidState, appointmentID)
	}

	if dietPlan != nil && dietPlan.PrescribedAt.IsZero() {
		dietPlan.PrescribedAt = time.Now()
	}

	appointment.Status = model.AppointmentCompleted
	appointment.DietPlan = dietPlan
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to store appointment: %w", err)
	}

	// The resolver's precedence already suppresses stale plans once a
	// completed appointment exists, so a failed clear is recoverable and must
	// not fail the completion itself.
	if err := s.planSvc.ClearOnDoctorCompletion(ctx, appointment.ID); err != nil {
		s.logger.Error().Err(err).
			Str("appointmentId", appointment.ID).
			Msg("failed to clear plan state on completion")
	}

	s.logger.Info().
		Str("appointmentId", appointment.ID).
		Str("patientId", appointment.PatientID).
		Bool("hasDietPlan", dietPlan != nil).
		Msg("appointment completed")

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToPatient(appointment.PatientID, "appointment_completed", map[string]interface{}{
			"appointmentId": appointment.ID,
			"hasDietPlan":   dietPlan != nil,
		})
	}

	return appointment, nil
}

// Cancel moves a scheduled visit to cancelled. Completed visits stay put.
func (s *AppointmentService) Cancel(ctx context.Context, appointmentID, patientID string) (*model.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	if appointment == nil || appointment.PatientID != patientID {
		return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
	}
	if appointment.Status != model.AppointmentScheduled {
		return nil, fmt.Errorf("%w: only scheduled appointments can be cancelled", ErrInvalidState)
	}

	appointment.Status = model.AppointmentCancelled
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to store appointment: %w", err)
	}

	return appointment, nil
}
