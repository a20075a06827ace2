package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"ayurcare/internal/cache"
	"ayurcare/internal/model"
	"ayurcare/internal/repository"
)

// PlanService decides which plan source a patient currently sees and owns
// every mutation of the embedded plan state. Precedence is strict: a
// completed appointment always wins, even when its diet plan was never made
// visible; only patients without any completed visit fall through to the
// plan state (meal-plan, ai, or doctor), and finally to none.
type PlanService struct {
	users        repository.UserRepo
	appointments repository.AppointmentRepo
	mealPlans    repository.MealPlanRepo
	cache        cache.PlanCache
	broadcaster  Broadcaster
	logger       zerolog.Logger
}

// NewPlanService creates a new plan service
func NewPlanService(
	users repository.UserRepo,
	appointments repository.AppointmentRepo,
	mealPlans repository.MealPlanRepo,
	planCache cache.PlanCache,
	logger zerolog.Logger,
) *PlanService {
	return &PlanService{
		users:        users,
		appointments: appointments,
		mealPlans:    mealPlans,
		cache:        planCache,
		logger:       logger,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *PlanService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// ResolveCurrentPlan returns the single plan currently visible to the
// patient, or a none result. Missing meal-plan references fall back to none
// rather than erroring.
func (s *PlanService) ResolveCurrentPlan(ctx context.Context, patientID string) (*model.CurrentPlan, error) {
	cached, err := s.cache.GetCurrent(ctx, patientID)
	if err != nil {
		s.logger.Warn().Err(err).Str("patientId", patientID).Msg("plan cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	current, err := s.resolve(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetCurrent(ctx, patientID, current); err != nil {
		s.logger.Warn().Err(err).Str("patientId", patientID).Msg("plan cache write failed")
	}

	return current, nil
}

func (s *PlanService) resolve(ctx context.Context, patientID string) (*model.CurrentPlan, error) {
	patient, err := s.requirePatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	latest, err := s.appointments.GetLatestCompletedByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up appointments: %w", err)
	}
	if latest != nil {
		// A completed visit suppresses every lower-precedence source, even
		// when the doctor never filled in a visible plan.
		current := &model.CurrentPlan{
			Type:                    model.PlanTypeNone,
			HasCompletedAppointment: true,
		}
		if latest.DietPlan != nil && latest.DietPlan.Visible {
			current.Type = model.PlanTypeDoctor
			current.DoctorPlan = latest.DietPlan
			current.AssignedAt = latest.DietPlan.PrescribedAt
			current.UpdatedAt = latest.UpdatedAt
		}
		return current, nil
	}

	state := patient.Patient.PlanState
	if !state.Visible {
		return &model.CurrentPlan{Type: model.PlanTypeNone}, nil
	}

	switch state.Type {
	case model.PlanTypeMealPlan:
		doc, err := s.mealPlans.GetByID(ctx, state.MealPlanID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch meal plan: %w", err)
		}
		if doc == nil {
			s.logger.Warn().
				Str("patientId", patientID).
				Str("mealPlanId", state.MealPlanID).
				Msg("stale meal plan reference, falling back to none")
			return &model.CurrentPlan{Type: model.PlanTypeNone}, nil
		}
		return &model.CurrentPlan{
			Type:       model.PlanTypeMealPlan,
			MealPlan:   doc,
			AssignedAt: state.CreatedAt,
			UpdatedAt:  state.UpdatedAt,
		}, nil

	case model.PlanTypeAI:
		return &model.CurrentPlan{
			Type:       model.PlanTypeAI,
			AIPlan:     state.AIPlan,
			AssignedAt: state.CreatedAt,
			UpdatedAt:  state.UpdatedAt,
		}, nil

	case model.PlanTypeDoctor:
		return &model.CurrentPlan{
			Type:       model.PlanTypeDoctor,
			DoctorPlan: state.DoctorPlan,
			AssignedAt: state.CreatedAt,
			UpdatedAt:  state.UpdatedAt,
		}, nil

	case model.PlanTypeNone:
		return &model.CurrentPlan{Type: model.PlanTypeNone}, nil
	}

	return &model.CurrentPlan{Type: model.PlanTypeNone}, nil
}

// SetAIPlan installs a generated plan on the patient. Once a doctor visit
// has concluded, AI plans may no longer be set underneath it.
func (s *PlanService) SetAIPlan(ctx context.Context, patientID string, payload *model.AIPlan) error {
	if payload == nil {
		return fmt.Errorf("%w: plan payload is required", ErrInvalidArgument)
	}
	if _, err := s.requirePatient(ctx, patientID); err != nil {
		return err
	}

	hasCompleted, err := s.appointments.HasCompletedByPatient(ctx, patientID)
	if err != nil {
		return fmt.Errorf("failed to look up appointments: %w", err)
	}
	if hasCompleted {
		return fmt.Errorf("%w: patient %s has a completed appointment, doctor plans take precedence", ErrInvalidState, patientID)
	}

	now := time.Now()
	state := model.PlanState{
		Type:      model.PlanTypeAI,
		Visible:   true,
		AIPlan:    payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.UpdatePatientPlanState(ctx, patientID, state); err != nil {
		return fmt.Errorf("failed to store plan state: %w", err)
	}

	s.invalidate(ctx, patientID)
	s.notifyPlanChanged(patientID, model.PlanTypeAI)
	return nil
}

// AssignDoctorPlan installs a doctor-authored plan directly onto the plan
// state, outside the appointment-completion flow.
func (s *PlanService) AssignDoctorPlan(ctx context.Context, patientID string, plan *model.DietPlan) error {
	if plan == nil {
		return fmt.Errorf("%w: plan is required", ErrInvalidArgument)
	}
	if _, err := s.requirePatient(ctx, patientID); err != nil {
		return err
	}

	now := time.Now()
	if plan.PrescribedAt.IsZero() {
		plan.PrescribedAt = now
	}
	plan.Visible = true

	state := model.PlanState{
		Type:       model.PlanTypeDoctor,
		Visible:    true,
		DoctorPlan: plan,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.users.UpdatePatientPlanState(ctx, patientID, state); err != nil {
		return fmt.Errorf("failed to store plan state: %w", err)
	}

	s.invalidate(ctx, patientID)
	s.notifyPlanChanged(patientID, model.PlanTypeDoctor)
	return nil
}

// AssignMealPlan points the plan state at a stored meal-plan document.
func (s *PlanService) AssignMealPlan(ctx context.Context, patientID, mealPlanID string) error {
	if _, err := s.requirePatient(ctx, patientID); err != nil {
		return err
	}

	doc, err := s.mealPlans.GetByID(ctx, mealPlanID)
	if err != nil {
		return fmt.Errorf("failed to fetch meal plan: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("%w: meal plan %s", ErrNotFound, mealPlanID)
	}

	now := time.Now()
	state := model.PlanState{
		Type:       model.PlanTypeMealPlan,
		MealPlanID: mealPlanID,
		Visible:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.users.UpdatePatientPlanState(ctx, patientID, state); err != nil {
		return fmt.Errorf("failed to store plan state: %w", err)
	}

	s.invalidate(ctx, patientID)
	s.notifyPlanChanged(patientID, model.PlanTypeMealPlan)
	return nil
}

// ClearOnDoctorCompletion retires whatever plan state the patient had once a
// doctor visit concludes. Invoked as a side effect of appointment
// completion; a not-yet-completed appointment makes this a no-op.
func (s *PlanService) ClearOnDoctorCompletion(ctx context.Context, appointmentID string) error {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return fmt.Errorf("failed to load appointment: %w", err)
	}
	if appointment == nil {
		return fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
	}
	if appointment.Status != model.AppointmentCompleted {
		return nil
	}

	now := time.Now()
	state := model.PlanState{
		Type:      model.PlanTypeNone,
		Visible:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.UpdatePatientPlanState(ctx, appointment.PatientID, state); err != nil {
		return fmt.Errorf("failed to reset plan state: %w", err)
	}

	s.logger.Info().
		Str("patientId", appointment.PatientID).
		Str("appointmentId", appointmentID).
		Msg("plan state cleared on doctor completion")

	s.invalidate(ctx, appointment.PatientID)
	return nil
}

// ResetPlan unconditionally clears the plan state. Always permitted.
func (s *PlanService) ResetPlan(ctx context.Context, patientID string) error {
	if _, err := s.requirePatient(ctx, patientID); err != nil {
		return err
	}

	now := time.Now()
	state := model.PlanState{
		Type:      model.PlanTypeNone,
		Visible:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.UpdatePatientPlanState(ctx, patientID, state); err != nil {
		return fmt.Errorf("failed to reset plan state: %w", err)
	}

	s.invalidate(ctx, patientID)
	s.notifyPlanChanged(patientID, model.PlanTypeNone)
	return nil
}

func (s *PlanService) invalidate(ctx context.Context, patientID string) {
	if err := s.cache.Invalidate(ctx, patientID); err != nil {
		s.logger.Warn().Err(err).Str("patientId", patientID).Msg("failed to invalidate plan cache")
	}
}

func (s *PlanService) notifyPlanChanged(patientID string, planType model.PlanType) {
	if s.broadcaster == nil {
		return
	}
	payload := map[string]interface{}{"planType": planType}
	s.broadcaster.BroadcastToPatient(patientID, "plan_changed", payload)
	s.broadcaster.BroadcastToWatchers(patientID, "plan_changed", payload)
}

func (s *PlanService) requirePatient(ctx context.Context, patientID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	if user == nil || user.Role != model.RolePatient || user.Patient == nil {
		return nil, fmt.Errorf("%w: patient %s", ErrNotFound, patientID)
	}
	return user, nil
}
