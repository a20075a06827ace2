package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ayurcare/internal/model"
)

func newAppointmentServiceForTest() (*AppointmentService, *MockUserRepo, *MockAppointmentRepo, *MockPlanCache) {
	users := new(MockUserRepo)
	appointments := new(MockAppointmentRepo)
	mealPlans := new(MockMealPlanRepo)
	planCache := new(MockPlanCache)
	planSvc := NewPlanService(users, appointments, mealPlans, planCache, zerolog.Nop())
	svc := NewAppointmentService(users, appointments, planSvc, zerolog.Nop())
	return svc, users, appointments, planCache
}

func TestAppointmentBook(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown doctor", func(t *testing.T) {
		svc, users, _, _ := newAppointmentServiceForTest()
		users.On("GetByID", ctx, "p1").Return(testPatient("p1"), nil)
		users.On("GetByID", ctx, "doc1").Return(nil, nil)

		_, err := svc.Book(ctx, "p1", "doc1", time.Now().Add(48*time.Hour), "checkup")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("date in the past", func(t *testing.T) {
		svc, users, appointments, _ := newAppointmentServiceForTest()
		users.On("GetByID", ctx, "p1").Return(testPatient("p1"), nil)
		users.On("GetByID", ctx, "doc1").Return(&model.User{ID: "doc1", Role: model.RoleDoctor}, nil)

		_, err := svc.Book(ctx, "p1", "doc1", time.Now().Add(-time.Hour), "checkup")
		assert.ErrorIs(t, err, ErrInvalidArgument)
		appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("schedules the visit", func(t *testing.T) {
		svc, users, appointments, _ := newAppointmentServiceForTest()
		users.On("GetByID", ctx, "p1").Return(testPatient("p1"), nil)
		users.On("GetByID", ctx, "doc1").Return(&model.User{ID: "doc1", Role: model.RoleDoctor}, nil)
		appointments.On("Create", ctx, mock.AnythingOfType("*model.Appointment")).Return(nil)

		got, err := svc.Book(ctx, "p1", "doc1", time.Now().Add(48*time.Hour), "digestive trouble")
		assert.NoError(t, err)
		assert.Equal(t, model.AppointmentScheduled, got.Status)
		assert.Equal(t, "p1", got.PatientID)
		assert.Equal(t, "doc1", got.DoctorID)
		assert.NotEmpty(t, got.BookingNumber)
		assert.Equal(t, "apt_", got.BookingNumber[:4])
	})
}

func TestAppointmentComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("only the assigned doctor may complete", func(t *testing.T) {
		svc, _, appointments, _ := newAppointmentServiceForTest()
		appointments.On("GetByID", ctx, "apt1").Return(&model.Appointment{ID: "apt1", DoctorID: "doc1", Status: model.AppointmentScheduled}, nil)

		_, err := svc.Complete(ctx, "apt1", "other-doctor", nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("already completed", func(t *testing.T) {
		svc, _, appointments, _ := newAppointmentServiceForTest()
		appointments.On("GetByID", ctx, "apt1").Return(&model.Appointment{ID: "apt1", DoctorID: "doc1", Status: model.AppointmentCompleted}, nil)

		_, err := svc.Complete(ctx, "apt1", "doc1", nil)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("cancelled visits cannot be completed", func(t *testing.T) {
		svc, _, appointments, _ := newAppointmentServiceForTest()
		appointments.On("GetByID", ctx, "apt1").Return(&model.Appointment{ID: "apt1", DoctorID: "doc1", Status: model.AppointmentCancelled}, nil)

		_, err := svc.Complete(ctx, "apt1", "doc1", nil)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("embeds the diet plan and retires the plan state", func(t *testing.T) {
		svc, users, appointments, planCache := newAppointmentServiceForTest()
		visit := &model.Appointment{
			ID:        "apt1",
			PatientID: "p1",
			DoctorID:  "doc1",
			Status:    model.AppointmentScheduled,
		}
		dietPlan := &model.DietPlan{Visible: true, Notes: "warm cooked meals only"}

		// ClearOnDoctorCompletion re-reads the visit through the same mock and
		// sees the mutated, now-completed status.
		appointments.On("GetByID", ctx, "apt1").Return(visit, nil)
		appointments.On("Update", ctx, visit).Return(nil)
		users.On("UpdatePatientPlanState", ctx, "p1", mock.MatchedBy(func(state model.PlanState) bool {
			return state.Type == model.PlanTypeNone && !state.Visible
		})).Return(nil)
		planCache.On("Invalidate", ctx, "p1").Return(nil)

		got, err := svc.Complete(ctx, "apt1", "doc1", dietPlan)
		assert.NoError(t, err)
		assert.Equal(t, model.AppointmentCompleted, got.Status)
		assert.Same(t, dietPlan, got.DietPlan)
		assert.False(t, dietPlan.PrescribedAt.IsZero())
		users.AssertExpectations(t)
		planCache.AssertExpectations(t)
	})

	t.Run("completion without a diet plan", func(t *testing.T) {
		svc, users, appointments, planCache := newAppointmentServiceForTest()
		visit := &model.Appointment{ID: "apt1", PatientID: "p1", DoctorID: "doc1", Status: model.AppointmentScheduled}
		appointments.On("GetByID", ctx, "apt1").Return(visit, nil)
		appointments.On("Update", ctx, visit).Return(nil)
		users.On("UpdatePatientPlanState", ctx, "p1", mock.AnythingOfType("model.PlanState")).Return(nil)
		planCache.On("Invalidate", ctx, "p1").Return(nil)

		got, err := svc.Complete(ctx, "apt1", "doc1", nil)
		assert.NoError(t, err)
		assert.Equal(t, model.AppointmentCompleted, got.Status)
		assert.Nil(t, got.DietPlan)
	})
}

func TestAppointmentCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("another patient's appointment", func(t *testing.T) {
		svc, _, appointments, _ := newAppointmentServiceForTest()
		appointments.On("GetByID", ctx, "apt1").Return(&model.Appointment{ID: "apt1", PatientID: "other", Status: model.AppointmentScheduled}, nil)

		_, err := svc.Cancel(ctx, "apt1", "p1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("completed appointments stay put", func(t *testing.T) {
		svc, _, appointments, _ := newAppointmentServiceForTest()
		appointments.On("GetByID", ctx, "apt1").Return(&model.Appointment{ID: "apt1", PatientID: "p1", Status: model.AppointmentCompleted}, nil)

		_, err := svc.Cancel(ctx, "apt1", "p1")
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("cancels a scheduled visit", func(t *testing.T) {
		svc, _, appointments, _ := newAppointmentServiceForTest()
		visit := &model.Appointment{ID: "apt1", PatientID: "p1", Status: model.AppointmentScheduled}
		appointments.On("GetByID", ctx, "apt1").Return(visit, nil)
		appointments.On("Update", ctx, visit).Return(nil)

		got, err := svc.Cancel(ctx, "apt1", "p1")
		assert.NoError(t, err)
		assert.Equal(t, model.AppointmentCancelled, got.Status)
	})
}
