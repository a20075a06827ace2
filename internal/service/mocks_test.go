package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ayurcare/internal/model"
	"ayurcare/internal/prakriti"
)

// MockUserRepo is a mock type for the repository.UserRepo interface
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) UpdatePatientPlanState(ctx context.Context, patientID string, state model.PlanState) error {
	args := m.Called(ctx, patientID, state)
	return args.Error(0)
}

func (m *MockUserRepo) UpdatePatientPrakriti(ctx context.Context, patientID string, c prakriti.Classification) error {
	args := m.Called(ctx, patientID, c)
	return args.Error(0)
}

// MockAssessmentRepo is a mock type for the repository.AssessmentRepo interface
type MockAssessmentRepo struct {
	mock.Mock
}

func (m *MockAssessmentRepo) Create(ctx context.Context, assessment *model.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepo) GetByID(ctx context.Context, id string) (*model.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assessment), args.Error(1)
}

func (m *MockAssessmentRepo) GetInProgressByPatient(ctx context.Context, patientID string) (*model.Assessment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Assessment), args.Error(1)
}

func (m *MockAssessmentRepo) GetCompletedByPatient(ctx context.Context, patientID string) ([]*model.Assessment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Assessment), args.Error(1)
}

func (m *MockAssessmentRepo) Update(ctx context.Context, assessment *model.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

// MockAppointmentRepo is a mock type for the repository.AppointmentRepo interface
type MockAppointmentRepo struct {
	mock.Mock
}

func (m *MockAppointmentRepo) Create(ctx context.Context, appointment *model.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepo) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) GetByPatientID(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) GetLatestCompletedByPatient(ctx context.Context, patientID string) (*model.Appointment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) HasCompletedByPatient(ctx context.Context, patientID string) (bool, error) {
	args := m.Called(ctx, patientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepo) Update(ctx context.Context, appointment *model.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

// MockMealPlanRepo is a mock type for the repository.MealPlanRepo interface
type MockMealPlanRepo struct {
	mock.Mock
}

func (m *MockMealPlanRepo) Create(ctx context.Context, plan *model.MealPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockMealPlanRepo) GetByID(ctx context.Context, id string) (*model.MealPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepo) GetByPatientID(ctx context.Context, patientID string) ([]*model.MealPlan, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepo) Update(ctx context.Context, plan *model.MealPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockMealPlanRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAssessmentCache is a mock type for the cache.AssessmentCache interface
type MockAssessmentCache struct {
	mock.Mock
}

func (m *MockAssessmentCache) SetProgress(ctx context.Context, patientID, assessmentID string, progress *model.AssessmentProgress) error {
	args := m.Called(ctx, patientID, assessmentID, progress)
	return args.Error(0)
}

func (m *MockAssessmentCache) GetProgress(ctx context.Context, patientID, assessmentID string) (*model.AssessmentProgress, error) {
	args := m.Called(ctx, patientID, assessmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AssessmentProgress), args.Error(1)
}

func (m *MockAssessmentCache) InvalidateProgress(ctx context.Context, patientID, assessmentID string) error {
	args := m.Called(ctx, patientID, assessmentID)
	return args.Error(0)
}

// MockPlanCache is a mock type for the cache.PlanCache interface
type MockPlanCache struct {
	mock.Mock
}

func (m *MockPlanCache) SetCurrent(ctx context.Context, patientID string, plan *model.CurrentPlan) error {
	args := m.Called(ctx, patientID, plan)
	return args.Error(0)
}

func (m *MockPlanCache) GetCurrent(ctx context.Context, patientID string) (*model.CurrentPlan, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CurrentPlan), args.Error(1)
}

func (m *MockPlanCache) Invalidate(ctx context.Context, patientID string) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}
