package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ayurcare/internal/model"
	"ayurcare/internal/prakriti"
)

func newAssessmentServiceForTest() (*AssessmentService, *MockUserRepo, *MockAssessmentRepo, *MockAssessmentCache) {
	users := new(MockUserRepo)
	assessments := new(MockAssessmentRepo)
	progressCache := new(MockAssessmentCache)
	svc := NewAssessmentService(users, assessments, progressCache, zerolog.Nop())
	return svc, users, assessments, progressCache
}

func testPatient(id string) *model.User {
	return &model.User{
		ID:      id,
		Name:    "Test Patient",
		Role:    model.RolePatient,
		Patient: &model.PatientProfile{},
	}
}

// inProgressAssessment builds an attempt with answers for questions 1..n,
// all pointing at option 0 (a vata option for every catalog question).
func inProgressAssessment(id, patientID string, n int) *model.Assessment {
	a := &model.Assessment{
		ID:        id,
		PatientID: patientID,
		Responses: []model.Response{},
		CreatedAt: time.Now(),
	}
	for q := 1; q <= n; q++ {
		a.Responses = append(a.Responses, model.Response{
			QuestionNumber: q,
			OptionIndex:    0,
			Scores:         prakriti.Scores{Vata: 3},
			AnsweredAt:     time.Now(),
		})
	}
	a.Totals = prakriti.Scores{Vata: 3 * n}
	return a
}

func TestAssessmentServiceStart(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown patient", func(t *testing.T) {
		svc, users, _, _ := newAssessmentServiceForTest()
		users.On("GetByID", ctx, "missing").Return(nil, nil)

		_, err := svc.Start(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("doctor cannot start an assessment", func(t *testing.T) {
		svc, users, _, _ := newAssessmentServiceForTest()
		users.On("GetByID", ctx, "doc1").Return(&model.User{ID: "doc1", Role: model.RoleDoctor}, nil)

		_, err := svc.Start(ctx, "doc1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("resumes existing in-progress attempt", func(t *testing.T) {
		svc, users, assessments, _ := newAssessmentServiceForTest()
		existing := inProgressAssessment("a1", "p1", 4)
		users.On("GetByID", ctx, "p1").Return(testPatient("p1"), nil)
		assessments.On("GetInProgressByPatient", ctx, "p1").Return(existing, nil)

		got, err := svc.Start(ctx, "p1")
		assert.NoError(t, err)
		assert.Same(t, existing, got)
		assessments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates fresh attempt when none in progress", func(t *testing.T) {
		svc, users, assessments, _ := newAssessmentServiceForTest()
		users.On("GetByID", ctx, "p1").Return(testPatient("p1"), nil)
		assessments.On("GetInProgressByPatient", ctx, "p1").Return(nil, nil)
		assessments.On("Create", ctx, mock.AnythingOfType("*model.Assessment")).Return(nil)

		got, err := svc.Start(ctx, "p1")
		assert.NoError(t, err)
		assert.Equal(t, "p1", got.PatientID)
		assert.Zero(t, got.Totals)
		assert.Empty(t, got.Responses)
		assessments.AssertExpectations(t)
	})
}

func TestAssessmentServiceSubmitAnswerValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("question number out of range", func(t *testing.T) {
		svc, _, _, _ := newAssessmentServiceForTest()

		_, err := svc.SubmitAnswer(ctx, "p1", "a1", 0, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = svc.SubmitAnswer(ctx, "p1", "a1", 11, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("option index out of range", func(t *testing.T) {
		svc, _, _, _ := newAssessmentServiceForTest()

		_, err := svc.SubmitAnswer(ctx, "p1", "a1", 1, -1)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = svc.SubmitAnswer(ctx, "p1", "a1", 1, 3)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("missing assessment", func(t *testing.T) {
		svc, _, assessments, _ := newAssessmentServiceForTest()
		assessments.On("GetByID", ctx, "ghost").Return(nil, nil)

		_, err := svc.SubmitAnswer(ctx, "p1", "ghost", 1, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("assessment owned by another patient", func(t *testing.T) {
		svc, _, assessments, _ := newAssessmentServiceForTest()
		assessments.On("GetByID", ctx, "a1").Return(inProgressAssessment("a1", "other", 2), nil)

		_, err := svc.SubmitAnswer(ctx, "p1", "a1", 1, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("completed assessment rejects further answers", func(t *testing.T) {
		svc, _, assessments, _ := newAssessmentServiceForTest()
		done := inProgressAssessment("a1", "p1", 10)
		done.Completed = true
		assessments.On("GetByID", ctx, "a1").Return(done, nil)

		_, err := svc.SubmitAnswer(ctx, "p1", "a1", 3, 1)
		assert.ErrorIs(t, err, ErrInvalidState)
		assessments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAssessmentServiceSubmitAnswerUpsert(t *testing.T) {
	ctx := context.Background()
	svc, _, assessments, progressCache := newAssessmentServiceForTest()

	attempt := inProgressAssessment("a1", "p1", 3)
	assessments.On("GetByID", ctx, "a1").Return(attempt, nil)
	assessments.On("Update", ctx, attempt).Return(nil)
	progressCache.On("InvalidateProgress", ctx, "p1", "a1").Return(nil)

	// Re-answer question 2 with the pitta option; the count must not grow
	// and the totals must reflect only the latest selection.
	progress, err := svc.SubmitAnswer(ctx, "p1", "a1", 2, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, progress.Answered)
	assert.Equal(t, prakriti.Scores{Vata: 6, Pitta: 3}, progress.Totals)
	assert.False(t, progress.Completed)
	assert.Nil(t, progress.Classification)

	response, found := attempt.ResponseFor(2)
	assert.True(t, found)
	assert.Equal(t, 1, response.OptionIndex)
	assert.Equal(t, prakriti.Scores{Pitta: 3}, response.Scores)
}

func TestAssessmentServiceSubmitAnswerAddsNewResponse(t *testing.T) {
	ctx := context.Background()
	svc, _, assessments, progressCache := newAssessmentServiceForTest()

	attempt := inProgressAssessment("a1", "p1", 3)
	assessments.On("GetByID", ctx, "a1").Return(attempt, nil)
	assessments.On("Update", ctx, attempt).Return(nil)
	progressCache.On("InvalidateProgress", ctx, "p1", "a1").Return(nil)

	progress, err := svc.SubmitAnswer(ctx, "p1", "a1", 4, 2)
	assert.NoError(t, err)
	assert.Equal(t, 4, progress.Answered)
	assert.Equal(t, prakriti.Scores{Vata: 9, Kapha: 3}, progress.Totals)
}

func TestAssessmentServiceCompletionOnTenthAnswer(t *testing.T) {
	ctx := context.Background()
	svc, users, assessments, progressCache := newAssessmentServiceForTest()

	attempt := inProgressAssessment("a1", "p1", 9)
	assessments.On("GetByID", ctx, "a1").Return(attempt, nil)
	assessments.On("Update", ctx, attempt).Return(nil)
	users.On("UpdatePatientPrakriti", ctx, "p1", mock.AnythingOfType("prakriti.Classification")).Return(nil)
	progressCache.On("InvalidateProgress", ctx, "p1", "a1").Return(nil)

	progress, err := svc.SubmitAnswer(ctx, "p1", "a1", 10, 1)
	assert.NoError(t, err)
	assert.True(t, progress.Completed)
	assert.Equal(t, 10, progress.Answered)
	assert.NotNil(t, progress.Classification)
	assert.Equal(t, prakriti.DoshaVata, progress.Classification.Primary)
	assert.False(t, progress.Classification.DualType)

	assert.True(t, attempt.Completed)
	assert.NotNil(t, attempt.CompletedAt)
	users.AssertExpectations(t)

	// A further answer on the now-completed attempt is rejected.
	_, err = svc.SubmitAnswer(ctx, "p1", "a1", 1, 2)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAssessmentServiceGetProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		svc, _, assessments, progressCache := newAssessmentServiceForTest()
		cached := &model.AssessmentProgress{AssessmentID: "a1", Answered: 5, TotalQuestions: 10}
		progressCache.On("GetProgress", ctx, "p1", "a1").Return(cached, nil)

		got, err := svc.GetProgress(ctx, "p1", "a1")
		assert.NoError(t, err)
		assert.Same(t, cached, got)
		assessments.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("cache miss loads store and fills cache", func(t *testing.T) {
		svc, _, assessments, progressCache := newAssessmentServiceForTest()
		attempt := inProgressAssessment("a1", "p1", 6)
		progressCache.On("GetProgress", ctx, "p1", "a1").Return(nil, nil)
		assessments.On("GetByID", ctx, "a1").Return(attempt, nil)
		progressCache.On("SetProgress", ctx, "p1", "a1", mock.AnythingOfType("*model.AssessmentProgress")).Return(nil)

		got, err := svc.GetProgress(ctx, "p1", "a1")
		assert.NoError(t, err)
		assert.Equal(t, 6, got.Answered)
		assert.Equal(t, prakriti.Scores{Vata: 18}, got.Totals)
		progressCache.AssertExpectations(t)
	})

	t.Run("assessment of another patient is not found", func(t *testing.T) {
		svc, _, assessments, progressCache := newAssessmentServiceForTest()
		progressCache.On("GetProgress", ctx, "p1", "a1").Return(nil, nil)
		assessments.On("GetByID", ctx, "a1").Return(inProgressAssessment("a1", "other", 2), nil)

		_, err := svc.GetProgress(ctx, "p1", "a1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAssessmentServiceHistory(t *testing.T) {
	ctx := context.Background()
	svc, users, assessments, _ := newAssessmentServiceForTest()

	completed := inProgressAssessment("a1", "p1", 10)
	completed.Completed = true
	users.On("GetByID", ctx, "p1").Return(testPatient("p1"), nil)
	assessments.On("GetCompletedByPatient", ctx, "p1").Return([]*model.Assessment{completed}, nil)

	history, err := svc.History(ctx, "p1")
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.True(t, history[0].Completed)
}
