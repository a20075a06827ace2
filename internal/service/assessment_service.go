package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"ayurcare/internal/cache"
	"ayurcare/internal/model"
	"ayurcare/internal/prakriti"
	"ayurcare/internal/repository"
)

// AssessmentService owns the prakriti questionnaire lifecycle: starting an
// attempt, recording answers one at a time, and classifying on the tenth
// distinct answer. Concurrent answers to the same question are last-write-wins;
// answers to different questions commute because responses are upserted by
// question number.
type AssessmentService struct {
	users       repository.UserRepo
	assessments repository.AssessmentRepo
	cache       cache.AssessmentCache
	broadcaster Broadcaster
	logger      zerolog.Logger
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	users repository.UserRepo,
	assessments repository.AssessmentRepo,
	assessmentCache cache.AssessmentCache,
	logger zerolog.Logger,
) *AssessmentService {
	return &AssessmentService{
		users:       users,
		assessments: assessments,
		cache:       assessmentCache,
		logger:      logger,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start returns the patient's in-progress assessment, creating one only if
// none exists. A patient never has two concurrent attempts.
func (s *AssessmentService) Start(ctx context.Context, patientID string) (*model.Assessment, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}

	existing, err := s.assessments.GetInProgressByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up assessment: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	assessment := &model.Assessment{
		PatientID: patientID,
		Responses: []model.Response{},
	}
	if err := s.assessments.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	s.logger.Info().
		Str("patientId", patientID).
		Str("assessmentId", assessment.ID).
		Msg("assessment started")

	return assessment, nil
}

// SubmitAnswer upserts the response for one question and recomputes totals.
// Re-answering a question before completion replaces the earlier response in
// place. The tenth distinct answer classifies the attempt, marks it
// completed, and writes the classification onto the patient profile.
func (s *AssessmentService) SubmitAnswer(ctx context.Context, patientID, assessmentID string, questionNumber, optionIndex int) (*model.AssessmentProgress, error) {
	question, ok := prakriti.QuestionByNumber(questionNumber)
	if !ok {
		if questionNumber < 1 || questionNumber > prakriti.QuestionCount {
			return nil, fmt.Errorf("%w: question number %d out of range 1-%d", ErrInvalidArgument, questionNumber, prakriti.QuestionCount)
		}
		return nil, fmt.Errorf("%w: question %d", ErrNotFound, questionNumber)
	}

	option, ok := question.OptionAt(optionIndex)
	if !ok {
		return nil, fmt.Errorf("%w: option index %d out of range 0-%d", ErrInvalidArgument, optionIndex, prakriti.OptionsPerQuestion-1)
	}

	assessment, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment: %w", err)
	}
	if assessment == nil || assessment.PatientID != patientID {
		return nil, fmt.Errorf("%w: assessment %s", ErrInvalidArgument, assessmentID)
	}
	if assessment.Completed {
		return nil, fmt.Errorf("%w: assessment %s is already completed", ErrInvalidState, assessmentID)
	}

	// Upsert by question number; the score triple is denormalized from the
	// chosen option so later catalog edits never rewrite history.
	response := model.Response{
		QuestionNumber: questionNumber,
		OptionIndex:    optionIndex,
		Scores:         option.Scores,
		AnsweredAt:     time.Now(),
	}
	if existing, found := assessment.ResponseFor(questionNumber); found {
		*existing = response
	} else {
		assessment.Responses = append(assessment.Responses, response)
	}

	triples := make([]prakriti.Scores, 0, len(assessment.Responses))
	for _, r := range assessment.Responses {
		triples = append(triples, r.Scores)
	}
	assessment.Totals = prakriti.ComputeTotals(triples)

	justCompleted := false
	if assessment.AnsweredCount() == prakriti.QuestionCount {
		classification, err := prakriti.Classify(assessment.Totals)
		if err != nil {
			return nil, fmt.Errorf("failed to classify: %w", err)
		}
		now := time.Now()
		assessment.Classification = &classification
		assessment.Completed = true
		assessment.CompletedAt = &now
		justCompleted = true
	}

	if err := s.assessments.Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to store assessment: %w", err)
	}

	if justCompleted {
		if err := s.users.UpdatePatientPrakriti(ctx, patientID, *assessment.Classification); err != nil {
			return nil, fmt.Errorf("failed to propagate classification: %w", err)
		}

		s.logger.Info().
			Str("patientId", patientID).
			Str("assessmentId", assessmentID).
			Str("primary", string(assessment.Classification.Primary)).
			Bool("dualType", assessment.Classification.DualType).
			Msg("assessment completed")

		if s.broadcaster != nil {
			s.broadcaster.BroadcastToWatchers(patientID, "assessment_completed", assessment.Classification)
		}
	}

	if err := s.cache.InvalidateProgress(ctx, patientID, assessmentID); err != nil {
		s.logger.Warn().Err(err).Str("assessmentId", assessmentID).Msg("failed to invalidate progress cache")
	}

	progress := &model.AssessmentProgress{
		AssessmentID:   assessment.ID,
		Answered:       assessment.AnsweredCount(),
		TotalQuestions: prakriti.QuestionCount,
		Totals:         assessment.Totals,
		Completed:      assessment.Completed,
	}
	if justCompleted {
		progress.Classification = assessment.Classification
	}
	return progress, nil
}

// GetProgress returns the read projection of an attempt, served cache-aside.
func (s *AssessmentService) GetProgress(ctx context.Context, patientID, assessmentID string) (*model.AssessmentProgress, error) {
	cached, err := s.cache.GetProgress(ctx, patientID, assessmentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("assessmentId", assessmentID).Msg("progress cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	assessment, err := s.assessments.GetByID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment: %w", err)
	}
	if assessment == nil || assessment.PatientID != patientID {
		return nil, fmt.Errorf("%w: assessment %s", ErrNotFound, assessmentID)
	}

	progress := &model.AssessmentProgress{
		AssessmentID:   assessment.ID,
		Answered:       assessment.AnsweredCount(),
		TotalQuestions: prakriti.QuestionCount,
		Totals:         assessment.Totals,
		Completed:      assessment.Completed,
		Classification: assessment.Classification,
	}

	if err := s.cache.SetProgress(ctx, patientID, assessmentID, progress); err != nil {
		s.logger.Warn().Err(err).Str("assessmentId", assessmentID).Msg("progress cache write failed")
	}

	return progress, nil
}

// History returns the patient's completed assessments, newest first. The
// first entry is the authoritative classification.
func (s *AssessmentService) History(ctx context.Context, patientID string) ([]*model.Assessment, error) {
	if err := s.requirePatient(ctx, patientID); err != nil {
		return nil, err
	}

	history, err := s.assessments.GetCompletedByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assessment history: %w", err)
	}
	return history, nil
}

func (s *AssessmentService) requirePatient(ctx context.Context, patientID string) error {
	user, err := s.users.GetByID(ctx, patientID)
	if err != nil {
		return fmt.Errorf("failed to load patient: %w", err)
	}
	if user == nil || user.Role != model.RolePatient {
		return fmt.Errorf("%w: patient %s", ErrNotFound, patientID)
	}
	return nil
}
