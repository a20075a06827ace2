package model

import (
	"time"

	"ayurcare/internal/prakriti"
)

// Response records one answered question within an assessment attempt. The
// score triple is copied from the chosen option at submission time, so later
// catalog edits never change historical results.
type Response struct {
	QuestionNumber int             `json:"questionNumber" bson:"questionNumber"`
	OptionIndex    int             `json:"optionIndex" bson:"optionIndex"`
	Scores         prakriti.Scores `json:"scores" bson:"scores"`
	AnsweredAt     time.Time       `json:"answeredAt" bson:"answeredAt"`
}

// Assessment is one prakriti questionnaire attempt for a patient. At most one
// in-progress assessment exists per patient; completed attempts are kept as
// history, with the latest one authoritative.
type Assessment struct {
	ID             string                   `json:"id" bson:"_id,omitempty"`
	PatientID      string                   `json:"patientId" bson:"patientId"`
	Responses      []Response               `json:"responses" bson:"responses"`
	Totals         prakriti.Scores          `json:"totals" bson:"totals"`
	Completed      bool                     `json:"completed" bson:"completed"`
	CompletedAt    *time.Time               `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	Classification *prakriti.Classification `json:"classification,omitempty" bson:"classification,omitempty"`
	CreatedAt      time.Time                `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt" bson:"updatedAt"`
}

// ResponseFor returns the response recorded for a question number, if any.
func (a *Assessment) ResponseFor(questionNumber int) (*Response, bool) {
	for i := range a.Responses {
		if a.Responses[i].QuestionNumber == questionNumber {
			return &a.Responses[i], true
		}
	}
	return nil, false
}

// AnsweredCount returns the number of distinct answered questions.
func (a *Assessment) AnsweredCount() int {
	return len(a.Responses)
}

// AssessmentProgress is the read projection of an attempt's current state.
// Classification is present only once the attempt has completed.
type AssessmentProgress struct {
	AssessmentID   string                   `json:"assessmentId"`
	Answered       int                      `json:"answered"`
	TotalQuestions int                      `json:"totalQuestions"`
	Totals         prakriti.Scores          `json:"totals"`
	Completed      bool                     `json:"completed"`
	Classification *prakriti.Classification `json:"classification,omitempty"`
}
