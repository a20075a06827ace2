package handler

import (
	"net/http"

	"ayurcare/internal/prakriti"
)

// QuestionHandler serves the static questionnaire catalog
type QuestionHandler struct{}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler() *QuestionHandler {
	return &QuestionHandler{}
}

// List handles GET /v1/questions
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": prakriti.Questions(),
		"total":     prakriti.QuestionCount,
	})
}
