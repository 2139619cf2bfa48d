package dto

import (
	"time"

	"github.com/lshigami/testportal/internal/grading"
)

// QuestionResponseDTO carries the answer fields only for staff callers.
type QuestionResponseDTO struct {
	ID                 string   `json:"id"`
	Position           int      `json:"position"`
	Type               string   `json:"type"`
	Prompt             string   `json:"prompt"`
	Options            []string `json:"options,omitempty"`
	Marks              int      `json:"marks"`
	Subject            string   `json:"subject,omitempty"`
	CorrectOptionIndex *int     `json:"correct_option_index,omitempty"`
	ExpectedAnswer     *string  `json:"expected_answer,omitempty"`
	CorrectNumber      *float64 `json:"correct_number,omitempty"`
}

// TestResponseDTO is used for displaying full test details.
type TestResponseDTO struct {
	ID              string                `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description,omitempty"`
	DurationMinutes int                   `json:"duration_minutes"`
	CreatedBy       string                `json:"created_by"`
	IsActive        bool                  `json:"is_active"`
	TargetClass     *int                  `json:"target_class,omitempty"`
	Subject         string                `json:"subject,omitempty"`
	TotalMarks      int                   `json:"total_marks"`
	Questions       []QuestionResponseDTO `json:"questions"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// TestSummaryDTO is used for listing tests.
type TestSummaryDTO struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedBy       string    `json:"created_by"`
	IsActive        bool      `json:"is_active"`
	TargetClass     *int      `json:"target_class,omitempty"`
	Subject         string    `json:"subject,omitempty"`
	QuestionCount   int       `json:"question_count"`
	TotalMarks      int       `json:"total_marks"`
	CreatedAt       time.Time `json:"created_at"`
}

type DetailedResultDTO struct {
	QuestionID      string              `json:"question_id"`
	QuestionType    string              `json:"question_type"`
	UserAnswer      grading.AnswerValue `json:"user_answer"`
	CorrectAnswer   grading.AnswerValue `json:"correct_answer"`
	IsCorrect       bool                `json:"is_correct"`
	SimilarityScore *float64            `json:"similarity_score,omitempty"`
	MarksAwarded    int                 `json:"marks_awarded"`
	MaxMarks        int                 `json:"max_marks"`
}

type TestResultDTO struct {
	ID                string                         `json:"id"`
	TestID            string                         `json:"test_id"`
	UserID            string                         `json:"user_id"`
	Answers           map[string]grading.AnswerValue `json:"answers"`
	Score             int                            `json:"score"`
	MarksAwarded      int                            `json:"marks_awarded"`
	TotalMarks        int                            `json:"total_marks"`
	ReviewedQuestions []string                       `json:"reviewed_questions"`
	StartedAt         time.Time                      `json:"started_at"`
	CompletedAt       time.Time                      `json:"completed_at"`
	TimeSpentSeconds  int                            `json:"time_spent_seconds"`
	DetailedResults   []DetailedResultDTO            `json:"detailed_results"`
}

type TestResultSummaryDTO struct {
	ID           string    `json:"id"`
	TestID       string    `json:"test_id"`
	UserID       string    `json:"user_id"`
	Score        int       `json:"score"`
	MarksAwarded int       `json:"marks_awarded"`
	TotalMarks   int       `json:"total_marks"`
	CompletedAt  time.Time `json:"completed_at"`
}

// NewTestResultDTO renders a graded result.
func NewTestResultDTO(r grading.TestResult) *TestResultDTO {
	out := &TestResultDTO{
		ID:                r.ID,
		TestID:            r.TestID,
		UserID:            r.UserID,
		Answers:           r.Answers,
		Score:             r.Score,
		MarksAwarded:      r.MarksAwarded,
		TotalMarks:        r.TotalMarks,
		ReviewedQuestions: r.ReviewedQuestions,
		StartedAt:         r.StartedAt,
		CompletedAt:       r.CompletedAt,
		TimeSpentSeconds:  r.TimeSpentSeconds,
		DetailedResults:   NewDetailedResultDTOs(r.DetailedResults),
	}
	if out.ReviewedQuestions == nil {
		out.ReviewedQuestions = []string{}
	}
	return out
}

func NewDetailedResultDTOs(results []grading.DetailedQuestionResult) []DetailedResultDTO {
	out := make([]DetailedResultDTO, 0, len(results))
	for _, d := range results {
		out = append(out, DetailedResultDTO{
			QuestionID:      d.QuestionID,
			QuestionType:    string(d.QuestionType),
			UserAnswer:      d.UserAnswer,
			CorrectAnswer:   d.CorrectAnswerReference,
			IsCorrect:       d.IsCorrect,
			SimilarityScore: d.SimilarityScore,
			MarksAwarded:    d.MarksAwarded,
			MaxMarks:        d.MaxMarks,
		})
	}
	return out
}
