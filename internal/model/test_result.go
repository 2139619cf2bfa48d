package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/testportal/internal/grading"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TestResult is one graded attempt. A user holds at most one per test.
type TestResult struct {
	ID                string                                              `gorm:"type:varchar(36);primaryKey" json:"id"`
	TestID            string                                              `gorm:"type:varchar(36);not null;uniqueIndex:idx_test_results_test_user" json:"test_id"`
	UserID            string                                              `gorm:"type:varchar(64);not null;uniqueIndex:idx_test_results_test_user;index" json:"user_id"`
	Answers           datatypes.JSONType[map[string]grading.AnswerValue] `json:"answers"`
	Score             int                                                 `gorm:"not null" json:"score"`
	MarksAwarded      int                                                 `gorm:"not null" json:"marks_awarded"`
	TotalMarks        int                                                 `gorm:"not null" json:"total_marks"`
	ReviewedQuestions datatypes.JSONSlice[string]                         `json:"reviewed_questions"`
	StartedAt         time.Time                                           `json:"started_at"`
	CompletedAt       time.Time                                           `gorm:"index" json:"completed_at"`
	TimeSpentSeconds  int                                                 `json:"time_spent_seconds"`
	DetailedResults   []DetailedResult                                    `gorm:"foreignKey:TestResultID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"detailed_results,omitempty"`
	CreatedAt         time.Time                                           `json:"created_at"`
	UpdatedAt         time.Time                                           `json:"updated_at"`
}

func (r *TestResult) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// DetailedResult is the stored outcome of one question within a result.
type DetailedResult struct {
	ID              uint         `gorm:"primarykey" json:"-"`
	TestResultID    string       `gorm:"type:varchar(36);not null;index" json:"-"`
	QuestionID      string       `gorm:"type:varchar(64);not null" json:"question_id"`
	Position        int          `gorm:"not null" json:"position"`
	QuestionType    string       `gorm:"type:varchar(32);not null" json:"question_type"`
	UserAnswer      AnswerColumn `json:"user_answer"`
	CorrectAnswer   AnswerColumn `json:"correct_answer"`
	IsCorrect       bool         `gorm:"not null" json:"is_correct"`
	SimilarityScore *float64     `json:"similarity_score,omitempty"`
	MarksAwarded    int          `gorm:"not null" json:"marks_awarded"`
	MaxMarks        int          `gorm:"not null" json:"max_marks"`
}

func (r *TestResult) ToGrading() grading.TestResult {
	detailed := make([]grading.DetailedQuestionResult, 0, len(r.DetailedResults))
	for _, d := range r.DetailedResults {
		detailed = append(detailed, d.ToGrading())
	}
	return grading.TestResult{
		ID:                r.ID,
		TestID:            r.TestID,
		UserID:            r.UserID,
		Answers:           r.Answers.Data(),
		DetailedResults:   detailed,
		Score:             r.Score,
		MarksAwarded:      r.MarksAwarded,
		TotalMarks:        r.TotalMarks,
		ReviewedQuestions: []string(r.ReviewedQuestions),
		StartedAt:         r.StartedAt,
		CompletedAt:       r.CompletedAt,
		TimeSpentSeconds:  r.TimeSpentSeconds,
	}
}

func (d *DetailedResult) ToGrading() grading.DetailedQuestionResult {
	return grading.DetailedQuestionResult{
		QuestionID:             d.QuestionID,
		QuestionType:           grading.QuestionType(d.QuestionType),
		UserAnswer:             d.UserAnswer.AnswerValue,
		CorrectAnswerReference: d.CorrectAnswer.AnswerValue,
		IsCorrect:              d.IsCorrect,
		SimilarityScore:        d.SimilarityScore,
		MarksAwarded:           d.MarksAwarded,
		MaxMarks:               d.MaxMarks,
	}
}

// NewTestResult builds the row for a freshly graded attempt. Detailed
// results keep the order they were graded in.
func NewTestResult(r grading.TestResult) *TestResult {
	reviewed := r.ReviewedQuestions
	if reviewed == nil {
		reviewed = []string{}
	}
	answers := r.Answers
	if answers == nil {
		answers = map[string]grading.AnswerValue{}
	}

	row := &TestResult{
		ID:                r.ID,
		TestID:            r.TestID,
		UserID:            r.UserID,
		Answers:           datatypes.NewJSONType(answers),
		Score:             r.Score,
		MarksAwarded:      r.MarksAwarded,
		TotalMarks:        r.TotalMarks,
		ReviewedQuestions: datatypes.NewJSONSlice(reviewed),
		StartedAt:         r.StartedAt,
		CompletedAt:       r.CompletedAt,
		TimeSpentSeconds:  r.TimeSpentSeconds,
	}
	for i, d := range r.DetailedResults {
		row.DetailedResults = append(row.DetailedResults, DetailedResult{
			QuestionID:      d.QuestionID,
			Position:        i,
			QuestionType:    string(d.QuestionType),
			UserAnswer:      NewAnswerColumn(d.UserAnswer),
			CorrectAnswer:   NewAnswerColumn(d.CorrectAnswerReference),
			IsCorrect:       d.IsCorrect,
			SimilarityScore: d.SimilarityScore,
			MarksAwarded:    d.MarksAwarded,
			MaxMarks:        d.MaxMarks,
		})
	}
	return row
}
