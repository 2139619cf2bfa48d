package grading

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	TrueFalse      QuestionType = "true-false"
	ShortAnswer    QuestionType = "short-answer"
	FillInBlank    QuestionType = "fill-in-blank"
	RealNumber     QuestionType = "real-number"
)

// QuestionTypes lists every supported type in display order.
var QuestionTypes = []QuestionType{MultipleChoice, TrueFalse, ShortAnswer, FillInBlank, RealNumber}

func (t QuestionType) Valid() bool {
	switch t {
	case MultipleChoice, TrueFalse, ShortAnswer, FillInBlank, RealNumber:
		return true
	}
	return false
}

// IsText reports whether answers of this type are free text graded by
// similarity. Only these can be disputed through a review request.
func (t QuestionType) IsText() bool {
	return t == ShortAnswer || t == FillInBlank
}

// DefaultMarks is used when a question carries no positive marks value.
const DefaultMarks = 1

// Question is one test item. Which of CorrectOptionIndex, ExpectedAnswer
// and CorrectNumber is authoritative depends on Type.
type Question struct {
	ID                 string
	Type               QuestionType
	Prompt             string
	Options            []string
	CorrectOptionIndex *int
	ExpectedAnswer     *string
	CorrectNumber      *float64
	Marks              int
}

// MaxMarks is the credit available for the question.
func (q Question) MaxMarks() int {
	if q.Marks <= 0 {
		return DefaultMarks
	}
	return q.Marks
}

// Reference returns the authoritative answer for the question's type, or
// NoAnswer when the field is missing.
func (q Question) Reference() AnswerValue {
	switch q.Type {
	case MultipleChoice, TrueFalse:
		if q.CorrectOptionIndex != nil {
			return IndexValue(*q.CorrectOptionIndex)
		}
	case ShortAnswer, FillInBlank:
		if q.ExpectedAnswer != nil {
			return TextValue(*q.ExpectedAnswer)
		}
	case RealNumber:
		if q.CorrectNumber != nil {
			return NumberValue(*q.CorrectNumber)
		}
	}
	return NoAnswer
}

type Test struct {
	ID        string
	Questions []Question
}

// TotalMarks sums MaxMarks over every question.
func (t Test) TotalMarks() int {
	total := 0
	for _, q := range t.Questions {
		total += q.MaxMarks()
	}
	return total
}

// DetailedQuestionResult is the graded outcome of one question.
type DetailedQuestionResult struct {
	QuestionID             string       `json:"question_id"`
	QuestionType           QuestionType `json:"question_type"`
	UserAnswer             AnswerValue  `json:"user_answer"`
	CorrectAnswerReference AnswerValue  `json:"correct_answer"`
	IsCorrect              bool         `json:"is_correct"`
	SimilarityScore        *float64     `json:"similarity_score,omitempty"`
	MarksAwarded           int          `json:"marks_awarded"`
	MaxMarks               int          `json:"max_marks"`
}

// Attempted reports whether the student submitted anything for the question.
func (r DetailedQuestionResult) Attempted() bool {
	if s, ok := r.UserAnswer.Text(); ok {
		return strings.TrimSpace(s) != ""
	}
	return !r.UserAnswer.IsZero()
}

// TestResult is a persisted, graded attempt.
type TestResult struct {
	ID                string
	TestID            string
	UserID            string
	Answers           map[string]AnswerValue
	DetailedResults   []DetailedQuestionResult
	Score             int
	MarksAwarded      int
	TotalMarks        int
	ReviewedQuestions []string
	StartedAt         time.Time
	CompletedAt       time.Time
	TimeSpentSeconds  int
}

// ValidateQuestion checks that an authored question carries the fields its
// type needs. Grading never calls it; stored data may still be broken and
// is handled as a DataIntegrityError there.
func ValidateQuestion(q Question) error {
	if !q.Type.Valid() {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unsupported question type %q", q.Type)}
	}
	if q.Marks < 0 {
		return &ValidationError{Field: "marks", Message: "must not be negative"}
	}
	switch q.Type {
	case MultipleChoice:
		if len(q.Options) < 2 {
			return &ValidationError{Field: "options", Message: "multiple-choice needs at least two options"}
		}
		for i, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return &ValidationError{Field: "options", Message: fmt.Sprintf("option %d is empty", i)}
			}
		}
		if q.CorrectOptionIndex == nil || *q.CorrectOptionIndex < 0 || *q.CorrectOptionIndex >= len(q.Options) {
			return &ValidationError{Field: "correct_option_index", Message: "must point at one of the options"}
		}
	case TrueFalse:
		if q.CorrectOptionIndex == nil || (*q.CorrectOptionIndex != 0 && *q.CorrectOptionIndex != 1) {
			return &ValidationError{Field: "correct_option_index", Message: "true-false answer must be 0 (False) or 1 (True)"}
		}
	case ShortAnswer, FillInBlank:
		if q.ExpectedAnswer == nil || strings.TrimSpace(*q.ExpectedAnswer) == "" {
			return &ValidationError{Field: "expected_answer", Message: "required for " + string(q.Type)}
		}
	case RealNumber:
		if q.CorrectNumber == nil || math.IsNaN(*q.CorrectNumber) || math.IsInf(*q.CorrectNumber, 0) {
			return &ValidationError{Field: "correct_number", Message: "must be a finite number"}
		}
	}
	return nil
}
