package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// NegativeMarkingDTO is the +4/-1 presentation of a result. It does not
// change the stored score.
type NegativeMarkingDTO struct {
	PerCorrect    int `json:"per_correct"`
	PerIncorrect  int `json:"per_incorrect"`
	MarksObtained int `json:"marks_obtained"`
	MaxMarks      int `json:"max_marks"`
	Percentage    int `json:"percentage"`
}

// ReportDTO is the printable report card of one result.
type ReportDTO struct {
	ResultID        string              `json:"result_id"`
	TestID          string              `json:"test_id"`
	TestTitle       string              `json:"test_title,omitempty"`
	UserID          string              `json:"user_id"`
	TotalQuestions  int                 `json:"total_questions"`
	Attempted       int                 `json:"attempted"`
	Correct         int                 `json:"correct"`
	Incorrect       int                 `json:"incorrect"`
	Unattempted     int                 `json:"unattempted"`
	Accuracy        int                 `json:"accuracy"`
	MarksAwarded    int                 `json:"marks_awarded"`
	TotalMarks      int                 `json:"total_marks"`
	Percentage      int                 `json:"percentage"`
	Grade           string              `json:"grade"`
	Passed          bool                `json:"passed"`
	TimeSpentSecs   int                 `json:"time_spent_seconds"`
	CompletedAt     time.Time           `json:"completed_at"`
	NegativeMarking NegativeMarkingDTO  `json:"negative_marking"`
	Questions       []DetailedResultDTO `json:"questions"`
}

type DistributionDTO struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Fair      int `json:"fair"`
	Poor      int `json:"poor"`
}

type ResultStatsDTO struct {
	TestID       string          `json:"test_id,omitempty"`
	Count        int             `json:"count"`
	Average      int             `json:"average"`
	Highest      int             `json:"highest"`
	Distribution DistributionDTO `json:"distribution"`
}

type ReviewRequestDTO struct {
	ID           string     `json:"id"`
	TestResultID string     `json:"test_result_id"`
	QuestionID   string     `json:"question_id"`
	UserID       string     `json:"user_id"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	ReviewedBy   string     `json:"reviewed_by,omitempty"`
	ReviewNotes  string     `json:"review_notes,omitempty"`
	NewMarks     *int       `json:"new_marks,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
}
