package dto

import (
	"time"

	"github.com/lshigami/testportal/internal/grading"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Caller identifies who is asking. Authentication happens upstream; the
// identity arrives as query parameters.
type Caller struct {
	UserID string `form:"user_id" binding:"required"`
	Role   Role   `form:"role" binding:"required,oneof=student teacher admin"`
	Class  *int   `form:"class" binding:"omitempty,min=1"`
}

// IsStaff reports whether the caller may see answer keys and other users'
// results.
func (c Caller) IsStaff() bool {
	return c.Role == RoleTeacher || c.Role == RoleAdmin
}

// AttemptSubmitDTO is a student's whole-test submission. Answers are keyed
// by question id; a value is an option index, a number or a string.
type AttemptSubmitDTO struct {
	UserID            string                         `json:"user_id" binding:"required"`
	Answers           map[string]grading.AnswerValue `json:"answers"`
	ReviewedQuestions []string                       `json:"reviewed_questions"`
	StartedAt         *time.Time                     `json:"started_at"`
	CompletedAt       *time.Time                     `json:"completed_at"`
	TimeSpentSeconds  int                            `json:"time_spent_seconds" binding:"min=0"`
}

type ReviewRequestCreateDTO struct {
	UserID     string `json:"user_id" binding:"required"`
	QuestionID string `json:"question_id" binding:"required"`
	Reason     string `json:"reason" binding:"required,max=2000"`
}

type ReviewResolveDTO struct {
	Decision   string `json:"decision" binding:"required,oneof=approved rejected"`
	ReviewerID string `json:"reviewer_id" binding:"required"`
	Notes      string `json:"notes"`
	NewMarks   *int   `json:"new_marks" binding:"omitempty,min=0"`
}
