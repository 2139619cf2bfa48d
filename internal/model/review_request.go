package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/testportal/internal/grading"
	"gorm.io/gorm"
)

type ReviewRequest struct {
	ID           string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	TestResultID string     `gorm:"type:varchar(36);not null;index" json:"test_result_id"`
	QuestionID   string     `gorm:"type:varchar(64);not null" json:"question_id"`
	UserID       string     `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Reason       string     `gorm:"type:text;not null" json:"reason"`
	Status       string     `gorm:"type:varchar(16);not null;index" json:"status"`
	ReviewedBy   string     `gorm:"type:varchar(64)" json:"reviewed_by,omitempty"`
	ReviewNotes  string     `gorm:"type:text" json:"review_notes,omitempty"`
	NewMarks     *int       `json:"new_marks,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
}

func (r *ReviewRequest) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (r *ReviewRequest) ToGrading() grading.ReviewRequest {
	return grading.ReviewRequest{
		ID:           r.ID,
		TestResultID: r.TestResultID,
		QuestionID:   r.QuestionID,
		UserID:       r.UserID,
		Reason:       r.Reason,
		Status:       grading.ReviewStatus(r.Status),
		ReviewedBy:   r.ReviewedBy,
		ReviewNotes:  r.ReviewNotes,
		NewMarks:     r.NewMarks,
		CreatedAt:    r.CreatedAt,
		ReviewedAt:   r.ReviewedAt,
	}
}

// ApplyResolution copies the resolved fields back onto the row.
func (r *ReviewRequest) ApplyResolution(g grading.ReviewRequest) {
	r.Status = string(g.Status)
	r.ReviewedBy = g.ReviewedBy
	r.ReviewNotes = g.ReviewNotes
	r.NewMarks = g.NewMarks
	r.ReviewedAt = g.ReviewedAt
}
