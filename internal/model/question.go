package model

import (
	"time"

	"github.com/lshigami/testportal/internal/grading"
	"gorm.io/datatypes"
)

// Question ids are chosen by the author and only unique within their test,
// hence the composite key.
type Question struct {
	ID                 string                      `gorm:"type:varchar(64);primaryKey" json:"id"`
	TestID             string                      `gorm:"type:varchar(36);primaryKey" json:"test_id"`
	Position           int                         `gorm:"not null" json:"position"`
	Type               string                      `gorm:"type:varchar(32);not null" json:"type"`
	Prompt             string                      `gorm:"type:text;not null" json:"prompt"`
	Options            datatypes.JSONSlice[string] `json:"options,omitempty"`
	CorrectOptionIndex *int                        `json:"correct_option_index,omitempty"`
	ExpectedAnswer     *string                     `gorm:"type:text" json:"expected_answer,omitempty"`
	CorrectNumber      *float64                    `json:"correct_number,omitempty"`
	Marks              int                         `gorm:"not null" json:"marks"`
	Subject            string                      `json:"subject,omitempty"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

func (q *Question) ToGrading() grading.Question {
	return grading.Question{
		ID:                 q.ID,
		Type:               grading.QuestionType(q.Type),
		Prompt:             q.Prompt,
		Options:            []string(q.Options),
		CorrectOptionIndex: q.CorrectOptionIndex,
		ExpectedAnswer:     q.ExpectedAnswer,
		CorrectNumber:      q.CorrectNumber,
		Marks:              q.Marks,
	}
}
