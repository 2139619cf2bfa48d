package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/testportal/internal/grading"
	"gorm.io/gorm"
)

type Test struct {
	ID              string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title           string         `gorm:"not null" json:"title"`
	Description     string         `json:"description,omitempty"`
	DurationMinutes int            `gorm:"not null" json:"duration_minutes"`
	CreatedBy       string         `gorm:"type:varchar(64);not null;index" json:"created_by"`
	IsActive        bool           `gorm:"not null" json:"is_active"`
	TargetClass     *int           `gorm:"index" json:"target_class,omitempty"`
	Subject         string         `json:"subject,omitempty"`
	Questions       []Question     `gorm:"foreignKey:TestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"questions,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Test) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// VisibleToClass reports whether a student of the given class may see the
// test. Tests without a target class are open to every class.
func (t *Test) VisibleToClass(class *int) bool {
	if t.TargetClass == nil {
		return true
	}
	return class != nil && *class == *t.TargetClass
}

// ToGrading converts the test and its loaded questions. Questions are
// expected to be ordered by Position.
func (t *Test) ToGrading() grading.Test {
	questions := make([]grading.Question, 0, len(t.Questions))
	for i := range t.Questions {
		questions = append(questions, t.Questions[i].ToGrading())
	}
	return grading.Test{ID: t.ID, Questions: questions}
}
