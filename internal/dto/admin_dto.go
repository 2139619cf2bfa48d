package dto

// QuestionCreateDTO is one authored question. Which answer field is required
// depends on Type.
type QuestionCreateDTO struct {
	ID                 string   `json:"id" validate:"omitempty,max=64"`
	Type               string   `json:"type" validate:"required,oneof=multiple-choice true-false short-answer fill-in-blank real-number"`
	Prompt             string   `json:"prompt" validate:"required"`
	Options            []string `json:"options"`
	CorrectOptionIndex *int     `json:"correct_option_index"`
	ExpectedAnswer     *string  `json:"expected_answer"`
	CorrectNumber      *float64 `json:"correct_number"`
	Marks              int      `json:"marks" validate:"min=0"`
	Subject            string   `json:"subject"`
}

// TestCreateDTO is for admins and teachers to create a test with all its
// questions.
type TestCreateDTO struct {
	Title           string              `json:"title" validate:"required,max=200"`
	Description     string              `json:"description,omitempty"`
	DurationMinutes int                 `json:"duration_minutes" validate:"required,min=1"`
	CreatedBy       string              `json:"created_by" validate:"required"`
	IsActive        *bool               `json:"is_active"`
	TargetClass     *int                `json:"target_class" validate:"omitempty,min=1"`
	Subject         string              `json:"subject,omitempty"`
	Questions       []QuestionCreateDTO `json:"questions" validate:"required,min=1,dive"`
}

// TestUpdateDTO changes only the fields that are present. Questions, when
// given, replace the stored list wholesale.
type TestUpdateDTO struct {
	Title           *string             `json:"title" validate:"omitempty,min=1,max=200"`
	Description     *string             `json:"description"`
	DurationMinutes *int                `json:"duration_minutes" validate:"omitempty,min=1"`
	IsActive        *bool               `json:"is_active"`
	TargetClass     *int                `json:"target_class" validate:"omitempty,min=1"`
	Subject         *string             `json:"subject"`
	Questions       []QuestionCreateDTO `json:"questions" validate:"omitempty,min=1,dive"`
}
