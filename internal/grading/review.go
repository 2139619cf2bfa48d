package grading

import (
	"fmt"
	"strings"
	"time"
)

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Terminal reports whether no further transition is possible.
func (s ReviewStatus) Terminal() bool {
	return s == ReviewApproved || s == ReviewRejected
}

// ReviewRequest is a student's dispute over one auto-graded question.
type ReviewRequest struct {
	ID           string
	TestResultID string
	QuestionID   string
	UserID       string
	Reason       string
	Status       ReviewStatus
	ReviewedBy   string
	ReviewNotes  string
	NewMarks     *int
	CreatedAt    time.Time
	ReviewedAt   *time.Time
}

// Decision is the reviewer's verdict on a pending request.
type Decision struct {
	Status     ReviewStatus
	ReviewerID string
	Notes      string
	NewMarks   *int
}

// Resolve moves a pending request to approved or rejected. It fails with
// InvalidStateError once the request is resolved and with ValidationError
// for a malformed decision; in both cases the request is left untouched.
func (r *ReviewRequest) Resolve(d Decision, at time.Time) error {
	if r.Status.Terminal() {
		return &InvalidStateError{RequestID: r.ID, Status: r.Status}
	}
	if d.Status != ReviewApproved && d.Status != ReviewRejected {
		return &ValidationError{Field: "decision", Message: fmt.Sprintf("must be %q or %q", ReviewApproved, ReviewRejected)}
	}
	if strings.TrimSpace(d.ReviewerID) == "" {
		return &ValidationError{Field: "reviewer_id", Message: "a reviewer is required"}
	}
	if d.Status == ReviewRejected && d.NewMarks != nil {
		return &ValidationError{Field: "new_marks", Message: "a rejected request cannot carry new marks"}
	}

	r.Status = d.Status
	r.ReviewedBy = d.ReviewerID
	r.ReviewNotes = strings.TrimSpace(d.Notes)
	r.NewMarks = d.NewMarks
	r.ReviewedAt = &at
	return nil
}

// ApplyOverride sets the awarded marks of one question in place. It leaves
// IsCorrect, every other entry and the aggregate score untouched; refreshing
// the aggregate is up to the caller (see RecomputeScore).
func ApplyOverride(result *TestResult, questionID string, newMarks int) error {
	idx := -1
	for i := range result.DetailedResults {
		if result.DetailedResults[i].QuestionID == questionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &ValidationError{Field: "question_id", Message: fmt.Sprintf("question %s is not part of result %s", questionID, result.ID)}
	}

	maxMarks := result.DetailedResults[idx].MaxMarks
	if newMarks < 0 || newMarks > maxMarks {
		return &ValidationError{Field: "new_marks", Message: fmt.Sprintf("must be between 0 and %d, got %d", maxMarks, newMarks)}
	}

	result.DetailedResults[idx].MarksAwarded = newMarks
	return nil
}
