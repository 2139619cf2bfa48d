package grading

import "fmt"

// ValidationError reports a rejected review override or a malformed
// authoring/review input. Nothing is mutated when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// InvalidStateError reports an attempt to resolve a review request that is
// no longer pending.
type InvalidStateError struct {
	RequestID string
	Status    ReviewStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("review request %s is already %s", e.RequestID, e.Status)
}

// DataIntegrityError marks a question that lacks the authoritative answer
// field its type requires. Graders absorb it and award zero marks.
type DataIntegrityError struct {
	QuestionID string
	Type       QuestionType
	Field      string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("question %s (%s) is missing %s", e.QuestionID, e.Type, e.Field)
}

// TransientScoringError wraps a failure of the remote similarity service.
// It never leaves the TextSimilarityScorer.
type TransientScoringError struct {
	Err error
}

func (e *TransientScoringError) Error() string {
	return fmt.Sprintf("similarity service unavailable: %v", e.Err)
}

func (e *TransientScoringError) Unwrap() error { return e.Err }
