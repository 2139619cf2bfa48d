package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	QueueResultSubmitted = "test_result.submitted"
	QueueReviewCreated   = "review_request.created"
	QueueReviewResolved  = "review_request.resolved"
)

type ResultSubmitted struct {
	ResultID     string    `json:"resultId"`
	TestID       string    `json:"testId"`
	UserID       string    `json:"userId"`
	Score        int       `json:"score"`
	MarksAwarded int       `json:"marksAwarded"`
	TotalMarks   int       `json:"totalMarks"`
	CompletedAt  time.Time `json:"completedAt"`
}

type ReviewCreated struct {
	RequestID    string    `json:"requestId"`
	TestResultID string    `json:"testResultId"`
	QuestionID   string    `json:"questionId"`
	UserID       string    `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ReviewResolved struct {
	RequestID    string    `json:"requestId"`
	TestResultID string    `json:"testResultId"`
	QuestionID   string    `json:"questionId"`
	UserID       string    `json:"userId"`
	Status       string    `json:"status"`
	NewMarks     *int      `json:"newMarks,omitempty"`
	Score        *int      `json:"score,omitempty"`
	ReviewedBy   string    `json:"reviewedBy"`
	ReviewedAt   time.Time `json:"reviewedAt"`
}

// Events publishes domain events as JSON. Delivery is best effort: failures
// are logged and never reach the caller.
type Events struct {
	publisher Publisher
}

func NewEvents(publisher Publisher) *Events {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &Events{publisher: publisher}
}

func (e *Events) ResultSubmitted(ctx context.Context, ev ResultSubmitted) {
	e.publish(ctx, QueueResultSubmitted, ev)
}

func (e *Events) ReviewCreated(ctx context.Context, ev ReviewCreated) {
	e.publish(ctx, QueueReviewCreated, ev)
}

func (e *Events) ReviewResolved(ctx context.Context, ev ReviewResolved) {
	e.publish(ctx, QueueReviewResolved, ev)
}

func (e *Events) publish(ctx context.Context, queue string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("Failed to encode event")
		return
	}

	// Publishing outlives request cancellation but not a stuck broker.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := e.publisher.Publish(pubCtx, queue, body); err != nil {
		log.Warn().Err(err).Str("queue", queue).Msg("Failed to publish event")
	}
}
