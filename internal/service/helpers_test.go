package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/lshigami/testportal/config"
	"github.com/lshigami/testportal/database"
	"github.com/lshigami/testportal/internal/grading"
	"github.com/lshigami/testportal/internal/messaging"
	"github.com/lshigami/testportal/internal/model"
	"github.com/lshigami/testportal/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{Database: config.Database{Driver: "sqlite", Name: filepath.Join(t.TempDir(), "service.db")}}
	db, err := database.NewDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

type recordingPublisher struct {
	mu     sync.Mutex
	queues []string
}

func (p *recordingPublisher) Publish(_ context.Context, queue string, _ []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queues = append(p.queues, queue)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.queues...)
}

func newScorer() *grading.AttemptScorer {
	return grading.NewAttemptScorer(grading.NewQuestionGrader(grading.LexicalScorer{}))
}

// seedQuiz stores a four-question test: three multiple-choice questions
// answered by index 0, 1 and 2, and one short answer expecting "Paris".
// Every question is worth one mark.
func seedQuiz(t *testing.T, db *gorm.DB, active bool, class *int) *model.Test {
	t.Helper()
	options := datatypes.NewJSONSlice([]string{"a", "b", "c"})
	test := &model.Test{
		Title:           "Weekly quiz",
		DurationMinutes: 15,
		CreatedBy:       "teacher-1",
		IsActive:        active,
		TargetClass:     class,
		Questions: []model.Question{
			{ID: "q1", Position: 0, Type: string(grading.MultipleChoice), Prompt: "First", Options: options, CorrectOptionIndex: intPtr(0), Marks: 1},
			{ID: "q2", Position: 1, Type: string(grading.MultipleChoice), Prompt: "Second", Options: options, CorrectOptionIndex: intPtr(1), Marks: 1},
			{ID: "q3", Position: 2, Type: string(grading.MultipleChoice), Prompt: "Third", Options: options, CorrectOptionIndex: intPtr(2), Marks: 1},
			{ID: "q4", Position: 3, Type: string(grading.ShortAnswer), Prompt: "Capital of France?", ExpectedAnswer: strPtr("Paris"), Marks: 1},
		},
	}
	require.NoError(t, repository.NewTestRepository(db).Create(context.Background(), test))
	return test
}

// threeOfFour answers q1, q2 and q4 correctly and q3 wrongly.
func threeOfFour() map[string]grading.AnswerValue {
	return map[string]grading.AnswerValue{
		"q1": grading.IndexValue(0),
		"q2": grading.IndexValue(1),
		"q3": grading.IndexValue(0),
		"q4": grading.TextValue("paris"),
	}
}

func newSubmissionService(db *gorm.DB, pub messaging.Publisher) TestSubmissionService {
	return NewTestSubmissionService(
		repository.NewTestRepository(db),
		repository.NewTestResultRepository(db),
		newScorer(),
		messaging.NewEvents(pub),
	)
}
