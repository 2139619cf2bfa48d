package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/lshigami/testportal/internal/dto"
	"github.com/lshigami/testportal/internal/grading"
	"github.com/lshigami/testportal/internal/messaging"
	"github.com/lshigami/testportal/internal/model"
	"github.com/lshigami/testportal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TestSubmissionService grades and stores whole-test attempts.
type TestSubmissionService interface {
	SubmitAttempt(ctx context.Context, testID string, req dto.AttemptSubmitDTO) (*dto.TestResultDTO, error)
}

type testSubmissionService struct {
	testRepo   repository.TestRepository
	resultRepo repository.TestResultRepository
	scorer     *grading.AttemptScorer
	events     *messaging.Events
	now        func() time.Time
}

func NewTestSubmissionService(
	testRepo repository.TestRepository,
	resultRepo repository.TestResultRepository,
	scorer *grading.AttemptScorer,
	events *messaging.Events,
) TestSubmissionService {
	return &testSubmissionService{
		testRepo:   testRepo,
		resultRepo: resultRepo,
		scorer:     scorer,
		events:     events,
		now:        time.Now,
	}
}

// SubmitAttempt grades a submission and persists the result. A retry with
// the identical answer map returns the stored result; any other second
// submission fails with ErrAttemptExists. Nothing is stored when ctx is
// canceled before grading completes.
func (s *testSubmissionService) SubmitAttempt(ctx context.Context, testID string, req dto.AttemptSubmitDTO) (*dto.TestResultDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		log.Warn().Err(err).Str("testID", testID).Msg("SubmitAttempt: Test not found")
		return nil, fmt.Errorf("test %s: %w", testID, notFound(err))
	}
	if !test.IsActive {
		return nil, fmt.Errorf("test %s: %w", testID, ErrTestInactive)
	}

	gradingTest := test.ToGrading()
	answers := knownAnswers(gradingTest, req.Answers)

	if existing, err := s.existingResult(ctx, testID, req.UserID, answers); existing != nil || err != nil {
		return existing, err
	}

	log.Info().Str("testID", testID).Str("userID", req.UserID).Int("answerCount", len(answers)).Msg("Grading test attempt")
	score := s.scorer.Score(ctx, gradingTest, answers)
	if err := ctx.Err(); err != nil {
		log.Warn().Err(err).Str("testID", testID).Str("userID", req.UserID).Msg("SubmitAttempt: Request canceled during grading, nothing stored")
		return nil, err
	}

	completedAt := s.now().UTC()
	if req.CompletedAt != nil {
		completedAt = req.CompletedAt.UTC()
	}
	startedAt := completedAt.Add(-time.Duration(req.TimeSpentSeconds) * time.Second)
	if req.StartedAt != nil {
		startedAt = req.StartedAt.UTC()
	}

	result := grading.TestResult{
		TestID:            testID,
		UserID:            req.UserID,
		Answers:           answers,
		DetailedResults:   score.DetailedResults,
		Score:             score.Score,
		MarksAwarded:      score.MarksAwarded,
		TotalMarks:        score.TotalMarks,
		ReviewedQuestions: req.ReviewedQuestions,
		StartedAt:         startedAt,
		CompletedAt:       completedAt,
		TimeSpentSeconds:  req.TimeSpentSeconds,
	}
	row := model.NewTestResult(result)

	if err := s.resultRepo.Create(ctx, row); err != nil {
		// A concurrent submission for the same user may have won the
		// unique index.
		if existing, findErr := s.existingResult(ctx, testID, req.UserID, answers); existing != nil || findErr != nil {
			return existing, findErr
		}
		log.Error().Err(err).Str("testID", testID).Str("userID", req.UserID).Msg("SubmitAttempt: Failed to store test result")
		return nil, fmt.Errorf("database error storing test result: %w", err)
	}
	result.ID = row.ID

	log.Info().Str("resultID", row.ID).Str("testID", testID).Str("userID", req.UserID).Int("score", score.Score).Msg("Test attempt graded")
	s.events.ResultSubmitted(ctx, messaging.ResultSubmitted{
		ResultID:     row.ID,
		TestID:       testID,
		UserID:       req.UserID,
		Score:        result.Score,
		MarksAwarded: result.MarksAwarded,
		TotalMarks:   result.TotalMarks,
		CompletedAt:  completedAt,
	})
	return dto.NewTestResultDTO(result), nil
}

// existingResult returns the stored result when answers match it,
// ErrAttemptExists when they differ, and (nil, nil) when there is none.
func (s *testSubmissionService) existingResult(ctx context.Context, testID, userID string, answers map[string]grading.AnswerValue) (*dto.TestResultDTO, error) {
	row, err := s.resultRepo.FindByTestAndUser(ctx, testID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup existing result: %w", err)
	}

	stored := row.ToGrading()
	if !maps.Equal(stored.Answers, answers) {
		log.Warn().Str("testID", testID).Str("userID", userID).Str("resultID", row.ID).Msg("SubmitAttempt: Rejecting second attempt with different answers")
		return nil, fmt.Errorf("test %s: %w", testID, ErrAttemptExists)
	}
	log.Info().Str("resultID", row.ID).Msg("SubmitAttempt: Identical resubmission, returning stored result")
	return dto.NewTestResultDTO(stored), nil
}

// knownAnswers keeps answers for questions of the test and drops the rest.
func knownAnswers(test grading.Test, submitted map[string]grading.AnswerValue) map[string]grading.AnswerValue {
	known := make(map[string]bool, len(test.Questions))
	for _, q := range test.Questions {
		known[q.ID] = true
	}

	answers := make(map[string]grading.AnswerValue, len(submitted))
	for id, v := range submitted {
		if !known[id] {
			log.Warn().Str("questionID", id).Str("testID", test.ID).Msg("SubmitAttempt: Answer for a question not part of this test, skipping.")
			continue
		}
		answers[id] = v
	}
	return answers
}
