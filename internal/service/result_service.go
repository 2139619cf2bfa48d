package service

import (
	"context"
	"fmt"

	"github.com/lshigami/testportal/internal/dto"
	"github.com/lshigami/testportal/internal/grading"
	"github.com/lshigami/testportal/internal/model"
	"github.com/lshigami/testportal/internal/repository"
	"github.com/rs/zerolog/log"
)

type ResultService interface {
	GetResult(ctx context.Context, caller dto.Caller, resultID string) (*dto.TestResultDTO, error)
	ListResults(ctx context.Context, caller dto.Caller, testID string) ([]dto.TestResultSummaryDTO, error)
	GetReport(ctx context.Context, caller dto.Caller, resultID string) (*dto.ReportDTO, error)
	Stats(ctx context.Context, testID string) (*dto.ResultStatsDTO, error)
}

type resultService struct {
	resultRepo repository.TestResultRepository
	testRepo   repository.TestRepository
	converter  ScoreConverterService
}

func NewResultService(resultRepo repository.TestResultRepository, testRepo repository.TestRepository, converter ScoreConverterService) ResultService {
	return &resultService{resultRepo: resultRepo, testRepo: testRepo, converter: converter}
}

// load fetches a result the caller may see. Students only see their own.
func (s *resultService) load(ctx context.Context, caller dto.Caller, resultID string) (*model.TestResult, error) {
	row, err := s.resultRepo.FindByID(ctx, resultID)
	if err != nil {
		return nil, fmt.Errorf("result %s: %w", resultID, notFound(err))
	}
	if !caller.IsStaff() && row.UserID != caller.UserID {
		log.Warn().Str("resultID", resultID).Str("userID", caller.UserID).Msg("Student requested another user's result")
		return nil, fmt.Errorf("result %s: %w", resultID, ErrForbidden)
	}
	return row, nil
}

func (s *resultService) GetResult(ctx context.Context, caller dto.Caller, resultID string) (*dto.TestResultDTO, error) {
	row, err := s.load(ctx, caller, resultID)
	if err != nil {
		return nil, err
	}
	return dto.NewTestResultDTO(row.ToGrading()), nil
}

func (s *resultService) ListResults(ctx context.Context, caller dto.Caller, testID string) ([]dto.TestResultSummaryDTO, error) {
	filter := repository.ResultFilter{TestID: testID}
	if !caller.IsStaff() {
		filter.UserID = caller.UserID
	}

	rows, err := s.resultRepo.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list results")
		return nil, fmt.Errorf("error fetching results: %w", err)
	}

	out := make([]dto.TestResultSummaryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TestResultSummaryDTO{
			ID:           r.ID,
			TestID:       r.TestID,
			UserID:       r.UserID,
			Score:        r.Score,
			MarksAwarded: r.MarksAwarded,
			TotalMarks:   r.TotalMarks,
			CompletedAt:  r.CompletedAt,
		})
	}
	return out, nil
}

func (s *resultService) GetReport(ctx context.Context, caller dto.Caller, resultID string) (*dto.ReportDTO, error) {
	row, err := s.load(ctx, caller, resultID)
	if err != nil {
		return nil, err
	}
	result := row.ToGrading()

	b := grading.BreakdownOf(result.DetailedResults)
	nm := grading.NegativeMarkingOf(b)
	scaled := s.converter.ConvertPercentage(result.Score)

	report := &dto.ReportDTO{
		ResultID:       result.ID,
		TestID:         result.TestID,
		UserID:         result.UserID,
		TotalQuestions: b.Total,
		Attempted:      b.Attempted,
		Correct:        b.Correct,
		Incorrect:      b.Incorrect,
		Unattempted:    b.Unattempted,
		Accuracy:       b.Accuracy,
		MarksAwarded:   result.MarksAwarded,
		TotalMarks:     result.TotalMarks,
		Percentage:     scaled.Percentage,
		Grade:          scaled.Grade,
		Passed:         scaled.Passed,
		TimeSpentSecs:  result.TimeSpentSeconds,
		CompletedAt:    result.CompletedAt,
		NegativeMarking: dto.NegativeMarkingDTO{
			PerCorrect:    nm.PerCorrect,
			PerIncorrect:  nm.PerIncorrect,
			MarksObtained: nm.MarksObtained,
			MaxMarks:      nm.MaxMarks,
			Percentage:    nm.Percentage,
		},
		Questions: dto.NewDetailedResultDTOs(result.DetailedResults),
	}

	// The test may have been deleted since; the report stands on its own.
	if test, err := s.testRepo.FindByID(ctx, result.TestID); err == nil {
		report.TestTitle = test.Title
	}
	return report, nil
}

func (s *resultService) Stats(ctx context.Context, testID string) (*dto.ResultStatsDTO, error) {
	scores, err := s.resultRepo.Scores(ctx, testID)
	if err != nil {
		log.Error().Err(err).Str("testID", testID).Msg("Failed to load scores")
		return nil, fmt.Errorf("error fetching scores: %w", err)
	}
	stats := grading.StatsOf(scores)
	return &dto.ResultStatsDTO{
		TestID:  testID,
		Count:   stats.Count,
		Average: stats.Average,
		Highest: stats.Highest,
		Distribution: dto.DistributionDTO{
			Excellent: stats.Distribution.Excellent,
			Good:      stats.Distribution.Good,
			Fair:      stats.Distribution.Fair,
			Poor:      stats.Distribution.Poor,
		},
	}, nil
}
