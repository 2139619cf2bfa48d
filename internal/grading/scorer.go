package grading

import (
	"context"
	"math"
	"sync"
)

// AttemptScore is the aggregate outcome of grading one attempt.
type AttemptScore struct {
	DetailedResults []DetailedQuestionResult
	Score           int
	MarksAwarded    int
	TotalMarks      int
}

// AttemptScorer grades every question of a test and aggregates the marks.
type AttemptScorer struct {
	grader *QuestionGrader
}

func NewAttemptScorer(grader *QuestionGrader) *AttemptScorer {
	return &AttemptScorer{grader: grader}
}

// gradedQuestion carries a result back from a grading goroutine.
type gradedQuestion struct {
	result DetailedQuestionResult
	index  int
}

// Score grades all questions concurrently and waits for every one of them
// before aggregating. DetailedResults follows the test's question order and
// has one entry per question, attempted or not.
func (s *AttemptScorer) Score(ctx context.Context, test Test, answers map[string]AnswerValue) AttemptScore {
	results := make([]DetailedQuestionResult, len(test.Questions))
	resultsChan := make(chan gradedQuestion, len(test.Questions))

	var wg sync.WaitGroup
	for i, q := range test.Questions {
		wg.Add(1)
		go func(idx int, question Question) {
			defer wg.Done()
			resultsChan <- gradedQuestion{
				result: s.grader.Grade(ctx, question, answers[question.ID]),
				index:  idx,
			}
		}(i, q)
	}
	wg.Wait()
	close(resultsChan)

	for graded := range resultsChan {
		results[graded.index] = graded.result
	}

	awarded, total := SumMarks(results)
	return AttemptScore{
		DetailedResults: results,
		Score:           Percentage(awarded, total),
		MarksAwarded:    awarded,
		TotalMarks:      total,
	}
}

// SumMarks totals awarded and maximum marks over detailed results.
func SumMarks(results []DetailedQuestionResult) (awarded, total int) {
	for _, r := range results {
		awarded += r.MarksAwarded
		total += r.MaxMarks
	}
	return awarded, total
}

// Percentage is round(100*awarded/total), or 0 when total is 0.
func Percentage(awarded, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(awarded) / float64(total)))
}

// RecomputeScore refreshes the aggregate fields of a result from its
// detailed results.
func RecomputeScore(result *TestResult) {
	result.MarksAwarded, result.TotalMarks = SumMarks(result.DetailedResults)
	result.Score = Percentage(result.MarksAwarded, result.TotalMarks)
}
