package grading

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
)

// CorrectThreshold is the similarity at which a text answer counts as correct.
const CorrectThreshold = 0.8

// creditTiers is the short-answer partial credit schedule, highest first.
var creditTiers = []struct {
	minSimilarity float64
	fraction      float64
}{
	{0.9, 1.0},
	{0.7, 0.75},
	{0.5, 0.5},
	{0.3, 0.25},
}

// PartialCredit returns the short-answer marks for a similarity score.
// The schedule is tiered and non-decreasing in similarity.
func PartialCredit(similarity float64, maxMarks int) int {
	for _, tier := range creditTiers {
		if similarity >= tier.minSimilarity {
			return int(math.Round(tier.fraction * float64(maxMarks)))
		}
	}
	return 0
}

// QuestionGrader grades a single question. It holds no mutable state and
// is safe for concurrent use.
type QuestionGrader struct {
	similarity Similarity
}

// NewQuestionGrader returns a grader. A nil similarity uses LexicalScorer.
func NewQuestionGrader(similarity Similarity) *QuestionGrader {
	if similarity == nil {
		similarity = LexicalScorer{}
	}
	return &QuestionGrader{similarity: similarity}
}

// Grade never fails: a question with missing answer data is graded as
// incorrect and logged.
func (g *QuestionGrader) Grade(ctx context.Context, q Question, submitted AnswerValue) DetailedQuestionResult {
	result := DetailedQuestionResult{
		QuestionID:             q.ID,
		QuestionType:           q.Type,
		UserAnswer:             submitted,
		CorrectAnswerReference: q.Reference(),
		MaxMarks:               q.MaxMarks(),
	}

	switch q.Type {
	case MultipleChoice, TrueFalse:
		g.gradeOption(q, submitted, &result)
	case ShortAnswer:
		g.gradeText(ctx, q, submitted, true, &result)
	case FillInBlank:
		g.gradeText(ctx, q, submitted, false, &result)
	case RealNumber:
		g.gradeNumber(q, submitted, &result)
	default:
		logIntegrity(&DataIntegrityError{QuestionID: q.ID, Type: q.Type, Field: "type"})
	}
	return result
}

func (g *QuestionGrader) gradeOption(q Question, submitted AnswerValue, r *DetailedQuestionResult) {
	if q.CorrectOptionIndex == nil {
		logIntegrity(&DataIntegrityError{QuestionID: q.ID, Type: q.Type, Field: "correct_option_index"})
		return
	}
	idx, ok := submitted.Index()
	if !ok || idx != *q.CorrectOptionIndex {
		return
	}
	r.IsCorrect = true
	r.MarksAwarded = r.MaxMarks
}

func (g *QuestionGrader) gradeText(ctx context.Context, q Question, submitted AnswerValue, partial bool, r *DetailedQuestionResult) {
	if q.ExpectedAnswer == nil {
		logIntegrity(&DataIntegrityError{QuestionID: q.ID, Type: q.Type, Field: "expected_answer"})
		return
	}
	text, ok := submitted.Text()
	if !ok || strings.TrimSpace(text) == "" {
		return
	}

	var s float64
	exact := Normalize(text) == Normalize(*q.ExpectedAnswer)
	if exact {
		s = 1.0
	} else {
		s = g.similarity.Similarity(ctx, text, *q.ExpectedAnswer)
	}
	r.SimilarityScore = &s
	r.IsCorrect = exact || s >= CorrectThreshold

	switch {
	case partial:
		r.MarksAwarded = PartialCredit(s, r.MaxMarks)
	case r.IsCorrect:
		r.MarksAwarded = r.MaxMarks
	}
}

func (g *QuestionGrader) gradeNumber(q Question, submitted AnswerValue, r *DetailedQuestionResult) {
	if q.CorrectNumber == nil {
		logIntegrity(&DataIntegrityError{QuestionID: q.ID, Type: q.Type, Field: "correct_number"})
		return
	}
	got, ok := submitted.Float()
	if !ok {
		return
	}
	if roundMillis(got) == roundMillis(*q.CorrectNumber) {
		r.IsCorrect = true
		r.MarksAwarded = r.MaxMarks
	}
}

// roundMillis scales to thousandths and rounds half away from zero, so
// equal results mean equal values at three decimal places.
func roundMillis(v float64) float64 {
	return math.Round(v * 1000)
}

func logIntegrity(err *DataIntegrityError) {
	log.Warn().Err(err).Str("questionID", err.QuestionID).Str("questionType", string(err.Type)).Msg("Grading question with missing answer data as incorrect")
}
