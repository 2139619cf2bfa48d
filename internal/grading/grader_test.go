package grading

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSimilarity returns the same score for every pair and counts calls.
type fixedSimilarity struct {
	score float64
	calls atomic.Int32
}

func (f *fixedSimilarity) Similarity(context.Context, string, string) float64 {
	f.calls.Add(1)
	return f.score
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestGrade_MultipleChoice(t *testing.T) {
	q := Question{ID: "q1", Type: MultipleChoice, Options: []string{"a", "b", "c"}, CorrectOptionIndex: intPtr(2), Marks: 2}
	g := NewQuestionGrader(nil)

	tests := []struct {
		name      string
		submitted AnswerValue
		correct   bool
	}{
		{"matching index", IndexValue(2), true},
		{"integral float", NumberValue(2.0), true},
		{"other index", IndexValue(1), false},
		{"string index", TextValue("2"), false},
		{"fractional", NumberValue(2.5), false},
		{"no answer", NoAnswer, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := g.Grade(context.Background(), q, tc.submitted)
			assert.Equal(t, tc.correct, r.IsCorrect)
			assert.Equal(t, 2, r.MaxMarks)
			if tc.correct {
				assert.Equal(t, 2, r.MarksAwarded)
			} else {
				assert.Equal(t, 0, r.MarksAwarded)
			}
			assert.Nil(t, r.SimilarityScore)
			assert.Equal(t, IndexValue(2), r.CorrectAnswerReference)
		})
	}
}

func TestGrade_TrueFalse(t *testing.T) {
	q := Question{ID: "q1", Type: TrueFalse, CorrectOptionIndex: intPtr(1)}
	g := NewQuestionGrader(nil)

	r := g.Grade(context.Background(), q, IndexValue(1))
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 1, r.MarksAwarded)

	r = g.Grade(context.Background(), q, IndexValue(0))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0, r.MarksAwarded)

	r = g.Grade(context.Background(), q, TextValue("true"))
	assert.False(t, r.IsCorrect)
}

func TestGrade_MissingReferenceIsIncorrect(t *testing.T) {
	sim := &fixedSimilarity{score: 1}
	g := NewQuestionGrader(sim)

	tests := []Question{
		{ID: "mc", Type: MultipleChoice, Options: []string{"a", "b"}},
		{ID: "sa", Type: ShortAnswer},
		{ID: "fb", Type: FillInBlank},
		{ID: "rn", Type: RealNumber},
		{ID: "xx", Type: QuestionType("essay"), Marks: 3},
	}

	for _, q := range tests {
		t.Run(q.ID, func(t *testing.T) {
			r := g.Grade(context.Background(), q, TextValue("anything"))
			assert.False(t, r.IsCorrect)
			assert.Equal(t, 0, r.MarksAwarded)
			assert.Equal(t, NoAnswer, r.CorrectAnswerReference)
		})
	}
	assert.Zero(t, sim.calls.Load())
}

func TestGrade_ShortAnswerTiers(t *testing.T) {
	q := Question{ID: "q1", Type: ShortAnswer, ExpectedAnswer: strPtr("photosynthesis"), Marks: 4}

	tests := []struct {
		similarity float64
		marks      int
		correct    bool
	}{
		{0.95, 4, true},
		{0.9, 4, true},
		{0.85, 3, true},
		{0.8, 3, true},
		{0.75, 3, false},
		{0.6, 2, false},
		{0.35, 1, false},
		{0.1, 0, false},
	}

	for _, tc := range tests {
		g := NewQuestionGrader(&fixedSimilarity{score: tc.similarity})
		r := g.Grade(context.Background(), q, TextValue("plants make food"))
		assert.Equal(t, tc.marks, r.MarksAwarded, "similarity %v", tc.similarity)
		assert.Equal(t, tc.correct, r.IsCorrect, "similarity %v", tc.similarity)
		require.NotNil(t, r.SimilarityScore)
		assert.Equal(t, tc.similarity, *r.SimilarityScore)
	}
}

func TestGrade_ShortAnswerExactMatchSkipsSimilarity(t *testing.T) {
	sim := &fixedSimilarity{score: 0}
	g := NewQuestionGrader(sim)
	q := Question{ID: "q1", Type: ShortAnswer, ExpectedAnswer: strPtr("Paris"), Marks: 2}

	r := g.Grade(context.Background(), q, TextValue("  paris "))
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 2, r.MarksAwarded)
	require.NotNil(t, r.SimilarityScore)
	assert.Equal(t, 1.0, *r.SimilarityScore)
	assert.Zero(t, sim.calls.Load())
}

func TestGrade_TextWithoutAnswer(t *testing.T) {
	sim := &fixedSimilarity{score: 1}
	g := NewQuestionGrader(sim)
	q := Question{ID: "q1", Type: ShortAnswer, ExpectedAnswer: strPtr("Paris")}

	for _, v := range []AnswerValue{NoAnswer, TextValue("   "), IndexValue(3)} {
		r := g.Grade(context.Background(), q, v)
		assert.False(t, r.IsCorrect)
		assert.Equal(t, 0, r.MarksAwarded)
		assert.Nil(t, r.SimilarityScore)
	}
	assert.Zero(t, sim.calls.Load())
}

func TestGrade_FillInBlankIsBinary(t *testing.T) {
	q := Question{ID: "q1", Type: FillInBlank, ExpectedAnswer: strPtr("mitochondria"), Marks: 3}

	r := NewQuestionGrader(&fixedSimilarity{score: 0.85}).Grade(context.Background(), q, TextValue("mitochondrion"))
	assert.True(t, r.IsCorrect)
	assert.Equal(t, 3, r.MarksAwarded)

	r = NewQuestionGrader(&fixedSimilarity{score: 0.79}).Grade(context.Background(), q, TextValue("nucleus"))
	assert.False(t, r.IsCorrect)
	assert.Equal(t, 0, r.MarksAwarded)
}

func TestGrade_RealNumber(t *testing.T) {
	q := Question{ID: "q1", Type: RealNumber, CorrectNumber: floatPtr(3.1415)}
	g := NewQuestionGrader(nil)

	tests := []struct {
		name      string
		submitted AnswerValue
		correct   bool
	}{
		{"rounded string", TextValue("3.142"), true},
		{"padded string", TextValue(" 3.1415 "), true},
		{"number", NumberValue(3.142), true},
		{"off by a thousandth", TextValue("3.1414"), false},
		{"not numeric", TextValue("pi"), false},
		{"nan", TextValue("NaN"), false},
		{"no answer", NoAnswer, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := g.Grade(context.Background(), q, tc.submitted)
			assert.Equal(t, tc.correct, r.IsCorrect)
		})
	}
}

func TestPartialCredit_Monotonic(t *testing.T) {
	for marks := 1; marks <= 10; marks++ {
		prev := 0
		for i := 0; i <= 100; i++ {
			got := PartialCredit(float64(i)/100, marks)
			assert.GreaterOrEqual(t, got, prev, "marks %d at similarity %d%%", marks, i)
			assert.LessOrEqual(t, got, marks)
			prev = got
		}
		assert.Equal(t, marks, prev)
	}
}

func TestPartialCredit_SingleMark(t *testing.T) {
	assert.Equal(t, 1, PartialCredit(0.75, 1))
	assert.Equal(t, 1, PartialCredit(0.5, 1))
	assert.Equal(t, 0, PartialCredit(0.3, 1))
	assert.Equal(t, 0, PartialCredit(0.29, 1))
}

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name  string
		q     Question
		field string
	}{
		{"valid multiple choice", Question{Type: MultipleChoice, Options: []string{"a", "b"}, CorrectOptionIndex: intPtr(1)}, ""},
		{"one option", Question{Type: MultipleChoice, Options: []string{"a"}, CorrectOptionIndex: intPtr(0)}, "options"},
		{"blank option", Question{Type: MultipleChoice, Options: []string{"a", " "}, CorrectOptionIndex: intPtr(0)}, "options"},
		{"index out of range", Question{Type: MultipleChoice, Options: []string{"a", "b"}, CorrectOptionIndex: intPtr(2)}, "correct_option_index"},
		{"true false index", Question{Type: TrueFalse, CorrectOptionIndex: intPtr(2)}, "correct_option_index"},
		{"blank expected", Question{Type: ShortAnswer, ExpectedAnswer: strPtr("  ")}, "expected_answer"},
		{"missing number", Question{Type: RealNumber}, "correct_number"},
		{"negative marks", Question{Type: FillInBlank, ExpectedAnswer: strPtr("x"), Marks: -1}, "marks"},
		{"unknown type", Question{Type: "essay"}, "type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateQuestion(tc.q)
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}
