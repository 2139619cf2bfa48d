package service

import "github.com/lshigami/testportal/internal/grading"

// ScaledScore is a result as shown on the report card.
type ScaledScore struct {
	Percentage int
	Grade      string
	Passed     bool
}

type ScoreConverterService interface {
	Convert(marksAwarded, totalMarks int) ScaledScore
	ConvertPercentage(percentage int) ScaledScore
}

type scoreConverterServiceImpl struct {
	passPercentage int
}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{passPercentage: grading.PassPercentage}
}

func (s *scoreConverterServiceImpl) Convert(marksAwarded, totalMarks int) ScaledScore {
	return s.ConvertPercentage(grading.Percentage(marksAwarded, totalMarks))
}

// ConvertPercentage clamps out-of-range input to 0..100 before grading.
func (s *scoreConverterServiceImpl) ConvertPercentage(percentage int) ScaledScore {
	percentage = max(0, min(percentage, 100))
	return ScaledScore{
		Percentage: percentage,
		Grade:      grading.LetterGrade(percentage),
		Passed:     percentage >= s.passPercentage,
	}
}
