package grading

import "math"

// PassPercentage is the lowest passing score.
const PassPercentage = 40

// LetterGrade maps a percentage to the report card grade.
func LetterGrade(percentage int) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B+"
	case percentage >= 60:
		return "B"
	case percentage >= 50:
		return "C"
	case percentage >= 40:
		return "D"
	default:
		return "F"
	}
}

// Breakdown counts per-question outcomes of an attempt.
type Breakdown struct {
	Total       int
	Attempted   int
	Correct     int
	Incorrect   int
	Unattempted int
	// Accuracy is round(100*Correct/Attempted), 0 when nothing was attempted.
	Accuracy int
}

func BreakdownOf(results []DetailedQuestionResult) Breakdown {
	b := Breakdown{Total: len(results)}
	for _, r := range results {
		if !r.Attempted() {
			continue
		}
		b.Attempted++
		if r.IsCorrect {
			b.Correct++
		}
	}
	b.Incorrect = b.Attempted - b.Correct
	b.Unattempted = b.Total - b.Attempted
	b.Accuracy = Percentage(b.Correct, b.Attempted)
	return b
}

// NegativeMarking is the +4/-1 presentation variant shown on printable
// reports. It is not the authoritative score.
type NegativeMarking struct {
	PerCorrect    int
	PerIncorrect  int
	MarksObtained int
	MaxMarks      int
	Percentage    int
}

func NegativeMarkingOf(b Breakdown) NegativeMarking {
	nm := NegativeMarking{PerCorrect: 4, PerIncorrect: -1}
	nm.MarksObtained = b.Correct*nm.PerCorrect + b.Incorrect*nm.PerIncorrect
	nm.MaxMarks = b.Total * nm.PerCorrect
	if nm.MaxMarks > 0 {
		nm.Percentage = int(math.Round(100 * float64(nm.MarksObtained) / float64(nm.MaxMarks)))
	}
	return nm
}

// Distribution buckets scores the way the results dashboard does.
type Distribution struct {
	Excellent int
	Good      int
	Fair      int
	Poor      int
}

type ScoreStats struct {
	Count        int
	Average      int
	Highest      int
	Distribution Distribution
}

func StatsOf(scores []int) ScoreStats {
	stats := ScoreStats{Count: len(scores)}
	if len(scores) == 0 {
		return stats
	}
	sum := 0
	for i, s := range scores {
		sum += s
		if i == 0 || s > stats.Highest {
			stats.Highest = s
		}
		switch {
		case s >= 90:
			stats.Distribution.Excellent++
		case s >= 80:
			stats.Distribution.Good++
		case s >= 60:
			stats.Distribution.Fair++
		default:
			stats.Distribution.Poor++
		}
	}
	stats.Average = int(math.Round(float64(sum) / float64(len(scores))))
	return stats
}
