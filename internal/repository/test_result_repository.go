package repository

import (
	"context"

	"github.com/lshigami/testportal/internal/model"
	"gorm.io/gorm"
)

// ResultFilter narrows List. Empty fields mean "any".
type ResultFilter struct {
	UserID string
	TestID string
}

type TestResultRepository interface {
	Create(ctx context.Context, result *model.TestResult) error
	FindByID(ctx context.Context, id string) (*model.TestResult, error)
	FindByTestAndUser(ctx context.Context, testID, userID string) (*model.TestResult, error)
	List(ctx context.Context, filter ResultFilter) ([]model.TestResult, error)
	Scores(ctx context.Context, testID string) ([]int, error)
	UpdateQuestionMarks(ctx context.Context, resultID, questionID string, marks int) error
	UpdateAggregate(ctx context.Context, result *model.TestResult) error
}

type testResultRepository struct {
	db *gorm.DB
}

func NewTestResultRepository(db *gorm.DB) TestResultRepository {
	return &testResultRepository{db: db}
}

func (r *testResultRepository) Create(ctx context.Context, result *model.TestResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func orderedDetails(db *gorm.DB) *gorm.DB {
	return db.Order("detailed_results.position ASC")
}

func (r *testResultRepository) FindByID(ctx context.Context, id string) (*model.TestResult, error) {
	var result model.TestResult
	err := r.db.WithContext(ctx).
		Preload("DetailedResults", orderedDetails).
		First(&result, "id = ?", id).Error
	return &result, err
}

func (r *testResultRepository) FindByTestAndUser(ctx context.Context, testID, userID string) (*model.TestResult, error) {
	var result model.TestResult
	err := r.db.WithContext(ctx).
		Preload("DetailedResults", orderedDetails).
		Where("test_id = ? AND user_id = ?", testID, userID).
		First(&result).Error
	return &result, err
}

func (r *testResultRepository) List(ctx context.Context, filter ResultFilter) ([]model.TestResult, error) {
	var results []model.TestResult
	query := r.db.WithContext(ctx)
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.TestID != "" {
		query = query.Where("test_id = ?", filter.TestID)
	}
	err := query.Order("completed_at DESC").Find(&results).Error
	return results, err
}

func (r *testResultRepository) Scores(ctx context.Context, testID string) ([]int, error) {
	var scores []int
	query := r.db.WithContext(ctx).Model(&model.TestResult{})
	if testID != "" {
		query = query.Where("test_id = ?", testID)
	}
	err := query.Pluck("score", &scores).Error
	return scores, err
}

func (r *testResultRepository) UpdateQuestionMarks(ctx context.Context, resultID, questionID string, marks int) error {
	res := r.db.WithContext(ctx).Model(&model.DetailedResult{}).
		Where("test_result_id = ? AND question_id = ?", resultID, questionID).
		Update("marks_awarded", marks)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *testResultRepository) UpdateAggregate(ctx context.Context, result *model.TestResult) error {
	return r.db.WithContext(ctx).Model(&model.TestResult{}).
		Where("id = ?", result.ID).
		Updates(map[string]any{
			"score":         result.Score,
			"marks_awarded": result.MarksAwarded,
			"total_marks":   result.TotalMarks,
		}).Error
}
