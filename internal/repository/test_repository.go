package repository

import (
	"context"

	"github.com/lshigami/testportal/internal/model"
	"gorm.io/gorm"
)

// TestFilter narrows ListSummaries. Zero values mean "no restriction".
type TestFilter struct {
	ActiveOnly bool
	CreatedBy  string
	// Class restricts to tests without a target class or targeting it.
	Class *int
	// ClassScoped applies the Class restriction even when Class is nil, so
	// a student without a class only sees untargeted tests.
	ClassScoped bool
}

type TestSummary struct {
	model.Test
	QuestionCount int
	TotalMarks    int
}

type TestRepository interface {
	Create(ctx context.Context, test *model.Test) error
	FindByID(ctx context.Context, id string) (*model.Test, error)
	FindByIDWithQuestions(ctx context.Context, id string) (*model.Test, error)
	ListSummaries(ctx context.Context, filter TestFilter) ([]TestSummary, error)
	Update(ctx context.Context, test *model.Test, replaceQuestions bool) error
	Delete(ctx context.Context, id string) error
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(ctx context.Context, test *model.Test) error {
	// Questions are created through the has-many association.
	return r.db.WithContext(ctx).Create(test).Error
}

func (r *testRepository) FindByID(ctx context.Context, id string) (*model.Test, error) {
	var test model.Test
	err := r.db.WithContext(ctx).First(&test, "id = ?", id).Error
	return &test, err
}

func (r *testRepository) FindByIDWithQuestions(ctx context.Context, id string) (*model.Test, error) {
	var test model.Test
	err := r.db.WithContext(ctx).Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position ASC")
	}).First(&test, "id = ?", id).Error
	return &test, err
}

func (r *testRepository) ListSummaries(ctx context.Context, filter TestFilter) ([]TestSummary, error) {
	var results []TestSummary
	query := r.db.WithContext(ctx).Model(&model.Test{}).
		Select("tests.*, " +
			"(SELECT COUNT(*) FROM questions WHERE questions.test_id = tests.id) AS question_count, " +
			"(SELECT COALESCE(SUM(CASE WHEN questions.marks > 0 THEN questions.marks ELSE 1 END), 0) FROM questions WHERE questions.test_id = tests.id) AS total_marks").
		Where("tests.deleted_at IS NULL")

	if filter.ActiveOnly {
		query = query.Where("tests.is_active = ?", true)
	}
	if filter.CreatedBy != "" {
		query = query.Where("tests.created_by = ?", filter.CreatedBy)
	}
	switch {
	case filter.Class != nil:
		query = query.Where("tests.target_class IS NULL OR tests.target_class = ?", *filter.Class)
	case filter.ClassScoped:
		query = query.Where("tests.target_class IS NULL")
	}

	err := query.Order("tests.created_at DESC").Scan(&results).Error
	return results, err
}

// Update saves the test's own columns. With replaceQuestions the stored
// questions are swapped for test.Questions in one transaction.
func (r *testRepository) Update(ctx context.Context, test *model.Test, replaceQuestions bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Save(test).Error; err != nil {
			return err
		}
		if !replaceQuestions {
			return nil
		}
		if err := tx.Where("test_id = ?", test.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if len(test.Questions) == 0 {
			return nil
		}
		for i := range test.Questions {
			test.Questions[i].TestID = test.ID
		}
		return tx.Create(&test.Questions).Error
	})
}

func (r *testRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Test{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
