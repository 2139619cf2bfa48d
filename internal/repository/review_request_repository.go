package repository

import (
	"context"

	"github.com/lshigami/testportal/internal/grading"
	"github.com/lshigami/testportal/internal/model"
	"gorm.io/gorm"
)

type ReviewRequestRepository interface {
	Create(ctx context.Context, req *model.ReviewRequest) error
	FindByID(ctx context.Context, id string) (*model.ReviewRequest, error)
	List(ctx context.Context, userID string) ([]model.ReviewRequest, error)
	CountOpen(ctx context.Context, resultID, questionID string) (int64, error)
	// MarkResolved persists a resolution only if the stored request is still
	// pending. It reports whether the row was updated.
	MarkResolved(ctx context.Context, req *model.ReviewRequest) (bool, error)
}

type reviewRequestRepository struct {
	db *gorm.DB
}

func NewReviewRequestRepository(db *gorm.DB) ReviewRequestRepository {
	return &reviewRequestRepository{db: db}
}

func (r *reviewRequestRepository) Create(ctx context.Context, req *model.ReviewRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *reviewRequestRepository) FindByID(ctx context.Context, id string) (*model.ReviewRequest, error) {
	var req model.ReviewRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	return &req, err
}

func (r *reviewRequestRepository) List(ctx context.Context, userID string) ([]model.ReviewRequest, error) {
	var reqs []model.ReviewRequest
	query := r.db.WithContext(ctx)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	err := query.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

// CountOpen counts pending or approved requests for one question of a result.
func (r *reviewRequestRepository) CountOpen(ctx context.Context, resultID, questionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ReviewRequest{}).
		Where("test_result_id = ? AND question_id = ?", resultID, questionID).
		Where("status IN ?", []string{string(grading.ReviewPending), string(grading.ReviewApproved)}).
		Count(&count).Error
	return count, err
}

func (r *reviewRequestRepository) MarkResolved(ctx context.Context, req *model.ReviewRequest) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.ReviewRequest{}).
		Where("id = ? AND status = ?", req.ID, string(grading.ReviewPending)).
		Updates(map[string]any{
			"status":       req.Status,
			"reviewed_by":  req.ReviewedBy,
			"review_notes": req.ReviewNotes,
			"new_marks":    req.NewMarks,
			"reviewed_at":  req.ReviewedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
