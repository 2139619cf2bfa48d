package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lshigami/testportal/config"
	"github.com/lshigami/testportal/internal/dto"
	"github.com/lshigami/testportal/internal/grading"
	"github.com/lshigami/testportal/internal/messaging"
	"github.com/lshigami/testportal/internal/model"
	"github.com/lshigami/testportal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ReviewService interface {
	CreateRequest(ctx context.Context, resultID string, req dto.ReviewRequestCreateDTO) (*dto.ReviewRequestDTO, error)
	ListRequests(ctx context.Context, caller dto.Caller) ([]dto.ReviewRequestDTO, error)
	ResolveRequest(ctx context.Context, requestID string, req dto.ReviewResolveDTO) (*dto.ReviewRequestDTO, error)
}

type reviewService struct {
	db             *gorm.DB
	reviewRepo     repository.ReviewRequestRepository
	events         *messaging.Events
	recomputeScore bool
	now            func() time.Time
}

func NewReviewService(db *gorm.DB, reviewRepo repository.ReviewRequestRepository, events *messaging.Events, cfg *config.Config) ReviewService {
	return &reviewService{
		db:             db,
		reviewRepo:     reviewRepo,
		events:         events,
		recomputeScore: cfg.Review.RecomputeScore,
		now:            time.Now,
	}
}

func toReviewDTO(r *model.ReviewRequest) dto.ReviewRequestDTO {
	return dto.ReviewRequestDTO{
		ID:           r.ID,
		TestResultID: r.TestResultID,
		QuestionID:   r.QuestionID,
		UserID:       r.UserID,
		Reason:       r.Reason,
		Status:       r.Status,
		ReviewedBy:   r.ReviewedBy,
		ReviewNotes:  r.ReviewNotes,
		NewMarks:     r.NewMarks,
		CreatedAt:    r.CreatedAt,
		ReviewedAt:   r.ReviewedAt,
	}
}

// CreateRequest opens a dispute on one text question of the caller's own
// result.
func (s *reviewService) CreateRequest(ctx context.Context, resultID string, req dto.ReviewRequestCreateDTO) (*dto.ReviewRequestDTO, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, &grading.ValidationError{Field: "reason", Message: "a reason is required"}
	}

	row := &model.ReviewRequest{
		TestResultID: resultID,
		QuestionID:   req.QuestionID,
		UserID:       req.UserID,
		Reason:       reason,
		Status:       string(grading.ReviewPending),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result, err := repository.NewTestResultRepository(tx).FindByID(ctx, resultID)
		if err != nil {
			return fmt.Errorf("result %s: %w", resultID, notFound(err))
		}
		if result.UserID != req.UserID {
			return fmt.Errorf("result %s: %w", resultID, ErrForbidden)
		}

		var entry *model.DetailedResult
		for i := range result.DetailedResults {
			if result.DetailedResults[i].QuestionID == req.QuestionID {
				entry = &result.DetailedResults[i]
				break
			}
		}
		if entry == nil {
			return &grading.ValidationError{Field: "question_id", Message: fmt.Sprintf("question %s is not part of result %s", req.QuestionID, resultID)}
		}
		if !grading.QuestionType(entry.QuestionType).IsText() {
			return &grading.ValidationError{Field: "question_id", Message: "only short-answer and fill-in-blank questions can be reviewed"}
		}

		reviews := repository.NewReviewRequestRepository(tx)
		open, err := reviews.CountOpen(ctx, resultID, req.QuestionID)
		if err != nil {
			return fmt.Errorf("count open review requests: %w", err)
		}
		if open > 0 {
			return ErrReviewExists
		}
		return reviews.Create(ctx, row)
	})
	if err != nil {
		log.Warn().Err(err).Str("resultID", resultID).Str("questionID", req.QuestionID).Msg("CreateRequest: review request rejected")
		return nil, err
	}

	log.Info().Str("requestID", row.ID).Str("resultID", resultID).Str("questionID", req.QuestionID).Msg("Review request created")
	s.events.ReviewCreated(ctx, messaging.ReviewCreated{
		RequestID:    row.ID,
		TestResultID: resultID,
		QuestionID:   row.QuestionID,
		UserID:       row.UserID,
		CreatedAt:    row.CreatedAt,
	})
	out := toReviewDTO(row)
	return &out, nil
}

func (s *reviewService) ListRequests(ctx context.Context, caller dto.Caller) ([]dto.ReviewRequestDTO, error) {
	userID := ""
	if !caller.IsStaff() {
		userID = caller.UserID
	}
	rows, err := s.reviewRepo.List(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list review requests")
		return nil, fmt.Errorf("error fetching review requests: %w", err)
	}
	out := make([]dto.ReviewRequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toReviewDTO(&rows[i]))
	}
	return out, nil
}

// ResolveRequest approves or rejects a pending request. An approval with
// new marks overrides that question's marks and, unless disabled, refreshes
// the result's score; all of it commits or none of it does.
func (s *reviewService) ResolveRequest(ctx context.Context, requestID string, req dto.ReviewResolveDTO) (*dto.ReviewRequestDTO, error) {
	decision := grading.Decision{
		Status:     grading.ReviewStatus(req.Decision),
		ReviewerID: req.ReviewerID,
		Notes:      req.Notes,
		NewMarks:   req.NewMarks,
	}

	var (
		row      *model.ReviewRequest
		newScore *int
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reviews := repository.NewReviewRequestRepository(tx)
		results := repository.NewTestResultRepository(tx)

		var err error
		row, err = reviews.FindByID(ctx, requestID)
		if err != nil {
			return fmt.Errorf("review request %s: %w", requestID, notFound(err))
		}

		resolved := row.ToGrading()
		if err := resolved.Resolve(decision, s.now().UTC()); err != nil {
			return err
		}
		row.ApplyResolution(resolved)

		ok, err := reviews.MarkResolved(ctx, row)
		if err != nil {
			return fmt.Errorf("store review resolution: %w", err)
		}
		if !ok {
			current, findErr := reviews.FindByID(ctx, requestID)
			if findErr != nil {
				return fmt.Errorf("review request %s: %w", requestID, notFound(findErr))
			}
			return &grading.InvalidStateError{RequestID: requestID, Status: grading.ReviewStatus(current.Status)}
		}

		if resolved.Status != grading.ReviewApproved || resolved.NewMarks == nil {
			return nil
		}

		resultRow, err := results.FindByID(ctx, row.TestResultID)
		if err != nil {
			return fmt.Errorf("result %s: %w", row.TestResultID, notFound(err))
		}
		result := resultRow.ToGrading()
		if err := grading.ApplyOverride(&result, row.QuestionID, *resolved.NewMarks); err != nil {
			return err
		}
		if err := results.UpdateQuestionMarks(ctx, result.ID, row.QuestionID, *resolved.NewMarks); err != nil {
			return fmt.Errorf("store overridden marks: %w", err)
		}
		if !s.recomputeScore {
			return nil
		}
		grading.RecomputeScore(&result)
		resultRow.Score, resultRow.MarksAwarded, resultRow.TotalMarks = result.Score, result.MarksAwarded, result.TotalMarks
		if err := results.UpdateAggregate(ctx, resultRow); err != nil {
			return fmt.Errorf("store recomputed score: %w", err)
		}
		newScore = &result.Score
		return nil
	})
	if err != nil {
		var stateErr *grading.InvalidStateError
		if errors.As(err, &stateErr) {
			log.Warn().Str("requestID", requestID).Str("status", string(stateErr.Status)).Msg("ResolveRequest: request already resolved")
		} else {
			log.Warn().Err(err).Str("requestID", requestID).Msg("ResolveRequest: resolution rejected")
		}
		return nil, err
	}

	log.Info().Str("requestID", requestID).Str("status", row.Status).Str("reviewedBy", row.ReviewedBy).Msg("Review request resolved")
	s.events.ReviewResolved(ctx, messaging.ReviewResolved{
		RequestID:    row.ID,
		TestResultID: row.TestResultID,
		QuestionID:   row.QuestionID,
		UserID:       row.UserID,
		Status:       row.Status,
		NewMarks:     row.NewMarks,
		Score:        newScore,
		ReviewedBy:   row.ReviewedBy,
		ReviewedAt:   *row.ReviewedAt,
	})
	out := toReviewDTO(row)
	return &out, nil
}
