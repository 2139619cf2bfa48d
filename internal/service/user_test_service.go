package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/testportal/internal/dto"
	"github.com/lshigami/testportal/internal/repository"
	"github.com/rs/zerolog/log"
)

type UserTestService interface {
	ListTests(ctx context.Context, caller dto.Caller) ([]dto.TestSummaryDTO, error)
	GetTestDetails(ctx context.Context, caller dto.Caller, testID string) (*dto.TestResponseDTO, error)
}

type userTestService struct {
	testRepo repository.TestRepository
}

func NewUserTestService(testRepo repository.TestRepository) UserTestService {
	return &userTestService{testRepo: testRepo}
}

// filterFor returns what a caller may list: students see active tests open
// to their class, teachers their own tests, admins everything.
func filterFor(caller dto.Caller) repository.TestFilter {
	switch caller.Role {
	case dto.RoleStudent:
		return repository.TestFilter{ActiveOnly: true, Class: caller.Class, ClassScoped: true}
	case dto.RoleTeacher:
		return repository.TestFilter{CreatedBy: caller.UserID}
	default:
		return repository.TestFilter{}
	}
}

func (s *userTestService) ListTests(ctx context.Context, caller dto.Caller) ([]dto.TestSummaryDTO, error) {
	summaries, err := s.testRepo.ListSummaries(ctx, filterFor(caller))
	if err != nil {
		log.Error().Err(err).Str("role", string(caller.Role)).Msg("Failed to list tests from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	dtos := make([]dto.TestSummaryDTO, 0, len(summaries))
	for _, sum := range summaries {
		var item dto.TestSummaryDTO
		if err := copier.Copy(&item, &sum.Test); err != nil {
			return nil, fmt.Errorf("error preparing test summary: %w", err)
		}
		item.QuestionCount = sum.QuestionCount
		item.TotalMarks = sum.TotalMarks
		dtos = append(dtos, item)
	}
	return dtos, nil
}

// GetTestDetails returns a test for taking or inspection. Students get no
// answer fields and only see tests they could list.
func (s *userTestService) GetTestDetails(ctx context.Context, caller dto.Caller, testID string) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		log.Warn().Err(err).Str("testID", testID).Msg("Failed to get test details from repository")
		return nil, fmt.Errorf("test %s: %w", testID, notFound(err))
	}

	if !caller.IsStaff() {
		if !test.IsActive {
			return nil, fmt.Errorf("test %s: %w", testID, ErrTestInactive)
		}
		if !test.VisibleToClass(caller.Class) {
			return nil, fmt.Errorf("test %s: %w", testID, ErrNotFound)
		}
	}
	return toTestResponse(test, caller.IsStaff())
}
