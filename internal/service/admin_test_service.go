package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/testportal/internal/dto"
	"github.com/lshigami/testportal/internal/grading"
	"github.com/lshigami/testportal/internal/model"
	"github.com/lshigami/testportal/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type AdminTestService interface {
	CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
	GetTest(ctx context.Context, testID string) (*dto.TestResponseDTO, error)
	UpdateTest(ctx context.Context, testID string, req dto.TestUpdateDTO) (*dto.TestResponseDTO, error)
	DeleteTest(ctx context.Context, testID string) error
}

type adminTestService struct {
	testRepo repository.TestRepository
	validate *validator.Validate
}

func NewAdminTestService(testRepo repository.TestRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo, validate: newValidator()}
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &grading.ValidationError{Message: err.Error()}
	}
	fe := verrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	msg := fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	if fe.Param() != "" {
		msg = fmt.Sprintf("failed on the '%s=%s' rule", fe.Tag(), fe.Param())
	}
	return &grading.ValidationError{Field: field, Message: msg}
}

// buildQuestions validates authored questions and turns them into rows in
// array order. Only the answer field authoritative for each type is kept.
func buildQuestions(in []dto.QuestionCreateDTO) ([]model.Question, error) {
	seen := make(map[string]bool, len(in))
	questions := make([]model.Question, 0, len(in))

	for i, q := range in {
		id := strings.TrimSpace(q.ID)
		if id == "" {
			id = uuid.NewString()
		}
		if seen[id] {
			return nil, &grading.ValidationError{Field: fmt.Sprintf("questions[%d].id", i), Message: fmt.Sprintf("duplicate question id %q", id)}
		}
		seen[id] = true

		qType := grading.QuestionType(q.Type)
		options := q.Options
		if qType == grading.TrueFalse && len(options) == 0 {
			options = []string{"False", "True"}
		}
		marks := q.Marks
		if marks == 0 {
			marks = grading.DefaultMarks
		}

		gq := grading.Question{ID: id, Type: qType, Prompt: q.Prompt, Options: options, Marks: marks}
		switch qType {
		case grading.MultipleChoice, grading.TrueFalse:
			gq.CorrectOptionIndex = q.CorrectOptionIndex
		case grading.ShortAnswer, grading.FillInBlank:
			gq.ExpectedAnswer = q.ExpectedAnswer
			gq.Options = nil
		case grading.RealNumber:
			gq.CorrectNumber = q.CorrectNumber
			gq.Options = nil
		}

		if err := grading.ValidateQuestion(gq); err != nil {
			var verr *grading.ValidationError
			if errors.As(err, &verr) {
				return nil, &grading.ValidationError{Field: fmt.Sprintf("questions[%d].%s", i, verr.Field), Message: verr.Message}
			}
			return nil, err
		}

		row := model.Question{
			ID:                 id,
			Position:           i,
			Type:               string(gq.Type),
			Prompt:             gq.Prompt,
			CorrectOptionIndex: gq.CorrectOptionIndex,
			ExpectedAnswer:     gq.ExpectedAnswer,
			CorrectNumber:      gq.CorrectNumber,
			Marks:              gq.Marks,
			Subject:            q.Subject,
		}
		if gq.Options != nil {
			row.Options = datatypes.NewJSONSlice(gq.Options)
		}
		questions = append(questions, row)
	}
	return questions, nil
}

// toTestResponse renders a test with its questions. Answer fields are
// stripped unless includeAnswers is set.
func toTestResponse(test *model.Test, includeAnswers bool) (*dto.TestResponseDTO, error) {
	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Str("testID", test.ID).Msg("Failed to copy Test model to TestResponseDTO")
		return nil, fmt.Errorf("error preparing test response: %w", err)
	}
	if resp.Questions == nil {
		resp.Questions = []dto.QuestionResponseDTO{}
	}
	if !includeAnswers {
		for i := range resp.Questions {
			resp.Questions[i].CorrectOptionIndex = nil
			resp.Questions[i].ExpectedAnswer = nil
			resp.Questions[i].CorrectNumber = nil
		}
	}
	resp.TotalMarks = test.ToGrading().TotalMarks()
	return &resp, nil
}

func (s *adminTestService) CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, toValidationError(err)
	}
	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	testModel := model.Test{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		CreatedBy:       req.CreatedBy,
		IsActive:        isActive,
		TargetClass:     req.TargetClass,
		Subject:         req.Subject,
		Questions:       questions,
	}

	if err := s.testRepo.Create(ctx, &testModel); err != nil {
		log.Error().Err(err).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}
	log.Info().Str("testID", testModel.ID).Int("questions", len(questions)).Str("createdBy", req.CreatedBy).Msg("Test created")

	created, err := s.testRepo.FindByIDWithQuestions(ctx, testModel.ID)
	if err != nil {
		log.Error().Err(err).Str("testID", testModel.ID).Msg("Failed to retrieve newly created test with questions for response")
		return toTestResponse(&testModel, true)
	}
	return toTestResponse(created, true)
}

func (s *adminTestService) GetTest(ctx context.Context, testID string) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("test %s: %w", testID, notFound(err))
	}
	return toTestResponse(test, true)
}

func (s *adminTestService) UpdateTest(ctx context.Context, testID string, req dto.TestUpdateDTO) (*dto.TestResponseDTO, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, toValidationError(err)
	}

	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("test %s: %w", testID, notFound(err))
	}

	if req.Title != nil {
		test.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		test.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		test.IsActive = *req.IsActive
	}
	if req.TargetClass != nil {
		test.TargetClass = req.TargetClass
	}
	if req.Subject != nil {
		test.Subject = *req.Subject
	}

	replace := req.Questions != nil
	if replace {
		questions, err := buildQuestions(req.Questions)
		if err != nil {
			return nil, err
		}
		test.Questions = questions
	}

	if err := s.testRepo.Update(ctx, test, replace); err != nil {
		log.Error().Err(err).Str("testID", testID).Msg("Failed to update test")
		return nil, fmt.Errorf("database error updating test: %w", err)
	}
	log.Info().Str("testID", testID).Bool("questionsReplaced", replace).Msg("Test updated")

	updated, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("reload test %s: %w", testID, err)
	}
	return toTestResponse(updated, true)
}

func (s *adminTestService) DeleteTest(ctx context.Context, testID string) error {
	if err := s.testRepo.Delete(ctx, testID); err != nil {
		return fmt.Errorf("test %s: %w", testID, notFound(err))
	}
	log.Info().Str("testID", testID).Msg("Test deleted")
	return nil
}
