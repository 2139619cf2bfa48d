package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/testportal/internal/controller"
	"github.com/lshigami/testportal/internal/dto"
	"github.com/lshigami/testportal/internal/service"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	userTestService       service.UserTestService
	testSubmissionService service.TestSubmissionService
}

func NewUserTestController(uts service.UserTestService, tss service.TestSubmissionService) *UserTestController {
	return &UserTestController{
		userTestService:       uts,
		testSubmissionService: tss,
	}
}

func (c *UserTestController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/tests", c.GetAllTests)
	api.GET("/tests/:test_id", c.GetTestDetails)
	api.POST("/tests/:test_id/attempts", c.SubmitTestAttempt)
}

// GetAllTests godoc
// @Summary (User) List tests visible to the caller
// @Description Students see active tests open to their class; teachers see their own tests; admins see all.
// @Tags User - Tests & Attempts
// @Produce json
// @Param user_id query string true "Caller user ID"
// @Param role query string true "Caller role" Enums(student, teacher, admin)
// @Param class query int false "Student class"
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid caller identity"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *UserTestController) GetAllTests(ctx *gin.Context) {
	caller, ok := controller.BindCaller(ctx)
	if !ok {
		return
	}

	tests, err := c.userTestService.ListTests(ctx.Request.Context(), caller)
	if err != nil {
		log.Error().Err(err).Msg("User GetAllTests: Service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary (User) Get details of a specific test
// @Description Returns the test and its questions. Answer fields are only included for teachers and admins.
// @Tags User - Tests & Attempts
// @Produce json
// @Param test_id path string true "Test ID"
// @Param user_id query string true "Caller user ID"
// @Param role query string true "Caller role" Enums(student, teacher, admin)
// @Param class query int false "Student class"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 403 {object} dto.ErrorResponse "Test is not active"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id} [get]
func (c *UserTestController) GetTestDetails(ctx *gin.Context) {
	caller, ok := controller.BindCaller(ctx)
	if !ok {
		return
	}

	testDetails, err := c.userTestService.GetTestDetails(ctx.Request.Context(), caller, ctx.Param("test_id"))
	if err != nil {
		log.Warn().Err(err).Str("testID", ctx.Param("test_id")).Msg("User GetTestDetails: Test not available")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, testDetails)
}

// SubmitTestAttempt godoc
// @Summary (User) Submit answers for an entire test
// @Description Grades every question and stores the result. Resubmitting the identical answers returns the stored result.
// @Tags User - Tests & Attempts
// @Accept json
// @Produce json
// @Param test_id path string true "ID of the Test being attempted"
// @Param submission_data body dto.AttemptSubmitDTO true "User ID and answers keyed by question ID"
// @Success 200 {object} dto.TestResultDTO "Graded result"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Test is not active"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Test already attempted"
// @Router /tests/{test_id}/attempts [post]
func (c *UserTestController) SubmitTestAttempt(ctx *gin.Context) {
	testID := ctx.Param("test_id")

	var req dto.AttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("User SubmitTestAttempt: Failed to bind JSON")
		controller.BadRequest(ctx, "Invalid request body", err)
		return
	}

	log.Info().Str("testID", testID).Str("userID", req.UserID).Int("answerCount", len(req.Answers)).Msg("Received request to submit test attempt")

	result, err := c.testSubmissionService.SubmitAttempt(ctx.Request.Context(), testID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}
