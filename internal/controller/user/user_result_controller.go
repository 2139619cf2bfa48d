package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/testportal/internal/controller"
	"github.com/lshigami/testportal/internal/dto"
	"github.com/lshigami/testportal/internal/service"
	"github.com/rs/zerolog/log"
)

type UserResultController struct {
	resultService service.ResultService
	reviewService service.ReviewService
}

func NewUserResultController(resultService service.ResultService, reviewService service.ReviewService) *UserResultController {
	return &UserResultController{resultService: resultService, reviewService: reviewService}
}

func (c *UserResultController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/results", c.ListResults)
	api.GET("/results/:result_id", c.GetResult)
	api.GET("/results/:result_id/report", c.GetReport)
	api.POST("/results/:result_id/review-requests", c.CreateReviewRequest)
	api.GET("/review-requests", c.ListReviewRequests)
}

// ListResults godoc
// @Summary (User) List results
// @Description Students get their own results; teachers and admins get everyone's.
// @Tags User - Results
// @Produce json
// @Param user_id query string true "Caller user ID"
// @Param role query string true "Caller role" Enums(student, teacher, admin)
// @Param test_id query string false "Restrict to one test"
// @Success 200 {array} dto.TestResultSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid caller identity"
// @Router /results [get]
func (c *UserResultController) ListResults(ctx *gin.Context) {
	caller, ok := controller.BindCaller(ctx)
	if !ok {
		return
	}
	results, err := c.resultService.ListResults(ctx.Request.Context(), caller, ctx.Query("test_id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// GetResult godoc
// @Summary (User) Get a graded result
// @Tags User - Results
// @Produce json
// @Param result_id path string true "Result ID"
// @Param user_id query string true "Caller user ID"
// @Param role query string true "Caller role" Enums(student, teacher, admin)
// @Success 200 {object} dto.TestResultDTO
// @Failure 403 {object} dto.ErrorResponse "Result belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Router /results/{result_id} [get]
func (c *UserResultController) GetResult(ctx *gin.Context) {
	caller, ok := controller.BindCaller(ctx)
	if !ok {
		return
	}
	result, err := c.resultService.GetResult(ctx.Request.Context(), caller, ctx.Param("result_id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetReport godoc
// @Summary (User) Printable report card
// @Description Breakdown, letter grade and the +4/-1 negative marking view of a result.
// @Tags User - Results
// @Produce json
// @Param result_id path string true "Result ID"
// @Param user_id query string true "Caller user ID"
// @Param role query string true "Caller role" Enums(student, teacher, admin)
// @Success 200 {object} dto.ReportDTO
// @Failure 403 {object} dto.ErrorResponse "Result belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Router /results/{result_id}/report [get]
func (c *UserResultController) GetReport(ctx *gin.Context) {
	caller, ok := controller.BindCaller(ctx)
	if !ok {
		return
	}
	report, err := c.resultService.GetReport(ctx.Request.Context(), caller, ctx.Param("result_id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// CreateReviewRequest godoc
// @Summary (User) Dispute the grading of a question
// @Description Only short-answer and fill-in-blank questions of the caller's own result can be disputed, one open request at a time.
// @Tags User - Results
// @Accept json
// @Produce json
// @Param result_id path string true "Result ID"
// @Param request body dto.ReviewRequestCreateDTO true "Question and reason"
// @Success 201 {object} dto.ReviewRequestDTO
// @Failure 400 {object} dto.ErrorResponse "Question cannot be reviewed"
// @Failure 403 {object} dto.ErrorResponse "Result belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Failure 409 {object} dto.ErrorResponse "A request for this question already exists"
// @Router /results/{result_id}/review-requests [post]
func (c *UserResultController) CreateReviewRequest(ctx *gin.Context) {
	var req dto.ReviewRequestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("User CreateReviewRequest: Failed to bind JSON")
		controller.BadRequest(ctx, "Invalid request body", err)
		return
	}

	created, err := c.reviewService.CreateRequest(ctx.Request.Context(), ctx.Param("result_id"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// ListReviewRequests godoc
// @Summary (User) List review requests
// @Description Students see their own requests; staff see all of them.
// @Tags User - Results
// @Produce json
// @Param user_id query string true "Caller user ID"
// @Param role query string true "Caller role" Enums(student, teacher, admin)
// @Success 200 {array} dto.ReviewRequestDTO
// @Router /review-requests [get]
func (c *UserResultController) ListReviewRequests(ctx *gin.Context) {
	caller, ok := controller.BindCaller(ctx)
	if !ok {
		return
	}
	requests, err := c.reviewService.ListRequests(ctx.Request.Context(), caller)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, requests)
}
