package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/testportal/internal/controller"
	"github.com/lshigami/testportal/internal/dto"
	"github.com/lshigami/testportal/internal/service"
	"github.com/rs/zerolog/log"
)

// AdminReviewController serves staff-only review and statistics endpoints.
type AdminReviewController struct {
	reviewService service.ReviewService
	resultService service.ResultService
}

func NewAdminReviewController(reviewService service.ReviewService, resultService service.ResultService) *AdminReviewController {
	return &AdminReviewController{reviewService: reviewService, resultService: resultService}
}

func (c *AdminReviewController) RegisterRoutes(admin *gin.RouterGroup) {
	admin.POST("/review-requests/:request_id/resolve", c.ResolveReviewRequest)
	admin.GET("/results/stats", c.GetResultStats)
}

// ResolveReviewRequest godoc
// @Summary (Admin) Approve or reject a review request
// @Description An approval may carry new marks for the disputed question, between 0 and its maximum.
// @Tags Admin - Reviews
// @Accept json
// @Produce json
// @Param request_id path string true "Review request ID"
// @Param decision body dto.ReviewResolveDTO true "Decision"
// @Success 200 {object} dto.ReviewRequestDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid decision or marks out of range"
// @Failure 404 {object} dto.ErrorResponse "Review request not found"
// @Failure 409 {object} dto.ErrorResponse "Review request already resolved"
// @Router /admin/review-requests/{request_id}/resolve [post]
func (c *AdminReviewController) ResolveReviewRequest(ctx *gin.Context) {
	var req dto.ReviewResolveDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin ResolveReviewRequest: Failed to bind JSON")
		controller.BadRequest(ctx, "Invalid request body", err)
		return
	}

	resolved, err := c.reviewService.ResolveRequest(ctx.Request.Context(), ctx.Param("request_id"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resolved)
}

// GetResultStats godoc
// @Summary (Admin) Score statistics
// @Description Count, average, highest score and grade distribution, optionally for one test.
// @Tags Admin - Results
// @Produce json
// @Param test_id query string false "Restrict to one test"
// @Success 200 {object} dto.ResultStatsDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/results/stats [get]
func (c *AdminReviewController) GetResultStats(ctx *gin.Context) {
	stats, err := c.resultService.Stats(ctx.Request.Context(), ctx.Query("test_id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
