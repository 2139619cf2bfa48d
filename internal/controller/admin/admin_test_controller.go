package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/testportal/internal/controller"
	"github.com/lshigami/testportal/internal/dto"
	"github.com/lshigami/testportal/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
}

func NewAdminTestController(adminTestService service.AdminTestService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService}
}

func (c *AdminTestController) RegisterRoutes(admin *gin.RouterGroup) {
	tests := admin.Group("/tests")
	tests.POST("", c.CreateTest)
	tests.GET("/:test_id", c.GetTest)
	tests.PUT("/:test_id", c.UpdateTest)
	tests.DELETE("/:test_id", c.DeleteTest)
}

// CreateTest godoc
// @Summary (Admin) Create a new test
// @Description Creates a test with all its questions. Each question carries the answer field its type needs.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param test_data body dto.TestCreateDTO true "Test creation data including all questions"
// @Success 201 {object} dto.TestResponseDTO "Test created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateTest: Failed to bind JSON")
		controller.BadRequest(ctx, "Invalid request body", err)
		return
	}

	testResp, err := c.adminTestService.CreateTest(ctx.Request.Context(), req)
	if err != nil {
		log.Warn().Err(err).Str("createdBy", req.CreatedBy).Msg("Admin CreateTest: Service error")
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, testResp)
}

// GetTest godoc
// @Summary (Admin) Get a test with its answer key
// @Tags Admin - Tests
// @Produce json
// @Param test_id path string true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id} [get]
func (c *AdminTestController) GetTest(ctx *gin.Context) {
	testResp, err := c.adminTestService.GetTest(ctx.Request.Context(), ctx.Param("test_id"))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, testResp)
}

// UpdateTest godoc
// @Summary (Admin) Update a test
// @Description Only fields present in the body change. A questions array replaces every stored question.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Param test_id path string true "Test ID"
// @Param test_data body dto.TestUpdateDTO true "Fields to change"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id} [put]
func (c *AdminTestController) UpdateTest(ctx *gin.Context) {
	var req dto.TestUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin UpdateTest: Failed to bind JSON")
		controller.BadRequest(ctx, "Invalid request body", err)
		return
	}

	testResp, err := c.adminTestService.UpdateTest(ctx.Request.Context(), ctx.Param("test_id"), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, testResp)
}

// DeleteTest godoc
// @Summary (Admin) Delete a test
// @Description Stored results of the test are kept.
// @Tags Admin - Tests
// @Param test_id path string true "Test ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id} [delete]
func (c *AdminTestController) DeleteTest(ctx *gin.Context) {
	if err := c.adminTestService.DeleteTest(ctx.Request.Context(), ctx.Param("test_id")); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
