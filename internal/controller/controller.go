package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/testportal/internal/dto"
	"github.com/lshigami/testportal/internal/grading"
	"github.com/lshigami/testportal/internal/service"
	"github.com/rs/zerolog/log"
)

// RespondError writes the status and body for an error returned by a
// service.
func RespondError(ctx *gin.Context, err error) {
	var (
		verr     *grading.ValidationError
		stateErr *grading.InvalidStateError
	)
	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Validation failed", Details: []string{verr.Error()}})
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.As(err, &stateErr),
		errors.Is(err, service.ErrAttemptExists),
		errors.Is(err, service.ErrReviewExists):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrTestInactive):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}

// BadRequest reports a request that failed binding.
func BadRequest(ctx *gin.Context, message string, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
}

// BindCaller reads the caller identity from the query string. It writes a
// 400 response and returns false when the identity is missing or malformed.
func BindCaller(ctx *gin.Context) (dto.Caller, bool) {
	var caller dto.Caller
	if err := ctx.ShouldBindQuery(&caller); err != nil {
		log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind caller identity")
		BadRequest(ctx, "Invalid caller identity", err)
		return dto.Caller{}, false
	}
	return caller, true
}
