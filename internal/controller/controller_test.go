package controller

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/testportal/internal/grading"
	"github.com/lshigami/testportal/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &grading.ValidationError{Field: "new_marks", Message: "too high"}, http.StatusBadRequest},
		{"not found", fmt.Errorf("test t1: %w", service.ErrNotFound), http.StatusNotFound},
		{"already resolved", &grading.InvalidStateError{RequestID: "r1", Status: grading.ReviewApproved}, http.StatusConflict},
		{"attempt exists", fmt.Errorf("test t1: %w", service.ErrAttemptExists), http.StatusConflict},
		{"review exists", service.ErrReviewExists, http.StatusConflict},
		{"forbidden", fmt.Errorf("result r1: %w", service.ErrForbidden), http.StatusForbidden},
		{"inactive", service.ErrTestInactive, http.StatusForbidden},
		{"other", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			RespondError(ctx, tc.err)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestBindCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		ok    bool
	}{
		{"user_id=u1&role=student&class=5", true},
		{"user_id=u1&role=admin", true},
		{"role=student", false},
		{"user_id=u1&role=janitor", false},
		{"user_id=u1&role=student&class=zero", false},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/tests?"+tc.query, nil)

			caller, ok := BindCaller(ctx)
			assert.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, "u1", caller.UserID)
			} else {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			}
		})
	}
}
