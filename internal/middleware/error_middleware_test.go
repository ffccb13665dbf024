package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

func handleErrorStatus(t *testing.T, err error) int {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	HandleAPIError(c, err)
	return w.Code
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found sentinel", apperrors.ErrStudentNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", apperrors.ErrCourseNotFound), http.StatusNotFound},
		{"duplicate enrollment", apperrors.ErrAlreadyEnrolled, http.StatusConflict},
		{"duplicate attendance", apperrors.ErrDuplicateAttendance, http.StatusConflict},
		{"state conflict", apperrors.NewConflictError("only active enrollments can be dropped"), http.StatusConflict},
		{"validation failure", fmt.Errorf("%w: semester must be positive", apperrors.ErrValidationFailed), http.StatusBadRequest},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown error", fmt.Errorf("broken pipe"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handleErrorStatus(t, tt.err); got != tt.wantStatus {
				t.Errorf("HandleAPIError(%v) = %d, want %d", tt.err, got, tt.wantStatus)
			}
		})
	}
}

// Scheduling conflicts are client errors, not 409s: the request itself
// asked for an impossible slot, and the response carries the blockers.
func TestHandleAPIErrorScheduleConflict(t *testing.T) {
	conflictErr := &services.ConflictError{Conflicts: []dto.ConflictDetail{{Reason: "room 101 is occupied"}}}
	if got := handleErrorStatus(t, conflictErr); got != http.StatusBadRequest {
		t.Errorf("ConflictError = %d, want %d", got, http.StatusBadRequest)
	}
	if got := handleErrorStatus(t, apperrors.ErrScheduleConflict); got != http.StatusBadRequest {
		t.Errorf("ErrScheduleConflict = %d, want %d", got, http.StatusBadRequest)
	}
}
