package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/logger"
)

// notFoundSentinels maps to 404. The message shown is the sentinel's own.
var notFoundSentinels = []error{
	apperrors.ErrResourceNotFound,
	apperrors.ErrUserNotFound,
	apperrors.ErrStudentNotFound,
	apperrors.ErrFacultyNotFound,
	apperrors.ErrDepartmentNotFound,
	apperrors.ErrProgramNotFound,
	apperrors.ErrCourseNotFound,
	apperrors.ErrNotEnrolled,
	apperrors.ErrExamNotFound,
	apperrors.ErrExamResultNotFound,
	apperrors.ErrAttendanceNotFound,
	apperrors.ErrTimetableSlotNotFound,
	apperrors.ErrAdmissionNotFound,
	apperrors.ErrAdmissionDocumentNotFound,
	apperrors.ErrAnnouncementNotFound,
	apperrors.ErrForumTopicNotFound,
	apperrors.ErrForumReplyNotFound,
	apperrors.ErrTokenNotFound,
}

// conflictSentinels maps to 409
var conflictSentinels = []error{
	apperrors.ErrResourceAlreadyExists,
	apperrors.ErrConflict,
	apperrors.ErrEmailAlreadyExists,
	apperrors.ErrStudentIDAlreadyExists,
	apperrors.ErrFacultyIDAlreadyExists,
	apperrors.ErrDepartmentAlreadyExists,
	apperrors.ErrProgramAlreadyExists,
	apperrors.ErrCourseAlreadyExists,
	apperrors.ErrCourseFull,
	apperrors.ErrAlreadyEnrolled,
	apperrors.ErrDuplicateExamResult,
	apperrors.ErrDuplicateAttendance,
	apperrors.ErrEmailAlreadyVerified,
}

// validationSentinels maps to 400
var validationSentinels = []error{
	apperrors.ErrValidationFailed,
	apperrors.ErrBadRequest,
	apperrors.ErrInvalidEmail,
	apperrors.ErrInvalidPassword,
	apperrors.ErrMarksExceedTotal,
	apperrors.ErrInvalidTimeRange,
	apperrors.ErrInvalidStatusTransition,
	apperrors.ErrInvalidEmailToken,
	apperrors.ErrInvalidPasswordResetToken,
	apperrors.ErrPasswordResetTokenUsed,
	apperrors.ErrTopicLocked,
}

// unauthorizedSentinels maps to 401
var unauthorizedSentinels = []error{
	apperrors.ErrInvalidCredentials,
	apperrors.ErrTokenExpired,
	apperrors.ErrTokenInvalid,
	apperrors.ErrTokenRevoked,
	apperrors.ErrAccountDisabled,
	apperrors.ErrInvalidFormat,
}

func matchesAny(err error, sentinels []error) bool {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// HandleAPIError translates a service error into the standard error
// envelope. Controllers call this for every non-nil service result.
func HandleAPIError(c *gin.Context, err error) {
	// Scheduling conflicts carry the blocking slots as details
	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeScheduleConflict, "Scheduling conflict detected")
		errorDetail = errorDetail.WithDetails(conflictErr.Conflicts)
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	switch {
	case matchesAny(err, notFoundSentinels):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())))
	case matchesAny(err, conflictSentinels):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, err.Error())))
	case errors.Is(err, apperrors.ErrScheduleConflict):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeScheduleConflict, err.Error())))
	case matchesAny(err, validationSentinels):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())))
	case errors.Is(err, apperrors.ErrEmailNotVerified):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeEmailNotVerified, err.Error())))
	case matchesAny(err, unauthorizedSentinels):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, err.Error())))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled service error")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		if gin.Mode() != gin.ReleaseMode {
			errorDetail = errorDetail.WithDebugInfo("%v", err)
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}
