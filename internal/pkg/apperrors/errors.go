package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Student and faculty profile errors
var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrStudentIDAlreadyExists = errors.New("student ID already exists")
	ErrFacultyNotFound        = errors.New("faculty profile not found")
	ErrFacultyIDAlreadyExists = errors.New("faculty ID already exists")
)

// Organization errors
var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentAlreadyExists = errors.New("department with this name or code already exists")
	ErrProgramNotFound         = errors.New("program not found")
	ErrProgramAlreadyExists    = errors.New("program with this code already exists")
)

// Academic errors
var (
	ErrCourseNotFound        = errors.New("course not found")
	ErrCourseAlreadyExists   = errors.New("course with this code already exists")
	ErrCourseFull            = errors.New("course has reached its enrollment capacity")
	ErrAlreadyEnrolled       = errors.New("student already enrolled in this course")
	ErrNotEnrolled           = errors.New("student not enrolled in this course")
	ErrExamNotFound          = errors.New("exam not found")
	ErrExamResultNotFound    = errors.New("exam result not found")
	ErrDuplicateExamResult   = errors.New("result already exists for this student")
	ErrMarksExceedTotal      = errors.New("marks obtained cannot exceed the exam's total marks")
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrDuplicateAttendance   = errors.New("attendance already recorded for this student, course and date")
	ErrTimetableSlotNotFound = errors.New("timetable slot not found")
	ErrScheduleConflict      = errors.New("scheduling conflict detected")
	ErrInvalidTimeRange      = errors.New("slot end time must be after start time")
)

// Admission errors
var (
	ErrAdmissionNotFound         = errors.New("admission not found")
	ErrAdmissionDocumentNotFound = errors.New("admission document not found")
	ErrInvalidStatusTransition   = errors.New("invalid application status")
)

// Content errors
var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrForumTopicNotFound   = errors.New("forum topic not found")
	ErrForumReplyNotFound   = errors.New("forum reply not found")
	ErrTopicLocked          = errors.New("forum topic is locked")
)

// Email verification errors
var (
	ErrEmailNotVerified     = errors.New("email not verified")
	ErrInvalidEmailToken    = errors.New("invalid or expired email verification token")
	ErrEmailAlreadyVerified = errors.New("email already verified")
)

// Password reset errors
var (
	ErrInvalidPasswordResetToken = errors.New("invalid or expired password reset token")
	ErrPasswordResetTokenUsed    = errors.New("password reset token has already been used")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
