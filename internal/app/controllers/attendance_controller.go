package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/pkg/helpers"
)

// AttendanceController handles daily attendance records
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

func attendanceResponse(record *models.Attendance) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		ID:        record.ID,
		CourseID:  record.CourseID,
		StudentID: record.StudentID,
		Date:      record.Date,
		Status:    string(record.Status),
		Remarks:   record.Remarks,
	}
}

// Record records one student's attendance for a day
// @Summary Record attendance
// @Description One record per (course, student, date); the student's counters move with the status
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecordAttendanceRequest true "Attendance data"
// @Success 201 {object} dto.StructuredResponse{data=dto.AttendanceResponse} "Attendance recorded"
// @Failure 404 {object} dto.ErrorResponse "Course or student not found"
// @Failure 409 {object} dto.ErrorResponse "Already recorded for this date"
// @Router /attendance [post]
func (c *AttendanceController) Record(ctx *gin.Context) {
	var req dto.RecordAttendanceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	record, err := c.attendanceService.Record(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(attendanceResponse(record), "Attendance recorded"))
}

// RecordBulk records a whole class for one day
// @Summary Record attendance in bulk
// @Description Existing records for the same student and date are overwritten
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkAttendanceRequest true "Class attendance for one date"
// @Success 200 {object} dto.StructuredResponse{data=dto.BulkAttendanceResponse} "Attendance recorded"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /attendance/bulk [post]
func (c *AttendanceController) RecordBulk(ctx *gin.Context) {
	var req dto.BulkAttendanceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	summary, err := c.attendanceService.RecordBulk(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(summary, "Attendance recorded"))
}

// ListAttendance retrieves attendance records with filters
// @Summary List attendance records
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "Filter by course"
// @Param studentId query int false "Filter by student"
// @Param status query string false "Filter by status" Enums(PRESENT, ABSENT, LATE, EXCUSED)
// @Param from query string false "Records on or after this date (RFC 3339)"
// @Param to query string false "Records on or before this date (RFC 3339)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.AttendanceListResponse} "Attendance records"
// @Router /attendance [get]
func (c *AttendanceController) ListAttendance(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var filters repositories.AttendanceFilters
	if v := ctx.Query("courseId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.CourseID = &id
		}
	}
	if v := ctx.Query("studentId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.StudentID = &id
		}
	}
	if v := ctx.Query("status"); v != "" {
		status := models.AttendanceStatus(v)
		filters.Status = &status
	}
	if v := ctx.Query("from"); v != "" {
		if from, err := time.Parse(time.RFC3339, v); err == nil {
			filters.From = &from
		}
	}
	if v := ctx.Query("to"); v != "" {
		if to, err := time.Parse(time.RFC3339, v); err == nil {
			filters.To = &to
		}
	}

	records, total, err := c.attendanceService.List(ctx.Request.Context(), filters, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, attendanceResponse(&records[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.AttendanceListResponse{
		Records:    responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "Attendance retrieved"))
}

// GetAttendance retrieves one record
// @Summary Get attendance record by ID
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.AttendanceResponse} "Attendance record"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /attendance/{id} [get]
func (c *AttendanceController) GetAttendance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	record, err := c.attendanceService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(attendanceResponse(record), "Attendance retrieved"))
}

// UpdateAttendance edits a record's status
// @Summary Update an attendance record
// @Description The student's counters are adjusted when the status change moves them
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param request body dto.UpdateAttendanceRequest true "New status"
// @Success 200 {object} dto.StructuredResponse{data=dto.AttendanceResponse} "Attendance updated"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /attendance/{id} [put]
func (c *AttendanceController) UpdateAttendance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAttendanceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	record, err := c.attendanceService.Update(ctx.Request.Context(), id, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(attendanceResponse(record), "Attendance updated"))
}

// DeleteAttendance removes a record
// @Summary Delete an attendance record
// @Description Rolls the student's counters back before removing the row
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} dto.StructuredResponse "Attendance deleted"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /attendance/{id} [delete]
func (c *AttendanceController) DeleteAttendance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.attendanceService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Attendance deleted"))
}

// StudentSummary retrieves a student's attendance standing
// @Summary Get a student's attendance summary
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student record ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentAttendanceSummary} "Attendance summary"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/attendance-summary [get]
func (c *AttendanceController) StudentSummary(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	summary, err := c.attendanceService.StudentSummary(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(summary, "Attendance summary retrieved"))
}
