package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/middleware"
)

// AnalyticsController handles aggregate reporting, dashboards and data export
type AnalyticsController struct {
	analyticsService *services.AnalyticsService
	exportService    *services.ExportService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService *services.AnalyticsService, exportService *services.ExportService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
		exportService:    exportService,
	}
}

// StudentAnalytics summarizes the student body
// @Summary Student body analytics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=models.StudentAnalytics} "Analytics"
// @Router /analytics/students [get]
func (c *AnalyticsController) StudentAnalytics(ctx *gin.Context) {
	analytics, err := c.analyticsService.StudentAnalytics(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(analytics, "Analytics retrieved"))
}

// ExamAnalytics summarizes one exam's results
// @Summary Exam result analytics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.StructuredResponse{data=models.ExamAnalytics} "Analytics"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /analytics/exams/{id} [get]
func (c *AnalyticsController) ExamAnalytics(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	analytics, err := c.analyticsService.ExamAnalytics(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(analytics, "Analytics retrieved"))
}

// AttendanceAnalytics summarizes attendance, optionally for one course
// @Summary Attendance analytics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "Scope to one course"
// @Success 200 {object} dto.StructuredResponse{data=models.AttendanceAnalytics} "Analytics"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /analytics/attendance [get]
func (c *AnalyticsController) AttendanceAnalytics(ctx *gin.Context) {
	var courseID *int64
	if v := ctx.Query("courseId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			courseID = &id
		}
	}

	analytics, err := c.analyticsService.AttendanceAnalytics(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(analytics, "Analytics retrieved"))
}

// AdmissionAnalytics summarizes the application pipeline
// @Summary Admission analytics
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=models.AdmissionAnalytics} "Analytics"
// @Router /analytics/admissions [get]
func (c *AnalyticsController) AdmissionAnalytics(ctx *gin.Context) {
	analytics, err := c.analyticsService.AdmissionAnalytics(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(analytics, "Analytics retrieved"))
}

// AdminDashboard assembles the administrator landing view
// @Summary Administrator dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=models.AdminDashboard} "Dashboard"
// @Router /dashboard/admin [get]
func (c *AnalyticsController) AdminDashboard(ctx *gin.Context) {
	dashboard, err := c.analyticsService.AdminDashboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dashboard, "Dashboard retrieved"))
}

// FacultyDashboard assembles the caller's teaching overview
// @Summary Faculty dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=models.FacultyDashboard} "Dashboard"
// @Router /dashboard/faculty [get]
func (c *AnalyticsController) FacultyDashboard(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	dashboard, err := c.analyticsService.FacultyDashboard(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dashboard, "Dashboard retrieved"))
}

// StudentDashboard assembles the caller's academic overview
// @Summary Student dashboard
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=models.StudentDashboard} "Dashboard"
// @Failure 404 {object} dto.ErrorResponse "No student record for this account"
// @Router /dashboard/student [get]
func (c *AnalyticsController) StudentDashboard(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	dashboard, err := c.analyticsService.StudentDashboard(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dashboard, "Dashboard retrieved"))
}

// Export streams a dataset as a CSV or XLSX download
// @Summary Export a dataset
// @Tags export
// @Produce application/octet-stream
// @Security BearerAuth
// @Param resource path string true "Dataset" Enums(students, faculty, courses, attendance)
// @Param format query string false "File format" Enums(csv, xlsx) default(csv)
// @Success 200 {file} file "Exported file"
// @Failure 400 {object} dto.ErrorResponse "Unknown dataset or format"
// @Router /export/{resource} [get]
func (c *AnalyticsController) Export(ctx *gin.Context) {
	resource := ctx.Param("resource")
	format := services.ExportFormat(ctx.DefaultQuery("format", string(services.FormatCSV)))

	buf, filename, err := c.exportService.Export(ctx.Request.Context(), resource, format)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	contentType := "text/csv"
	if format == services.FormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, contentType, buf.Bytes())
}
