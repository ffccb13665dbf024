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

// ExamController handles exams and their results
type ExamController struct {
	examService *services.ExamService
}

// NewExamController creates a new ExamController
func NewExamController(examService *services.ExamService) *ExamController {
	return &ExamController{examService: examService}
}

func examResponse(exam *models.Exam) dto.ExamResponse {
	resp := dto.ExamResponse{
		ID:              exam.ID,
		CourseID:        exam.CourseID,
		Title:           exam.Title,
		ExamType:        string(exam.ExamType),
		ExamDate:        exam.ExamDate,
		DurationMinutes: exam.DurationMinutes,
		TotalMarks:      exam.TotalMarks,
		PassingMarks:    exam.PassingMarks,
		Room:            exam.Room,
		Status:          string(exam.Status),
	}
	if exam.Course != nil {
		resp.CourseCode = exam.Course.Code
	}
	return resp
}

func examResultResponse(result *models.ExamResult) dto.ExamResultResponse {
	resp := dto.ExamResultResponse{
		ID:            result.ID,
		ExamID:        result.ExamID,
		StudentID:     result.StudentID,
		MarksObtained: result.MarksObtained,
		Percentage:    result.Percentage,
		Grade:         result.Grade,
		GradePoints:   result.GradePoints,
		IsPassed:      result.IsPassed,
		Remarks:       result.Remarks,
	}
	if result.Student != nil {
		resp.StudentNumber = result.Student.StudentID
	}
	if result.Exam != nil {
		resp.TotalMarks = result.Exam.TotalMarks
	}
	return resp
}

// CreateExam schedules an exam for a course
// @Summary Create an exam
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExamRequest true "Exam data"
// @Success 201 {object} dto.StructuredResponse{data=dto.ExamResponse} "Exam created"
// @Failure 400 {object} dto.ErrorResponse "Invalid exam data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.CreateExamRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	exam, err := c.examService.CreateExam(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(examResponse(exam), "Exam created"))
}

// ListExams retrieves exams with filters
// @Summary List exams
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "Filter by course"
// @Param examType query string false "Filter by type" Enums(MIDTERM, FINAL, QUIZ, ASSIGNMENT, PRACTICAL)
// @Param status query string false "Filter by status" Enums(SCHEDULED, ONGOING, COMPLETED, CANCELLED)
// @Param from query string false "Exams on or after this date (RFC 3339)"
// @Param to query string false "Exams on or before this date (RFC 3339)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.ExamListResponse} "Exams"
// @Router /exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var filters repositories.ExamFilters
	if v := ctx.Query("courseId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.CourseID = &id
		}
	}
	if v := ctx.Query("examType"); v != "" {
		examType := models.ExamType(v)
		filters.ExamType = &examType
	}
	if v := ctx.Query("status"); v != "" {
		status := models.ExamStatus(v)
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

	exams, total, err := c.examService.ListExams(ctx.Request.Context(), filters, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		responses = append(responses, examResponse(&exams[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.ExamListResponse{
		Exams:      responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "Exams retrieved"))
}

// GetExam retrieves one exam
// @Summary Get exam by ID
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.ExamResponse} "Exam"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	exam, err := c.examService.GetExamByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(examResponse(exam), "Exam retrieved"))
}

// UpdateExam updates an exam
// @Summary Update an exam
// @Description Marks fields are frozen once results exist for the exam
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body dto.UpdateExamRequest true "Exam data"
// @Success 200 {object} dto.StructuredResponse{data=dto.ExamResponse} "Exam updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid exam data"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{id} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateExamRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	exam, err := c.examService.UpdateExam(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(examResponse(exam), "Exam updated"))
}

// DeleteExam removes an exam
// @Summary Delete an exam
// @Description Fails when results have already been recorded
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.StructuredResponse "Exam deleted"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Exam already has results"
// @Router /exams/{id} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.examService.DeleteExam(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Exam deleted"))
}

// RecordResult records a student's marks for an exam
// @Summary Record an exam result
// @Description Derives percentage, letter grade, grade points and pass flag from the marks
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body dto.RecordResultRequest true "Marks"
// @Success 201 {object} dto.StructuredResponse{data=dto.ExamResultResponse} "Result recorded"
// @Failure 400 {object} dto.ErrorResponse "Marks exceed the exam total"
// @Failure 404 {object} dto.ErrorResponse "Exam or student not found"
// @Failure 409 {object} dto.ErrorResponse "Result already recorded for this student"
// @Router /exams/{id}/results [post]
func (c *ExamController) RecordResult(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RecordResultRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	result, err := c.examService.RecordResult(ctx.Request.Context(), id, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(examResultResponse(result), "Result recorded"))
}

// ListResults retrieves all results for an exam
// @Summary List exam results
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.ExamResultListResponse} "Results"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{id}/results [get]
func (c *ExamController) ListResults(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	results, total, err := c.examService.ListResultsByExam(ctx.Request.Context(), id, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ExamResultResponse, 0, len(results))
	for i := range results {
		responses = append(responses, examResultResponse(&results[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.ExamResultListResponse{
		Results:    responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "Results retrieved"))
}

// UpdateResult edits a recorded result's marks
// @Summary Update an exam result
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resultId path int true "Result ID"
// @Param request body dto.UpdateResultRequest true "New marks"
// @Success 200 {object} dto.StructuredResponse{data=dto.ExamResultResponse} "Result updated"
// @Failure 400 {object} dto.ErrorResponse "Marks exceed the exam total"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Router /exam-results/{resultId} [put]
func (c *ExamController) UpdateResult(ctx *gin.Context) {
	resultID, ok := parseIDParam(ctx, "resultId")
	if !ok {
		return
	}

	var req dto.UpdateResultRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	result, err := c.examService.UpdateResult(ctx.Request.Context(), resultID, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(examResultResponse(result), "Result updated"))
}

// DeleteResult removes a recorded result
// @Summary Delete an exam result
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param resultId path int true "Result ID"
// @Success 200 {object} dto.StructuredResponse "Result deleted"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Router /exam-results/{resultId} [delete]
func (c *ExamController) DeleteResult(ctx *gin.Context) {
	resultID, ok := parseIDParam(ctx, "resultId")
	if !ok {
		return
	}

	if err := c.examService.DeleteResult(ctx.Request.Context(), resultID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Result deleted"))
}

// ListStudentResults retrieves all results for a student
// @Summary List a student's exam results
// @Tags exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student record ID"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.ExamResultResponse} "Results"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/results [get]
func (c *ExamController) ListStudentResults(ctx *gin.Context) {
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

	results, err := c.examService.ListResultsByStudent(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ExamResultResponse, 0, len(results))
	for i := range results {
		responses = append(responses, examResultResponse(&results[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(responses, "Results retrieved"))
}
