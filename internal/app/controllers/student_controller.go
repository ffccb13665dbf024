package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/academic"
	appAuth "github.com/campushub/campushub/internal/app/auth"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/pkg/helpers"
)

// StudentController handles student records and enrollments
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

func studentResponse(s *models.Student) dto.StudentResponse {
	resp := dto.StudentResponse{
		ID:                   s.ID,
		StudentID:            s.StudentID,
		UserID:               s.UserID,
		DepartmentID:         s.DepartmentID,
		ProgramID:            s.ProgramID,
		EnrollmentYear:       s.EnrollmentYear,
		CurrentSemester:      s.CurrentSemester,
		Status:               string(s.Status),
		ClassesAttended:      s.ClassesAttended,
		ClassesMissed:        s.ClassesMissed,
		AttendancePercentage: academic.AttendancePercentage(s.ClassesAttended, s.ClassesMissed),
		CGPA:                 s.CGPA,
	}
	if s.User != nil {
		resp.FirstName = s.User.FirstName
		resp.LastName = s.User.LastName
		resp.Email = s.User.Email
	}
	return resp
}

func enrollmentResponse(e *models.Enrollment) dto.EnrollmentResponse {
	resp := dto.EnrollmentResponse{
		ID:          e.ID,
		StudentID:   e.StudentID,
		CourseID:    e.CourseID,
		Status:      string(e.Status),
		Grade:       e.Grade,
		GradePoints: e.GradePoints,
	}
	if e.Course != nil {
		resp.CourseCode = e.Course.Code
		resp.CourseName = e.Course.Name
	}
	return resp
}

// ListStudents retrieves students with filters
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param departmentId query int false "Filter by department"
// @Param programId query int false "Filter by program"
// @Param status query string false "Filter by status" Enums(ACTIVE, INACTIVE, GRADUATED, SUSPENDED)
// @Param year query int false "Filter by enrollment year"
// @Param search query string false "Search in student ID, name and email"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentListResponse} "Students"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var filters repositories.StudentFilters
	if v := ctx.Query("departmentId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.DepartmentID = &id
		}
	}
	if v := ctx.Query("programId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.ProgramID = &id
		}
	}
	if v := ctx.Query("status"); v != "" {
		status := models.StudentStatus(v)
		filters.Status = &status
	}
	if v := ctx.Query("year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			filters.Year = &year
		}
	}
	filters.Search = ctx.Query("search")

	students, total, err := c.studentService.ListStudents(ctx.Request.Context(), filters, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		responses = append(responses, studentResponse(&students[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.StudentListResponse{
		Students:   responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "Students retrieved"))
}

// GetStudent retrieves one student record. Students may only read their own.
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student record ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentResponse} "Student"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok || !appAuth.CanAccessStudentRecord(actor, student.UserID) {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "You may only view your own student record")))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(studentResponse(student), "Student retrieved"))
}

// GetOwnRecord retrieves the caller's student record
// @Summary Get own student record
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentResponse} "Student"
// @Failure 404 {object} dto.ErrorResponse "No student record for this account"
// @Router /me/student-record [get]
func (c *StudentController) GetOwnRecord(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	student, err := c.studentService.GetStudentByUserID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(studentResponse(student), "Student retrieved"))
}

// UpdateStudent updates a student's academic standing
// @Summary Update a student record
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student record ID"
// @Param request body dto.UpdateStudentRequest true "Editable fields"
// @Success 200 {object} dto.StructuredResponse{data=dto.StudentResponse} "Student updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid student data"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(studentResponse(student), "Student updated"))
}

// Enroll enrolls a student into a course
// @Summary Enroll in a course
// @Description Takes one capacity seat; rejected when the course is full or inactive
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student record ID"
// @Param request body dto.EnrollRequest true "Course to enroll in"
// @Success 201 {object} dto.StructuredResponse{data=dto.EnrollmentResponse} "Enrolled"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled or course full"
// @Router /students/{id}/enrollments [post]
func (c *StudentController) Enroll(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.EnrollRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	enrollment, err := c.studentService.Enroll(ctx.Request.Context(), actor, id, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(enrollmentResponse(enrollment), "Enrolled"))
}

// Drop drops an active enrollment
// @Summary Drop a course
// @Description Releases the capacity seat and marks the enrollment DROPPED
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student record ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.StructuredResponse "Dropped"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Enrollment is not active"
// @Router /students/{id}/enrollments/{courseId} [delete]
func (c *StudentController) Drop(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	if err := c.studentService.Drop(ctx.Request.Context(), actor, id, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Course dropped"))
}

// CompleteEnrollment finishes an enrollment with a final grade
// @Summary Complete an enrollment
// @Description Records the final grade and recomputes the student's CGPA
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student record ID"
// @Param courseId path int true "Course ID"
// @Param request body dto.CompleteEnrollmentRequest true "Final grade"
// @Success 200 {object} dto.StructuredResponse{data=dto.EnrollmentResponse} "Enrollment completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid grade data"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /students/{id}/enrollments/{courseId}/complete [put]
func (c *StudentController) CompleteEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	var req dto.CompleteEnrollmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	enrollment, err := c.studentService.CompleteEnrollment(ctx.Request.Context(), id, courseID, req.Grade, req.GradePoints)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(enrollmentResponse(enrollment), "Enrollment completed"))
}

// ListEnrollments retrieves a student's enrollments
// @Summary List a student's enrollments
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student record ID"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.EnrollmentResponse} "Enrollments"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/enrollments [get]
func (c *StudentController) ListEnrollments(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok || !appAuth.CanAccessStudentRecord(actor, student.UserID) {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "You may only view your own enrollments")))
		return
	}

	enrollments, err := c.studentService.ListEnrollments(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		responses = append(responses, enrollmentResponse(&enrollments[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(responses, "Enrollments retrieved"))
}
