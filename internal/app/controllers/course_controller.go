package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/pkg/helpers"
)

// CourseController handles the course catalog
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

func courseResponse(course *models.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:            course.ID,
		DepartmentID:  course.DepartmentID,
		FacultyUserID: course.FacultyUserID,
		Code:          course.Code,
		Name:          course.Name,
		Description:   course.Description,
		Credits:       course.Credits,
		Semester:      course.Semester,
		Capacity:      course.Capacity,
		EnrolledCount: course.EnrolledCount,
		IsActive:      course.IsActive,
	}
}

// CreateCourse adds a course to the catalog
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.StructuredResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid course data"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(courseResponse(course), "Course created"))
}

// ListCourses retrieves the course catalog
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param departmentId query int false "Filter by department"
// @Param facultyUserId query int false "Filter by assigned faculty user"
// @Param semester query int false "Filter by semester"
// @Param activeOnly query bool false "Only active courses"
// @Param search query string false "Search in code and name"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.CourseListResponse} "Courses"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var filters repositories.CourseFilters
	if v := ctx.Query("departmentId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.DepartmentID = &id
		}
	}
	if v := ctx.Query("facultyUserId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.FacultyUserID = &id
		}
	}
	if v := ctx.Query("semester"); v != "" {
		if semester, err := strconv.Atoi(v); err == nil {
			filters.Semester = &semester
		}
	}
	filters.ActiveOnly = ctx.Query("activeOnly") == "true"
	filters.Search = ctx.Query("search")

	courses, total, err := c.courseService.ListCourses(ctx.Request.Context(), filters, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, courseResponse(&courses[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.CourseListResponse{
		Courses:    responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "Courses retrieved"))
}

// GetCourse retrieves one course
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.CourseResponse} "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(courseResponse(course), "Course retrieved"))
}

// UpdateCourse updates a course. The code stays fixed once issued.
// @Summary Update a course
// @Description Capacity cannot be reduced below the current enrolled count
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course data"
// @Success 200 {object} dto.StructuredResponse{data=dto.CourseResponse} "Course updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid course data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(courseResponse(course), "Course updated"))
}

// DeleteCourse removes a course
// @Summary Delete a course
// @Description Fails while students are still enrolled
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.StructuredResponse "Course deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course still has enrolled students"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Course deleted"))
}

// GetSyllabus retrieves a course's syllabus
// @Summary Get course syllabus
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.SyllabusResponse} "Syllabus"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/syllabus [get]
func (c *CourseController) GetSyllabus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetSyllabus(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.SyllabusResponse{
		CourseID: course.ID,
		Code:     course.Code,
		Name:     course.Name,
		Syllabus: course.Syllabus,
	}, "Syllabus retrieved"))
}

// UpdateSyllabus replaces a course's syllabus
// @Summary Update course syllabus
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateSyllabusRequest true "Syllabus text, null to clear"
// @Success 200 {object} dto.StructuredResponse{data=dto.SyllabusResponse} "Syllabus updated"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/syllabus [put]
func (c *CourseController) UpdateSyllabus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSyllabusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.UpdateSyllabus(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.SyllabusResponse{
		CourseID: course.ID,
		Code:     course.Code,
		Name:     course.Name,
		Syllabus: course.Syllabus,
	}, "Syllabus updated"))
}

// ListRoster retrieves the IDs of students enrolled in a course
// @Summary Get course roster
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.StructuredResponse{data=[]int64} "Enrolled student IDs"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/roster [get]
func (c *CourseController) ListRoster(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	studentIDs, err := c.courseService.ListRoster(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(studentIDs, "Roster retrieved"))
}
