package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/pkg/helpers"
)

// FacultyController handles faculty profiles
type FacultyController struct {
	facultyService *services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService *services.FacultyService) *FacultyController {
	return &FacultyController{facultyService: facultyService}
}

func facultyResponse(f *models.FacultyProfile) dto.FacultyResponse {
	resp := dto.FacultyResponse{
		ID:            f.ID,
		FacultyID:     f.FacultyID,
		UserID:        f.UserID,
		DepartmentID:  f.DepartmentID,
		Designation:   f.Designation,
		Qualification: f.Qualification,
		JoiningDate:   f.JoiningDate.Format("2006-01-02"),
	}
	if f.User != nil {
		resp.FirstName = f.User.FirstName
		resp.LastName = f.User.LastName
		resp.Email = f.User.Email
	}
	return resp
}

// ListFaculty retrieves faculty members
// @Summary List faculty members
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param departmentId query int false "Filter by department"
// @Param search query string false "Search in faculty ID, name and email"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.FacultyListResponse} "Faculty members"
// @Router /faculty [get]
func (c *FacultyController) ListFaculty(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var departmentID *int64
	if v := ctx.Query("departmentId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			departmentID = &id
		}
	}

	faculty, total, err := c.facultyService.ListFaculty(ctx.Request.Context(), departmentID, ctx.Query("search"), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.FacultyResponse, 0, len(faculty))
	for i := range faculty {
		responses = append(responses, facultyResponse(&faculty[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FacultyListResponse{
		Faculty:    responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "Faculty retrieved"))
}

// GetFaculty retrieves one faculty profile
// @Summary Get faculty member by ID
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty profile ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.FacultyResponse} "Faculty member"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Router /faculty/{id} [get]
func (c *FacultyController) GetFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	faculty, err := c.facultyService.GetFacultyByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(facultyResponse(faculty), "Faculty member retrieved"))
}

// UpdateFaculty updates a faculty profile
// @Summary Update a faculty member
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty profile ID"
// @Param request body dto.UpdateFacultyRequest true "Editable fields"
// @Success 200 {object} dto.StructuredResponse{data=dto.FacultyResponse} "Faculty member updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty data"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Router /faculty/{id} [put]
func (c *FacultyController) UpdateFaculty(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateFacultyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	faculty, err := c.facultyService.UpdateFaculty(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(facultyResponse(faculty), "Faculty member updated"))
}

// ListAssignedCourses retrieves the courses taught by a faculty member
// @Summary List courses assigned to a faculty member
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path int true "Faculty profile ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Assigned courses"
// @Failure 404 {object} dto.ErrorResponse "Faculty member not found"
// @Router /faculty/{id}/courses [get]
func (c *FacultyController) ListAssignedCourses(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	faculty, err := c.facultyService.GetFacultyByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	courses, total, err := c.facultyService.ListAssignedCourses(ctx.Request.Context(), faculty.UserID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      courses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "Assigned courses retrieved"))
}
