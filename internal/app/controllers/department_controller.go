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

// DepartmentController handles departments and degree programs
type DepartmentController struct {
	departmentService *services.DepartmentService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService *services.DepartmentService) *DepartmentController {
	return &DepartmentController{departmentService: departmentService}
}

// CreateDepartment handles department creation
// @Summary Create a department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDepartmentRequest true "Department information"
// @Success 201 {object} dto.StructuredResponse{data=models.Department} "Department created"
// @Failure 400 {object} dto.ErrorResponse "Invalid department data"
// @Failure 409 {object} dto.ErrorResponse "Name or code already in use"
// @Router /departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	department := &models.Department{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		HeadUserID:  req.HeadUserID,
	}
	if err := c.departmentService.CreateDepartment(ctx.Request.Context(), department); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(department, "Department created"))
}

// GetDepartment retrieves a department by ID
// @Summary Get department by ID
// @Tags departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} dto.StructuredResponse{data=models.Department} "Department"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id} [get]
func (c *DepartmentController) GetDepartment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	department, err := c.departmentService.GetDepartmentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(department, "Department retrieved"))
}

// ListDepartments retrieves all departments
// @Summary List departments
// @Tags departments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Departments"
// @Router /departments [get]
func (c *DepartmentController) ListDepartments(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	departments, total, err := c.departmentService.ListDepartments(ctx.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      departments,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "Departments retrieved"))
}

// UpdateDepartment updates a department
// @Summary Update a department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param request body dto.UpdateDepartmentRequest true "Department information"
// @Success 200 {object} dto.StructuredResponse{data=models.Department} "Department updated"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Name or code already in use"
// @Router /departments/{id} [put]
func (c *DepartmentController) UpdateDepartment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	department := &models.Department{
		ID:          id,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		HeadUserID:  req.HeadUserID,
	}
	if err := c.departmentService.UpdateDepartment(ctx.Request.Context(), department); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(department, "Department updated"))
}

// DeleteDepartment removes a department
// @Summary Delete a department
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} dto.StructuredResponse "Department deleted"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Department has related records"
// @Router /departments/{id} [delete]
func (c *DepartmentController) DeleteDepartment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.departmentService.DeleteDepartment(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Department deleted"))
}

// CreateProgram handles degree program creation
// @Summary Create a program
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProgramRequest true "Program information"
// @Success 201 {object} dto.StructuredResponse{data=models.Program} "Program created"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Program code already in use"
// @Router /programs [post]
func (c *DepartmentController) CreateProgram(ctx *gin.Context) {
	var req dto.CreateProgramRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	program := &models.Program{
		DepartmentID:  req.DepartmentID,
		Name:          req.Name,
		Code:          req.Code,
		DurationYears: req.DurationYears,
		TotalCredits:  req.TotalCredits,
	}
	if err := c.departmentService.CreateProgram(ctx.Request.Context(), program); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(program, "Program created"))
}

// GetProgram retrieves a program by ID
// @Summary Get program by ID
// @Tags programs
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.StructuredResponse{data=models.Program} "Program"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{id} [get]
func (c *DepartmentController) GetProgram(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	program, err := c.departmentService.GetProgramByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(program, "Program retrieved"))
}

// ListPrograms retrieves programs, optionally scoped to a department
// @Summary List programs
// @Tags programs
// @Produce json
// @Param departmentId query int false "Filter by department"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Programs"
// @Router /programs [get]
func (c *DepartmentController) ListPrograms(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var departmentID *int64
	if deptStr := ctx.Query("departmentId"); deptStr != "" {
		id, err := strconv.ParseInt(deptStr, 10, 64)
		if err != nil || id <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "departmentId must be a positive number")))
			return
		}
		departmentID = &id
	}

	programs, total, err := c.departmentService.ListPrograms(ctx.Request.Context(), departmentID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      programs,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "Programs retrieved"))
}

// UpdateProgram updates a program. The code stays fixed once issued.
// @Summary Update a program
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Param request body dto.UpdateProgramRequest true "Program information"
// @Success 200 {object} dto.StructuredResponse{data=models.Program} "Program updated"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Router /programs/{id} [put]
func (c *DepartmentController) UpdateProgram(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateProgramRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	program := &models.Program{
		ID:            id,
		Name:          req.Name,
		DurationYears: req.DurationYears,
		TotalCredits:  req.TotalCredits,
	}
	if err := c.departmentService.UpdateProgram(ctx.Request.Context(), program); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(program, "Program updated"))
}

// DeleteProgram removes a program
// @Summary Delete a program
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.StructuredResponse "Program deleted"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Program has related records"
// @Router /programs/{id} [delete]
func (c *DepartmentController) DeleteProgram(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.departmentService.DeleteProgram(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Program deleted"))
}
