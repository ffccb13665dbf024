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

// UserController handles account administration, admin only
type UserController struct {
	userService *services.UserService
	authService *services.AuthService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, authService *services.AuthService) *UserController {
	return &UserController{userService: userService, authService: authService}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// ListUsers retrieves users with optional role and search filters
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role" Enums(STUDENT, FACULTY, ADMIN, SUPERADMIN)
// @Param search query string false "Search in name and email"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.UserListResponse} "Users"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var role *models.RoleType
	if roleStr := ctx.Query("role"); roleStr != "" {
		r := models.RoleType(roleStr)
		role = &r
	}

	users, total, err := c.userService.ListUsers(ctx.Request.Context(), role, ctx.Query("search"), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.FromUser(&users[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.UserListResponse{
		Users:      responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "Users retrieved"))
}

// GetUser retrieves one user by ID
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.UserResponse} "User"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetUserByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromUser(user), "User retrieved"))
}

// CreateUser creates an account on behalf of a user
// @Summary Create a user account
// @Description Runs the same flow as self-registration, including the role profile and verification email
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.StructuredResponse{data=dto.UserResponse} "User created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromUser(user), "User created"))
}

// DeleteUser permanently removes an account
// @Summary Delete a user
// @Description The 1:1 student or faculty profile is deleted with the account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.StructuredResponse "User deleted"
// @Failure 403 {object} dto.ErrorResponse "Protected account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "User has authored records"
// @Router /users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	actorID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	if err := c.userService.DeleteUser(ctx.Request.Context(), actorID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "User deleted"))
}

// SetUserRole changes a user's role
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRoleRequest true "New role"
// @Success 200 {object} dto.StructuredResponse "Role updated"
// @Failure 403 {object} dto.ErrorResponse "Superadmin role cannot be changed"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/role [put]
func (c *UserController) SetUserRole(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.userService.SetUserRole(ctx.Request.Context(), id, req.Role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Role updated"))
}

// SetUserStatus activates or deactivates an account
// @Summary Activate or deactivate an account
// @Description Deactivation revokes all of the user's refresh tokens
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserStatusRequest true "Desired status"
// @Success 200 {object} dto.StructuredResponse "Status updated"
// @Failure 403 {object} dto.ErrorResponse "Superadmin cannot be deactivated"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/status [put]
func (c *UserController) SetUserStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.userService.SetUserActive(ctx.Request.Context(), id, req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Status updated"))
}
