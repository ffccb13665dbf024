package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/services"
	"github.com/campushub/campushub/internal/middleware"
	"github.com/campushub/campushub/internal/pkg/helpers"
)

// AnnouncementController handles campus announcements
type AnnouncementController struct {
	announcementService *services.AnnouncementService
}

// NewAnnouncementController creates a new AnnouncementController
func NewAnnouncementController(announcementService *services.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{announcementService: announcementService}
}

func announcementResponse(a *models.Announcement) dto.AnnouncementResponse {
	resp := dto.AnnouncementResponse{
		ID:            a.ID,
		Title:         a.Title,
		Content:       a.Content,
		Priority:      string(a.Priority),
		Audience:      string(a.Audience),
		AttachmentURL: a.AttachmentURL,
		IsPublished:   a.IsPublished,
		ExpiresAt:     a.ExpiresAt,
		CreatedBy:     a.CreatedBy,
		CreatedAt:     a.CreatedAt,
	}
	if a.Author != nil {
		resp.AuthorName = a.Author.FirstName + " " + a.Author.LastName
	}
	return resp
}

// CreateAnnouncement publishes an announcement
// @Summary Create an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAnnouncementRequest true "Announcement data"
// @Success 201 {object} dto.StructuredResponse{data=dto.AnnouncementResponse} "Announcement created"
// @Failure 400 {object} dto.ErrorResponse "Invalid announcement data"
// @Router /announcements [post]
func (c *AnnouncementController) CreateAnnouncement(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	announcement, err := c.announcementService.CreateAnnouncement(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(announcementResponse(announcement), "Announcement created"))
}

// ListAnnouncements retrieves announcements visible to the caller
// @Summary List announcements
// @Description Students and faculty see published, unexpired announcements for their audience; administrators see everything
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param priority query string false "Filter by priority" Enums(LOW, NORMAL, HIGH, URGENT)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.AnnouncementListResponse} "Announcements"
// @Router /announcements [get]
func (c *AnnouncementController) ListAnnouncements(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	priority := models.AnnouncementPriority(ctx.Query("priority"))

	announcements, total, err := c.announcementService.ListAnnouncements(ctx.Request.Context(), actor.Role, priority, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		responses = append(responses, announcementResponse(&announcements[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.AnnouncementListResponse{
		Announcements: responses,
		Pagination:    helpers.NewPaginationInfo(total, page, size),
	}, "Announcements retrieved"))
}

// GetAnnouncement retrieves one announcement
// @Summary Get announcement by ID
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.AnnouncementResponse} "Announcement"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [get]
func (c *AnnouncementController) GetAnnouncement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	announcement, err := c.announcementService.GetAnnouncementByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(announcementResponse(announcement), "Announcement retrieved"))
}

// UpdateAnnouncement edits an announcement. Authors and administrators only.
// @Summary Update an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Param request body dto.UpdateAnnouncementRequest true "Announcement data"
// @Success 200 {object} dto.StructuredResponse{data=dto.AnnouncementResponse} "Announcement updated"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [put]
func (c *AnnouncementController) UpdateAnnouncement(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	announcement, err := c.announcementService.UpdateAnnouncement(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(announcementResponse(announcement), "Announcement updated"))
}

// DeleteAnnouncement removes an announcement. Authors and administrators only.
// @Summary Delete an announcement
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} dto.StructuredResponse "Announcement deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Announcement not found"
// @Router /announcements/{id} [delete]
func (c *AnnouncementController) DeleteAnnouncement(ctx *gin.Context) {
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

	if err := c.announcementService.DeleteAnnouncement(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Announcement deleted"))
}
