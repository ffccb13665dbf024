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

// ForumController handles discussion topics and replies
type ForumController struct {
	forumService *services.ForumService
}

// NewForumController creates a new ForumController
func NewForumController(forumService *services.ForumService) *ForumController {
	return &ForumController{forumService: forumService}
}

func topicResponse(topic *models.ForumTopic) dto.TopicResponse {
	resp := dto.TopicResponse{
		ID:         topic.ID,
		Title:      topic.Title,
		Content:    topic.Content,
		Category:   topic.Category,
		CourseID:   topic.CourseID,
		IsPinned:   topic.IsPinned,
		IsLocked:   topic.IsLocked,
		ViewCount:  topic.ViewCount,
		ReplyCount: topic.ReplyCount,
		CreatedBy:  topic.CreatedBy,
		CreatedAt:  topic.CreatedAt,
	}
	if topic.Author != nil {
		resp.AuthorName = topic.Author.FirstName + " " + topic.Author.LastName
	}
	for i := range topic.Replies {
		resp.Replies = append(resp.Replies, replyResponse(&topic.Replies[i]))
	}
	return resp
}

func replyResponse(reply *models.ForumReply) dto.ReplyResponse {
	resp := dto.ReplyResponse{
		ID:        reply.ID,
		TopicID:   reply.TopicID,
		Content:   reply.Content,
		CreatedBy: reply.CreatedBy,
		CreatedAt: reply.CreatedAt,
	}
	if reply.Author != nil {
		resp.AuthorName = reply.Author.FirstName + " " + reply.Author.LastName
	}
	return resp
}

// CreateTopic starts a discussion topic
// @Summary Create a forum topic
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTopicRequest true "Topic data"
// @Success 201 {object} dto.StructuredResponse{data=dto.TopicResponse} "Topic created"
// @Failure 404 {object} dto.ErrorResponse "Linked course not found"
// @Router /forum/topics [post]
func (c *ForumController) CreateTopic(ctx *gin.Context) {
	var req dto.CreateTopicRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	topic, err := c.forumService.CreateTopic(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(topicResponse(topic), "Topic created"))
}

// ListTopics retrieves discussion topics, pinned first
// @Summary List forum topics
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param courseId query int false "Filter by linked course"
// @Param search query string false "Search in title and content"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.TopicListResponse} "Topics"
// @Router /forum/topics [get]
func (c *ForumController) ListTopics(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var filters repositories.TopicFilters
	if v := ctx.Query("category"); v != "" {
		filters.Category = &v
	}
	if v := ctx.Query("courseId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filters.CourseID = &id
		}
	}
	filters.Search = ctx.Query("search")

	topics, total, err := c.forumService.ListTopics(ctx.Request.Context(), filters, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.TopicResponse, 0, len(topics))
	for i := range topics {
		responses = append(responses, topicResponse(&topics[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.TopicListResponse{
		Topics:     responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "Topics retrieved"))
}

// GetTopic retrieves one topic and counts the view
// @Summary Get forum topic by ID
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.TopicResponse} "Topic"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /forum/topics/{id} [get]
func (c *ForumController) GetTopic(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	topic, err := c.forumService.GetTopic(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(topicResponse(topic), "Topic retrieved"))
}

// UpdateTopic edits a topic. Authors and administrators only.
// @Summary Update a forum topic
// @Description Locked topics can only be edited by administrators
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param request body dto.UpdateTopicRequest true "Topic data"
// @Success 200 {object} dto.StructuredResponse{data=dto.TopicResponse} "Topic updated"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /forum/topics/{id} [put]
func (c *ForumController) UpdateTopic(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTopicRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	topic, err := c.forumService.UpdateTopic(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(topicResponse(topic), "Topic updated"))
}

// ModerateTopic pins or locks a topic. Administrators only.
// @Summary Moderate a forum topic
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param request body dto.ModerateTopicRequest true "Pin and lock flags"
// @Success 200 {object} dto.StructuredResponse{data=dto.TopicResponse} "Topic moderated"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /forum/topics/{id}/moderate [put]
func (c *ForumController) ModerateTopic(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ModerateTopicRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	topic, err := c.forumService.ModerateTopic(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(topicResponse(topic), "Topic moderated"))
}

// DeleteTopic removes a topic with its replies. Authors and administrators only.
// @Summary Delete a forum topic
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} dto.StructuredResponse "Topic deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /forum/topics/{id} [delete]
func (c *ForumController) DeleteTopic(ctx *gin.Context) {
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

	if err := c.forumService.DeleteTopic(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Topic deleted"))
}

// CreateReply posts a reply to a topic
// @Summary Reply to a forum topic
// @Description Rejected when the topic is locked
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param request body dto.CreateReplyRequest true "Reply content"
// @Success 201 {object} dto.StructuredResponse{data=dto.ReplyResponse} "Reply posted"
// @Failure 400 {object} dto.ErrorResponse "Topic is locked"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /forum/topics/{id}/replies [post]
func (c *ForumController) CreateReply(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateReplyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	reply, err := c.forumService.CreateReply(ctx.Request.Context(), id, &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(replyResponse(reply), "Reply posted"))
}

// ListReplies retrieves a topic's replies in posting order
// @Summary List replies to a forum topic
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.StructuredResponse{data=dto.PaginatedResponse} "Replies"
// @Failure 404 {object} dto.ErrorResponse "Topic not found"
// @Router /forum/topics/{id}/replies [get]
func (c *ForumController) ListReplies(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	replies, total, err := c.forumService.ListReplies(ctx.Request.Context(), id, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ReplyResponse, 0, len(replies))
	for i := range replies {
		responses = append(responses, replyResponse(&replies[i]))
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.PaginatedResponse{
		Items:      responses,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, "Replies retrieved"))
}

// UpdateReply edits a reply. Authors and administrators only.
// @Summary Update a forum reply
// @Tags forum
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param replyId path int true "Reply ID"
// @Param request body dto.UpdateReplyRequest true "Reply content"
// @Success 200 {object} dto.StructuredResponse{data=dto.ReplyResponse} "Reply updated"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Reply not found"
// @Router /forum/replies/{replyId} [put]
func (c *ForumController) UpdateReply(ctx *gin.Context) {
	replyID, ok := parseIDParam(ctx, "replyId")
	if !ok {
		return
	}

	var req dto.UpdateReplyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	reply, err := c.forumService.UpdateReply(ctx.Request.Context(), actor, replyID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(replyResponse(reply), "Reply updated"))
}

// DeleteReply removes a reply. Authors and administrators only.
// @Summary Delete a forum reply
// @Tags forum
// @Produce json
// @Security BearerAuth
// @Param replyId path int true "Reply ID"
// @Success 200 {object} dto.StructuredResponse "Reply deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Reply not found"
// @Router /forum/replies/{replyId} [delete]
func (c *ForumController) DeleteReply(ctx *gin.Context) {
	replyID, ok := parseIDParam(ctx, "replyId")
	if !ok {
		return
	}

	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	if err := c.forumService.DeleteReply(ctx.Request.Context(), actor, replyID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(nil, "Reply deleted"))
}
