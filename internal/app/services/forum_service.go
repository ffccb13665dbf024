package services

import (
	"context"
	"fmt"

	authz "github.com/campushub/campushub/internal/app/auth"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/db"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// ForumService handles discussion topics and replies. Reply writes move
// the topic's reply counter inside the same transaction.
type ForumService struct {
	db         *db.PostgresDB
	forumRepo  *repositories.ForumRepository
	courseRepo *repositories.CourseRepository
}

// NewForumService creates a new ForumService
func NewForumService(database *db.PostgresDB, forumRepo *repositories.ForumRepository, courseRepo *repositories.CourseRepository) *ForumService {
	return &ForumService{
		db:         database,
		forumRepo:  forumRepo,
		courseRepo: courseRepo,
	}
}

// CreateTopic opens a new discussion thread
func (s *ForumService) CreateTopic(ctx context.Context, req *dto.CreateTopicRequest, createdBy int64) (*models.ForumTopic, error) {
	if len(req.Title) < 2 {
		return nil, fmt.Errorf("%w: title must be at least 2 characters", apperrors.ErrValidationFailed)
	}
	if req.CourseID != nil {
		if _, err := s.courseRepo.GetByID(ctx, *req.CourseID); err != nil {
			return nil, err
		}
	}

	topic := &models.ForumTopic{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		CourseID:  req.CourseID,
		CreatedBy: createdBy,
	}
	if err := s.forumRepo.CreateTopic(ctx, topic); err != nil {
		return nil, err
	}
	return s.forumRepo.GetTopicByID(ctx, topic.ID)
}

// GetTopic retrieves a topic and bumps its view counter
func (s *ForumService) GetTopic(ctx context.Context, id int64) (*models.ForumTopic, error) {
	topic, err := s.forumRepo.GetTopicByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.forumRepo.IncrementViewCount(ctx, id); err != nil {
		logger.Warn().Err(err).Int64("topic_id", id).Msg("Failed to bump topic view count")
	} else {
		topic.ViewCount++
	}
	return topic, nil
}

// ListTopics retrieves topics, pinned first
func (s *ForumService) ListTopics(ctx context.Context, filters repositories.TopicFilters, offset uint64, limit int) ([]models.ForumTopic, int64, error) {
	return s.forumRepo.ListTopics(ctx, filters, offset, limit)
}

// UpdateTopic edits a topic's title, content or category. Only the
// author or an administrator may do so, and locked topics stay frozen
// for non-administrators.
func (s *ForumService) UpdateTopic(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateTopicRequest) (*models.ForumTopic, error) {
	topic, err := s.forumRepo.GetTopicByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionModifyForumPost, topic.CreatedBy); err != nil {
		return nil, apperrors.ErrPermissionDenied
	}
	if topic.IsLocked && !actor.Role.IsAdministrative() {
		return nil, apperrors.ErrTopicLocked
	}
	if len(req.Title) < 2 {
		return nil, fmt.Errorf("%w: title must be at least 2 characters", apperrors.ErrValidationFailed)
	}

	topic.Title = req.Title
	topic.Content = req.Content
	topic.Category = req.Category
	if err := s.forumRepo.UpdateTopic(ctx, topic); err != nil {
		return nil, err
	}
	return s.forumRepo.GetTopicByID(ctx, id)
}

// ModerateTopic pins or locks a topic
func (s *ForumService) ModerateTopic(ctx context.Context, actor authz.Actor, id int64, req *dto.ModerateTopicRequest) (*models.ForumTopic, error) {
	if err := authz.Authorize(actor, authz.ActionModerateForum, 0); err != nil {
		return nil, apperrors.ErrPermissionDenied
	}

	topic, err := s.forumRepo.GetTopicByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pinned := topic.IsPinned
	locked := topic.IsLocked
	if req.IsPinned != nil {
		pinned = *req.IsPinned
	}
	if req.IsLocked != nil {
		locked = *req.IsLocked
	}
	if err := s.forumRepo.SetTopicFlags(ctx, id, pinned, locked); err != nil {
		return nil, err
	}
	return s.forumRepo.GetTopicByID(ctx, id)
}

// DeleteTopic removes a topic and its replies. Only the author or an
// administrator may do so.
func (s *ForumService) DeleteTopic(ctx context.Context, actor authz.Actor, id int64) error {
	topic, err := s.forumRepo.GetTopicByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionModifyForumPost, topic.CreatedBy); err != nil {
		return apperrors.ErrPermissionDenied
	}
	return s.forumRepo.DeleteTopic(ctx, id)
}

// CreateReply posts a reply to an open topic
func (s *ForumService) CreateReply(ctx context.Context, topicID int64, req *dto.CreateReplyRequest, createdBy int64) (*models.ForumReply, error) {
	topic, err := s.forumRepo.GetTopicByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if topic.IsLocked {
		return nil, apperrors.ErrTopicLocked
	}

	reply := &models.ForumReply{
		TopicID:   topicID,
		Content:   req.Content,
		CreatedBy: createdBy,
	}
	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.forumRepo.CreateReply(ctx, tx, reply)
	})
	if err != nil {
		return nil, err
	}
	return s.forumRepo.GetReplyByID(ctx, reply.ID)
}

// ListReplies retrieves a topic's replies, oldest first
func (s *ForumService) ListReplies(ctx context.Context, topicID int64, offset uint64, limit int) ([]models.ForumReply, int64, error) {
	if _, err := s.forumRepo.GetTopicByID(ctx, topicID); err != nil {
		return nil, 0, err
	}
	return s.forumRepo.ListReplies(ctx, topicID, offset, limit)
}

// UpdateReply edits a reply. Only the author or an administrator may do so.
func (s *ForumService) UpdateReply(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateReplyRequest) (*models.ForumReply, error) {
	reply, err := s.forumRepo.GetReplyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionModifyForumPost, reply.CreatedBy); err != nil {
		return nil, apperrors.ErrPermissionDenied
	}

	reply.Content = req.Content
	if err := s.forumRepo.UpdateReply(ctx, reply); err != nil {
		return nil, err
	}
	return s.forumRepo.GetReplyByID(ctx, id)
}

// DeleteReply removes a reply and decrements the topic's reply counter
func (s *ForumService) DeleteReply(ctx context.Context, actor authz.Actor, id int64) error {
	reply, err := s.forumRepo.GetReplyByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionModifyForumPost, reply.CreatedBy); err != nil {
		return apperrors.ErrPermissionDenied
	}
	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.forumRepo.DeleteReply(ctx, tx, reply)
	})
}
