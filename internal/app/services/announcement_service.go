package services

import (
	"context"
	"fmt"
	"time"

	authz "github.com/campushub/campushub/internal/app/auth"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// AnnouncementService handles campus-wide broadcast messages
type AnnouncementService struct {
	announcementRepo *repositories.AnnouncementRepository
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(announcementRepo *repositories.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{announcementRepo: announcementRepo}
}

func (s *AnnouncementService) validateAnnouncement(title string, priority models.AnnouncementPriority, audience models.AnnouncementAudience, expiresAt *time.Time) error {
	if len(title) < 2 {
		return fmt.Errorf("%w: title must be at least 2 characters", apperrors.ErrValidationFailed)
	}
	switch priority {
	case models.PriorityLow, models.PriorityNormal, models.PriorityHigh, models.PriorityUrgent:
	default:
		return fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidationFailed, priority)
	}
	switch audience {
	case models.AudienceAll, models.AudienceStudents, models.AudienceFaculty:
	default:
		return fmt.Errorf("%w: unknown audience %q", apperrors.ErrValidationFailed, audience)
	}
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		return fmt.Errorf("%w: expiry must be in the future", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateAnnouncement publishes a new announcement authored by the caller
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, req *dto.CreateAnnouncementRequest, createdBy int64) (*models.Announcement, error) {
	announcement := &models.Announcement{
		Title:       req.Title,
		Content:     req.Content,
		Priority:    req.Priority,
		Audience:    req.Audience,
		ExpiresAt:   req.ExpiresAt,
		IsPublished: true,
		CreatedBy:   createdBy,
	}
	if announcement.Priority == "" {
		announcement.Priority = models.PriorityNormal
	}
	if announcement.Audience == "" {
		announcement.Audience = models.AudienceAll
	}

	if err := s.validateAnnouncement(announcement.Title, announcement.Priority, announcement.Audience, announcement.ExpiresAt); err != nil {
		return nil, err
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, err
	}
	return s.announcementRepo.GetByID(ctx, announcement.ID)
}

// GetAnnouncementByID retrieves one announcement with its author
func (s *AnnouncementService) GetAnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error) {
	return s.announcementRepo.GetByID(ctx, id)
}

// ListAnnouncements retrieves announcements visible to the given role.
// Administrative callers see everything, including expired entries.
func (s *AnnouncementService) ListAnnouncements(ctx context.Context, role models.RoleType, priority models.AnnouncementPriority, offset uint64, limit int) ([]models.Announcement, int64, error) {
	filters := repositories.AnnouncementFilters{
		PublishedOnly: true,
	}
	if priority != "" {
		filters.Priority = &priority
	}
	switch role {
	case models.RoleStudent:
		audience := models.AudienceStudents
		filters.Audience = &audience
	case models.RoleFaculty:
		audience := models.AudienceFaculty
		filters.Audience = &audience
	default:
		filters.PublishedOnly = false
		filters.IncludeExpired = true
	}
	return s.announcementRepo.List(ctx, filters, offset, limit)
}

// UpdateAnnouncement edits an announcement. Only the author or an
// administrator may do so.
func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, actor authz.Actor, id int64, req *dto.UpdateAnnouncementRequest) (*models.Announcement, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionModifyAnnouncement, announcement.CreatedBy); err != nil {
		return nil, apperrors.ErrPermissionDenied
	}

	announcement.Title = req.Title
	announcement.Content = req.Content
	if req.Priority != "" {
		announcement.Priority = req.Priority
	}
	if req.Audience != "" {
		announcement.Audience = req.Audience
	}
	if req.IsPublished != nil {
		announcement.IsPublished = *req.IsPublished
	}
	announcement.ExpiresAt = req.ExpiresAt

	if err := s.validateAnnouncement(announcement.Title, announcement.Priority, announcement.Audience, nil); err != nil {
		return nil, err
	}
	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		return nil, err
	}
	return s.announcementRepo.GetByID(ctx, id)
}

// DeleteAnnouncement removes an announcement. Only the author or an
// administrator may do so.
func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, actor authz.Actor, id int64) error {
	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionModifyAnnouncement, announcement.CreatedBy); err != nil {
		return apperrors.ErrPermissionDenied
	}
	return s.announcementRepo.Delete(ctx, id)
}
