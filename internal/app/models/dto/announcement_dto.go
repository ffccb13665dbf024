package dto

import (
	"time"

	"github.com/campushub/campushub/internal/app/models"
)

// CreateAnnouncementRequest represents announcement creation data
type CreateAnnouncementRequest struct {
	Title     string                      `json:"title" binding:"required,min=2,max=200"`
	Content   string                      `json:"content" binding:"required"`
	Priority  models.AnnouncementPriority `json:"priority" binding:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	Audience  models.AnnouncementAudience `json:"audience" binding:"omitempty,oneof=ALL STUDENTS FACULTY"`
	ExpiresAt *time.Time                  `json:"expiresAt,omitempty"`
}

// UpdateAnnouncementRequest represents announcement update data
type UpdateAnnouncementRequest struct {
	Title       string                      `json:"title" binding:"required,min=2,max=200"`
	Content     string                      `json:"content" binding:"required"`
	Priority    models.AnnouncementPriority `json:"priority" binding:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	Audience    models.AnnouncementAudience `json:"audience" binding:"omitempty,oneof=ALL STUDENTS FACULTY"`
	IsPublished *bool                       `json:"isPublished,omitempty"`
	ExpiresAt   *time.Time                  `json:"expiresAt,omitempty"`
}

// AnnouncementResponse represents one announcement
type AnnouncementResponse struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Priority      string     `json:"priority"`
	Audience      string     `json:"audience"`
	AttachmentURL *string    `json:"attachmentUrl,omitempty"`
	IsPublished   bool       `json:"isPublished"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	CreatedBy     int64      `json:"createdBy"`
	AuthorName    string     `json:"authorName,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// AnnouncementListResponse represents a paginated list of announcements
type AnnouncementListResponse struct {
	Announcements []AnnouncementResponse `json:"announcements"`
	Pagination    PaginationInfo         `json:"pagination"`
}
