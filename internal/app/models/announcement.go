package models

import "time"

// AnnouncementPriority orders announcements in listings
type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "LOW"
	PriorityNormal AnnouncementPriority = "NORMAL"
	PriorityHigh   AnnouncementPriority = "HIGH"
	PriorityUrgent AnnouncementPriority = "URGENT"
)

// AnnouncementAudience scopes who sees an announcement
type AnnouncementAudience string

const (
	AudienceAll      AnnouncementAudience = "ALL"
	AudienceStudents AnnouncementAudience = "STUDENTS"
	AudienceFaculty  AnnouncementAudience = "FACULTY"
)

// Announcement is a broadcast message. Only the creator or an admin may
// modify or delete it. ExpiresAt hides it from listings once passed.
type Announcement struct {
	ID            int64                `json:"id" db:"id"`
	Title         string               `json:"title" db:"title"`
	Content       string               `json:"content" db:"content"`
	Priority      AnnouncementPriority `json:"priority" db:"priority"`
	Audience      AnnouncementAudience `json:"audience" db:"audience"`
	AttachmentURL *string              `json:"attachmentUrl,omitempty" db:"attachment_url"`
	IsPublished   bool                 `json:"isPublished" db:"is_published"`
	ExpiresAt     *time.Time           `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedBy     int64                `json:"createdBy" db:"created_by"`
	CreatedAt     time.Time            `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time            `json:"updatedAt" db:"updated_at"`

	Author *User `json:"author,omitempty"`
}
