package dto

import "time"

// CreateTopicRequest represents forum topic creation data
type CreateTopicRequest struct {
	Title    string  `json:"title" binding:"required,min=2,max=200"`
	Content  string  `json:"content" binding:"required"`
	Category *string `json:"category,omitempty"`
	CourseID *int64  `json:"courseId,omitempty" binding:"omitempty,min=1"`
}

// UpdateTopicRequest represents forum topic update data
type UpdateTopicRequest struct {
	Title    string  `json:"title" binding:"required,min=2,max=200"`
	Content  string  `json:"content" binding:"required"`
	Category *string `json:"category,omitempty"`
}

// ModerateTopicRequest pins or locks a topic, admin only
type ModerateTopicRequest struct {
	IsPinned *bool `json:"isPinned,omitempty"`
	IsLocked *bool `json:"isLocked,omitempty"`
}

// CreateReplyRequest adds a reply to a topic
type CreateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateReplyRequest edits a reply
type UpdateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// TopicResponse represents a forum topic
type TopicResponse struct {
	ID         int64           `json:"id"`
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	Category   *string         `json:"category,omitempty"`
	CourseID   *int64          `json:"courseId,omitempty"`
	IsPinned   bool            `json:"isPinned"`
	IsLocked   bool            `json:"isLocked"`
	ViewCount  int             `json:"viewCount"`
	ReplyCount int             `json:"replyCount"`
	CreatedBy  int64           `json:"createdBy"`
	AuthorName string          `json:"authorName,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	Replies    []ReplyResponse `json:"replies,omitempty"`
}

// ReplyResponse represents a forum reply
type ReplyResponse struct {
	ID         int64     `json:"id"`
	TopicID    int64     `json:"topicId"`
	Content    string    `json:"content"`
	CreatedBy  int64     `json:"createdBy"`
	AuthorName string    `json:"authorName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TopicListResponse represents a paginated list of topics
type TopicListResponse struct {
	Topics     []TopicResponse `json:"topics"`
	Pagination PaginationInfo  `json:"pagination"`
}
