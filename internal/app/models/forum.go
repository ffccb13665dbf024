package models

import "time"

// ForumTopic is a discussion thread. A locked topic accepts no new replies.
type ForumTopic struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	Category   *string   `json:"category,omitempty" db:"category"`
	CourseID   *int64    `json:"courseId,omitempty" db:"course_id"`
	IsPinned   bool      `json:"isPinned" db:"is_pinned"`
	IsLocked   bool      `json:"isLocked" db:"is_locked"`
	ViewCount  int       `json:"viewCount" db:"view_count"`
	ReplyCount int       `json:"replyCount" db:"reply_count"`
	CreatedBy  int64     `json:"createdBy" db:"created_by"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	Author  *User        `json:"author,omitempty"`
	Replies []ForumReply `json:"replies,omitempty"`
}

// ForumReply is one post inside a topic
type ForumReply struct {
	ID        int64     `json:"id" db:"id"`
	TopicID   int64     `json:"topicId" db:"topic_id"`
	Content   string    `json:"content" db:"content"`
	CreatedBy int64     `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Author *User `json:"author,omitempty"`
}
