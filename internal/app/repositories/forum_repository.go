package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var forumTopicColumns = []string{
	"t.id", "t.title", "t.content", "t.category", "t.course_id",
	"t.is_pinned", "t.is_locked", "t.view_count", "t.reply_count",
	"t.created_by", "t.created_at", "t.updated_at",
}

// ForumRepository handles forum topic and reply database operations
type ForumRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewForumRepository creates a new ForumRepository
func NewForumRepository(db *pgxpool.Pool) *ForumRepository {
	return &ForumRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTopic inserts a new discussion topic
func (r *ForumRepository) CreateTopic(ctx context.Context, topic *models.ForumTopic) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("forum_topics").
		Columns("title", "content", "category", "course_id", "is_pinned",
			"is_locked", "view_count", "reply_count", "created_by",
			"created_at", "updated_at").
		Values(topic.Title, topic.Content, topic.Category, topic.CourseID,
			false, false, 0, 0, topic.CreatedBy, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create topic query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&topic.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating forum topic: %w", err)
	}

	topic.CreatedAt = now
	topic.UpdatedAt = now
	return nil
}

// GetTopicByID retrieves a topic with its author
func (r *ForumRepository) GetTopicByID(ctx context.Context, id int64) (*models.ForumTopic, error) {
	cols := append([]string{}, forumTopicColumns...)
	cols = append(cols, "u.first_name", "u.last_name")
	sql, args, err := r.sb.Select(cols...).
		From("forum_topics t").
		Join("users u ON t.created_by = u.id").
		Where(squirrel.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get topic query: %w", err)
	}

	var t models.ForumTopic
	var firstName, lastName string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&t.ID, &t.Title, &t.Content, &t.Category, &t.CourseID,
		&t.IsPinned, &t.IsLocked, &t.ViewCount, &t.ReplyCount,
		&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
		&firstName, &lastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrForumTopicNotFound
		}
		return nil, fmt.Errorf("error retrieving forum topic: %w", err)
	}
	t.Author = &models.User{ID: t.CreatedBy, FirstName: firstName, LastName: lastName}
	return &t, nil
}

// TopicFilters narrows a topic listing
type TopicFilters struct {
	Category *string
	CourseID *int64
	Search   string
}

// ListTopics retrieves topics pinned first, then most recently active
func (r *ForumRepository) ListTopics(ctx context.Context, filters TopicFilters, offset uint64, limit int) ([]models.ForumTopic, int64, error) {
	where := squirrel.And{}
	if filters.Category != nil {
		where = append(where, squirrel.Eq{"t.category": *filters.Category})
	}
	if filters.CourseID != nil {
		where = append(where, squirrel.Eq{"t.course_id": *filters.CourseID})
	}
	if filters.Search != "" {
		pattern := "%" + strings.TrimSpace(filters.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"t.title": pattern},
			squirrel.ILike{"t.content": pattern},
		})
	}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("forum_topics t").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count topics query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count forum topics: %w", err)
	}
	if total == 0 {
		return []models.ForumTopic{}, 0, nil
	}

	cols := append([]string{}, forumTopicColumns...)
	cols = append(cols, "u.first_name", "u.last_name")
	sql, args, err := r.sb.Select(cols...).
		From("forum_topics t").
		Join("users u ON t.created_by = u.id").
		Where(where).
		OrderBy("t.is_pinned DESC", "t.updated_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list topics query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query forum topics: %w", err)
	}
	defer rows.Close()

	var topics []models.ForumTopic
	for rows.Next() {
		var t models.ForumTopic
		var firstName, lastName string
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Content, &t.Category, &t.CourseID,
			&t.IsPinned, &t.IsLocked, &t.ViewCount, &t.ReplyCount,
			&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
			&firstName, &lastName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan topic row: %w", err)
		}
		t.Author = &models.User{ID: t.CreatedBy, FirstName: firstName, LastName: lastName}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return topics, total, nil
}

// UpdateTopic rewrites title, content and category
func (r *ForumRepository) UpdateTopic(ctx context.Context, topic *models.ForumTopic) error {
	sql, args, err := r.sb.Update("forum_topics").
		Set("title", topic.Title).
		Set("content", topic.Content).
		Set("category", topic.Category).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": topic.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update topic query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating forum topic: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrForumTopicNotFound
	}
	return nil
}

// SetTopicFlags pins or locks a topic
func (r *ForumRepository) SetTopicFlags(ctx context.Context, topicID int64, pinned, locked bool) error {
	sql, args, err := r.sb.Update("forum_topics").
		Set("is_pinned", pinned).
		Set("is_locked", locked).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": topicID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build topic flags query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error setting topic flags: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrForumTopicNotFound
	}
	return nil
}

// IncrementViewCount bumps a topic's view counter
func (r *ForumRepository) IncrementViewCount(ctx context.Context, topicID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE forum_topics SET view_count = view_count + 1 WHERE id = $1`, topicID)
	if err != nil {
		return fmt.Errorf("error incrementing view count: %w", err)
	}
	return nil
}

// DeleteTopic removes a topic together with its replies
func (r *ForumRepository) DeleteTopic(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("forum_topics").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete topic query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting forum topic: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrForumTopicNotFound
	}
	return nil
}

// CreateReply adds a reply and bumps the topic's reply counter in the
// given transaction
func (r *ForumRepository) CreateReply(ctx context.Context, tx pgx.Tx, reply *models.ForumReply) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("forum_replies").
		Columns("topic_id", "content", "created_by", "created_at", "updated_at").
		Values(reply.TopicID, reply.Content, reply.CreatedBy, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create reply query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&reply.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrForumTopicNotFound
		}
		return fmt.Errorf("error creating forum reply: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE forum_topics
		SET reply_count = reply_count + 1, updated_at = $1
		WHERE id = $2
	`, now, reply.TopicID)
	if err != nil {
		return fmt.Errorf("error incrementing reply count: %w", err)
	}

	reply.CreatedAt = now
	reply.UpdatedAt = now
	return nil
}

// GetReplyByID retrieves a reply by ID
func (r *ForumRepository) GetReplyByID(ctx context.Context, id int64) (*models.ForumReply, error) {
	sql, args, err := r.sb.Select("id", "topic_id", "content", "created_by", "created_at", "updated_at").
		From("forum_replies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get reply query: %w", err)
	}

	var reply models.ForumReply
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&reply.ID, &reply.TopicID, &reply.Content, &reply.CreatedBy, &reply.CreatedAt, &reply.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrForumReplyNotFound
		}
		return nil, fmt.Errorf("error retrieving forum reply: %w", err)
	}
	return &reply, nil
}

// ListReplies retrieves a topic's replies oldest first, paginated
func (r *ForumRepository) ListReplies(ctx context.Context, topicID int64, offset uint64, limit int) ([]models.ForumReply, int64, error) {
	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("forum_replies r").
		Where(squirrel.Eq{"r.topic_id": topicID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count replies query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count forum replies: %w", err)
	}
	if total == 0 {
		return []models.ForumReply{}, 0, nil
	}

	sql, args, err := r.sb.Select(
		"r.id", "r.topic_id", "r.content", "r.created_by", "r.created_at", "r.updated_at",
		"u.first_name", "u.last_name").
		From("forum_replies r").
		Join("users u ON r.created_by = u.id").
		Where(squirrel.Eq{"r.topic_id": topicID}).
		OrderBy("r.created_at ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list replies query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query forum replies: %w", err)
	}
	defer rows.Close()

	var replies []models.ForumReply
	for rows.Next() {
		var reply models.ForumReply
		var firstName, lastName string
		if err := rows.Scan(
			&reply.ID, &reply.TopicID, &reply.Content, &reply.CreatedBy,
			&reply.CreatedAt, &reply.UpdatedAt,
			&firstName, &lastName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan reply row: %w", err)
		}
		reply.Author = &models.User{ID: reply.CreatedBy, FirstName: firstName, LastName: lastName}
		replies = append(replies, reply)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return replies, total, nil
}

// UpdateReply rewrites a reply's content
func (r *ForumRepository) UpdateReply(ctx context.Context, reply *models.ForumReply) error {
	sql, args, err := r.sb.Update("forum_replies").
		Set("content", reply.Content).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": reply.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update reply query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating forum reply: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrForumReplyNotFound
	}
	return nil
}

// DeleteReply removes a reply and lowers the topic's reply counter in the
// given transaction
func (r *ForumRepository) DeleteReply(ctx context.Context, tx pgx.Tx, reply *models.ForumReply) error {
	sql, args, err := r.sb.Delete("forum_replies").
		Where(squirrel.Eq{"id": reply.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete reply query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting forum reply: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrForumReplyNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE forum_topics
		SET reply_count = GREATEST(reply_count - 1, 0), updated_at = $1
		WHERE id = $2
	`, time.Now(), reply.TopicID)
	if err != nil {
		return fmt.Errorf("error decrementing reply count: %w", err)
	}
	return nil
}
