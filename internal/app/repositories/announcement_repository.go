package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var announcementColumns = []string{
	"a.id", "a.title", "a.content", "a.priority", "a.audience",
	"a.attachment_url", "a.is_published", "a.expires_at", "a.created_by",
	"a.created_at", "a.updated_at",
}

// AnnouncementRepository handles announcement database operations
type AnnouncementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new announcement
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("announcements").
		Columns("title", "content", "priority", "audience", "attachment_url",
			"is_published", "expires_at", "created_by", "created_at", "updated_at").
		Values(announcement.Title, announcement.Content, announcement.Priority,
			announcement.Audience, announcement.AttachmentURL, announcement.IsPublished,
			announcement.ExpiresAt, announcement.CreatedBy, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create announcement query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&announcement.ID); err != nil {
		return fmt.Errorf("error creating announcement: %w", err)
	}

	announcement.CreatedAt = now
	announcement.UpdatedAt = now
	return nil
}

// GetByID retrieves an announcement with its author
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	cols := append([]string{}, announcementColumns...)
	cols = append(cols, "u.first_name", "u.last_name")
	sql, args, err := r.sb.Select(cols...).
		From("announcements a").
		Join("users u ON a.created_by = u.id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get announcement query: %w", err)
	}

	var a models.Announcement
	var firstName, lastName string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&a.ID, &a.Title, &a.Content, &a.Priority, &a.Audience,
		&a.AttachmentURL, &a.IsPublished, &a.ExpiresAt, &a.CreatedBy,
		&a.CreatedAt, &a.UpdatedAt,
		&firstName, &lastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("error retrieving announcement: %w", err)
	}
	a.Author = &models.User{ID: a.CreatedBy, FirstName: firstName, LastName: lastName}
	return &a, nil
}

// AnnouncementFilters narrows an announcement listing
type AnnouncementFilters struct {
	Audience       *models.AnnouncementAudience
	Priority       *models.AnnouncementPriority
	PublishedOnly  bool
	IncludeExpired bool
}

// List retrieves announcements ordered by priority then recency.
// Audience filtering keeps ALL announcements visible to everyone.
func (r *AnnouncementRepository) List(ctx context.Context, filters AnnouncementFilters, offset uint64, limit int) ([]models.Announcement, int64, error) {
	where := squirrel.And{}
	if filters.Audience != nil {
		where = append(where, squirrel.Or{
			squirrel.Eq{"a.audience": models.AudienceAll},
			squirrel.Eq{"a.audience": *filters.Audience},
		})
	}
	if filters.Priority != nil {
		where = append(where, squirrel.Eq{"a.priority": *filters.Priority})
	}
	if filters.PublishedOnly {
		where = append(where, squirrel.Eq{"a.is_published": true})
	}
	if !filters.IncludeExpired {
		where = append(where, squirrel.Or{
			squirrel.Eq{"a.expires_at": nil},
			squirrel.Gt{"a.expires_at": time.Now()},
		})
	}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("announcements a").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count announcements query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count announcements: %w", err)
	}
	if total == 0 {
		return []models.Announcement{}, 0, nil
	}

	cols := append([]string{}, announcementColumns...)
	cols = append(cols, "u.first_name", "u.last_name")
	sql, args, err := r.sb.Select(cols...).
		From("announcements a").
		Join("users u ON a.created_by = u.id").
		Where(where).
		OrderBy(`CASE a.priority
			WHEN 'URGENT' THEN 0
			WHEN 'HIGH' THEN 1
			WHEN 'NORMAL' THEN 2
			ELSE 3 END`, "a.created_at DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list announcements query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query announcements: %w", err)
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		var a models.Announcement
		var firstName, lastName string
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Content, &a.Priority, &a.Audience,
			&a.AttachmentURL, &a.IsPublished, &a.ExpiresAt, &a.CreatedBy,
			&a.CreatedAt, &a.UpdatedAt,
			&firstName, &lastName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan announcement row: %w", err)
		}
		a.Author = &models.User{ID: a.CreatedBy, FirstName: firstName, LastName: lastName}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return announcements, total, nil
}

// Update applies the editable announcement fields
func (r *AnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	sql, args, err := r.sb.Update("announcements").
		Set("title", announcement.Title).
		Set("content", announcement.Content).
		Set("priority", announcement.Priority).
		Set("audience", announcement.Audience).
		Set("attachment_url", announcement.AttachmentURL).
		Set("is_published", announcement.IsPublished).
		Set("expires_at", announcement.ExpiresAt).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": announcement.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update announcement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}

// Delete removes an announcement
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("announcements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete announcement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}
