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

var courseColumns = []string{
	"c.id", "c.department_id", "c.faculty_user_id", "c.code", "c.name",
	"c.description", "c.syllabus", "c.credits", "c.semester", "c.capacity",
	"c.enrolled_count", "c.is_active", "c.created_at", "c.updated_at",
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(
		&c.ID, &c.DepartmentID, &c.FacultyUserID, &c.Code, &c.Name,
		&c.Description, &c.Syllabus, &c.Credits, &c.Semester, &c.Capacity,
		&c.EnrolledCount, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("courses").
		Columns("department_id", "faculty_user_id", "code", "name", "description",
			"credits", "semester", "capacity", "enrolled_count", "is_active",
			"created_at", "updated_at").
		Values(course.DepartmentID, course.FacultyUserID, course.Code, course.Name,
			course.Description, course.Credits, course.Semester, course.Capacity,
			0, true, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return apperrors.ErrCourseAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	course.IsActive = true
	course.CreatedAt = now
	course.UpdatedAt = now
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// CourseFilters narrows a course listing
type CourseFilters struct {
	DepartmentID  *int64
	FacultyUserID *int64
	Semester      *int
	ActiveOnly    bool
	Search        string
}

// List retrieves courses filtered and paginated
func (r *CourseRepository) List(ctx context.Context, filters CourseFilters, offset uint64, limit int) ([]models.Course, int64, error) {
	where := squirrel.And{}
	if filters.DepartmentID != nil {
		where = append(where, squirrel.Eq{"c.department_id": *filters.DepartmentID})
	}
	if filters.FacultyUserID != nil {
		where = append(where, squirrel.Eq{"c.faculty_user_id": *filters.FacultyUserID})
	}
	if filters.Semester != nil {
		where = append(where, squirrel.Eq{"c.semester": *filters.Semester})
	}
	if filters.ActiveOnly {
		where = append(where, squirrel.Eq{"c.is_active": true})
	}
	if filters.Search != "" {
		pattern := "%" + strings.TrimSpace(filters.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"c.code": pattern},
			squirrel.ILike{"c.name": pattern},
		})
	}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("courses c").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}
	if total == 0 {
		return []models.Course{}, 0, nil
	}

	sql, args, err := r.sb.Select(courseColumns...).
		From("courses c").
		Where(where).
		OrderBy("c.code ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(
			&c.ID, &c.DepartmentID, &c.FacultyUserID, &c.Code, &c.Name,
			&c.Description, &c.Syllabus, &c.Credits, &c.Semester, &c.Capacity,
			&c.EnrolledCount, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// Update applies the editable course fields. Code is left alone once issued.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("name", course.Name).
		Set("description", course.Description).
		Set("faculty_user_id", course.FacultyUserID).
		Set("credits", course.Credits).
		Set("semester", course.Semester).
		Set("capacity", course.Capacity).
		Set("is_active", course.IsActive).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// UpdateSyllabus replaces the course syllabus text
func (r *CourseRepository) UpdateSyllabus(ctx context.Context, courseID int64, syllabus *string) error {
	sql, args, err := r.sb.Update("courses").
		Set("syllabus", syllabus).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update syllabus query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating syllabus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// IncrementEnrolledCount bumps the enrolled counter, guarded against
// exceeding capacity. Runs inside the enrollment transaction.
func (r *CourseRepository) IncrementEnrolledCount(ctx context.Context, tx pgx.Tx, courseID int64) error {
	sql := `
		UPDATE courses
		SET enrolled_count = enrolled_count + 1, updated_at = $1
		WHERE id = $2 AND enrolled_count < capacity
	`
	cmdTag, err := tx.Exec(ctx, sql, time.Now(), courseID)
	if err != nil {
		return fmt.Errorf("error incrementing enrolled count: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseFull
	}
	return nil
}

// DecrementEnrolledCount lowers the enrolled counter, never below zero
func (r *CourseRepository) DecrementEnrolledCount(ctx context.Context, tx pgx.Tx, courseID int64) error {
	sql := `
		UPDATE courses
		SET enrolled_count = GREATEST(enrolled_count - 1, 0), updated_at = $1
		WHERE id = $2
	`
	cmdTag, err := tx.Exec(ctx, sql, time.Now(), courseID)
	if err != nil {
		return fmt.Errorf("error decrementing enrolled count: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course. Courses referenced by enrollments, exams or
// timetable slots cannot be removed.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("course has related records and cannot be deleted")
		}
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Count returns the total number of courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}
