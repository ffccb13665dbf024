package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var attendanceColumns = []string{
	"a.id", "a.course_id", "a.student_id", "a.date", "a.status",
	"a.remarks", "a.recorded_by", "a.created_at", "a.updated_at",
}

// AttendanceRepository handles attendance database operations. All writes
// take a transaction so the student counters move in the same commit.
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanAttendance(row pgx.Row) (*models.Attendance, error) {
	var a models.Attendance
	err := row.Scan(
		&a.ID, &a.CourseID, &a.StudentID, &a.Date, &a.Status,
		&a.Remarks, &a.RecordedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an attendance record within the given transaction
func (r *AttendanceRepository) Create(ctx context.Context, tx pgx.Tx, record *models.Attendance) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("attendance").
		Columns("course_id", "student_id", "date", "status", "remarks",
			"recorded_by", "created_at", "updated_at").
		Values(record.CourseID, record.StudentID, record.Date, record.Status,
			record.Remarks, record.RecordedBy, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create attendance query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&record.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_attendance_course_student_date") {
			return apperrors.ErrDuplicateAttendance
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error creating attendance record: %w", err)
	}

	record.CreatedAt = now
	record.UpdatedAt = now
	return nil
}

// GetByID retrieves an attendance record by ID
func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	sql, args, err := r.sb.Select(attendanceColumns...).
		From("attendance a").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get attendance query: %w", err)
	}

	record, err := scanAttendance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}
	return record, nil
}

// GetByCourseStudentDate retrieves the unique record for one class day
func (r *AttendanceRepository) GetByCourseStudentDate(ctx context.Context, courseID, studentID int64, date time.Time) (*models.Attendance, error) {
	sql, args, err := r.sb.Select(attendanceColumns...).
		From("attendance a").
		Where(squirrel.Eq{"a.course_id": courseID, "a.student_id": studentID, "a.date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get attendance by day query: %w", err)
	}

	record, err := scanAttendance(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}
	return record, nil
}

// AttendanceFilters narrows an attendance listing
type AttendanceFilters struct {
	CourseID  *int64
	StudentID *int64
	Status    *models.AttendanceStatus
	From      *time.Time
	To        *time.Time
}

// List retrieves attendance records filtered and paginated
func (r *AttendanceRepository) List(ctx context.Context, filters AttendanceFilters, offset uint64, limit int) ([]models.Attendance, int64, error) {
	where := squirrel.And{}
	if filters.CourseID != nil {
		where = append(where, squirrel.Eq{"a.course_id": *filters.CourseID})
	}
	if filters.StudentID != nil {
		where = append(where, squirrel.Eq{"a.student_id": *filters.StudentID})
	}
	if filters.Status != nil {
		where = append(where, squirrel.Eq{"a.status": *filters.Status})
	}
	if filters.From != nil {
		where = append(where, squirrel.GtOrEq{"a.date": *filters.From})
	}
	if filters.To != nil {
		where = append(where, squirrel.LtOrEq{"a.date": *filters.To})
	}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("attendance a").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count attendance query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}
	if total == 0 {
		return []models.Attendance{}, 0, nil
	}

	sql, args, err := r.sb.Select(attendanceColumns...).
		From("attendance a").
		Where(where).
		OrderBy("a.date DESC", "a.student_id ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list attendance query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []models.Attendance
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(
			&a.ID, &a.CourseID, &a.StudentID, &a.Date, &a.Status,
			&a.Remarks, &a.RecordedBy, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Update rewrites status, remarks and optionally date within the given
// transaction
func (r *AttendanceRepository) Update(ctx context.Context, tx pgx.Tx, record *models.Attendance) error {
	sql, args, err := r.sb.Update("attendance").
		Set("date", record.Date).
		Set("status", record.Status).
		Set("remarks", record.Remarks).
		Set("recorded_by", record.RecordedBy).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": record.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update attendance query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_attendance_course_student_date") {
			return apperrors.ErrDuplicateAttendance
		}
		return fmt.Errorf("error updating attendance record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}

// Delete removes an attendance record within the given transaction
func (r *AttendanceRepository) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	sql, args, err := r.sb.Delete("attendance").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete attendance query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting attendance record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}

// CountByStatus returns per-status record counts for a course and student
func (r *AttendanceRepository) CountByStatus(ctx context.Context, courseID, studentID int64) (map[models.AttendanceStatus]int, error) {
	sql, args, err := r.sb.Select("status", "COUNT(*)").
		From("attendance").
		Where(squirrel.Eq{"course_id": courseID, "student_id": studentID}).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance status count query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.AttendanceStatus]int)
	for rows.Next() {
		var status models.AttendanceStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan attendance status count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
