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

var timetableColumns = []string{
	"t.id", "t.course_id", "t.faculty_user_id", "t.day_of_week",
	"t.start_time", "t.end_time", "t.room", "t.semester", "t.academic_year",
	"t.created_at", "t.updated_at",
}

// weekdayOrder sorts the day_of_week enum Monday-first instead of
// alphabetically.
const weekdayOrder = `CASE t.day_of_week
		WHEN 'MONDAY' THEN 1 WHEN 'TUESDAY' THEN 2 WHEN 'WEDNESDAY' THEN 3
		WHEN 'THURSDAY' THEN 4 WHEN 'FRIDAY' THEN 5 WHEN 'SATURDAY' THEN 6
		WHEN 'SUNDAY' THEN 7 END`

// TimetableRepository handles timetable slot database operations
type TimetableRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTimetableRepository creates a new TimetableRepository
func NewTimetableRepository(db *pgxpool.Pool) *TimetableRepository {
	return &TimetableRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanTimetableSlot(row pgx.Row) (*models.TimetableSlot, error) {
	var t models.TimetableSlot
	err := row.Scan(
		&t.ID, &t.CourseID, &t.FacultyUserID, &t.DayOfWeek,
		&t.StartTime, &t.EndTime, &t.Room, &t.Semester, &t.AcademicYear,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new timetable slot
func (r *TimetableRepository) Create(ctx context.Context, slot *models.TimetableSlot) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("timetable_slots").
		Columns("course_id", "faculty_user_id", "day_of_week", "start_time",
			"end_time", "room", "semester", "academic_year", "created_at", "updated_at").
		Values(slot.CourseID, slot.FacultyUserID, slot.DayOfWeek, slot.StartTime,
			slot.EndTime, slot.Room, slot.Semester, slot.AcademicYear, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create timetable slot query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&slot.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating timetable slot: %w", err)
	}

	slot.CreatedAt = now
	slot.UpdatedAt = now
	return nil
}

// GetByID retrieves a timetable slot by ID
func (r *TimetableRepository) GetByID(ctx context.Context, id int64) (*models.TimetableSlot, error) {
	sql, args, err := r.sb.Select(timetableColumns...).
		From("timetable_slots t").
		Where(squirrel.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get timetable slot query: %w", err)
	}

	slot, err := scanTimetableSlot(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTimetableSlotNotFound
		}
		return nil, fmt.Errorf("error retrieving timetable slot: %w", err)
	}
	return slot, nil
}

// TimetableFilters narrows a slot listing
type TimetableFilters struct {
	CourseID      *int64
	FacultyUserID *int64
	DayOfWeek     *models.DayOfWeek
	Semester      *models.Semester
	AcademicYear  *int
	Room          string
}

// List retrieves timetable slots with course info, filtered
func (r *TimetableRepository) List(ctx context.Context, filters TimetableFilters) ([]models.TimetableSlot, error) {
	where := squirrel.And{}
	if filters.CourseID != nil {
		where = append(where, squirrel.Eq{"t.course_id": *filters.CourseID})
	}
	if filters.FacultyUserID != nil {
		where = append(where, squirrel.Eq{"t.faculty_user_id": *filters.FacultyUserID})
	}
	if filters.DayOfWeek != nil {
		where = append(where, squirrel.Eq{"t.day_of_week": *filters.DayOfWeek})
	}
	if filters.Semester != nil {
		where = append(where, squirrel.Eq{"t.semester": *filters.Semester})
	}
	if filters.AcademicYear != nil {
		where = append(where, squirrel.Eq{"t.academic_year": *filters.AcademicYear})
	}
	if filters.Room != "" {
		where = append(where, squirrel.Eq{"t.room": filters.Room})
	}

	cols := append([]string{}, timetableColumns...)
	cols = append(cols, "c.code", "c.name")
	sql, args, err := r.sb.Select(cols...).
		From("timetable_slots t").
		Join("courses c ON t.course_id = c.id").
		Where(where).
		OrderBy(weekdayOrder, "t.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list timetable slots query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query timetable slots: %w", err)
	}
	defer rows.Close()

	var slots []models.TimetableSlot
	for rows.Next() {
		var t models.TimetableSlot
		var code, name string
		if err := rows.Scan(
			&t.ID, &t.CourseID, &t.FacultyUserID, &t.DayOfWeek,
			&t.StartTime, &t.EndTime, &t.Room, &t.Semester, &t.AcademicYear,
			&t.CreatedAt, &t.UpdatedAt,
			&code, &name,
		); err != nil {
			return nil, fmt.Errorf("failed to scan timetable slot row: %w", err)
		}
		t.Course = &models.Course{ID: t.CourseID, Code: code, Name: name}
		slots = append(slots, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

// ListCandidates returns the slots that share a day, term and either the
// room, the faculty member or the course with the given slot. The service
// decides actual overlap on the minute intervals.
func (r *TimetableRepository) ListCandidates(ctx context.Context, slot *models.TimetableSlot, excludeID int64) ([]models.TimetableSlot, error) {
	where := squirrel.And{
		squirrel.Eq{"t.day_of_week": slot.DayOfWeek},
		squirrel.Eq{"t.semester": slot.Semester},
		squirrel.Eq{"t.academic_year": slot.AcademicYear},
		squirrel.Or{
			squirrel.Eq{"t.room": slot.Room},
			squirrel.Eq{"t.faculty_user_id": slot.FacultyUserID},
			squirrel.Eq{"t.course_id": slot.CourseID},
		},
	}
	if excludeID != 0 {
		where = append(where, squirrel.NotEq{"t.id": excludeID})
	}

	sql, args, err := r.sb.Select(timetableColumns...).
		From("timetable_slots t").
		Where(where).
		OrderBy("t.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build conflict candidates query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query conflict candidates: %w", err)
	}
	defer rows.Close()

	var slots []models.TimetableSlot
	for rows.Next() {
		var t models.TimetableSlot
		if err := rows.Scan(
			&t.ID, &t.CourseID, &t.FacultyUserID, &t.DayOfWeek,
			&t.StartTime, &t.EndTime, &t.Room, &t.Semester, &t.AcademicYear,
			&t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conflict candidate row: %w", err)
		}
		slots = append(slots, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}

// Update applies the editable slot fields
func (r *TimetableRepository) Update(ctx context.Context, slot *models.TimetableSlot) error {
	sql, args, err := r.sb.Update("timetable_slots").
		Set("course_id", slot.CourseID).
		Set("faculty_user_id", slot.FacultyUserID).
		Set("day_of_week", slot.DayOfWeek).
		Set("start_time", slot.StartTime).
		Set("end_time", slot.EndTime).
		Set("room", slot.Room).
		Set("semester", slot.Semester).
		Set("academic_year", slot.AcademicYear).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": slot.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update timetable slot query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating timetable slot: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTimetableSlotNotFound
	}
	return nil
}

// Delete removes a timetable slot
func (r *TimetableRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("timetable_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete timetable slot query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting timetable slot: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTimetableSlotNotFound
	}
	return nil
}

// ListForStudent returns the slots of every course the student is actively
// enrolled in for a term
func (r *TimetableRepository) ListForStudent(ctx context.Context, studentID int64, semester models.Semester, academicYear int) ([]models.TimetableSlot, error) {
	cols := append([]string{}, timetableColumns...)
	cols = append(cols, "c.code", "c.name")
	sql, args, err := r.sb.Select(cols...).
		From("timetable_slots t").
		Join("courses c ON t.course_id = c.id").
		Join("enrollments e ON e.course_id = t.course_id").
		Where(squirrel.Eq{
			"e.student_id":    studentID,
			"e.status":        models.EnrollmentEnrolled,
			"t.semester":      semester,
			"t.academic_year": academicYear,
		}).
		OrderBy(weekdayOrder, "t.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student timetable query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query student timetable: %w", err)
	}
	defer rows.Close()

	var slots []models.TimetableSlot
	for rows.Next() {
		var t models.TimetableSlot
		var code, name string
		if err := rows.Scan(
			&t.ID, &t.CourseID, &t.FacultyUserID, &t.DayOfWeek,
			&t.StartTime, &t.EndTime, &t.Room, &t.Semester, &t.AcademicYear,
			&t.CreatedAt, &t.UpdatedAt,
			&code, &name,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student timetable row: %w", err)
		}
		t.Course = &models.Course{ID: t.CourseID, Code: code, Name: name}
		slots = append(slots, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}
