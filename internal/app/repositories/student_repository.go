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

var studentColumns = []string{
	"s.id", "s.user_id", "s.student_id", "s.department_id", "s.program_id",
	"s.enrollment_year", "s.current_semester", "s.status",
	"s.classes_attended", "s.classes_missed", "s.cgpa",
	"s.created_at", "s.updated_at",
}

// StudentRepository handles student and enrollment database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.UserID, &s.StudentID, &s.DepartmentID, &s.ProgramID,
		&s.EnrollmentYear, &s.CurrentSemester, &s.Status,
		&s.ClassesAttended, &s.ClassesMissed, &s.CGPA,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student profile within the given transaction
func (r *StudentRepository) Create(ctx context.Context, tx pgx.Tx, student *models.Student) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("students").
		Columns("user_id", "student_id", "department_id", "program_id",
			"enrollment_year", "current_semester", "status",
			"classes_attended", "classes_missed", "cgpa", "created_at", "updated_at").
		Values(student.UserID, student.StudentID, student.DepartmentID, student.ProgramID,
			student.EnrollmentYear, student.CurrentSemester, models.StudentActive,
			0, 0, 0, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_id_key") {
			return apperrors.ErrStudentIDAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	student.Status = models.StudentActive
	student.CreatedAt = now
	student.UpdatedAt = now
	return nil
}

// GetByID retrieves a student by record ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students s").
		Where(squirrel.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// GetByUserID retrieves a student profile by owning user
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students s").
		Where(squirrel.Eq{"s.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student by user query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student by user: %w", err)
	}
	return student, nil
}

// StudentFilters narrows a student listing
type StudentFilters struct {
	DepartmentID *int64
	ProgramID    *int64
	Status       *models.StudentStatus
	Year         *int
	Search       string
}

// List retrieves students with their user names, filtered and paginated
func (r *StudentRepository) List(ctx context.Context, filters StudentFilters, offset uint64, limit int) ([]models.Student, int64, error) {
	where := squirrel.And{}
	if filters.DepartmentID != nil {
		where = append(where, squirrel.Eq{"s.department_id": *filters.DepartmentID})
	}
	if filters.ProgramID != nil {
		where = append(where, squirrel.Eq{"s.program_id": *filters.ProgramID})
	}
	if filters.Status != nil {
		where = append(where, squirrel.Eq{"s.status": *filters.Status})
	}
	if filters.Year != nil {
		where = append(where, squirrel.Eq{"s.enrollment_year": *filters.Year})
	}
	if filters.Search != "" {
		pattern := "%" + strings.TrimSpace(filters.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"s.student_id": pattern},
			squirrel.Expr("u.first_name || ' ' || u.last_name ILIKE ?", pattern),
			squirrel.ILike{"u.email": pattern},
		})
	}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("students s").
		Join("users u ON s.user_id = u.id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}
	if total == 0 {
		return []models.Student{}, 0, nil
	}

	cols := append([]string{}, studentColumns...)
	cols = append(cols, "u.email", "u.first_name", "u.last_name")
	sql, args, err := r.sb.Select(cols...).
		From("students s").
		Join("users u ON s.user_id = u.id").
		Where(where).
		OrderBy("s.student_id ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		var email, firstName, lastName string
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.StudentID, &s.DepartmentID, &s.ProgramID,
			&s.EnrollmentYear, &s.CurrentSemester, &s.Status,
			&s.ClassesAttended, &s.ClassesMissed, &s.CGPA,
			&s.CreatedAt, &s.UpdatedAt,
			&email, &firstName, &lastName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan student row: %w", err)
		}
		s.User = &models.User{ID: s.UserID, Email: email, FirstName: firstName, LastName: lastName}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// Update applies the editable student fields
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("current_semester", student.CurrentSemester).
		Set("status", student.Status).
		Set("program_id", student.ProgramID).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// AdjustAttendanceCounters shifts the denormalized attendance counters.
// Deltas may be negative; runs inside the attendance write transaction.
func (r *StudentRepository) AdjustAttendanceCounters(ctx context.Context, tx pgx.Tx, studentID int64, attendedDelta, missedDelta int) error {
	sql := `
		UPDATE students
		SET classes_attended = classes_attended + $1,
		    classes_missed = classes_missed + $2,
		    updated_at = $3
		WHERE id = $4
	`
	cmdTag, err := tx.Exec(ctx, sql, attendedDelta, missedDelta, time.Now(), studentID)
	if err != nil {
		return fmt.Errorf("error adjusting attendance counters: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateCGPA stores a freshly computed CGPA
func (r *StudentRepository) UpdateCGPA(ctx context.Context, studentID int64, cgpa float64) error {
	sql, args, err := r.sb.Update("students").
		Set("cgpa", cgpa).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update cgpa query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating cgpa: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// NextStudentSequence returns the next per-year student number sequence
func (r *StudentRepository) NextStudentSequence(ctx context.Context, year int) (int, error) {
	prefix := fmt.Sprintf("STU%d%%", year)
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM students WHERE student_id LIKE $1`, prefix).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting student sequence: %w", err)
	}
	return count + 1, nil
}

// CreateEnrollment enrolls a student in a course
func (r *StudentRepository) CreateEnrollment(ctx context.Context, tx pgx.Tx, enrollment *models.Enrollment) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "course_id", "status", "enrolled_at", "updated_at").
		Values(enrollment.StudentID, enrollment.CourseID, models.EnrollmentEnrolled, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&enrollment.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_enrollments_student_course") {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	enrollment.Status = models.EnrollmentEnrolled
	enrollment.EnrolledAt = now
	return nil
}

// GetEnrollment retrieves an enrollment by student and course
func (r *StudentRepository) GetEnrollment(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select("id", "student_id", "course_id", "status", "grade", "grade_points", "enrolled_at", "updated_at").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	var e models.Enrollment
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.Grade, &e.GradePoints, &e.EnrolledAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotEnrolled
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return &e, nil
}

// ListEnrollments retrieves a student's enrollments with course info
func (r *StudentRepository) ListEnrollments(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	sql, args, err := r.sb.Select(
		"e.id", "e.student_id", "e.course_id", "e.status", "e.grade", "e.grade_points", "e.enrolled_at", "e.updated_at",
		"c.code", "c.name", "c.credits").
		From("enrollments e").
		Join("courses c ON e.course_id = c.id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.enrolled_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		var code, name string
		var credits int
		if err := rows.Scan(
			&e.ID, &e.StudentID, &e.CourseID, &e.Status, &e.Grade, &e.GradePoints, &e.EnrolledAt, &e.UpdatedAt,
			&code, &name, &credits,
		); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		e.Course = &models.Course{ID: e.CourseID, Code: code, Name: name, Credits: credits}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// ListEnrolledStudentIDs returns the IDs of students actively enrolled in a course
func (r *StudentRepository) ListEnrolledStudentIDs(ctx context.Context, courseID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("student_id").
		From("enrollments").
		Where(squirrel.Eq{"course_id": courseID, "status": models.EnrollmentEnrolled}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrolled students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled students: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan enrolled student row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// UpdateEnrollment sets enrollment status and, for completions, the
// grade. It runs in the caller's transaction so the status flip commits
// together with the course counter movement.
func (r *StudentRepository) UpdateEnrollment(ctx context.Context, tx pgx.Tx, enrollment *models.Enrollment) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("status", enrollment.Status).
		Set("grade", enrollment.Grade).
		Set("grade_points", enrollment.GradePoints).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": enrollment.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update enrollment query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotEnrolled
	}
	return nil
}

// CompletedGradePoints returns the grade points of all completed
// enrollments, the CGPA inputs
func (r *StudentRepository) CompletedGradePoints(ctx context.Context, studentID int64) ([]float64, error) {
	sql, args, err := r.sb.Select("grade_points").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "status": models.EnrollmentCompleted}).
		Where(squirrel.NotEq{"grade_points": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build grade points query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query grade points: %w", err)
	}
	defer rows.Close()

	var points []float64
	for rows.Next() {
		var p float64
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan grade points row: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

// Count returns the total number of students
func (r *StudentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}
