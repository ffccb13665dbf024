package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsRepository runs the aggregate queries behind dashboards and
// reports. It reads across several tables and owns no rows itself.
type AnalyticsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *AnalyticsRepository) countBuckets(ctx context.Context, sql string, args ...interface{}) ([]models.CountBucket, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query count buckets: %w", err)
	}
	defer rows.Close()

	var buckets []models.CountBucket
	for rows.Next() {
		var b models.CountBucket
		if err := rows.Scan(&b.Label, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buckets, nil
}

// StudentAnalytics aggregates the student population by status,
// department, program and enrollment year
func (r *AnalyticsRepository) StudentAnalytics(ctx context.Context) (*models.StudentAnalytics, error) {
	var a models.StudentAnalytics
	var err error

	if err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&a.Total); err != nil {
		return nil, fmt.Errorf("error counting students: %w", err)
	}

	a.ByStatus, err = r.countBuckets(ctx, `
		SELECT status, COUNT(*) FROM students GROUP BY status ORDER BY status
	`)
	if err != nil {
		return nil, err
	}

	a.ByDepartment, err = r.countBuckets(ctx, `
		SELECT d.name, COUNT(*) FROM students s
		JOIN departments d ON s.department_id = d.id
		GROUP BY d.name ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}

	a.ByProgram, err = r.countBuckets(ctx, `
		SELECT p.name, COUNT(*) FROM students s
		JOIN programs p ON s.program_id = p.id
		GROUP BY p.name ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}

	a.ByYear, err = r.countBuckets(ctx, `
		SELECT enrollment_year::text, COUNT(*) FROM students
		GROUP BY enrollment_year ORDER BY enrollment_year
	`)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// ExamAnalytics aggregates the results of one exam
func (r *AnalyticsRepository) ExamAnalytics(ctx context.Context, examID int64) (*models.ExamAnalytics, error) {
	var a models.ExamAnalytics
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(AVG(marks_obtained), 0),
		       COALESCE(MAX(marks_obtained), 0),
		       COALESCE(MIN(marks_obtained), 0),
		       COUNT(*) FILTER (WHERE is_passed),
		       COUNT(*) FILTER (WHERE NOT is_passed)
		FROM exam_results WHERE exam_id = $1
	`, examID).Scan(&a.TotalResults, &a.AverageMarks, &a.HighestMarks, &a.LowestMarks, &a.PassCount, &a.FailCount)
	if err != nil {
		return nil, fmt.Errorf("error aggregating exam results: %w", err)
	}

	if a.TotalResults > 0 {
		a.PassRate = float64(a.PassCount) / float64(a.TotalResults) * 100
	}

	a.GradeBuckets, err = r.countBuckets(ctx, `
		SELECT grade, COUNT(*) FROM exam_results
		WHERE exam_id = $1 GROUP BY grade ORDER BY grade
	`, examID)
	if err != nil {
		return nil, err
	}

	a.PerformanceBands, err = r.countBuckets(ctx, `
		SELECT CASE
			WHEN percentage >= 80 THEN 'EXCELLENT'
			WHEN percentage >= 60 THEN 'GOOD'
			WHEN percentage >= 40 THEN 'AVERAGE'
			ELSE 'POOR' END AS band, COUNT(*)
		FROM exam_results WHERE exam_id = $1
		GROUP BY band ORDER BY band
	`, examID)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// AttendanceAnalytics aggregates attendance, optionally scoped to a course
func (r *AnalyticsRepository) AttendanceAnalytics(ctx context.Context, courseID *int64) (*models.AttendanceAnalytics, error) {
	var a models.AttendanceAnalytics

	scope := ""
	var args []interface{}
	if courseID != nil {
		scope = " WHERE course_id = $1"
		args = append(args, *courseID)
	}

	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM attendance`+scope, args...).Scan(&a.TotalRecords)
	if err != nil {
		return nil, fmt.Errorf("error counting attendance records: %w", err)
	}

	a.ByStatus, err = r.countBuckets(ctx,
		`SELECT status, COUNT(*) FROM attendance`+scope+` GROUP BY status ORDER BY status`, args...)
	if err != nil {
		return nil, err
	}

	var present int64
	for _, b := range a.ByStatus {
		if b.Label == string(models.AttendancePresent) || b.Label == string(models.AttendanceLate) {
			present += b.Count
		}
	}
	if a.TotalRecords > 0 {
		a.AttendanceRate = float64(present) / float64(a.TotalRecords) * 100
	}

	a.ByDayOfWeek, err = r.countBuckets(ctx,
		`SELECT TRIM(TO_CHAR(date, 'DAY')), COUNT(*) FROM attendance`+scope+
			` GROUP BY TRIM(TO_CHAR(date, 'DAY')), EXTRACT(DOW FROM date) ORDER BY EXTRACT(DOW FROM date)`, args...)
	if err != nil {
		return nil, err
	}

	a.ByMonth, err = r.countBuckets(ctx,
		`SELECT TO_CHAR(date, 'YYYY-MM'), COUNT(*) FROM attendance`+scope+
			` GROUP BY TO_CHAR(date, 'YYYY-MM') ORDER BY TO_CHAR(date, 'YYYY-MM')`, args...)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// AdmissionAnalytics aggregates applications by status, program and month
func (r *AnalyticsRepository) AdmissionAnalytics(ctx context.Context) (*models.AdmissionAnalytics, error) {
	var a models.AdmissionAnalytics
	var err error

	if err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admissions`).Scan(&a.Total); err != nil {
		return nil, fmt.Errorf("error counting admissions: %w", err)
	}

	a.ByStatus, err = r.countBuckets(ctx, `
		SELECT status, COUNT(*) FROM admissions GROUP BY status ORDER BY status
	`)
	if err != nil {
		return nil, err
	}

	a.ByProgram, err = r.countBuckets(ctx, `
		SELECT p.name, COUNT(*) FROM admissions a
		JOIN programs p ON a.program_id = p.id
		GROUP BY p.name ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}

	a.ByMonth, err = r.countBuckets(ctx, `
		SELECT TO_CHAR(applied_at, 'YYYY-MM'), COUNT(*) FROM admissions
		GROUP BY TO_CHAR(applied_at, 'YYYY-MM') ORDER BY TO_CHAR(applied_at, 'YYYY-MM')
	`)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// CountAdmissionsByStatus counts applications in one status
func (r *AnalyticsRepository) CountAdmissionsByStatus(ctx context.Context, status models.AdmissionStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM admissions WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting admissions by status: %w", err)
	}
	return count, nil
}

// CountDistinctStudentsForFaculty counts students enrolled across all of a
// faculty member's courses
func (r *AnalyticsRepository) CountDistinctStudentsForFaculty(ctx context.Context, facultyUserID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(DISTINCT e.student_id) FROM enrollments e
		JOIN courses c ON e.course_id = c.id
		WHERE c.faculty_user_id = $1 AND e.status = $2
	`, facultyUserID, models.EnrollmentEnrolled).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting faculty students: %w", err)
	}
	return count, nil
}

// UpcomingExamsForCourses returns scheduled exams for a set of courses
func (r *AnalyticsRepository) UpcomingExamsForCourses(ctx context.Context, courseIDs []int64, limit int) ([]models.Exam, error) {
	if len(courseIDs) == 0 {
		return []models.Exam{}, nil
	}

	sql, args, err := r.sb.Select(
		"id", "course_id", "title", "exam_type", "exam_date", "duration_minutes",
		"total_marks", "passing_marks", "room", "status", "created_by",
		"created_at", "updated_at").
		From("exams").
		Where(squirrel.Eq{"course_id": courseIDs, "status": models.ExamScheduled}).
		Where(squirrel.GtOrEq{"exam_date": time.Now()}).
		OrderBy("exam_date ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upcoming exams query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming exams: %w", err)
	}
	defer rows.Close()

	var exams []models.Exam
	for rows.Next() {
		var e models.Exam
		if err := rows.Scan(
			&e.ID, &e.CourseID, &e.Title, &e.ExamType, &e.ExamDate, &e.DurationMinutes,
			&e.TotalMarks, &e.PassingMarks, &e.Room, &e.Status, &e.CreatedBy,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan upcoming exam row: %w", err)
		}
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exams, nil
}
