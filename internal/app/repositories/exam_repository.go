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

var examColumns = []string{
	"e.id", "e.course_id", "e.title", "e.exam_type", "e.exam_date",
	"e.duration_minutes", "e.total_marks", "e.passing_marks", "e.room",
	"e.status", "e.created_by", "e.created_at", "e.updated_at",
}

var examResultColumns = []string{
	"r.id", "r.exam_id", "r.student_id", "r.marks_obtained", "r.percentage",
	"r.grade", "r.grade_points", "r.is_passed", "r.remarks", "r.entered_by",
	"r.created_at", "r.updated_at",
}

// ExamRepository handles exam and exam result database operations
type ExamRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanExam(row pgx.Row) (*models.Exam, error) {
	var e models.Exam
	err := row.Scan(
		&e.ID, &e.CourseID, &e.Title, &e.ExamType, &e.ExamDate,
		&e.DurationMinutes, &e.TotalMarks, &e.PassingMarks, &e.Room,
		&e.Status, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateExam inserts a new exam
func (r *ExamRepository) CreateExam(ctx context.Context, exam *models.Exam) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("exams").
		Columns("course_id", "title", "exam_type", "exam_date", "duration_minutes",
			"total_marks", "passing_marks", "room", "status", "created_by",
			"created_at", "updated_at").
		Values(exam.CourseID, exam.Title, exam.ExamType, exam.ExamDate, exam.DurationMinutes,
			exam.TotalMarks, exam.PassingMarks, exam.Room, models.ExamScheduled, exam.CreatedBy,
			now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create exam query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&exam.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating exam: %w", err)
	}

	exam.Status = models.ExamScheduled
	exam.CreatedAt = now
	exam.UpdatedAt = now
	return nil
}

// GetExamByID retrieves an exam by ID
func (r *ExamRepository) GetExamByID(ctx context.Context, id int64) (*models.Exam, error) {
	sql, args, err := r.sb.Select(examColumns...).
		From("exams e").
		Where(squirrel.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get exam query: %w", err)
	}

	exam, err := scanExam(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamNotFound
		}
		return nil, fmt.Errorf("error retrieving exam: %w", err)
	}
	return exam, nil
}

// ExamFilters narrows an exam listing
type ExamFilters struct {
	CourseID *int64
	ExamType *models.ExamType
	Status   *models.ExamStatus
	From     *time.Time
	To       *time.Time
}

// ListExams retrieves exams filtered and paginated
func (r *ExamRepository) ListExams(ctx context.Context, filters ExamFilters, offset uint64, limit int) ([]models.Exam, int64, error) {
	where := squirrel.And{}
	if filters.CourseID != nil {
		where = append(where, squirrel.Eq{"e.course_id": *filters.CourseID})
	}
	if filters.ExamType != nil {
		where = append(where, squirrel.Eq{"e.exam_type": *filters.ExamType})
	}
	if filters.Status != nil {
		where = append(where, squirrel.Eq{"e.status": *filters.Status})
	}
	if filters.From != nil {
		where = append(where, squirrel.GtOrEq{"e.exam_date": *filters.From})
	}
	if filters.To != nil {
		where = append(where, squirrel.LtOrEq{"e.exam_date": *filters.To})
	}

	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("exams e").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count exams query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exams: %w", err)
	}
	if total == 0 {
		return []models.Exam{}, 0, nil
	}

	sql, args, err := r.sb.Select(examColumns...).
		From("exams e").
		Where(where).
		OrderBy("e.exam_date ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list exams query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query exams: %w", err)
	}
	defer rows.Close()

	var exams []models.Exam
	for rows.Next() {
		var e models.Exam
		if err := rows.Scan(
			&e.ID, &e.CourseID, &e.Title, &e.ExamType, &e.ExamDate,
			&e.DurationMinutes, &e.TotalMarks, &e.PassingMarks, &e.Room,
			&e.Status, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan exam row: %w", err)
		}
		exams = append(exams, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return exams, total, nil
}

// UpdateExam applies the editable exam fields
func (r *ExamRepository) UpdateExam(ctx context.Context, exam *models.Exam) error {
	sql, args, err := r.sb.Update("exams").
		Set("title", exam.Title).
		Set("exam_type", exam.ExamType).
		Set("exam_date", exam.ExamDate).
		Set("duration_minutes", exam.DurationMinutes).
		Set("total_marks", exam.TotalMarks).
		Set("passing_marks", exam.PassingMarks).
		Set("room", exam.Room).
		Set("status", exam.Status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": exam.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update exam query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating exam: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}

// DeleteExam removes an exam together with its results
func (r *ExamRepository) DeleteExam(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("exams").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete exam query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting exam: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}

// CreateResult inserts an exam result with its precomputed derived fields
func (r *ExamRepository) CreateResult(ctx context.Context, result *models.ExamResult) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("exam_results").
		Columns("exam_id", "student_id", "marks_obtained", "percentage", "grade",
			"grade_points", "is_passed", "remarks", "entered_by", "created_at", "updated_at").
		Values(result.ExamID, result.StudentID, result.MarksObtained, result.Percentage,
			result.Grade, result.GradePoints, result.IsPassed, result.Remarks,
			result.EnteredBy, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create exam result query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&result.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_exam_results_exam_student") {
			return apperrors.ErrDuplicateExamResult
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error creating exam result: %w", err)
	}

	result.CreatedAt = now
	result.UpdatedAt = now
	return nil
}

// GetResultByID retrieves an exam result by ID
func (r *ExamRepository) GetResultByID(ctx context.Context, id int64) (*models.ExamResult, error) {
	sql, args, err := r.sb.Select(examResultColumns...).
		From("exam_results r").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get exam result query: %w", err)
	}

	var res models.ExamResult
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&res.ID, &res.ExamID, &res.StudentID, &res.MarksObtained, &res.Percentage,
		&res.Grade, &res.GradePoints, &res.IsPassed, &res.Remarks, &res.EnteredBy,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamResultNotFound
		}
		return nil, fmt.Errorf("error retrieving exam result: %w", err)
	}
	return &res, nil
}

// ListResultsByExam retrieves all results for an exam with student identity
func (r *ExamRepository) ListResultsByExam(ctx context.Context, examID int64, offset uint64, limit int) ([]models.ExamResult, int64, error) {
	countSql, countArgs, err := r.sb.Select("COUNT(*)").
		From("exam_results r").
		Where(squirrel.Eq{"r.exam_id": examID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count exam results query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exam results: %w", err)
	}
	if total == 0 {
		return []models.ExamResult{}, 0, nil
	}

	cols := append([]string{}, examResultColumns...)
	cols = append(cols, "s.student_id", "u.first_name", "u.last_name")
	sql, args, err := r.sb.Select(cols...).
		From("exam_results r").
		Join("students s ON r.student_id = s.id").
		Join("users u ON s.user_id = u.id").
		Where(squirrel.Eq{"r.exam_id": examID}).
		OrderBy("s.student_id ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list exam results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query exam results: %w", err)
	}
	defer rows.Close()

	var results []models.ExamResult
	for rows.Next() {
		var res models.ExamResult
		var studentNumber, firstName, lastName string
		if err := rows.Scan(
			&res.ID, &res.ExamID, &res.StudentID, &res.MarksObtained, &res.Percentage,
			&res.Grade, &res.GradePoints, &res.IsPassed, &res.Remarks, &res.EnteredBy,
			&res.CreatedAt, &res.UpdatedAt,
			&studentNumber, &firstName, &lastName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan exam result row: %w", err)
		}
		res.Student = &models.Student{
			ID:        res.StudentID,
			StudentID: studentNumber,
			User:      &models.User{FirstName: firstName, LastName: lastName},
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// ListResultsByStudent retrieves a student's results with exam info
func (r *ExamRepository) ListResultsByStudent(ctx context.Context, studentID int64) ([]models.ExamResult, error) {
	cols := append([]string{}, examResultColumns...)
	cols = append(cols, "e.title", "e.exam_type", "e.exam_date", "e.total_marks", "e.course_id")
	sql, args, err := r.sb.Select(cols...).
		From("exam_results r").
		Join("exams e ON r.exam_id = e.id").
		Where(squirrel.Eq{"r.student_id": studentID}).
		OrderBy("e.exam_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query student results: %w", err)
	}
	defer rows.Close()

	var results []models.ExamResult
	for rows.Next() {
		var res models.ExamResult
		var exam models.Exam
		if err := rows.Scan(
			&res.ID, &res.ExamID, &res.StudentID, &res.MarksObtained, &res.Percentage,
			&res.Grade, &res.GradePoints, &res.IsPassed, &res.Remarks, &res.EnteredBy,
			&res.CreatedAt, &res.UpdatedAt,
			&exam.Title, &exam.ExamType, &exam.ExamDate, &exam.TotalMarks, &exam.CourseID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student result row: %w", err)
		}
		exam.ID = res.ExamID
		res.Exam = &exam
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// UpdateResult rewrites marks, derived fields and remarks for a result
func (r *ExamRepository) UpdateResult(ctx context.Context, result *models.ExamResult) error {
	sql, args, err := r.sb.Update("exam_results").
		Set("marks_obtained", result.MarksObtained).
		Set("percentage", result.Percentage).
		Set("grade", result.Grade).
		Set("grade_points", result.GradePoints).
		Set("is_passed", result.IsPassed).
		Set("remarks", result.Remarks).
		Set("entered_by", result.EnteredBy).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": result.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update exam result query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating exam result: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExamResultNotFound
	}
	return nil
}

// DeleteResult removes an exam result
func (r *ExamRepository) DeleteResult(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("exam_results").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete exam result query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting exam result: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExamResultNotFound
	}
	return nil
}
