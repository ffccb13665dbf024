package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushub/campushub/internal/app/academic"
	authz "github.com/campushub/campushub/internal/app/auth"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/db"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
)

// StudentService handles student records and course enrollment
type StudentService struct {
	db          *db.PostgresDB
	studentRepo *repositories.StudentRepository
	courseRepo  *repositories.CourseRepository
	programRepo *repositories.ProgramRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(database *db.PostgresDB, studentRepo *repositories.StudentRepository, courseRepo *repositories.CourseRepository, programRepo *repositories.ProgramRepository) *StudentService {
	return &StudentService{
		db:          database,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		programRepo: programRepo,
	}
}

// GetStudentByID retrieves a student by record ID
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}
	return s.studentRepo.GetByID(ctx, id)
}

// GetStudentByUserID retrieves the student profile owned by a user
func (s *StudentService) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// ListStudents retrieves students filtered and paginated
func (s *StudentService) ListStudents(ctx context.Context, filters repositories.StudentFilters, offset uint64, limit int) ([]models.Student, int64, error) {
	return s.studentRepo.List(ctx, filters, offset, limit)
}

// UpdateStudent applies administrative updates to a student record
func (s *StudentService) UpdateStudent(ctx context.Context, studentID int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if req.CurrentSemester != nil {
		if *req.CurrentSemester < 1 {
			return nil, fmt.Errorf("%w: semester must be positive", apperrors.ErrValidationFailed)
		}
		student.CurrentSemester = *req.CurrentSemester
	}
	if req.Status != nil {
		switch *req.Status {
		case models.StudentActive, models.StudentInactive, models.StudentGraduated, models.StudentSuspended:
		default:
			return nil, fmt.Errorf("%w: unknown student status %q", apperrors.ErrValidationFailed, *req.Status)
		}
		student.Status = *req.Status
	}
	if req.ProgramID != nil {
		program, err := s.programRepo.GetByID(ctx, *req.ProgramID)
		if err != nil {
			return nil, err
		}
		if program.DepartmentID != student.DepartmentID {
			return nil, fmt.Errorf("%w: program belongs to a different department", apperrors.ErrValidationFailed)
		}
		student.ProgramID = *req.ProgramID
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Enroll enrolls a student in a course, holding a seat against capacity
// in the same transaction. Staff may enroll any student; a student may
// only enroll themselves.
func (s *StudentService) Enroll(ctx context.Context, actor authz.Actor, studentID, courseID int64) (*models.Enrollment, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionManageEnrollments, student.UserID); err != nil {
		return nil, apperrors.ErrPermissionDenied
	}
	if student.Status != models.StudentActive {
		return nil, apperrors.NewConflictError("only active students can enroll in courses")
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsActive {
		return nil, apperrors.NewConflictError("course is not open for enrollment")
	}

	enrollment := &models.Enrollment{StudentID: studentID, CourseID: courseID}
	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.courseRepo.IncrementEnrolledCount(ctx, tx, courseID); err != nil {
			return err
		}
		return s.studentRepo.CreateEnrollment(ctx, tx, enrollment)
	})
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// Drop withdraws an active enrollment and releases the seat. The same
// ownership rule as Enroll applies.
func (s *StudentService) Drop(ctx context.Context, actor authz.Actor, studentID, courseID int64) error {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(actor, authz.ActionManageEnrollments, student.UserID); err != nil {
		return apperrors.ErrPermissionDenied
	}

	enrollment, err := s.studentRepo.GetEnrollment(ctx, studentID, courseID)
	if err != nil {
		return err
	}
	if enrollment.Status != models.EnrollmentEnrolled {
		return apperrors.NewConflictError("only active enrollments can be dropped")
	}

	enrollment.Status = models.EnrollmentDropped
	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.courseRepo.DecrementEnrolledCount(ctx, tx, courseID); err != nil {
			return err
		}
		return s.studentRepo.UpdateEnrollment(ctx, tx, enrollment)
	})
}

// CompleteEnrollment closes an enrollment with a final grade and
// recomputes the student's CGPA
func (s *StudentService) CompleteEnrollment(ctx context.Context, studentID, courseID int64, grade string, gradePoints float64) (*models.Enrollment, error) {
	if grade == "" {
		return nil, fmt.Errorf("%w: grade is required", apperrors.ErrValidationFailed)
	}
	if gradePoints < 0 || gradePoints > 4.0 {
		return nil, fmt.Errorf("%w: grade points must be between 0 and 4", apperrors.ErrValidationFailed)
	}

	enrollment, err := s.studentRepo.GetEnrollment(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment.Status != models.EnrollmentEnrolled {
		return nil, apperrors.NewConflictError("only active enrollments can be completed")
	}

	enrollment.Status = models.EnrollmentCompleted
	enrollment.Grade = &grade
	enrollment.GradePoints = &gradePoints
	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.studentRepo.UpdateEnrollment(ctx, tx, enrollment)
	})
	if err != nil {
		return nil, err
	}

	if err := s.RecomputeCGPA(ctx, studentID); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// RecomputeCGPA refreshes the stored CGPA from completed enrollments
func (s *StudentService) RecomputeCGPA(ctx context.Context, studentID int64) error {
	points, err := s.studentRepo.CompletedGradePoints(ctx, studentID)
	if err != nil {
		return err
	}
	return s.studentRepo.UpdateCGPA(ctx, studentID, academic.CGPA(points))
}

// ListEnrollments retrieves a student's enrollments
func (s *StudentService) ListEnrollments(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.studentRepo.ListEnrollments(ctx, studentID)
}

// GetEnrollment retrieves one enrollment, distinguishing a missing
// student from a missing enrollment
func (s *StudentService) GetEnrollment(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	enrollment, err := s.studentRepo.GetEnrollment(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotEnrolled) {
			if _, serr := s.studentRepo.GetByID(ctx, studentID); serr != nil {
				return nil, serr
			}
		}
		return nil, err
	}
	return enrollment, nil
}
