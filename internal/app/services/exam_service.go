package services

import (
	"context"
	"fmt"

	"github.com/campushub/campushub/internal/app/academic"
	authz "github.com/campushub/campushub/internal/app/auth"
	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// ExamService handles exams and result grading
type ExamService struct {
	examRepo    *repositories.ExamRepository
	courseRepo  *repositories.CourseRepository
	studentRepo *repositories.StudentRepository
}

// NewExamService creates a new ExamService
func NewExamService(examRepo *repositories.ExamRepository, courseRepo *repositories.CourseRepository, studentRepo *repositories.StudentRepository) *ExamService {
	return &ExamService{
		examRepo:    examRepo,
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
	}
}

func validateExamMarks(totalMarks float64, passingMarks *float64) error {
	if totalMarks <= 0 {
		return fmt.Errorf("%w: total marks must be positive", apperrors.ErrValidationFailed)
	}
	if passingMarks != nil && (*passingMarks <= 0 || *passingMarks > totalMarks) {
		return fmt.Errorf("%w: passing marks must be within total marks", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateExam schedules a new exam for a course
func (s *ExamService) CreateExam(ctx context.Context, req *dto.CreateExamRequest, createdBy int64) (*models.Exam, error) {
	if err := validateExamMarks(req.TotalMarks, req.PassingMarks); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	exam := &models.Exam{
		CourseID:        req.CourseID,
		Title:           req.Title,
		ExamType:        req.ExamType,
		ExamDate:        req.ExamDate,
		DurationMinutes: req.DurationMinutes,
		TotalMarks:      req.TotalMarks,
		PassingMarks:    req.PassingMarks,
		Room:            req.Room,
		CreatedBy:       createdBy,
	}
	if err := s.examRepo.CreateExam(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// GetExamByID retrieves an exam by ID
func (s *ExamService) GetExamByID(ctx context.Context, id int64) (*models.Exam, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid exam ID", apperrors.ErrValidationFailed)
	}
	return s.examRepo.GetExamByID(ctx, id)
}

// ListExams retrieves exams filtered and paginated
func (s *ExamService) ListExams(ctx context.Context, filters repositories.ExamFilters, offset uint64, limit int) ([]models.Exam, int64, error) {
	return s.examRepo.ListExams(ctx, filters, offset, limit)
}

// UpdateExam applies the editable exam fields. Lowering total marks is
// refused once results against the old scale exist.
func (s *ExamService) UpdateExam(ctx context.Context, examID int64, req *dto.UpdateExamRequest) (*models.Exam, error) {
	if err := validateExamMarks(req.TotalMarks, req.PassingMarks); err != nil {
		return nil, err
	}

	exam, err := s.examRepo.GetExamByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	if req.TotalMarks != exam.TotalMarks {
		_, total, err := s.examRepo.ListResultsByExam(ctx, examID, 0, 1)
		if err != nil {
			return nil, err
		}
		if total > 0 {
			return nil, apperrors.NewConflictError("total marks cannot change after results were recorded")
		}
	}

	exam.Title = req.Title
	exam.ExamDate = req.ExamDate
	exam.DurationMinutes = req.DurationMinutes
	exam.TotalMarks = req.TotalMarks
	exam.PassingMarks = req.PassingMarks
	exam.Room = req.Room
	exam.Status = req.Status

	if err := s.examRepo.UpdateExam(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// DeleteExam removes an exam together with its results
func (s *ExamService) DeleteExam(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid exam ID", apperrors.ErrValidationFailed)
	}
	return s.examRepo.DeleteExam(ctx, id)
}

// RecordResult grades a student's marks for an exam. Percentage, letter
// grade, grade points and the pass flag are derived here, never accepted
// from callers.
func (s *ExamService) RecordResult(ctx context.Context, examID int64, req *dto.RecordResultRequest, enteredBy int64) (*models.ExamResult, error) {
	exam, err := s.examRepo.GetExamByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if req.MarksObtained < 0 {
		return nil, fmt.Errorf("%w: marks cannot be negative", apperrors.ErrValidationFailed)
	}
	if req.MarksObtained > exam.TotalMarks {
		return nil, apperrors.ErrMarksExceedTotal
	}

	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if _, err := s.studentRepo.GetEnrollment(ctx, req.StudentID, exam.CourseID); err != nil {
		return nil, err
	}

	graded := academic.GradeResult(req.MarksObtained, exam.TotalMarks, exam.PassingMarks)
	result := &models.ExamResult{
		ExamID:        examID,
		StudentID:     req.StudentID,
		MarksObtained: req.MarksObtained,
		Percentage:    graded.Percentage,
		Grade:         graded.Grade,
		GradePoints:   graded.GradePoints,
		IsPassed:      graded.IsPassed,
		Remarks:       req.Remarks,
		EnteredBy:     enteredBy,
	}
	if err := s.examRepo.CreateResult(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateResult regrades an existing result with new marks
func (s *ExamService) UpdateResult(ctx context.Context, resultID int64, req *dto.UpdateResultRequest, enteredBy int64) (*models.ExamResult, error) {
	result, err := s.examRepo.GetResultByID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	exam, err := s.examRepo.GetExamByID(ctx, result.ExamID)
	if err != nil {
		return nil, err
	}
	if req.MarksObtained < 0 {
		return nil, fmt.Errorf("%w: marks cannot be negative", apperrors.ErrValidationFailed)
	}
	if req.MarksObtained > exam.TotalMarks {
		return nil, apperrors.ErrMarksExceedTotal
	}

	graded := academic.GradeResult(req.MarksObtained, exam.TotalMarks, exam.PassingMarks)
	result.MarksObtained = req.MarksObtained
	result.Percentage = graded.Percentage
	result.Grade = graded.Grade
	result.GradePoints = graded.GradePoints
	result.IsPassed = graded.IsPassed
	result.Remarks = req.Remarks
	result.EnteredBy = enteredBy

	if err := s.examRepo.UpdateResult(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetResultByID retrieves a result by ID
func (s *ExamService) GetResultByID(ctx context.Context, id int64) (*models.ExamResult, error) {
	return s.examRepo.GetResultByID(ctx, id)
}

// ListResultsByExam retrieves all results for an exam
func (s *ExamService) ListResultsByExam(ctx context.Context, examID int64, offset uint64, limit int) ([]models.ExamResult, int64, error) {
	if _, err := s.examRepo.GetExamByID(ctx, examID); err != nil {
		return nil, 0, err
	}
	return s.examRepo.ListResultsByExam(ctx, examID, offset, limit)
}

// ListResultsByStudent retrieves a student's results across exams.
// Students may only read their own results.
func (s *ExamService) ListResultsByStudent(ctx context.Context, actor authz.Actor, studentID int64) ([]models.ExamResult, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessStudentRecord(actor, student.UserID) {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.examRepo.ListResultsByStudent(ctx, studentID)
}

// DeleteResult removes a result
func (s *ExamService) DeleteResult(ctx context.Context, id int64) error {
	return s.examRepo.DeleteResult(ctx, id)
}
