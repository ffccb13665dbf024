package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// CourseService handles course catalog operations
type CourseService struct {
	courseRepo     *repositories.CourseRepository
	departmentRepo *repositories.DepartmentRepository
	userRepo       *repositories.UserRepository
	studentRepo    *repositories.StudentRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo *repositories.CourseRepository, departmentRepo *repositories.DepartmentRepository, userRepo *repositories.UserRepository, studentRepo *repositories.StudentRepository) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		studentRepo:    studentRepo,
	}
}

// validateFacultyAssignment checks the assignee exists and teaches
func (s *CourseService) validateFacultyAssignment(ctx context.Context, facultyUserID int64) error {
	user, err := s.userRepo.GetByID(ctx, facultyUserID)
	if err != nil {
		return err
	}
	if user.Role != models.RoleFaculty {
		return fmt.Errorf("%w: assigned user is not a faculty member", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateCourse creates a new course
func (s *CourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, fmt.Errorf("%w: code cannot be empty", apperrors.ErrValidationFailed)
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}
	if req.FacultyUserID != nil {
		if err := s.validateFacultyAssignment(ctx, *req.FacultyUserID); err != nil {
			return nil, err
		}
	}

	course := &models.Course{
		DepartmentID:  req.DepartmentID,
		FacultyUserID: req.FacultyUserID,
		Code:          code,
		Name:          req.Name,
		Description:   req.Description,
		Credits:       req.Credits,
		Semester:      req.Semester,
		Capacity:      req.Capacity,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// GetCourseByID retrieves a course by ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}
	return s.courseRepo.GetByID(ctx, id)
}

// ListCourses retrieves courses filtered and paginated
func (s *CourseService) ListCourses(ctx context.Context, filters repositories.CourseFilters, offset uint64, limit int) ([]models.Course, int64, error) {
	return s.courseRepo.List(ctx, filters, offset, limit)
}

// UpdateCourse applies the editable course fields. Capacity cannot drop
// below the seats already taken.
func (s *CourseService) UpdateCourse(ctx context.Context, courseID int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if req.Capacity < course.EnrolledCount {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("capacity cannot be lowered below the %d students already enrolled", course.EnrolledCount))
	}
	if req.FacultyUserID != nil {
		if err := s.validateFacultyAssignment(ctx, *req.FacultyUserID); err != nil {
			return nil, err
		}
	}

	course.FacultyUserID = req.FacultyUserID
	course.Name = req.Name
	course.Description = req.Description
	course.Credits = req.Credits
	course.Semester = req.Semester
	course.Capacity = req.Capacity
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a course with no related records
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}
	return s.courseRepo.Delete(ctx, id)
}

// GetSyllabus retrieves a course's syllabus
func (s *CourseService) GetSyllabus(ctx context.Context, courseID int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, courseID)
}

// UpdateSyllabus replaces a course's syllabus text
func (s *CourseService) UpdateSyllabus(ctx context.Context, courseID int64, req *dto.UpdateSyllabusRequest) (*models.Course, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.courseRepo.UpdateSyllabus(ctx, courseID, req.Syllabus); err != nil {
		return nil, err
	}
	return s.courseRepo.GetByID(ctx, courseID)
}

// ListRoster returns the IDs of students actively enrolled in a course
func (s *CourseService) ListRoster(ctx context.Context, courseID int64) ([]int64, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.studentRepo.ListEnrolledStudentIDs(ctx, courseID)
}
