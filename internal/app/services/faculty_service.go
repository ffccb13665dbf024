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

// FacultyService handles faculty profile operations
type FacultyService struct {
	facultyRepo    *repositories.FacultyRepository
	departmentRepo *repositories.DepartmentRepository
	courseRepo     *repositories.CourseRepository
}

// NewFacultyService creates a new FacultyService
func NewFacultyService(facultyRepo *repositories.FacultyRepository, departmentRepo *repositories.DepartmentRepository, courseRepo *repositories.CourseRepository) *FacultyService {
	return &FacultyService{
		facultyRepo:    facultyRepo,
		departmentRepo: departmentRepo,
		courseRepo:     courseRepo,
	}
}

// GetFacultyByID retrieves a faculty profile by record ID
func (s *FacultyService) GetFacultyByID(ctx context.Context, id int64) (*models.FacultyProfile, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid faculty ID", apperrors.ErrValidationFailed)
	}
	return s.facultyRepo.GetByID(ctx, id)
}

// GetFacultyByUserID retrieves the faculty profile owned by a user
func (s *FacultyService) GetFacultyByUserID(ctx context.Context, userID int64) (*models.FacultyProfile, error) {
	return s.facultyRepo.GetByUserID(ctx, userID)
}

// ListFaculty retrieves faculty profiles filtered and paginated
func (s *FacultyService) ListFaculty(ctx context.Context, departmentID *int64, search string, offset uint64, limit int) ([]models.FacultyProfile, int64, error) {
	return s.facultyRepo.List(ctx, departmentID, search, offset, limit)
}

// UpdateFaculty applies administrative updates to a faculty profile
func (s *FacultyService) UpdateFaculty(ctx context.Context, facultyID int64, req *dto.UpdateFacultyRequest) (*models.FacultyProfile, error) {
	profile, err := s.facultyRepo.GetByID(ctx, facultyID)
	if err != nil {
		return nil, err
	}

	if req.Designation != nil {
		if strings.TrimSpace(*req.Designation) == "" {
			return nil, fmt.Errorf("%w: designation cannot be empty", apperrors.ErrValidationFailed)
		}
		profile.Designation = *req.Designation
	}
	if req.Qualification != nil {
		profile.Qualification = req.Qualification
	}
	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
		profile.DepartmentID = *req.DepartmentID
	}

	if err := s.facultyRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ListAssignedCourses retrieves the courses taught by a faculty member
func (s *FacultyService) ListAssignedCourses(ctx context.Context, facultyUserID int64, offset uint64, limit int) ([]models.Course, int64, error) {
	filters := repositories.CourseFilters{FacultyUserID: &facultyUserID}
	return s.courseRepo.List(ctx, filters, offset, limit)
}
