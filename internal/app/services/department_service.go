package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// DepartmentService handles department and program operations
type DepartmentService struct {
	departmentRepo *repositories.DepartmentRepository
	programRepo    *repositories.ProgramRepository
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo *repositories.DepartmentRepository, programRepo *repositories.ProgramRepository) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		programRepo:    programRepo,
	}
}

// isValidCode checks an organizational code: uppercase alphanumeric
func isValidCode(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	for _, char := range code {
		if !((char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9')) {
			return false
		}
	}
	return true
}

func (s *DepartmentService) validateDepartment(department *models.Department) error {
	if strings.TrimSpace(department.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !isValidCode(department.Code) {
		return fmt.Errorf("%w: code must be uppercase alphanumeric", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateDepartment creates a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) error {
	if err := s.validateDepartment(department); err != nil {
		return err
	}

	exists, err := s.departmentRepo.ExistsByNameOrCode(ctx, department.Name, department.Code, 0)
	if err != nil {
		return fmt.Errorf("error checking department uniqueness: %w", err)
	}
	if exists {
		return apperrors.ErrDepartmentAlreadyExists
	}

	return s.departmentRepo.Create(ctx, department)
}

// GetDepartmentByID retrieves a department by ID
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid department ID", apperrors.ErrValidationFailed)
	}
	return s.departmentRepo.GetByID(ctx, id)
}

// ListDepartments retrieves departments paginated
func (s *DepartmentService) ListDepartments(ctx context.Context, offset uint64, limit int) ([]models.Department, int64, error) {
	return s.departmentRepo.List(ctx, offset, limit)
}

// UpdateDepartment updates an existing department
func (s *DepartmentService) UpdateDepartment(ctx context.Context, department *models.Department) error {
	if department.ID <= 0 {
		return fmt.Errorf("%w: invalid department ID", apperrors.ErrValidationFailed)
	}
	if err := s.validateDepartment(department); err != nil {
		return err
	}

	exists, err := s.departmentRepo.ExistsByNameOrCode(ctx, department.Name, department.Code, department.ID)
	if err != nil {
		return fmt.Errorf("error checking department uniqueness: %w", err)
	}
	if exists {
		return apperrors.ErrDepartmentAlreadyExists
	}

	return s.departmentRepo.Update(ctx, department)
}

// DeleteDepartment deletes a department by ID
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid department ID", apperrors.ErrValidationFailed)
	}
	return s.departmentRepo.Delete(ctx, id)
}

func (s *DepartmentService) validateProgram(program *models.Program) error {
	if strings.TrimSpace(program.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	if !isValidCode(program.Code) {
		return fmt.Errorf("%w: code must be uppercase alphanumeric", apperrors.ErrValidationFailed)
	}
	if program.DurationYears <= 0 {
		return fmt.Errorf("%w: duration must be positive", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateProgram creates a new program under a department
func (s *DepartmentService) CreateProgram(ctx context.Context, program *models.Program) error {
	if err := s.validateProgram(program); err != nil {
		return err
	}

	if _, err := s.departmentRepo.GetByID(ctx, program.DepartmentID); err != nil {
		return err
	}

	return s.programRepo.Create(ctx, program)
}

// GetProgramByID retrieves a program by ID
func (s *DepartmentService) GetProgramByID(ctx context.Context, id int64) (*models.Program, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid program ID", apperrors.ErrValidationFailed)
	}
	return s.programRepo.GetByID(ctx, id)
}

// ListPrograms retrieves programs, optionally scoped to a department
func (s *DepartmentService) ListPrograms(ctx context.Context, departmentID *int64, offset uint64, limit int) ([]models.Program, int64, error) {
	return s.programRepo.List(ctx, departmentID, offset, limit)
}

// UpdateProgram updates a program. The code stays fixed because issued
// application numbers embed it.
func (s *DepartmentService) UpdateProgram(ctx context.Context, program *models.Program) error {
	if program.ID <= 0 {
		return fmt.Errorf("%w: invalid program ID", apperrors.ErrValidationFailed)
	}

	existing, err := s.programRepo.GetByID(ctx, program.ID)
	if err != nil {
		return err
	}
	program.Code = existing.Code

	if err := s.validateProgram(program); err != nil {
		return err
	}
	if program.DepartmentID != existing.DepartmentID {
		if _, err := s.departmentRepo.GetByID(ctx, program.DepartmentID); err != nil {
			return err
		}
	}

	return s.programRepo.Update(ctx, program)
}

// DeleteProgram deletes a program by ID
func (s *DepartmentService) DeleteProgram(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid program ID", apperrors.ErrValidationFailed)
	}
	return s.programRepo.Delete(ctx, id)
}
