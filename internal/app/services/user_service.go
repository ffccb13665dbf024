package services

import (
	"context"
	"fmt"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/pkg/apperrors"
)

// UserService handles user profile and account administration
type UserService struct {
	userRepo  *repositories.UserRepository
	tokenRepo *repositories.TokenRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, tokenRepo *repositories.TokenRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid user ID", apperrors.ErrValidationFailed)
	}
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers retrieves users filtered by role and search text
func (s *UserService) ListUsers(ctx context.Context, role *models.RoleType, search string, offset uint64, limit int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, role, search, offset, limit)
}

// UpdateProfile updates the caller's own profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	if err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, req.Phone); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// DeleteUser permanently removes an account together with its student or
// faculty profile. Superadmin accounts and the caller's own account are
// protected.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID int64) error {
	if userID == actorID {
		return apperrors.NewForbiddenError("cannot delete your own account")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == models.RoleSuperadmin {
		return apperrors.NewForbiddenError("superadmin account cannot be deleted")
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// SetUserRole changes a user's role. Superadmin accounts cannot be
// demoted through this path.
func (s *UserService) SetUserRole(ctx context.Context, userID int64, role models.RoleType) error {
	switch role {
	case models.RoleStudent, models.RoleFaculty, models.RoleAdmin:
	default:
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, role)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == models.RoleSuperadmin {
		return apperrors.NewForbiddenError("superadmin role cannot be changed")
	}

	return s.userRepo.SetRole(ctx, userID, role)
}

// SetUserActive enables or disables an account. Disabling also revokes
// every outstanding session.
func (s *UserService) SetUserActive(ctx context.Context, userID int64, isActive bool) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == models.RoleSuperadmin && !isActive {
		return apperrors.NewForbiddenError("superadmin account cannot be deactivated")
	}

	if err := s.userRepo.SetActive(ctx, userID, isActive); err != nil {
		return err
	}
	if !isActive {
		return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
	}
	return nil
}
