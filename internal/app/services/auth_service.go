package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campushub/campushub/internal/app/models"
	"github.com/campushub/campushub/internal/app/models/dto"
	"github.com/campushub/campushub/internal/app/repositories"
	"github.com/campushub/campushub/internal/db"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/campushub/campushub/internal/pkg/auth"
	"github.com/campushub/campushub/internal/pkg/email"
	"github.com/campushub/campushub/internal/pkg/logger"
	"github.com/campushub/campushub/internal/pkg/validation"
	"github.com/jackc/pgx/v5"
)

const (
	verificationTokenTTL  = 24 * time.Hour
	passwordResetTokenTTL = 1 * time.Hour
)

// AuthService handles registration, login and the credential flows
type AuthService struct {
	db                *db.PostgresDB
	userRepo          *repositories.UserRepository
	studentRepo       *repositories.StudentRepository
	facultyRepo       *repositories.FacultyRepository
	programRepo       *repositories.ProgramRepository
	departmentRepo    *repositories.DepartmentRepository
	tokenRepo         *repositories.TokenRepository
	verificationRepo  *repositories.VerificationTokenRepository
	passwordResetRepo *repositories.PasswordResetTokenRepository
	jwtService        *auth.JWTService
	emailService      email.EmailService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	database *db.PostgresDB,
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailService email.EmailService,
) *AuthService {
	return &AuthService{
		db:                database,
		userRepo:          repos.UserRepository,
		studentRepo:       repos.StudentRepository,
		facultyRepo:       repos.FacultyRepository,
		programRepo:       repos.ProgramRepository,
		departmentRepo:    repos.DepartmentRepository,
		tokenRepo:         repos.TokenRepository,
		verificationRepo:  repos.VerificationTokenRepository,
		passwordResetRepo: repos.PasswordResetTokenRepository,
		jwtService:        jwtService,
		emailService:      emailService,
	}
}

func (s *AuthService) validateRegistration(req *dto.RegisterRequest) error {
	if !validation.CompiledPatterns.Email.MatchString(req.Email) {
		return fmt.Errorf("%w: invalid email address", apperrors.ErrValidationFailed)
	}
	if len(req.Password) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}

	switch req.Role {
	case models.RoleStudent:
		if req.ProgramID == nil || *req.ProgramID <= 0 {
			return fmt.Errorf("%w: programId is required for student registration", apperrors.ErrValidationFailed)
		}
		if req.EnrollmentYear == nil || *req.EnrollmentYear < 2000 {
			return fmt.Errorf("%w: enrollmentYear is required for student registration", apperrors.ErrValidationFailed)
		}
	case models.RoleFaculty:
		if req.Designation == nil || strings.TrimSpace(*req.Designation) == "" {
			return fmt.Errorf("%w: designation is required for faculty registration", apperrors.ErrValidationFailed)
		}
	default:
		return fmt.Errorf("%w: role must be STUDENT or FACULTY", apperrors.ErrValidationFailed)
	}
	return nil
}

// Register creates a user together with its role profile in one
// transaction, then sends the verification email.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if err := s.validateRegistration(req); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     strings.ToLower(req.Email),
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Phone:     req.Phone,
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}

		switch req.Role {
		case models.RoleStudent:
			program, err := s.programRepo.GetByID(ctx, *req.ProgramID)
			if err != nil {
				return err
			}
			if program.DepartmentID != req.DepartmentID {
				return fmt.Errorf("%w: program does not belong to the given department", apperrors.ErrValidationFailed)
			}

			seq, err := s.studentRepo.NextStudentSequence(ctx, *req.EnrollmentYear)
			if err != nil {
				return err
			}
			student := &models.Student{
				UserID:          user.ID,
				StudentID:       fmt.Sprintf("STU%d%04d", *req.EnrollmentYear, seq),
				DepartmentID:    req.DepartmentID,
				ProgramID:       *req.ProgramID,
				EnrollmentYear:  *req.EnrollmentYear,
				CurrentSemester: 1,
			}
			return s.studentRepo.Create(ctx, tx, student)

		case models.RoleFaculty:
			seq, err := s.facultyRepo.NextFacultySequence(ctx, req.DepartmentID)
			if err != nil {
				return err
			}
			profile := &models.FacultyProfile{
				UserID:       user.ID,
				FacultyID:    fmt.Sprintf("FAC%02d%03d", req.DepartmentID, seq),
				DepartmentID: req.DepartmentID,
				Designation:  *req.Designation,
				JoiningDate:  time.Now(),
			}
			return s.facultyRepo.Create(ctx, tx, profile)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sendVerification(ctx, user); err != nil {
		// Registration stands; the token can be reissued on demand
		logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send verification email")
	}

	return user, nil
}

func (s *AuthService) sendVerification(ctx context.Context, user *models.User) error {
	token, err := email.GenerateVerificationToken()
	if err != nil {
		return fmt.Errorf("error generating verification token: %w", err)
	}
	if err := s.verificationRepo.CreateToken(ctx, user.ID, token, time.Now().Add(verificationTokenTTL)); err != nil {
		return err
	}
	return s.emailService.SendVerificationEmail(user.Email, user.FullName(), token)
}

// Login authenticates credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	response, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	return response, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             expiresIn,
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: refreshExpiresIn,
		},
		User: dto.FromUser(user),
	}, nil
}

// RefreshToken rotates a refresh token into a fresh pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("error revoking refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.RevokeToken(ctx, refreshToken)
}

// VerifyEmail marks the account verified and sends the welcome email
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	userID, expiresAt, err := s.verificationRepo.GetTokenInfo(ctx, token)
	if err != nil {
		return err
	}
	if time.Now().After(expiresAt) {
		return apperrors.ErrInvalidEmailToken
	}

	if err := s.userRepo.SetEmailVerified(ctx, userID); err != nil {
		return err
	}
	if err := s.verificationRepo.DeleteTokensByUserID(ctx, userID); err != nil {
		logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to clean up verification tokens")
	}

	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.FullName()); err != nil {
			logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send welcome email")
		}
	}
	return nil
}

// ResendVerification issues a new verification token for an unverified
// account
func (s *AuthService) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return apperrors.ErrEmailAlreadyVerified
	}

	if err := s.verificationRepo.DeleteTokensByUserID(ctx, user.ID); err != nil {
		return err
	}
	return s.sendVerification(ctx, user)
}

// ForgotPassword starts a reset flow. Unknown addresses return no error so
// the endpoint does not leak which emails exist.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("error retrieving user: %w", err)
	}

	token, err := email.GenerateVerificationToken()
	if err != nil {
		return fmt.Errorf("error generating reset token: %w", err)
	}
	if err := s.passwordResetRepo.CreateToken(ctx, user.ID, token, time.Now().Add(passwordResetTokenTTL)); err != nil {
		return err
	}
	return s.emailService.SendPasswordResetEmail(user.Email, user.FullName(), token)
}

// ResetPassword completes a reset flow and revokes every session
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}

	userID, err := s.passwordResetRepo.GetTokenInfo(ctx, token)
	if err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}
	if err := s.passwordResetRepo.Consume(ctx, token); err != nil {
		return err
	}
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke sessions after password reset")
	}
	return nil
}

// ChangePassword changes the password of an authenticated user
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if len(newPassword) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}
	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}
