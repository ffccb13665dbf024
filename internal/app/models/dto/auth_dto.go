package dto

import "github.com/campushub/campushub/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int    `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents a user registration request. Student and
// faculty profile fields are filled depending on the requested role.
type RegisterRequest struct {
	Email        string          `json:"email" binding:"required,email"`
	Password     string          `json:"password" binding:"required,min=8"`
	FirstName    string          `json:"firstName" binding:"required,min=2,max=100"`
	LastName     string          `json:"lastName" binding:"required,min=2,max=100"`
	Role         models.RoleType `json:"role" binding:"required,oneof=STUDENT FACULTY"`
	Phone        *string         `json:"phone,omitempty"`
	DepartmentID int64           `json:"departmentId" binding:"required,min=1"`

	// Student fields
	ProgramID      *int64 `json:"programId,omitempty"`
	EnrollmentYear *int   `json:"enrollmentYear,omitempty"`

	// Faculty fields
	Designation *string `json:"designation,omitempty"`
}

// ForgotPasswordRequest starts a password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes a password reset with a token
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangePasswordRequest changes the password of an authenticated user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID              int64   `json:"id"`
	Email           string  `json:"email"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Role            string  `json:"role"`
	IsActive        bool    `json:"isActive"`
	IsEmailVerified bool    `json:"isEmailVerified"`
	Phone           *string `json:"phone,omitempty"`
	ProfilePhotoURL *string `json:"profilePhotoUrl,omitempty"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// FromUser converts a user model to its response shape
func FromUser(u *models.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            string(u.Role),
		IsActive:        u.IsActive,
		IsEmailVerified: u.IsEmailVerified,
		Phone:           u.Phone,
		ProfilePhotoURL: u.ProfilePhotoURL,
	}
}
