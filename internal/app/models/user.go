package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID              int64      `json:"id" db:"id" example:"1"`
	Email           string     `json:"email" db:"email" example:"user@campushub.edu"`
	Password        string     `json:"-" db:"password"`
	FirstName       string     `json:"firstName" db:"first_name" example:"John"`
	LastName        string     `json:"lastName" db:"last_name" example:"Doe"`
	Role            RoleType   `json:"role" db:"role" example:"STUDENT"`
	IsActive        bool       `json:"isActive" db:"is_active" example:"true"`
	IsEmailVerified bool       `json:"isEmailVerified" db:"is_email_verified" example:"true"`
	Phone           *string    `json:"phone,omitempty" db:"phone"`
	ProfilePhotoURL *string    `json:"profilePhotoUrl,omitempty" db:"profile_photo_url"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
