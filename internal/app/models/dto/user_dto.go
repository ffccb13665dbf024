package dto

import "github.com/campushub/campushub/internal/app/models"

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FirstName string  `json:"firstName" binding:"required,min=2,max=100"`
	LastName  string  `json:"lastName" binding:"required,min=2,max=100"`
	Phone     *string `json:"phone,omitempty"`
}

// UpdateUserRoleRequest changes a user's role, admin only
type UpdateUserRoleRequest struct {
	Role models.RoleType `json:"role" binding:"required,oneof=STUDENT FACULTY ADMIN"`
}

// UpdateUserStatusRequest activates or deactivates an account
type UpdateUserStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}
