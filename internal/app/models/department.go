package models

import "time"

// Department represents an academic department
type Department struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	Description *string   `json:"description,omitempty" db:"description"`
	HeadUserID  *int64    `json:"headUserId,omitempty" db:"head_user_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Program represents a degree program offered by a department.
// Code is the short identifier embedded in admission application numbers.
type Program struct {
	ID            int64     `json:"id" db:"id"`
	DepartmentID  int64     `json:"departmentId" db:"department_id"`
	Name          string    `json:"name" db:"name"`
	Code          string    `json:"code" db:"code"`
	DurationYears int       `json:"durationYears" db:"duration_years"`
	TotalCredits  int       `json:"totalCredits" db:"total_credits"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	Department *Department `json:"department,omitempty"`
}
