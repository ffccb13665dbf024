package models

import "time"

// FacultyProfile defines the teaching staff model based on the
// 'faculty_profiles' table
type FacultyProfile struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	FacultyID     string    `json:"facultyId" db:"faculty_id"`
	DepartmentID  int64     `json:"departmentId" db:"department_id"`
	Designation   string    `json:"designation" db:"designation"`
	Qualification *string   `json:"qualification,omitempty" db:"qualification"`
	JoiningDate   time.Time `json:"joiningDate" db:"joining_date"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	User       *User       `json:"user,omitempty"`
	Department *Department `json:"department,omitempty"`
}
