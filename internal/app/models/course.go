package models

import "time"

// Course represents a course offered by a department. EnrolledCount tracks
// active enrollments against Capacity; enrollment past capacity is rejected.
type Course struct {
	ID            int64     `json:"id" db:"id"`
	DepartmentID  int64     `json:"departmentId" db:"department_id"`
	FacultyUserID *int64    `json:"facultyUserId,omitempty" db:"faculty_user_id"`
	Code          string    `json:"code" db:"code"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description,omitempty" db:"description"`
	Syllabus      *string   `json:"syllabus,omitempty" db:"syllabus"`
	Credits       int       `json:"credits" db:"credits"`
	Semester      int       `json:"semester" db:"semester"`
	Capacity      int       `json:"capacity" db:"capacity"`
	EnrolledCount int       `json:"enrolledCount" db:"enrolled_count"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
	Faculty    *User       `json:"faculty,omitempty"`
}
