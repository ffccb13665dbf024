package models

import "time"

// StudentStatus is the lifecycle state of a student record
type StudentStatus string

const (
	StudentActive    StudentStatus = "ACTIVE"
	StudentInactive  StudentStatus = "INACTIVE"
	StudentGraduated StudentStatus = "GRADUATED"
	StudentSuspended StudentStatus = "SUSPENDED"
)

// Student defines the student model based on the 'students' table.
// ClassesAttended and ClassesMissed are running counters kept in step with
// the attendance table; every attendance write updates them in the same
// transaction.
type Student struct {
	ID              int64         `json:"id" db:"id"`
	UserID          int64         `json:"userId" db:"user_id"`
	StudentID       string        `json:"studentId" db:"student_id"`
	DepartmentID    int64         `json:"departmentId" db:"department_id"`
	ProgramID       int64         `json:"programId" db:"program_id"`
	EnrollmentYear  int           `json:"enrollmentYear" db:"enrollment_year"`
	CurrentSemester int           `json:"currentSemester" db:"current_semester"`
	Status          StudentStatus `json:"status" db:"status"`
	ClassesAttended int           `json:"classesAttended" db:"classes_attended"`
	ClassesMissed   int           `json:"classesMissed" db:"classes_missed"`
	CGPA            float64       `json:"cgpa" db:"cgpa"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	User       *User       `json:"user,omitempty"`
	Department *Department `json:"department,omitempty"`
	Program    *Program    `json:"program,omitempty"`
}

// EnrollmentStatus is the state of a student's enrollment in a course
type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "ENROLLED"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentDropped   EnrollmentStatus = "DROPPED"
)

// Enrollment links a student to a course. Grade and GradePoints are filled
// when the enrollment is completed and feed the student's CGPA.
type Enrollment struct {
	ID          int64            `json:"id" db:"id"`
	StudentID   int64            `json:"studentId" db:"student_id"`
	CourseID    int64            `json:"courseId" db:"course_id"`
	Status      EnrollmentStatus `json:"status" db:"status"`
	Grade       *string          `json:"grade,omitempty" db:"grade"`
	GradePoints *float64         `json:"gradePoints,omitempty" db:"grade_points"`
	EnrolledAt  time.Time        `json:"enrolledAt" db:"enrolled_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`

	Course *Course `json:"course,omitempty"`
}
