package dto

import "github.com/campushub/campushub/internal/app/models"

// StudentResponse represents a student with derived attendance data
type StudentResponse struct {
	ID                   int64   `json:"id"`
	StudentID            string  `json:"studentId"`
	UserID               int64   `json:"userId"`
	FirstName            string  `json:"firstName"`
	LastName             string  `json:"lastName"`
	Email                string  `json:"email"`
	DepartmentID         int64   `json:"departmentId"`
	ProgramID            int64   `json:"programId"`
	EnrollmentYear       int     `json:"enrollmentYear"`
	CurrentSemester      int     `json:"currentSemester"`
	Status               string  `json:"status"`
	ClassesAttended      int     `json:"classesAttended"`
	ClassesMissed        int     `json:"classesMissed"`
	AttendancePercentage float64 `json:"attendancePercentage"`
	CGPA                 float64 `json:"cgpa"`
}

// UpdateStudentRequest represents editable student fields
type UpdateStudentRequest struct {
	CurrentSemester *int                  `json:"currentSemester,omitempty" binding:"omitempty,min=1,max=16"`
	Status          *models.StudentStatus `json:"status,omitempty" binding:"omitempty,oneof=ACTIVE INACTIVE GRADUATED SUSPENDED"`
	ProgramID       *int64                `json:"programId,omitempty" binding:"omitempty,min=1"`
}

// StudentListResponse represents a paginated list of students
type StudentListResponse struct {
	Students   []StudentResponse `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}

// EnrollRequest enrolls a student into a course
type EnrollRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
}

// CompleteEnrollmentRequest finishes an enrollment with a final grade
type CompleteEnrollmentRequest struct {
	Grade       string  `json:"grade" binding:"required"`
	GradePoints float64 `json:"gradePoints" binding:"min=0,max=4"`
}

// EnrollmentResponse represents one course enrollment
type EnrollmentResponse struct {
	ID          int64    `json:"id"`
	StudentID   int64    `json:"studentId"`
	CourseID    int64    `json:"courseId"`
	CourseCode  string   `json:"courseCode,omitempty"`
	CourseName  string   `json:"courseName,omitempty"`
	Status      string   `json:"status"`
	Grade       *string  `json:"grade,omitempty"`
	GradePoints *float64 `json:"gradePoints,omitempty"`
}
