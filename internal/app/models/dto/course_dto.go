package dto

// CourseResponse represents a course in API responses
type CourseResponse struct {
	ID            int64   `json:"id"`
	DepartmentID  int64   `json:"departmentId"`
	FacultyUserID *int64  `json:"facultyUserId,omitempty"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	Credits       int     `json:"credits"`
	Semester      int     `json:"semester"`
	Capacity      int     `json:"capacity"`
	EnrolledCount int     `json:"enrolledCount"`
	IsActive      bool    `json:"isActive"`
}

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	DepartmentID  int64   `json:"departmentId" binding:"required,min=1"`
	FacultyUserID *int64  `json:"facultyUserId,omitempty" binding:"omitempty,min=1"`
	Code          string  `json:"code" binding:"required,min=2,max=20"`
	Name          string  `json:"name" binding:"required,min=2,max=200"`
	Description   *string `json:"description,omitempty"`
	Credits       int     `json:"credits" binding:"required,min=1,max=30"`
	Semester      int     `json:"semester" binding:"required,min=1,max=16"`
	Capacity      int     `json:"capacity" binding:"required,min=1"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	FacultyUserID *int64  `json:"facultyUserId,omitempty" binding:"omitempty,min=1"`
	Name          string  `json:"name" binding:"required,min=2,max=200"`
	Description   *string `json:"description,omitempty"`
	Credits       int     `json:"credits" binding:"required,min=1,max=30"`
	Semester      int     `json:"semester" binding:"required,min=1,max=16"`
	Capacity      int     `json:"capacity" binding:"required,min=1"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

// UpdateSyllabusRequest replaces a course's syllabus text
type UpdateSyllabusRequest struct {
	Syllabus *string `json:"syllabus"`
}

// SyllabusResponse carries a course's syllabus
type SyllabusResponse struct {
	CourseID int64   `json:"courseId"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Syllabus *string `json:"syllabus,omitempty"`
}

// CourseListResponse represents a paginated list of courses
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}
