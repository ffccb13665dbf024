package dto

// DepartmentResponse represents basic department information
type DepartmentResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
	HeadUserID  *int64  `json:"headUserId,omitempty"`
}

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=200"`
	Code        string  `json:"code" binding:"required,min=2,max=10"`
	Description *string `json:"description,omitempty"`
	HeadUserID  *int64  `json:"headUserId,omitempty"`
}

// UpdateDepartmentRequest represents department update data
type UpdateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=200"`
	Code        string  `json:"code" binding:"required,min=2,max=10"`
	Description *string `json:"description,omitempty"`
	HeadUserID  *int64  `json:"headUserId,omitempty"`
}

// DepartmentListResponse represents a list of departments
type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// ProgramResponse represents a degree program
type ProgramResponse struct {
	ID            int64  `json:"id"`
	DepartmentID  int64  `json:"departmentId"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	DurationYears int    `json:"durationYears"`
	TotalCredits  int    `json:"totalCredits"`
}

// CreateProgramRequest represents program creation data
type CreateProgramRequest struct {
	DepartmentID  int64  `json:"departmentId" binding:"required,min=1"`
	Name          string `json:"name" binding:"required,min=2,max=200"`
	Code          string `json:"code" binding:"required,min=2,max=10"`
	DurationYears int    `json:"durationYears" binding:"required,min=1,max=10"`
	TotalCredits  int    `json:"totalCredits" binding:"required,min=1"`
}

// UpdateProgramRequest represents program update data
type UpdateProgramRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=200"`
	DurationYears int    `json:"durationYears" binding:"required,min=1,max=10"`
	TotalCredits  int    `json:"totalCredits" binding:"required,min=1"`
}

// ProgramListResponse represents a list of programs
type ProgramListResponse struct {
	Programs   []ProgramResponse `json:"programs"`
	Pagination PaginationInfo    `json:"pagination"`
}
