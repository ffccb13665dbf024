package dto

// FacultyResponse represents a teaching staff member
type FacultyResponse struct {
	ID            int64   `json:"id"`
	FacultyID     string  `json:"facultyId"`
	UserID        int64   `json:"userId"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	DepartmentID  int64   `json:"departmentId"`
	Designation   string  `json:"designation"`
	Qualification *string `json:"qualification,omitempty"`
	JoiningDate   string  `json:"joiningDate"`
}

// UpdateFacultyRequest represents editable faculty profile fields
type UpdateFacultyRequest struct {
	Designation   *string `json:"designation,omitempty" binding:"omitempty,min=2,max=100"`
	Qualification *string `json:"qualification,omitempty"`
	DepartmentID  *int64  `json:"departmentId,omitempty" binding:"omitempty,min=1"`
}

// FacultyListResponse represents a paginated list of faculty members
type FacultyListResponse struct {
	Faculty    []FacultyResponse `json:"faculty"`
	Pagination PaginationInfo    `json:"pagination"`
}
