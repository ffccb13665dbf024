package dto

import (
	"time"

	"github.com/campushub/campushub/internal/app/models"
)

// RecordAttendanceRequest records one student's attendance for a day
type RecordAttendanceRequest struct {
	CourseID  int64                   `json:"courseId" binding:"required,min=1"`
	StudentID int64                   `json:"studentId" binding:"required,min=1"`
	Date      time.Time               `json:"date" binding:"required"`
	Status    models.AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
	Remarks   *string                 `json:"remarks,omitempty"`
}

// BulkAttendanceEntry is one student's entry inside a bulk submission
type BulkAttendanceEntry struct {
	StudentID int64                   `json:"studentId" binding:"required,min=1"`
	Status    models.AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
	Remarks   *string                 `json:"remarks,omitempty"`
}

// BulkAttendanceRequest records a whole class for one day. Existing records
// for the same (student, date) are overwritten.
type BulkAttendanceRequest struct {
	CourseID int64                 `json:"courseId" binding:"required,min=1"`
	Date     time.Time             `json:"date" binding:"required"`
	Entries  []BulkAttendanceEntry `json:"entries" binding:"required,min=1,dive"`
}

// UpdateAttendanceRequest edits an existing record
type UpdateAttendanceRequest struct {
	Status  models.AttendanceStatus `json:"status" binding:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
	Date    *time.Time              `json:"date,omitempty"`
	Remarks *string                 `json:"remarks,omitempty"`
}

// AttendanceResponse represents one attendance record
type AttendanceResponse struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"courseId"`
	StudentID int64     `json:"studentId"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	Remarks   *string   `json:"remarks,omitempty"`
}

// AttendanceListResponse represents a paginated list of records
type AttendanceListResponse struct {
	Records    []AttendanceResponse `json:"records"`
	Pagination PaginationInfo       `json:"pagination"`
}

// BulkAttendanceResponse summarizes a bulk submission
type BulkAttendanceResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// StudentAttendanceSummary is a student's attendance standing
type StudentAttendanceSummary struct {
	StudentID            int64   `json:"studentId"`
	ClassesAttended      int     `json:"classesAttended"`
	ClassesMissed        int     `json:"classesMissed"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}
