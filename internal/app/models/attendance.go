package models

import "time"

// AttendanceStatus is the recorded presence state for a class day
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceExcused AttendanceStatus = "EXCUSED"
)

// ValidAttendanceStatus reports whether the value is a known status
func ValidAttendanceStatus(s AttendanceStatus) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

// Attendance records one student's presence in one course on one calendar
// day. Date is stored as a UTC day; (course, student, date) is unique.
type Attendance struct {
	ID         int64            `json:"id" db:"id"`
	CourseID   int64            `json:"courseId" db:"course_id"`
	StudentID  int64            `json:"studentId" db:"student_id"`
	Date       time.Time        `json:"date" db:"date"`
	Status     AttendanceStatus `json:"status" db:"status"`
	Remarks    *string          `json:"remarks,omitempty" db:"remarks"`
	RecordedBy int64            `json:"recordedBy" db:"recorded_by"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time        `json:"updatedAt" db:"updated_at"`

	Course  *Course  `json:"course,omitempty"`
	Student *Student `json:"student,omitempty"`
}
