package models

import "time"

// TimetableSlot represents one recurring class meeting. StartTime and
// EndTime are "HH:MM" strings; the interval is half-open, so a slot ending
// at 10:00 does not conflict with one starting at 10:00.
type TimetableSlot struct {
	ID            int64     `json:"id" db:"id"`
	CourseID      int64     `json:"courseId" db:"course_id"`
	FacultyUserID int64     `json:"facultyUserId" db:"faculty_user_id"`
	DayOfWeek     DayOfWeek `json:"dayOfWeek" db:"day_of_week"`
	StartTime     string    `json:"startTime" db:"start_time"`
	EndTime       string    `json:"endTime" db:"end_time"`
	Room          string    `json:"room" db:"room"`
	Semester      Semester  `json:"semester" db:"semester"`
	AcademicYear  int       `json:"academicYear" db:"academic_year"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	Course  *Course `json:"course,omitempty"`
	Faculty *User   `json:"faculty,omitempty"`
}
