package dto

import "github.com/campushub/campushub/internal/app/models"

// TimetableSlotResponse represents one timetable slot
type TimetableSlotResponse struct {
	ID            int64  `json:"id"`
	CourseID      int64  `json:"courseId"`
	CourseCode    string `json:"courseCode,omitempty"`
	CourseName    string `json:"courseName,omitempty"`
	FacultyUserID int64  `json:"facultyUserId"`
	DayOfWeek     string `json:"dayOfWeek"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Room          string `json:"room"`
	Semester      string `json:"semester"`
	AcademicYear  int    `json:"academicYear"`
}

// CreateTimetableSlotRequest represents slot creation data
type CreateTimetableSlotRequest struct {
	CourseID      int64            `json:"courseId" binding:"required,min=1"`
	FacultyUserID int64            `json:"facultyUserId" binding:"required,min=1"`
	DayOfWeek     models.DayOfWeek `json:"dayOfWeek" binding:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartTime     string           `json:"startTime" binding:"required"`
	EndTime       string           `json:"endTime" binding:"required"`
	Room          string           `json:"room" binding:"required,min=1,max=50"`
	Semester      models.Semester  `json:"semester" binding:"required,oneof=FALL SPRING SUMMER"`
	AcademicYear  int              `json:"academicYear" binding:"required,min=2000,max=2100"`
}

// UpdateTimetableSlotRequest represents slot update data
type UpdateTimetableSlotRequest struct {
	FacultyUserID int64            `json:"facultyUserId" binding:"required,min=1"`
	DayOfWeek     models.DayOfWeek `json:"dayOfWeek" binding:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartTime     string           `json:"startTime" binding:"required"`
	EndTime       string           `json:"endTime" binding:"required"`
	Room          string           `json:"room" binding:"required,min=1,max=50"`
}

// TimetableListResponse represents a set of slots, typically one week
type TimetableListResponse struct {
	Slots []TimetableSlotResponse `json:"slots"`
}

// ConflictDetail names the slot that blocked a create or update
type ConflictDetail struct {
	ConflictingSlotID int64  `json:"conflictingSlotId"`
	Reason            string `json:"reason"`
	DayOfWeek         string `json:"dayOfWeek"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
}
