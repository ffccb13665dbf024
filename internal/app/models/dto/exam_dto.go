package dto

import (
	"time"

	"github.com/campushub/campushub/internal/app/models"
)

// ExamResponse represents an exam in API responses
type ExamResponse struct {
	ID              int64     `json:"id"`
	CourseID        int64     `json:"courseId"`
	CourseCode      string    `json:"courseCode,omitempty"`
	Title           string    `json:"title"`
	ExamType        string    `json:"examType"`
	ExamDate        time.Time `json:"examDate"`
	DurationMinutes int       `json:"durationMinutes"`
	TotalMarks      float64   `json:"totalMarks"`
	PassingMarks    *float64  `json:"passingMarks,omitempty"`
	Room            *string   `json:"room,omitempty"`
	Status          string    `json:"status"`
}

// CreateExamRequest represents exam creation data
type CreateExamRequest struct {
	CourseID        int64           `json:"courseId" binding:"required,min=1"`
	Title           string          `json:"title" binding:"required,min=2,max=200"`
	ExamType        models.ExamType `json:"examType" binding:"required,oneof=MIDTERM FINAL QUIZ ASSIGNMENT PRACTICAL"`
	ExamDate        time.Time       `json:"examDate" binding:"required"`
	DurationMinutes int             `json:"durationMinutes" binding:"required,min=5,max=600"`
	TotalMarks      float64         `json:"totalMarks" binding:"required,gt=0"`
	PassingMarks    *float64        `json:"passingMarks,omitempty" binding:"omitempty,gt=0"`
	Room            *string         `json:"room,omitempty"`
}

// UpdateExamRequest represents exam update data
type UpdateExamRequest struct {
	Title           string            `json:"title" binding:"required,min=2,max=200"`
	ExamDate        time.Time         `json:"examDate" binding:"required"`
	DurationMinutes int               `json:"durationMinutes" binding:"required,min=5,max=600"`
	TotalMarks      float64           `json:"totalMarks" binding:"required,gt=0"`
	PassingMarks    *float64          `json:"passingMarks,omitempty" binding:"omitempty,gt=0"`
	Room            *string           `json:"room,omitempty"`
	Status          models.ExamStatus `json:"status" binding:"required,oneof=SCHEDULED ONGOING COMPLETED CANCELLED"`
}

// ExamListResponse represents a paginated list of exams
type ExamListResponse struct {
	Exams      []ExamResponse `json:"exams"`
	Pagination PaginationInfo `json:"pagination"`
}

// RecordResultRequest records one student's marks for an exam
type RecordResultRequest struct {
	StudentID     int64   `json:"studentId" binding:"required,min=1"`
	MarksObtained float64 `json:"marksObtained" binding:"min=0"`
	Remarks       *string `json:"remarks,omitempty"`
}

// UpdateResultRequest edits an existing result's marks
type UpdateResultRequest struct {
	MarksObtained float64 `json:"marksObtained" binding:"min=0"`
	Remarks       *string `json:"remarks,omitempty"`
}

// ExamResultResponse represents a graded result
type ExamResultResponse struct {
	ID            int64   `json:"id"`
	ExamID        int64   `json:"examId"`
	StudentID     int64   `json:"studentId"`
	StudentNumber string  `json:"studentNumber,omitempty"`
	MarksObtained float64 `json:"marksObtained"`
	TotalMarks    float64 `json:"totalMarks,omitempty"`
	Percentage    float64 `json:"percentage"`
	Grade         string  `json:"grade"`
	GradePoints   float64 `json:"gradePoints"`
	IsPassed      bool    `json:"isPassed"`
	Remarks       *string `json:"remarks,omitempty"`
}

// ExamResultListResponse represents all results for an exam
type ExamResultListResponse struct {
	Results    []ExamResultResponse `json:"results"`
	Pagination PaginationInfo       `json:"pagination"`
}
